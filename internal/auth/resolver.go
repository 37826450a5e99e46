package auth

import (
	"errors"
	"strings"

	"github.com/Tomlord1122/todo-expert/internal/apperror"
	"github.com/Tomlord1122/todo-expert/internal/domain"
)

const BearerPrefix = "Bearer "

// TokenParser is the part of TokenService the resolver depends on.
type TokenParser interface {
	Parse(token string) (domain.AuthIdentity, error)
}

// Resolver turns the raw Authorization header value into a verified identity.
type Resolver struct {
	tokens TokenParser
}

func NewResolver(tokens TokenParser) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve strips the bearer prefix and parses the token. Every failure is
// reported as an Unauthorized apperror; token errors stay in the chain.
func (r *Resolver) Resolve(header string) (domain.AuthIdentity, error) {
	if strings.TrimSpace(header) == "" {
		return domain.AuthIdentity{}, apperror.Unauthorized("JWT 토큰이 필요합니다.", nil)
	}
	if len(header) <= len(BearerPrefix) || !strings.HasPrefix(header, BearerPrefix) {
		return domain.AuthIdentity{}, apperror.Unauthorized("지원되지 않는 JWT 토큰입니다.", ErrTokenInvalid)
	}

	identity, err := r.tokens.Parse(header[len(BearerPrefix):])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return domain.AuthIdentity{}, apperror.Unauthorized("만료된 JWT 토큰입니다.", err)
		}
		return domain.AuthIdentity{}, apperror.Unauthorized("유효하지 않는 JWT 서명입니다.", err)
	}
	return identity, nil
}

func BearerToken(token string) string {
	return BearerPrefix + token
}
