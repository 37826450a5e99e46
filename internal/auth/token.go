package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Tomlord1122/todo-expert/internal/domain"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

const DefaultTokenTTL = 60 * time.Minute

// Claims is the payload of an identity token. The subject holds the user id
// as a decimal string.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"userRole"`
	jwt.RegisteredClaims
}

// TokenService issues and parses HS256-signed identity tokens. The key is
// fixed for the life of the process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenService{secret: key, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

func (s *TokenService) Issue(userID uint, email string, role domain.UserRole) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of token and returns the identity
// it carries. Failures wrap ErrTokenExpired or ErrTokenInvalid.
func (s *TokenService) Parse(token string) (domain.AuthIdentity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.AuthIdentity{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return domain.AuthIdentity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return domain.AuthIdentity{}, fmt.Errorf("%w: subject %q is not a user id", ErrTokenInvalid, claims.Subject)
	}
	role, ok := domain.ParseUserRole(claims.Role)
	if !ok {
		return domain.AuthIdentity{}, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, claims.Role)
	}

	return domain.AuthIdentity{ID: uint(id), Email: claims.Email, Role: role}, nil
}
