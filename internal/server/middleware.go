package server

import (
	"context"
	"net/http"

	"github.com/Tomlord1122/todo-expert/internal/audit"
	"github.com/Tomlord1122/todo-expert/internal/auth"
	"github.com/Tomlord1122/todo-expert/internal/domain"
)

type contextKey string

const identityKey contextKey = "authIdentity"

// authenticate resolves the Authorization header once per request and stores
// the identity for the handler, which passes it on to the service.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.resolver.Resolve(r.Header.Get("Authorization"))
		if err != nil {
			respondWithServiceError(w, err, "Failed to authenticate request")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(r *http.Request) (domain.AuthIdentity, bool) {
	identity, ok := r.Context().Value(identityKey).(domain.AuthIdentity)
	return identity, ok
}

// requireIdentity returns the authenticated caller, or writes 401 when the
// route was reached without authenticate.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.AuthIdentity, bool) {
	identity, ok := identityFrom(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "JWT 토큰이 필요합니다.")
	}
	return identity, ok
}

// adminOnly gates an operation on the ADMIN role and records every decision
// with the caller, the time and the requested URL. It must sit behind
// authenticate.
func (s *Server) adminOnly(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		err := auth.Authorize(identity, domain.RoleAdmin)
		s.audit.Record(audit.Entry{
			UserID:    identity.ID,
			Operation: operation,
			URL:       r.URL.RequestURI(),
			Allowed:   err == nil,
			At:        s.now(),
		})
		if err != nil {
			respondWithServiceError(w, err, "Failed to authorize request")
			return
		}
		next(w, r)
	}
}
