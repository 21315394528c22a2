package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/server/auth"
	"github.com/mbenali/campushub/internal/server/authz"
	"github.com/mbenali/campushub/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

func principalFromContext(ctx context.Context) *authz.Principal {
	p, _ := ctx.Value(principalKey).(*authz.Principal)
	return p
}

// authenticate requires a valid bearer token and stores the verified
// principal in the request context.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerSchemePrefix) {
			s.writeServiceError(w, r, common.ErrUnauthenticated)
			return
		}

		tokenString := strings.TrimPrefix(header, common.BearerSchemePrefix)

		userID, role, err := auth.VerifyToken(tokenString, s.jwtSecret)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		p := &authz.Principal{UserID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

// requireRoles guards a route with a required-role set. When the route has a
// {clubId} path segment its value scopes president access to the owned club.
func (s *HTTPServer) requireRoles(required ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			p := principalFromContext(r.Context())
			res := authz.ResourceContext{ClubID: r.PathValue("clubId")}

			if err := s.engine.Authorize(r.Context(), required, p, res); err != nil {
				s.writeServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
