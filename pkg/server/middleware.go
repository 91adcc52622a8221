package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/m-mizutani/spoor/pkg/model"
	"github.com/m-mizutani/spoor/pkg/utils/logging"
)

type userKey struct{}

// authenticate resolves the bearer token against the account store and
// attaches the user to the request context. Missing, malformed and
// unknown tokens all end in the same forbidden response.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}

		user, err := s.repo.GetUserByToken(r.Context(), token)
		if err != nil {
			logging.From(r.Context()).Warn("rejected request token", "error", err)
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user. Only valid below the
// authenticate middleware.
func userFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey{}).(*model.User)
	return user
}
