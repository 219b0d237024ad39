package middleware

import (
	"net/http"
	"strings"

	"tilboard/internal/auth"
	"tilboard/internal/httputil"
)

// publicPaths are reachable without a token
var publicPaths = []string{
	"/health",
	"/api/auth/",
}

// Auth middleware verifies the Bearer token and puts the user id on the
// request context. Requests to public paths pass through untouched.
func Auth(tokens auth.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range publicPaths {
				if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
