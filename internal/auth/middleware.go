package auth

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"
)

type contextKey struct{}

// AuthenticateMiddleware puts the session user into the request context.
// Without a valid session it redirects to LoginPath, or answers 401 when
// LoginPath is empty.
type AuthenticateMiddleware struct {
	Secret    []byte
	LoginPath string
}

func (m *AuthenticateMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := VerifyUser(r, m.Secret)
		if err != nil {
			logger.Debugf("Unauthenticated request to %s: %s", r.URL.Path, err)
			if m.LoginPath != "" {
				http.Redirect(w, r, m.LoginPath, http.StatusSeeOther)
				return
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func GetAuthenticatedUser(r *http.Request) (User, bool) {
	user, ok := r.Context().Value(contextKey{}).(User)
	return user, ok
}
