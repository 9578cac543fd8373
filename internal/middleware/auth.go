package middleware

import (
	"net/http"
	"strings"

	"scentra-be/internal/user"
	"scentra-be/internal/utils"
)

// AuthMiddleware extracts the bearer token, if any, and attaches the
// authenticated user to the request context. Requests without a valid
// token pass through anonymously.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests unless the authenticated user has the
// admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		if utils.GetUserRoleFromContext(r.Context()) != string(user.RoleAdmin) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
