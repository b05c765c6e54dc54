package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/auth"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/user"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/handler/http/response"
)

// SuperAdminOnly admits superadmin callers only.
func SuperAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !user.Role(role).IsSuperAdmin() {
			response.HandleError(w, user.ErrSuperAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
