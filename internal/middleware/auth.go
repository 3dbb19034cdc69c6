package middleware

import (
	"net/http"

	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/go-chi/jwtauth/v5"
)

// SupervisorOnly пропускает только старших ролей.
func SupervisorOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.RespondWithError(w, http.StatusUnauthorized, "Invalid claims")
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.RespondWithError(w, http.StatusForbidden, "Role not found")
				return
			}

			switch role {
			case "supervisor", "superadmin":
				// Всё ок, разрешено
			default:
				response.RespondWithError(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
