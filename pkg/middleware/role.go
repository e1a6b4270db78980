package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
)

// RoleMiddleware restricts a route to the given roles
func RoleMiddleware(allowedRoles []domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := UserFromContext(r.Context())
			if claims == nil {
				logrus.Warning("access attempt without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if claims.UserRole == role {
					allowed = true
					break
				}
			}

			if !allowed {
				logrus.Warningf("access denied for user ID=%s, role=%s", claims.UserID, claims.UserRole)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You do not have permission to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ManagerOnly restricts a route to managers
func ManagerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleManager})
}

// AgentOnly restricts a route to agents
func AgentOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleAgent})
}

// AllRoles requires authentication but accepts any role
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.Role{domain.RoleAgent, domain.RoleManager})
}
