package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/internal/usecases/dashboarding"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

// GetDashboard serves the landing page payload for the caller's role
func GetDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		var payload any
		var err error

		if userClaims.UserRole == domain.RoleManager {
			payload, err = service.ManagerDashboard(userClaims.UserID)
		} else {
			payload, err = service.AgentDashboard(userClaims.UserID)
		}

		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error building dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logrus.Error(err)
		}
	}
}
