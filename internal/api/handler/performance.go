package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/usecases/coaching"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

// GetPerformance returns the agent's current performance snapshot
func GetPerformance(service performing.Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		snapshot, err := service.Latest(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error loading performance snapshot", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if snapshot == nil {
			if err := json.NewEncoder(w).Encode(map[string]any{
				"performance": nil,
				"message":     "No performance data available yet",
			}); err != nil {
				logrus.Error(err)
			}
			return
		}

		if err := json.NewEncoder(w).Encode(map[string]any{"performance": snapshot}); err != nil {
			logrus.Error(err)
		}
	}
}

// RecalculatePerformance forces a snapshot refresh for the agent
func RecalculatePerformance(service performing.Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		snapshot, err := service.Refresh(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error recalculating performance", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"performance": snapshot}); err != nil {
			logrus.Error(err)
		}
	}
}

// GetWeaknesses returns the agent's detected improvement areas
func GetWeaknesses(service coaching.Coach) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		report, err := service.Weaknesses(userClaims.UserID)
		if err != nil {
			if errors.Is(err, coaching.ErrNotEnoughData) {
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(map[string]any{
					"weaknesses": []string{},
					"message":    "No performance data available yet",
				}); err != nil {
					logrus.Error(err)
				}
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error detecting weaknesses", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}
