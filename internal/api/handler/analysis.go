package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/internal/usecases/coaching"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

type AnalysisRequest struct {
	FocusArea string `json:"focus_area"`
	Days      int    `json:"days"`
}

// GetAnalysis returns the full coaching analysis for the agent
func GetAnalysis(service coaching.Coach) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		analysis, err := service.Analyze(userClaims.UserID, coaching.AnalysisOptions{})
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"analysis": analysis}); err != nil {
			logrus.Error(err)
		}
	}
}

// PostAnalysis returns an analysis narrowed to a focus area or a
// custom entry window.
func PostAnalysis(service coaching.Coach) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		var req AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		analysis, err := service.Analyze(userClaims.UserID, coaching.AnalysisOptions{
			Days:      req.Days,
			FocusArea: domain.InsightCategory(req.FocusArea),
		})
		if err != nil {
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"analysis": analysis}); err != nil {
			logrus.Error(err)
		}
	}
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	if errors.Is(err, coaching.ErrNotEnoughData) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"analysis": nil,
			"message":  "Not enough data for analysis. Please add more daily entries.",
		}); err != nil {
			logrus.Error(err)
		}
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error generating analysis", nil)
}
