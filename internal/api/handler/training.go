package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/usecases/training"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

type TrainingRespondRequest struct {
	SessionID    string `json:"session_id"`
	AgentMessage string `json:"agent_message"`
}

// StartTraining opens a new roleplay session for the agent
func StartTraining(service training.Trainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		result, err := service.Start(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error starting training session", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

// RespondTraining feeds the agent's line into a roleplay session
func RespondTraining(service training.Trainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		var req TrainingRespondRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		if req.SessionID == "" || req.AgentMessage == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "session_id and agent_message are required", nil)
			return
		}

		result, err := service.Respond(r.Context(), userClaims.UserID, req.SessionID, req.AgentMessage)
		if err != nil {
			handleTrainingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}

func handleTrainingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, training.ErrSessionNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSessionNotFound, "Session not found", nil)
	case errors.Is(err, training.ErrSessionDenied):
		apiErrors.WriteError(w, apiErrors.ErrSessionDenied, "Session belongs to another user", nil)
	case errors.Is(err, training.ErrMissingMessage):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Agent message is required", nil)
	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error in training session", nil)
	}
}
