package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/domain"
	"github.com/rylessKechit/salesup/internal/usecases/inviting"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

// ListInvitations returns the manager's invitations, newest first
func ListInvitations(service inviting.Inviter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		invitations, err := service.List(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error listing invitations", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"invitations": invitations}); err != nil {
			logrus.Error(err)
		}
	}
}

// CreateInvitation invites a new agent to the manager's team
func CreateInvitation(service inviting.Inviter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		var input inviting.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		manager := &domain.User{
			ID:        userClaims.UserID,
			FirstName: userClaims.UserFirstName,
			LastName:  userClaims.UserLastName,
		}

		invitation, err := service.Create(manager, &input)
		if err != nil {
			handleInvitationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(invitation); err != nil {
			logrus.Error(err)
		}
	}
}

// CancelInvitation withdraws one of the manager's pending invitations
func CancelInvitation(service inviting.Inviter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		invitationID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if invitationID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Invitation ID is required", nil)
			return
		}

		if err := service.Cancel(userClaims.UserID, invitationID); err != nil {
			handleInvitationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"message": "invitation cancelled"}); err != nil {
			logrus.Error(err)
		}
	}
}

// ValidateInviteToken resolves a public invite link to its invitation.
// The response never includes the token itself.
func ValidateInviteToken(service inviting.Inviter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := httprouter.ParamsFromContext(r.Context()).ByName("token")
		if token == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Token is required", nil)
			return
		}

		invitation, err := service.ValidateToken(token)
		if err != nil {
			handleInvitationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"invitation": invitation}); err != nil {
			logrus.Error(err)
		}
	}
}

func handleInvitationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inviting.ErrMissingFields),
		errors.Is(err, inviting.ErrInvalidEmail):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, inviting.ErrAlreadyRegistered):
		apiErrors.WriteError(w, apiErrors.ErrUserAlreadyExists, "A user with this email already exists", nil)
	case errors.Is(err, inviting.ErrAlreadyInvited):
		apiErrors.WriteError(w, apiErrors.ErrInvitationDuplicate, "A pending invitation already exists for this email", nil)
	case errors.Is(err, inviting.ErrInvitationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvitationNotFound, "Invitation not found or expired", nil)
	case errors.Is(err, inviting.ErrInvitationExpired):
		apiErrors.WriteError(w, apiErrors.ErrInvitationExpired, "Invitation has expired", nil)
	case errors.Is(err, inviting.ErrNotOwner):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Invitation belongs to another manager", nil)
	case errors.Is(err, inviting.ErrNotPending):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Only pending invitations can be cancelled", nil)
	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error handling invitation", nil)
	}
}
