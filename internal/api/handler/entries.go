package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/usecases/tracking"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
	"github.com/rylessKechit/salesup/pkg/middleware"
	"github.com/rylessKechit/salesup/pkg/utils"
)

// ListEntries returns the agent's daily entries, optionally filtered
// by a start_date/end_date range or capped with limit.
func ListEntries(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		filters := &tracking.ListFilters{}
		query := r.URL.Query()

		if startDate := query.Get("start_date"); startDate != "" {
			parsed := utils.ParseDate(startDate)
			if parsed == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date must use the YYYY-MM-DD format", nil)
				return
			}
			filters.StartDate = parsed
		}

		if endDate := query.Get("end_date"); endDate != "" {
			parsed := utils.ParseDate(endDate)
			if parsed == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date must use the YYYY-MM-DD format", nil)
				return
			}
			filters.EndDate = parsed
		}

		if limit := query.Get("limit"); limit != "" {
			parsed, err := strconv.Atoi(limit)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit must be a positive integer", nil)
				return
			}
			filters.Limit = parsed
		}

		entries, err := service.List(userClaims.UserID, filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error listing entries", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"entries": entries}); err != nil {
			logrus.Error(err)
		}
	}
}

func CreateEntry(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		var input tracking.EntryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		entry, err := service.Create(userClaims.UserID, &input)
		if err != nil {
			handleEntryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logrus.Error(err)
		}
	}
}

func UpdateEntry(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims := middleware.UserFromContext(r.Context())
		if userClaims == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
			return
		}

		entryID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if entryID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Entry ID is required", nil)
			return
		}

		var input tracking.EntryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request format", nil)
			return
		}

		entry, err := service.Update(userClaims.UserID, entryID, &input)
		if err != nil {
			handleEntryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logrus.Error(err)
		}
	}
}

func handleEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracking.ErrDuplicateEntry):
		apiErrors.WriteError(w, apiErrors.ErrDuplicateEntry, "An entry already exists for this date", nil)
	case errors.Is(err, tracking.ErrEntryNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Entry not found", nil)
	case errors.Is(err, tracking.ErrEntryDenied):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Entry belongs to another agent", nil)
	case errors.Is(err, tracking.ErrDateRequired),
		errors.Is(err, tracking.ErrInvalidDate),
		errors.Is(err, tracking.ErrNegativeValues),
		errors.Is(err, tracking.ErrUpgradesExceedContracts),
		errors.Is(err, tracking.ErrInvalidPackageTier):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error saving entry", nil)
	}
}
