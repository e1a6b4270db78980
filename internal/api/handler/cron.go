package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/scheduler"
	"github.com/rylessKechit/salesup/pkg/apiErrors"
)

const (
	CronJobTypeSnapshotRefresh  = "snapshot-refresh"
	CronJobTypeInvitationExpiry = "invitation-expiry"
	CronJobTypeAll              = "all"
)

// CronJobServices bundles the background jobs for the manual trigger
// and status endpoints.
type CronJobServices struct {
	SnapshotRefreshService  *scheduler.SnapshotRefreshService
	InvitationExpiryService *scheduler.InvitationExpiryService
}

// RunCronJob triggers one background job by hand. Managers only; the
// jobs themselves guard against concurrent runs.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cron job type is required", nil)
			return
		}

		switch cronType {
		case CronJobTypeSnapshotRefresh:
			if services.SnapshotRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Snapshot refresh service is not available", nil)
				return
			}
			go func() {
				if err := services.SnapshotRefreshService.RefreshAllSnapshots(); err != nil {
					logrus.WithError(err).Error("manual snapshot refresh failed")
				}
			}()

		case CronJobTypeInvitationExpiry:
			if services.InvitationExpiryService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Invitation expiry service is not available", nil)
				return
			}
			go func() {
				if err := services.InvitationExpiryService.ExpireInvitations(); err != nil {
					logrus.WithError(err).Error("manual invitation expiry failed")
				}
			}()

		case CronJobTypeAll:
			if services.SnapshotRefreshService != nil {
				go func() {
					if err := services.SnapshotRefreshService.RefreshAllSnapshots(); err != nil {
						logrus.WithError(err).Error("manual snapshot refresh failed")
					}
				}()
			}
			if services.InvitationExpiryService != nil {
				go func() {
					if err := services.InvitationExpiryService.ExpireInvitations(); err != nil {
						logrus.WithError(err).Error("manual invitation expiry failed")
					}
				}()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Unknown cron job type", map[string]any{
				"valid_types": []string{CronJobTypeSnapshotRefresh, CronJobTypeInvitationExpiry, CronJobTypeAll},
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"message": "cron job triggered",
			"type":    cronType,
		}); err != nil {
			logrus.Error(err)
		}
	}
}

// CronJobStatus reports the state of every background job
func CronJobStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := map[string]scheduler.SyncStatus{}

		if services.SnapshotRefreshService != nil {
			statuses[CronJobTypeSnapshotRefresh] = services.SnapshotRefreshService.Status()
		}
		if services.InvitationExpiryService != nil {
			statuses[CronJobTypeInvitationExpiry] = services.InvitationExpiryService.Status()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statuses); err != nil {
			logrus.Error(err)
		}
	}
}
