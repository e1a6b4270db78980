package handler

import (
	"net/http"

	"github.com/rylessKechit/salesup/internal/api/handler/router"
	"github.com/rylessKechit/salesup/internal/usecases/authenticating"
	"github.com/rylessKechit/salesup/internal/usecases/coaching"
	"github.com/rylessKechit/salesup/internal/usecases/dashboarding"
	"github.com/rylessKechit/salesup/internal/usecases/inviting"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
	"github.com/rylessKechit/salesup/internal/usecases/tracking"
	"github.com/rylessKechit/salesup/internal/usecases/training"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/signup",
			Method:  http.MethodPost,
			Handler: Signup(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Entries(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/entries",
			Method:      http.MethodGet,
			Handler:     ListEntries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AgentOnly()},
		},
		{
			Path:        "/v1/entries",
			Method:      http.MethodPost,
			Handler:     CreateEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AgentOnly()},
		},
		{
			Path:        "/v1/entries/:id",
			Method:      http.MethodPut,
			Handler:     UpdateEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AgentOnly()},
		},
	}
}

func Performance(snapshotter performing.Snapshotter, coach coaching.Coach) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/performance",
			Method:      http.MethodGet,
			Handler:     GetPerformance(snapshotter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/performance/recalculate",
			Method:      http.MethodPost,
			Handler:     RecalculatePerformance(snapshotter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/performance/weaknesses",
			Method:      http.MethodGet,
			Handler:     GetWeaknesses(coach),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analysis(service coaching.Coach) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analysis",
			Method:      http.MethodGet,
			Handler:     GetAnalysis(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analysis",
			Method:      http.MethodPost,
			Handler:     PostAnalysis(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Invitations(service inviting.Inviter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/invitations",
			Method:      http.MethodGet,
			Handler:     ListInvitations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
		{
			Path:        "/v1/invitations",
			Method:      http.MethodPost,
			Handler:     CreateInvitation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
		{
			Path:        "/v1/invitations/:id",
			Method:      http.MethodDelete,
			Handler:     CancelInvitation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
		{
			Path:    "/v1/invite/:token",
			Method:  http.MethodGet,
			Handler: ValidateInviteToken(service),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Training(service training.Trainer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/training/start",
			Method:      http.MethodPost,
			Handler:     StartTraining(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AgentOnly()},
		},
		{
			Path:        "/v1/training/respond",
			Method:      http.MethodPost,
			Handler:     RespondTraining(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AgentOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     CronJobStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
	}
}
