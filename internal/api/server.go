package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/internal/api/handler"
	"github.com/rylessKechit/salesup/internal/api/handler/router"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/scheduler"
	"github.com/rylessKechit/salesup/internal/usecases/authenticating"
	"github.com/rylessKechit/salesup/internal/usecases/coaching"
	"github.com/rylessKechit/salesup/internal/usecases/dashboarding"
	"github.com/rylessKechit/salesup/internal/usecases/inviting"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
	"github.com/rylessKechit/salesup/internal/usecases/tracking"
	"github.com/rylessKechit/salesup/internal/usecases/training"
	"github.com/rylessKechit/salesup/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	authenticator authenticating.Authenticator,
	tracker tracking.Tracker,
	snapshotter performing.Snapshotter,
	coach coaching.Coach,
	inviter inviting.Inviter,
	dashboarder dashboarding.Dashboarder,
	trainer training.Trainer,
	snapshotRefreshService *scheduler.SnapshotRefreshService,
	invitationExpiryService *scheduler.InvitationExpiryService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		SnapshotRefreshService:  snapshotRefreshService,
		InvitationExpiryService: invitationExpiryService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Entries(tracker)...),
		router.WithRoutes(handler.Performance(snapshotter, coach)...),
		router.WithRoutes(handler.Analysis(coach)...),
		router.WithRoutes(handler.Invitations(inviter)...),
		router.WithRoutes(handler.Dashboard(dashboarder)...),
		router.WithRoutes(handler.Training(trainer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error while running server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("http server shut down")
	return nil
}
