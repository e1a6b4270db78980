package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rylessKechit/salesup/infrastructure/database/postgres"
	"github.com/rylessKechit/salesup/infrastructure/integrator/openai"
	"github.com/rylessKechit/salesup/infrastructure/mailer"
	"github.com/rylessKechit/salesup/infrastructure/repository"
	"github.com/rylessKechit/salesup/internal/api"
	"github.com/rylessKechit/salesup/internal/config"
	"github.com/rylessKechit/salesup/internal/scheduler"
	"github.com/rylessKechit/salesup/internal/usecases/authenticating"
	"github.com/rylessKechit/salesup/internal/usecases/coaching"
	"github.com/rylessKechit/salesup/internal/usecases/dashboarding"
	"github.com/rylessKechit/salesup/internal/usecases/inviting"
	"github.com/rylessKechit/salesup/internal/usecases/performing"
	"github.com/rylessKechit/salesup/internal/usecases/tracking"
	"github.com/rylessKechit/salesup/internal/usecases/training"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	entryRepo := repository.NewDailyEntryRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	invitationRepo := repository.NewInvitationRepository(pgConn)

	mailSender := mailer.NewSendGridMailer(cfg)
	conversationClient := openai.NewClient(cfg)
	if conversationClient == nil {
		logrus.Warn("OpenAI API key not configured, voice training runs in development mode")
	}

	authenticator := authenticating.NewService(userRepo, invitationRepo, mailSender, cfg)
	snapshotter := performing.NewService(entryRepo, snapshotRepo)
	tracker := tracking.NewService(entryRepo, snapshotter)
	coach := coaching.NewService(snapshotter, entryRepo)
	inviter := inviting.NewService(invitationRepo, userRepo, mailSender, cfg)
	dashboarder := dashboarding.NewService(userRepo, entryRepo, invitationRepo, snapshotter)

	sessionStore := training.NewSessionStore(cfg.Training.SessionTTL)
	sessionStore.StartEviction(ctx)
	trainer := training.NewService(conversationClient, sessionStore, cfg)

	snapshotRefreshService := scheduler.NewSnapshotRefreshService(userRepo, snapshotter, cfg)
	invitationExpiryService := scheduler.NewInvitationExpiryService(invitationRepo, cfg)

	if err := snapshotRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting snapshot refresh scheduler")
	} else {
		logrus.Info("snapshot refresh scheduler started")
	}

	if err := invitationExpiryService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting invitation expiry scheduler")
	} else {
		logrus.Info("invitation expiry scheduler started")
	}

	server, err := api.New(
		cfg,
		authenticator,
		tracker,
		snapshotter,
		coach,
		inviter,
		dashboarder,
		trainer,
		snapshotRefreshService,
		invitationExpiryService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("error pinging PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
