package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                  App                  `mapstructure:",squash"`
	Server               Server               `mapstructure:",squash"`
	Database             Database             `mapstructure:",squash"`
	Auth                 Auth                 `mapstructure:",squash"`
	OpenAI               OpenAI               `mapstructure:",squash"`
	SendGrid             SendGrid             `mapstructure:",squash"`
	Invitation           Invitation           `mapstructure:",squash"`
	Training             Training             `mapstructure:",squash"`
	SnapshotRefreshSync  SnapshotRefreshSync  `mapstructure:",squash"`
	InvitationExpirySync InvitationExpirySync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	BaseURL  string `mapstructure:"app_base_url"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type OpenAI struct {
	APIKey string `mapstructure:"openai_api_key"`
	Model  string `mapstructure:"openai_model"`
}

type SendGrid struct {
	APIKey    string `mapstructure:"sendgrid_api_key"`
	FromEmail string `mapstructure:"sendgrid_from_email"`
	FromName  string `mapstructure:"sendgrid_from_name"`
}

type Invitation struct {
	ExpiryDays int `mapstructure:"invitation_expiry_days"`
}

type Training struct {
	SessionTTL   time.Duration `mapstructure:"training_session_ttl"`
	MaxExchanges int           `mapstructure:"training_max_exchanges"`
}

type SnapshotRefreshSync struct {
	CronSchedule string `mapstructure:"snapshot_refresh_cron"`
	Enabled      bool   `mapstructure:"snapshot_refresh_enabled"`
}

type InvitationExpirySync struct {
	CronSchedule string `mapstructure:"invitation_expiry_cron"`
	Enabled      bool   `mapstructure:"invitation_expiry_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/salesup")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("OPENAI_API_KEY", "") // Empty disables the roleplay AI (dev mode)
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("SENDGRID_FROM_EMAIL", "noreply@salesup.app")
	viper.SetDefault("SENDGRID_FROM_NAME", "SalesUp")

	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("INVITATION_EXPIRY_DAYS", 7)

	viper.SetDefault("TRAINING_SESSION_TTL", "30m")
	viper.SetDefault("TRAINING_MAX_EXCHANGES", 10)

	// Sweep expired invitations every day at 5am
	viper.SetDefault("INVITATION_EXPIRY_CRON", "0 5 * * *")
	viper.SetDefault("INVITATION_EXPIRY_ENABLED", true)

	// Refresh all agent snapshots every day at 3am
	viper.SetDefault("SNAPSHOT_REFRESH_CRON", "0 3 * * *")
	viper.SetDefault("SNAPSHOT_REFRESH_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile loads the .env file with godotenv, trying a few locations
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not determine the working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Loaded .env from:", location)
			return
		}
	}

	logrus.Warn("No .env file found in the known locations")
}
