package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name  string `envconfig:"APP_NAME" default:"Money Manager"`
		Port  int    `envconfig:"PORT" default:"8080"`
		Owner string `envconfig:"OWNER" default:""`
		// TimeZone is the IANA zone used for day and month boundaries.
		TimeZone string `envconfig:"TIME_ZONE" default:"America/New_York"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"moneymanager"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	}

	Telegram struct {
		Token          string  `envconfig:"TELEGRAM_TOKEN"`
		AllowedChatIDs []int64 `envconfig:"TELEGRAM_ALLOWED_CHAT_IDS"`
		// APIEndpoint overrides the Bot API URL template, e.g. for a local server.
		APIEndpoint string `envconfig:"TELEGRAM_API_ENDPOINT"`
	}

	Schedule struct {
		// Spec uses six fields, seconds first. Empty disables the job.
		Spec   string `envconfig:"REPORT_SCHEDULE" default:""`
		ChatID int64  `envconfig:"REPORT_CHAT_ID"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location resolves App.TimeZone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.App.TimeZone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Schedule.Spec != "" && cfg.Schedule.ChatID == 0 {
		return nil, fmt.Errorf("REPORT_CHAT_ID is required when REPORT_SCHEDULE is set")
	}

	return &cfg, nil
}
