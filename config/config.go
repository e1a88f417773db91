/*
Package config loads the application configuration.

PURPOSE:
  Layers configuration sources (low -> high precedence):
    1. built-in defaults
    2. optional YAML file named by CHEER_CONFIG
    3. environment variables with prefix CHEER_ (a .env file is loaded
       first when present)

  Configuration errors are fatal at startup only; nothing re-reads config
  at runtime.

KEYS (env var / default):
  CHEER_DB_PATH             office_cheer.db
  CHEER_LISTEN              :8080
  CHEER_DAILY_CHECK_TIME    08:00
  CHEER_LOOKFORWARD_DAYS    3
  CHEER_CHECK_ON_STARTUP    false
  CHEER_LIVE                false
  CHEER_LOG_LEVEL           info
  CHEER_IMAGE_DIR           generated_images
  CHEER_EMAIL_SENDER        noreply@example.com
  CHEER_EMAIL_REPLY_TO      support@example.com
  CHEER_SUBJECT_BIRTHDAY    Happy Birthday, {name}!
  CHEER_SUBJECT_ANNIVERSARY Congratulations on your {years} Year Anniversary, {name}!
  CHEER_SMTP_ADDR           localhost:25
  CHEER_SMTP_USERNAME       (empty)
  CHEER_SMTP_PASSWORD       (empty)
  CHEER_RENDER_ENDPOINT     (empty; required in live mode for cards)
  CHEER_RENDER_MODEL        (empty)
  CHEER_GREETING_ENDPOINT   (empty; template greetings when unset)
  CHEER_GREETING_MODEL      (empty)
*/
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	DBPath         string `koanf:"db_path"`
	Listen         string `koanf:"listen"`
	DailyCheckTime string `koanf:"daily_check_time"` // HH:MM
	LookaheadDays  int    `koanf:"lookforward_days"`
	CheckOnStartup bool   `koanf:"check_on_startup"`
	Live           bool   `koanf:"live"`
	LogLevel       string `koanf:"log_level"`
	ImageDir       string `koanf:"image_dir"`

	EmailSender        string `koanf:"email_sender"`
	EmailReplyTo       string `koanf:"email_reply_to"`
	SubjectBirthday    string `koanf:"subject_birthday"`
	SubjectAnniversary string `koanf:"subject_anniversary"`
	SMTPAddr           string `koanf:"smtp_addr"`
	SMTPUsername       string `koanf:"smtp_username"`
	SMTPPassword       string `koanf:"smtp_password"`

	RenderEndpoint   string `koanf:"render_endpoint"`
	RenderModel      string `koanf:"render_model"`
	GreetingEndpoint string `koanf:"greeting_endpoint"`
	GreetingModel    string `koanf:"greeting_model"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		DBPath:             "office_cheer.db",
		Listen:             ":8080",
		DailyCheckTime:     "08:00",
		LookaheadDays:      3,
		CheckOnStartup:     false,
		Live:               false,
		LogLevel:           "info",
		ImageDir:           "generated_images",
		EmailSender:        "noreply@example.com",
		EmailReplyTo:       "support@example.com",
		SubjectBirthday:    "Happy Birthday, {name}!",
		SubjectAnniversary: "Congratulations on your {years} Year Anniversary, {name}!",
		SMTPAddr:           "localhost:25",
	}
}

// Load builds the configuration from defaults, optional file, and env.
func Load() (*Config, error) {
	// .env is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv("CHEER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// CHEER_DAILY_CHECK_TIME -> daily_check_time
	envProvider := env.Provider("CHEER_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CHEER_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values. Failures are fatal at startup.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.LookaheadDays < 0 {
		return fmt.Errorf("lookforward_days must not be negative, got %d", c.LookaheadDays)
	}
	if _, _, err := parseClock(c.DailyCheckTime); err != nil {
		return err
	}
	return nil
}

// CronSpec converts the daily check time-of-day into a cron expression,
// e.g. "08:00" -> "0 8 * * *".
func (c *Config) CronSpec() string {
	hour, minute, err := parseClock(c.DailyCheckTime)
	if err != nil {
		// Validate runs before any caller gets here.
		hour, minute = 8, 0
	}
	return fmt.Sprintf("%d %d * * *", minute, hour)
}

func parseClock(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("daily_check_time %q: expected HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("daily_check_time %q: out of range", s)
	}
	return hour, minute, nil
}
