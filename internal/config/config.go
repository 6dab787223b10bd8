package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ListenAddr      string
	DatabasePath    string
	DisplayTimezone string
	Location        *time.Location
	WeekStart       time.Weekday
	HolidaysFile    string
	CalendarName    string
	CORSOrigin      string
	RateLimit       int
	ShutdownTimeout time.Duration

	TelegramToken string
	TelegramDebug bool

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading env variables: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":3000"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/leavely.db"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Asia/Shanghai"),
		HolidaysFile:    getEnv("HOLIDAYS_FILE", ""),
		CalendarName:    getEnv("CALENDAR_NAME", "Leavely - Team Leaves"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		RateLimit:       int(getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120)),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:   getEnvAsBool("TELEGRAM_DEBUG", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabasePath == "" {
		return nil, errors.New("could not get database path")
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", cfg.DisplayTimezone, err)
	}
	cfg.Location = loc

	switch strings.ToLower(getEnv("WEEK_START", "monday")) {
	case "sunday":
		cfg.WeekStart = time.Sunday
	case "monday", "":
		cfg.WeekStart = time.Monday
	default:
		return nil, fmt.Errorf("invalid WEEK_START, expected monday or sunday")
	}

	// Zero disables rate limiting.
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %d, expected 0 or more", cfg.RateLimit)
	}
	return cfg, nil
}

// TelegramEnabled reports whether the bot should be started.
func (c *Config) TelegramEnabled() bool {
	return c != nil && c.TelegramToken != ""
}

// ConfigureLogger applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}

	return defaultVal
}
