package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"production/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	OutboxRelaySchedule      string
	OutboxBatchSize          int
	CalibrationCheckSchedule string
	CalibrationMaxAgeDays    int
}

// LoadConfig reads the environment, optionally seeded from envFile. A missing
// file is not an error; configuration may come from the environment alone.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}

	batchSize, batchErr := getenvInt("OUTBOX_BATCH_SIZE", 100)
	maxAge, maxAgeErr := getenvInt("CALIBRATION_MAX_AGE_DAYS", 30)
	if err := errors.Join(batchErr, maxAgeErr); err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPPort:                 getenvWithDefault("HTTP_PORT", "8080"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   getenvWithDefault("DB_PORT", "5432"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBSslMode:                getenvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:                 getenvWithDefault("LOG_LEVEL", "info"),
		OutboxRelaySchedule:      getenvWithDefault("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *"),
		OutboxBatchSize:          batchSize,
		CalibrationCheckSchedule: getenvWithDefault("CALIBRATION_CHECK_SCHEDULE", "0 0 * * * *"),
		CalibrationMaxAgeDays:    maxAge,
	}
	return cfg, cfg.Validate()
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errList []error
	for name, value := range map[string]string{
		"DB_HOST": c.DBHost,
		"DB_USER": c.DBUser,
		"DB_NAME": c.DBName,
	} {
		if value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(name))
		}
	}
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errList = append(errList, errs.NewValueIsInvalidError("HTTP_PORT"))
	}
	if c.OutboxBatchSize <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("OUTBOX_BATCH_SIZE", c.OutboxBatchSize, 1, "unbounded"))
	}
	if c.CalibrationMaxAgeDays <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError(
			"CALIBRATION_MAX_AGE_DAYS", c.CalibrationMaxAgeDays, 1, "unbounded"))
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.OutboxRelaySchedule); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("OUTBOX_RELAY_SCHEDULE", err))
	}
	if _, err := parser.Parse(c.CalibrationCheckSchedule); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("CALIBRATION_CHECK_SCHEDULE", err))
	}
	return errors.Join(errList...)
}

// DSN renders the libpq connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getenvWithDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return value, nil
}
