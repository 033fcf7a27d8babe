package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"revreview/adapters/sqlsource"
	"revreview/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration.
// It is built once at startup and not modified afterwards.
type Config struct {
	Database DatabaseConfig
	Report   ReportConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   sqlsource.Dialect
	URL      string
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// ReportConfig holds output and styling settings
type ReportConfig struct {
	BaseName  string
	SheetName string
	FontName  string
	FontSize  float64
	OutputDir string
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing default .env is not an error; a missing explicit
// path is.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to read .env")
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to read env file %s", path))
	}
	return nil
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}

	reportConfig, err := loadReportConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report configuration")
	}

	config := &Config{
		Database: *dbConfig,
		Report:   *reportConfig,
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// DSN returns DATABASE_URL when set, otherwise one composed from the parts
func (c DatabaseConfig) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	dsn, err := sqlsource.BuildDSN(c.Driver, sqlsource.ConnParams{
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Name,
		User:     c.User,
		Password: c.Password,
		SSLMode:  c.SSLMode,
	})
	if err != nil {
		return "", errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return dsn, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	driver, err := sqlsource.ParseDialect(getEnvOrDefault("DB_DRIVER", string(sqlsource.DialectSQLServer)))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	return &DatabaseConfig{
		Driver:   driver,
		URL:      os.Getenv("DATABASE_URL"),
		User:     getEnvOrDefault("DB_USER", ""),
		Password: getEnvOrDefault("DB_PASS", ""),
		Name:     getEnvOrDefault("DB_NAME", "revsol"),
		Host:     getEnvOrDefault("DB_HOST", ""),
		Port:     getEnvIntOrDefault("DB_PORT", 0),
		SSLMode:  getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func loadReportConfig() (*ReportConfig, error) {
	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		dir, err := executableDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to locate executable")
		}
		outputDir = filepath.Join(dir, "OUTBOX")
	}

	return &ReportConfig{
		BaseName:  getEnvOrDefault("REPORT_BASE_NAME", "RevSolReview"),
		SheetName: getEnvOrDefault("REPORT_SHEET_NAME", "Review Report"),
		FontName:  getEnvOrDefault("REPORT_FONT_NAME", "Calibri"),
		FontSize:  getEnvFloatOrDefault("REPORT_FONT_SIZE", 10),
		OutputDir: outputDir,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return errors.ConfigInvalid("DATABASE_URL or DB_HOST is required")
	}
	if strings.TrimSpace(config.Report.BaseName) == "" {
		return errors.ConfigInvalid("report base name is required")
	}
	if strings.ContainsAny(config.Report.BaseName, `/\`) {
		return errors.ConfigInvalid("report base name must not contain path separators")
	}
	if config.Report.FontSize <= 0 {
		return errors.ConfigInvalid("report font size must be positive")
	}
	return nil
}

var executablePath = os.Executable

func executableDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
