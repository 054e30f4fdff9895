package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"termini-stats/internal/source"
	"termini-stats/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Source      source.Config
	Calendar    stats.SchoolCalendar
	ListenAddr  string
	DataPath    string
	CacheDir    string
	ReportsDir  string
	RefreshSpec string
}

// Load loads the configuration from .env files and environment variables,
// plus the optional YAML school calendar.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	cacheDir := filepath.Join(dataPath, "cache")
	reportsDir := filepath.Join(dataPath, "reports")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
	}
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", reportsDir).Msg("Failed to create reports directory")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "30"))

	cfg := &AppConfig{
		Source: source.Config{
			BaseURL:      getEnv("API_BASE_URL", ""),
			Token:        getEnv("API_TOKEN", ""),
			Timeout:      time.Duration(timeoutSecs) * time.Second,
			SnapshotPath: filepath.Join(cacheDir, "snapshot.json"),
			CacheTTL:     15 * time.Minute,
		},
		Calendar:    loadCalendar(getEnv("CALENDAR_FILE", "")),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DataPath:    dataPath,
		CacheDir:    cacheDir,
		ReportsDir:  reportsDir,
		RefreshSpec: getEnv("REFRESH_CRON", "*/15 * * * *"),
	}

	return cfg, nil
}

// loadCalendar reads the YAML school calendar, falling back to the built-in
// defaults when the file is missing or malformed.
func loadCalendar(path string) stats.SchoolCalendar {
	if path == "" {
		return stats.DefaultCalendar()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Calendar file not readable, using defaults")
		return stats.DefaultCalendar()
	}

	var cal stats.SchoolCalendar
	if err := yaml.Unmarshal(data, &cal); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Calendar file not parseable, using defaults")
		return stats.DefaultCalendar()
	}

	if cal.YearStart.Month == 0 {
		cal.YearStart = stats.DefaultCalendar().YearStart
	}
	if len(cal.Holidays) == 0 {
		cal.Holidays = stats.DefaultCalendar().Holidays
	}

	log.Debug().Str("path", path).Int("holidays", len(cal.Holidays)).Msg("Loaded school calendar")
	return cal
}

// Validate checks that the configuration is usable for live fetching.
func (c *AppConfig) Validate() error {
	if c.Source.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
