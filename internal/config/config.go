package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the refresher.
type Config struct {
	Port            string
	AdminToken      string
	Provider        string
	DiningData      DiningDataConfig
	Cache           CacheConfig
	RefreshSchedule string
	UpstreamMinGap  Duration
	FavoritesPath   string
	NotifySinkURL   string
	LogLevel        string
	LogFormat       string
	Metrics         MetricsConfig
}

// DiningDataConfig controls how the menu API is reached.
type DiningDataConfig struct {
	BaseURL string
	Days    int
}

// CacheConfig selects the persistent tier and expiration window.
type CacheConfig struct {
	Backend       string
	Expiration    Duration
	DataDir       string
	RedisAddr     string
	RedisPassword string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		AdminToken: envOrDefault(envAdminToken, ""),
		Provider:   strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		DiningData: DiningDataConfig{
			BaseURL: envOrDefault(envBaseURL, defaultBaseURL),
			Days:    intEnvOrDefault(envMenuDays, defaultMenuDays),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(envOrDefault(envCacheBackend, defaultBackend)),
			Expiration:    durationEnvOrDefault(envCacheExpiry, defaultCacheExpiry),
			DataDir:       envOrDefault(envDataDir, defaultDataDir),
			RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
			RedisPassword: envOrDefault(envRedisPassword, ""),
		},
		RefreshSchedule: envOrDefault(envRefreshCron, defaultRefreshCron),
		UpstreamMinGap:  durationEnvOrDefault(envUpstreamMinGap, defaultUpstreamMinGap),
		FavoritesPath:   envOrDefault(envFavoritesPath, defaultFavoritesPath),
		NotifySinkURL:   envOrDefault(envNotifySinkURL, ""),
		LogLevel:        envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:       envOrDefault(envLogFormat, defaultLogFormat),
		Metrics:         loadMetrics(),
	}
}

// LoadDotEnv merges variables from the given .env files into the process environment.
// Variables that are already set win; missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
