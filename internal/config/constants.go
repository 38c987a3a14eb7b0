package config

import "time"

const (
	envPort           = "PORT"
	envAdminToken     = "ADMIN_TOKEN"
	envBaseURL        = "DININGDATA_BASE_URL"
	envMenuDays       = "MENU_DAYS"
	envCacheExpiry    = "CACHE_EXPIRATION"
	envCacheBackend   = "CACHE_BACKEND"
	envDataDir        = "DATA_DIR"
	envRedisAddr      = "REDIS_ADDR"
	envRedisPassword  = "REDIS_PASSWORD"
	envRefreshCron    = "REFRESH_SCHEDULE"
	envUpstreamMinGap = "UPSTREAM_MIN_INTERVAL"
	envFavoritesPath  = "FAVORITES_PATH"
	envNotifySinkURL  = "NOTIFY_SINK_URL"
	envProvider       = "PROVIDER"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "8080"
	defaultBaseURL     = "https://diningdata.cedarville.edu/api"
	defaultMenuDays    = 5
	defaultCacheExpiry = 12 * time.Hour
	defaultBackend     = BackendFile
	defaultDataDir     = "data"
	defaultRedisAddr   = "localhost:6379"
	defaultRefreshCron = "@every 15m"
	// Keeps pull-to-refresh bursts from hammering the dining API.
	defaultUpstreamMinGap = 10 * time.Second
	defaultFavoritesPath  = "data/favorites.yaml"
	defaultProvider       = ProviderDiningData
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "wasup-chucks"
)

// Cache backends selectable through CACHE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Menu providers selectable through PROVIDER.
const (
	ProviderDiningData = "diningdata"
	ProviderFixture    = "fixture"
)
