package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	ShutdownTimeout                time.Duration
	CORSAllowedOrigins             []string
	StorageDriver                  string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	AdminToken                     string
	InternalJobToken               string
	ScoringWorkers                 int
	ScoringJobEnabled              bool
	ScoringJobInterval             time.Duration
	StatsFeedEnabled               bool
	StatsFeedBaseURL               string
	StatsFeedToken                 string
	StatsFeedTimeout               time.Duration
	StatsFeedMaxRetries            int
	StatsFeedConcurrency           int
	StatsFeedCircuitEnabled        bool
	StatsFeedCircuitFailureCount   int
	StatsFeedCircuitOpenTimeout    time.Duration
	StatsFeedCircuitHalfOpenMaxReq int
	MetricsEnabled                 bool
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch storageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageMemory, StoragePostgres)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	adminToken := strings.TrimSpace(getEnv("ADMIN_TOKEN", ""))
	if appEnv != EnvDev && adminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required when APP_ENV=%s", appEnv)
	}
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))

	scoringWorkers, err := getEnvAsInt("SCORING_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WORKERS: %w", err)
	}
	if scoringWorkers < 1 {
		return Config{}, fmt.Errorf("SCORING_WORKERS must be >= 1")
	}
	scoringJobEnabled, err := strconv.ParseBool(getEnv("SCORING_JOB_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_JOB_ENABLED: %w", err)
	}
	scoringJobInterval, err := parsePositiveDuration("SCORING_JOB_INTERVAL", "5m")
	if err != nil {
		return Config{}, err
	}

	statsFeedEnabled, err := strconv.ParseBool(getEnv("STATSFEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_ENABLED: %w", err)
	}
	statsFeedBaseURL := strings.TrimSpace(getEnv("STATSFEED_BASE_URL", ""))
	statsFeedToken := strings.TrimSpace(getEnv("STATSFEED_TOKEN", ""))
	if statsFeedEnabled && statsFeedBaseURL == "" {
		return Config{}, fmt.Errorf("STATSFEED_BASE_URL is required when STATSFEED_ENABLED=true")
	}
	statsFeedTimeout, err := parsePositiveDuration("STATSFEED_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	statsFeedMaxRetries, err := getEnvAsInt("STATSFEED_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_MAX_RETRIES: %w", err)
	}
	if statsFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATSFEED_MAX_RETRIES must be >= 0")
	}
	statsFeedConcurrency, err := getEnvAsInt("STATSFEED_CONCURRENCY", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_CONCURRENCY: %w", err)
	}
	if statsFeedConcurrency < 1 {
		return Config{}, fmt.Errorf("STATSFEED_CONCURRENCY must be >= 1")
	}
	statsFeedCircuitEnabled, err := strconv.ParseBool(getEnv("STATSFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_CIRCUIT_ENABLED: %w", err)
	}
	statsFeedCircuitFailureCount, err := getEnvAsInt("STATSFEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if statsFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STATSFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	statsFeedCircuitOpenTimeout, err := parsePositiveDuration("STATSFEED_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	statsFeedCircuitHalfOpenMaxReq, err := getEnvAsInt("STATSFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if statsFeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STATSFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := parsePositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := parsePositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := parsePositiveDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := parsePositiveDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "fantasy-admin-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		ShutdownTimeout:                shutdownTimeout,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StorageDriver:                  storageDriver,
		DBURL:                          dbURL,
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		AdminToken:                     adminToken,
		InternalJobToken:               internalJobToken,
		ScoringWorkers:                 scoringWorkers,
		ScoringJobEnabled:              scoringJobEnabled,
		ScoringJobInterval:             scoringJobInterval,
		StatsFeedEnabled:               statsFeedEnabled,
		StatsFeedBaseURL:               statsFeedBaseURL,
		StatsFeedToken:                 statsFeedToken,
		StatsFeedTimeout:               statsFeedTimeout,
		StatsFeedMaxRetries:            statsFeedMaxRetries,
		StatsFeedConcurrency:           statsFeedConcurrency,
		StatsFeedCircuitEnabled:        statsFeedCircuitEnabled,
		StatsFeedCircuitFailureCount:   statsFeedCircuitFailureCount,
		StatsFeedCircuitOpenTimeout:    statsFeedCircuitOpenTimeout,
		StatsFeedCircuitHalfOpenMaxReq: statsFeedCircuitHalfOpenMaxReq,
		MetricsEnabled:                 metricsEnabled,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
