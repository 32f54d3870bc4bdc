package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const gatewayURL = "https://gateway.thegraph.com/api"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SubgraphURL            string
	GraphAPIKey            string
	SubgraphID             string
	SubgraphRetryMax       int
	SubgraphRetryBaseDelay time.Duration
	SubgraphTimeout        time.Duration
	HTTPPort               string
	LogLevel               string
	LogFormat              string
	OTLPEndpoint           string
	GoogleCredentialsJSON  string
	ExportSpreadsheetID    string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return Config{
		SubgraphURL:            envOrDefault("SUBGRAPH_URL", ""),
		GraphAPIKey:            envOrDefault("GRAPH_API_KEY", ""),
		SubgraphID:             envOrDefault("SUBGRAPH_ID", "3fy93eAT56UJsRCEht8iFhfi6wjHWXtZ9dnnbQmvFopF"),
		SubgraphRetryMax:       envOrDefaultInt("SUBGRAPH_RETRY_MAX", 3),
		SubgraphRetryBaseDelay: envOrDefaultDuration("SUBGRAPH_RETRY_BASE_DELAY", 500*time.Millisecond),
		SubgraphTimeout:        envOrDefaultDuration("SUBGRAPH_TIMEOUT", 30*time.Second),
		HTTPPort:               envOrDefault("HTTP_PORT", "5001"),
		LogLevel:               envOrDefault("LOG_LEVEL", "info"),
		LogFormat:              envOrDefault("LOG_FORMAT", "text"),
		OTLPEndpoint:           envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		GoogleCredentialsJSON:  envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
		ExportSpreadsheetID:    envOrDefault("EXPORT_SPREADSHEET_ID", ""),
	}
}

// Endpoint returns the subgraph query URL. SUBGRAPH_URL wins; otherwise the URL is built
// from the gateway, GRAPH_API_KEY and SUBGRAPH_ID. Returns "" when neither is configured.
func (c Config) Endpoint() string {
	if c.SubgraphURL != "" {
		return c.SubgraphURL
	}
	if c.GraphAPIKey == "" {
		slog.Warn("required env var not set", "key", "GRAPH_API_KEY")
		return ""
	}
	return gatewayURL + "/" + c.GraphAPIKey + "/subgraphs/id/" + c.SubgraphID
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		slog.Warn("invalid log level, using info", "value", c.LogLevel)
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
