// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the planning API and the sample fetchers.
type Config struct {
	ListenAddr string // HTTP listen address, ":8080" unless FLOWPLAN_PORT overrides
	LogLevel   string // log level: debug, info, warn, error (default "info")
	Env        string // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Sampling bounds for file-source schema detection.
	SampleMaxBytes   int64 // bytes fetched per sample (default 1 MiB)
	SampleMaxRecords int   // records decoded per sample (default 100)

	// S3 fetcher fields are optional; nil when not configured.
	S3KeyID     *string
	S3Secret    *string
	S3Endpoint  *string
	S3Region    *string
	S3PathStyle bool

	// GCS and Azure fetcher credentials, optional.
	GCSCredentialsFile string
	AzureAccountName   string
	AzureAccountKey    string

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// HasS3Config returns true if the fields the s3:// fetcher needs are set.
func (c *Config) HasS3Config() bool {
	return c.S3KeyID != nil && c.S3Secret != nil && c.S3Region != nil
}

// HasAzureConfig returns true if the az:// fetcher's shared key pair is set.
func (c *Config) HasAzureConfig() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

// LoadFromEnv loads configuration from environment variables. Cloud
// credentials are optional; without them only local sampling is available.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:           os.Getenv("FLOWPLAN_LOG_LEVEL"),
		Env:                os.Getenv("FLOWPLAN_ENV"),
		GCSCredentialsFile: os.Getenv("FLOWPLAN_GCS_CREDENTIALS_FILE"),
		AzureAccountName:   os.Getenv("FLOWPLAN_AZURE_ACCOUNT_NAME"),
		AzureAccountKey:    os.Getenv("FLOWPLAN_AZURE_ACCOUNT_KEY"),
	}

	if v := os.Getenv("FLOWPLAN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("FLOWPLAN_PORT: invalid port %q", v)
		}
		cfg.ListenAddr = ":" + strconv.Itoa(port)
	}

	// Rate limiting
	if v := os.Getenv("FLOWPLAN_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("FLOWPLAN_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// Sampling bounds
	if v := os.Getenv("FLOWPLAN_SAMPLE_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.SampleMaxBytes = n
		}
	}
	if v := os.Getenv("FLOWPLAN_SAMPLE_MAX_RECORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleMaxRecords = n
		}
	}

	// S3 fields are optional, only set if present
	if v := os.Getenv("FLOWPLAN_S3_KEY_ID"); v != "" {
		cfg.S3KeyID = &v
	}
	if v := os.Getenv("FLOWPLAN_S3_SECRET"); v != "" {
		cfg.S3Secret = &v
	}
	if v := os.Getenv("FLOWPLAN_S3_ENDPOINT"); v != "" {
		cfg.S3Endpoint = &v
	}
	if v := os.Getenv("FLOWPLAN_S3_REGION"); v != "" {
		cfg.S3Region = &v
	}
	if strings.EqualFold(os.Getenv("FLOWPLAN_S3_PATH_STYLE"), "true") {
		cfg.S3PathStyle = true
	}

	// CORS
	if v := os.Getenv("FLOWPLAN_CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.SampleMaxBytes == 0 {
		cfg.SampleMaxBytes = 1 << 20
	}
	if cfg.SampleMaxRecords == 0 {
		cfg.SampleMaxRecords = 100
	}

	// Partial cloud credentials disable their fetcher; say so instead of
	// failing at the first s3:// or az:// path.
	if !cfg.HasS3Config() && (cfg.S3KeyID != nil || cfg.S3Secret != nil || cfg.S3Region != nil) {
		cfg.Warnings = append(cfg.Warnings,
			"S3 credentials incomplete (need FLOWPLAN_S3_KEY_ID, FLOWPLAN_S3_SECRET, FLOWPLAN_S3_REGION): s3:// sampling disabled")
	}
	if !cfg.HasAzureConfig() && (cfg.AzureAccountName != "" || cfg.AzureAccountKey != "") {
		cfg.Warnings = append(cfg.Warnings,
			"Azure credentials incomplete (need FLOWPLAN_AZURE_ACCOUNT_NAME and FLOWPLAN_AZURE_ACCOUNT_KEY): az:// sampling disabled")
	}

	return cfg, nil
}

// ValidateServer applies the checks that only matter when serving HTTP.
// Offline tools load the same config without them.
func (c *Config) ValidateServer() error {
	if c.IsProduction() {
		if len(c.CORSAllowedOrigins) == 1 && c.CORSAllowedOrigins[0] == "*" {
			return fmt.Errorf("CORS wildcard (*) is not allowed in production (set FLOWPLAN_CORS_ALLOWED_ORIGINS)")
		}
	}
	return nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = stripQuotes(value)
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
