package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the zipcast binaries.
type Config struct {
	ZipsFile string
	// DBPath selects the SQLite index instead of the CSV when non-empty.
	DBPath string

	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int

	MaxPeriods           int
	WrapWidth            int
	SkipMalformedPeriods bool

	ListenAddr string
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named). A missing file is only a warning.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		ZipsFile:             getEnvOrDefault("ZIPS_FILE", "zips.csv"),
		DBPath:               os.Getenv("DB_PATH"),
		BaseURL:              getEnvOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		UserAgent:            getEnvOrDefault("NWS_USER_AGENT", "zipcast/1.0 (contact@wthr.lol)"),
		Timeout:              getEnvDuration("NWS_TIMEOUT", 10*time.Second),
		RateLimit:            getEnvFloat("NWS_RATE_LIMIT", 1),
		RateBurst:            getEnvInt("NWS_RATE_BURST", 5),
		MaxPeriods:           getEnvInt("FORECAST_PERIODS", 6),
		WrapWidth:            getEnvInt("WRAP_WIDTH", 42),
		SkipMalformedPeriods: getEnvBool("SKIP_MALFORMED_PERIODS", false),
		ListenAddr:           getEnvOrDefault("LISTEN_ADDR", ":8080"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return i
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		log.Printf("[WARN] invalid %s=%q, using %g", key, v, def)
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[WARN] invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
