package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. Every tunable that used to be a hard-coded constant (API keys,
// duration bounds, page counts, output filenames) lives here so tests and
// deployments can substitute their own values.
type Config struct {
	// Video finder (Pipeline A)
	YouTubeAPIKey      string
	GeminiAPIKey       string
	GeminiModel        string
	GoogleCloudAPIKey  string
	SearchMaxResults   int64
	MaxCandidates      int
	MinDurationSec     int
	MaxDurationSec     int
	PublishedAfterDays int
	VoiceAudioPath     string
	VoicePrimaryLang   string
	VoiceFallbackLang  string
	RequestTimeoutSec  int

	// Amazon scraper (Pipeline B)
	AmazonHost    string
	SearchTerm    string
	PagesToScrape int
	PageDelayMs   int
	MaxRetries    int
	OutputDir     string
	RawCSVName    string
	CleanCSVName  string
	InsightsName  string
	ChromeBin     string

	// Optional PostgreSQL sink for cleaned products
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		YouTubeAPIKey:      getEnv("YOUTUBE_API_KEY", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GoogleCloudAPIKey:  getEnv("GOOGLE_CLOUD_API_KEY", ""),
		SearchMaxResults:   int64(getEnvInt("SEARCH_MAX_RESULTS", 50)),
		MaxCandidates:      getEnvInt("MAX_CANDIDATES", 20),
		MinDurationSec:     getEnvInt("MIN_DURATION_SEC", 240),
		MaxDurationSec:     getEnvInt("MAX_DURATION_SEC", 1200),
		PublishedAfterDays: getEnvInt("PUBLISHED_AFTER_DAYS", 50),
		VoiceAudioPath:     getEnv("VOICE_AUDIO_PATH", "./query.wav"),
		VoicePrimaryLang:   getEnv("VOICE_PRIMARY_LANG", "hi-IN"),
		VoiceFallbackLang:  getEnv("VOICE_FALLBACK_LANG", "en-US"),
		RequestTimeoutSec:  getEnvInt("REQUEST_TIMEOUT_SEC", 30),

		AmazonHost:    getEnv("AMAZON_HOST", "https://www.amazon.in"),
		SearchTerm:    getEnv("SEARCH_TERM", "soft toys"),
		PagesToScrape: getEnvInt("PAGES_TO_SCRAPE", 3),
		PageDelayMs:   getEnvInt("PAGE_DELAY_MS", 2000),
		MaxRetries:    getEnvInt("MAX_RETRIES", 3),
		OutputDir:     getEnv("OUTPUT_DIR", "."),
		RawCSVName:    getEnv("RAW_CSV_NAME", "raw_products.csv"),
		CleanCSVName:  getEnv("CLEAN_CSV_NAME", "clean_products.csv"),
		InsightsName:  getEnv("INSIGHTS_NAME", "product_insights.txt"),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", ""),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "products_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// PostgresEnabled reports whether a PostgreSQL sink has been configured.
// The scraper runs fine without one; the DB is an extra sink for clean data.
func (c *Config) PostgresEnabled() bool {
	return c.PostgresHost != ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// OutputPath joins the configured output directory with a filename.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
