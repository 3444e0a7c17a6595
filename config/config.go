package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// BrowserConfig controls the shared Playwright session. The profile
// directory holds cookies and local storage so platform logins survive
// restarts; only the browser manager touches it.
type BrowserConfig struct {
	ProfileDir          string
	Headless            bool
	NavigationTimeoutMs float64
	SettleMs            float64
	MaxSearchPages      int
	MaxFillSteps        int
}

type S3Config struct {
	Bucket string
	Region string
}

type AppConfig struct {
	Port             string
	Environment      string
	JWTSecret        string
	FrontendURL      string
	UploadDir        string
	GeneratedDir     string
	MaxSearchResults int
	Database         DatabaseConfig
	Browser          BrowserConfig
	S3               S3Config
}

func GetDatabaseConfig() DatabaseConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	password := getEnv("DB_PASSWORD", "")

	if password == "" {
		fmt.Println("Warning: DB_PASSWORD environment variable is not set.")
	}

	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: password,
		DBName:   getEnv("DB_NAME", "jobbuddy"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func GetBrowserConfig() BrowserConfig {
	baseDir := getEnv("DATA_DIR", "./data")
	navTimeout, _ := strconv.Atoi(getEnv("BROWSER_NAV_TIMEOUT_MS", "30000"))
	settle, _ := strconv.Atoi(getEnv("BROWSER_SETTLE_MS", "2000"))
	maxPages, _ := strconv.Atoi(getEnv("SEARCH_MAX_PAGES", "5"))
	maxSteps, _ := strconv.Atoi(getEnv("FILL_MAX_STEPS", "10"))

	return BrowserConfig{
		ProfileDir:          getEnv("BROWSER_PROFILE_DIR", filepath.Join(baseDir, "browser_profiles")),
		Headless:            getEnvBool("PLAYWRIGHT_HEADLESS", false),
		NavigationTimeoutMs: float64(navTimeout),
		SettleMs:            float64(settle),
		MaxSearchPages:      maxPages,
		MaxFillSteps:        maxSteps,
	}
}

func GetAppConfig() AppConfig {
	baseDir := getEnv("DATA_DIR", "./data")
	maxResults, _ := strconv.Atoi(getEnv("MAX_SEARCH_RESULTS", "25"))

	cfg := AppConfig{
		Port:             getEnv("PORT", "8081"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		UploadDir:        getEnv("UPLOAD_DIR", filepath.Join(baseDir, "uploads")),
		GeneratedDir:     getEnv("GENERATED_DIR", filepath.Join(baseDir, "generated")),
		MaxSearchResults: maxResults,
		Database:         GetDatabaseConfig(),
		Browser:          GetBrowserConfig(),
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
	}

	for _, dir := range []string{cfg.UploadDir, cfg.GeneratedDir, cfg.Browser.ProfileDir} {
		os.MkdirAll(dir, 0o755)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
