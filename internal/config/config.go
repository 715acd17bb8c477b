package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Slug uniqueness disciplines. The source data model keeps slugs unique per
// (user, slug); SlugScopeGlobal is kept available for deployments that promise
// globally unique public URLs.
const (
	SlugScopeUser   = "user"
	SlugScopeGlobal = "global"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Profiles
	FreeProfileLimit int
	ProProfileLimit  int
	SlugScope        string

	// Public pages & analytics
	DefaultThemeTemplate string
	ViewDedupWindow      time.Duration

	// Sessions
	SessionExpiry time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "biostack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		FreeProfileLimit: parseInt(getEnv("FREE_PROFILE_LIMIT", "3"), 3),
		ProProfileLimit:  parseInt(getEnv("PRO_PROFILE_LIMIT", "10"), 10),
		SlugScope:        parseSlugScope(getEnv("SLUG_SCOPE", SlugScopeUser)),

		DefaultThemeTemplate: getEnv("DEFAULT_THEME_TEMPLATE", "themes/default"),
		ViewDedupWindow:      parseDuration(getEnv("VIEW_DEDUP_WINDOW", "30m"), 30*time.Minute),

		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "24h"), 24*time.Hour),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// ProfileLimit is the plan-derived profile quota policy.
func (c *Config) ProfileLimit(isPro bool) int {
	if isPro {
		return c.ProProfileLimit
	}
	return c.FreeProfileLimit
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func parseSlugScope(s string) string {
	if s == SlugScopeGlobal {
		return SlugScopeGlobal
	}
	return SlugScopeUser
}
