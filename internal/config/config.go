package config

import (
	"database/sql"
	"log"
	"os"

	"github.com/spf13/cast"
)

type Config struct {
	Port                 int
	DatabaseURL          string
	RedisAddr            string
	JWTSecret            string
	TokenExpiryHours     int
	GroqAPIKey           string
	GroqModel            string
	GroqBaseURL          string
	OracleRPS            float64
	CacheTTLHours        int
	ResultRetentionHours int
	JanitorSchedule      string
}

func Load() *Config {
	return &Config{
		Port:                 envInt("PORT", 8080),
		DatabaseURL:          env("DATABASE_URL", "postgres://skipvault:skipvault@db:5432/skipvault?sslmode=disable"),
		RedisAddr:            env("REDIS_ADDR", "localhost:6379"),
		JWTSecret:            env("JWT_SECRET", "change-me-in-production"),
		TokenExpiryHours:     envInt("TOKEN_EXPIRY_HOURS", 24),
		GroqAPIKey:           env("GROQ_API_KEY", ""),
		GroqModel:            env("GROQ_MODEL", ""),
		GroqBaseURL:          env("GROQ_BASE_URL", ""),
		OracleRPS:            envFloat("ORACLE_RPS", 1),
		CacheTTLHours:        envInt("CACHE_TTL_HOURS", 24),
		ResultRetentionHours: envInt("RESULT_RETENTION_HOURS", 720),
		JanitorSchedule:      env("JANITOR_SCHEDULE", "0 * * * *"),
	}
}

// MergeFromDB overlays runtime-editable settings stored in the database. A
// missing settings table is not an error; the env values simply stand.
func (c *Config) MergeFromDB(db *sql.DB) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		log.Printf("config: skipping DB merge: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		switch key {
		case "groq_model":
			c.GroqModel = value
		case "oracle_rps":
			if v, err := cast.ToFloat64E(value); err == nil && v > 0 {
				c.OracleRPS = v
			}
		case "cache_ttl_hours":
			if v, err := cast.ToIntE(value); err == nil && v > 0 {
				c.CacheTTLHours = v
			}
		case "result_retention_hours":
			if v, err := cast.ToIntE(value); err == nil && v > 0 {
				c.ResultRetentionHours = v
			}
		case "janitor_schedule":
			c.JanitorSchedule = value
		}
	}
}

// OracleEnabled reports whether the language-model classifier can be used.
func (c *Config) OracleEnabled() bool {
	return c.GroqAPIKey != ""
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := cast.ToFloat64E(v); err == nil {
			return f
		}
	}
	return fallback
}
