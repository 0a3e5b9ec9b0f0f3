package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "REDIS_ADDR", "ORACLE_RPS", "CACHE_TTL_HOURS", "GROQ_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.OracleRPS != 1 {
		t.Errorf("OracleRPS = %v, want 1", cfg.OracleRPS)
	}
	if cfg.CacheTTLHours != 24 {
		t.Errorf("CacheTTLHours = %d, want 24", cfg.CacheTTLHours)
	}
	if cfg.OracleEnabled() {
		t.Error("oracle enabled without an API key")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ORACLE_RPS", "0.5")
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.OracleRPS != 0.5 {
		t.Errorf("OracleRPS = %v, want 0.5", cfg.OracleRPS)
	}
	if !cfg.OracleEnabled() {
		t.Error("oracle disabled despite API key")
	}
}

func TestLoadInvalidNumbers(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("ORACLE_RPS", "fast")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Port)
	}
	if cfg.OracleRPS != 1 {
		t.Errorf("OracleRPS = %v, want fallback 1", cfg.OracleRPS)
	}
}
