package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Name != "rag-gateway" {
		t.Fatalf("app.name = %q", cfg.App.Name)
	}
	if cfg.RateLimit.Limit != 100 || cfg.RateLimit.WindowSeconds != 60 {
		t.Fatalf("ratelimit defaults: %+v", cfg.RateLimit)
	}
	if cfg.RateLimit.Store != "memory" {
		t.Fatalf("ratelimit.store = %q", cfg.RateLimit.Store)
	}
	if cfg.Retrieval.ChatThreshold != 0.7 || cfg.Retrieval.ChatTopK != 5 {
		t.Fatalf("chat retrieval defaults: %+v", cfg.Retrieval)
	}
	if cfg.Retrieval.SearchThreshold != 0.5 || cfg.Retrieval.SearchLimit != 10 {
		t.Fatalf("search retrieval defaults: %+v", cfg.Retrieval)
	}
	if cfg.AI.Embedding.Dimensions != 1536 {
		t.Fatalf("embedding dimensions = %d", cfg.AI.Embedding.Dimensions)
	}
	if cfg.Retrieval.Backend != "postgres" {
		t.Fatalf("retrieval.backend = %q", cfg.Retrieval.Backend)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("RAG_GATEWAY_SERVER_PORT", "9999")
	defer os.Unsetenv("RAG_GATEWAY_SERVER_PORT")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("server.port = %d, want 9999", cfg.Server.Port)
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		DBName: "gateway", SSLMode: "disable",
	}
	want := "host=db port=5432 user=app password=pw dbname=gateway sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Fatalf("GetDSN() = %q", got)
	}
}
