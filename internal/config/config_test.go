package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Model:    "nomic-embed-text",
		},
	}
}

func TestValidate_InvalidProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = "cohere"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unsupported embedding provider")
	}

	expected := `embedding.provider must be "openai" or "ollama", got "cohere"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_OpenAIRequiresAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = "openai"
	cfg.Embedding.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for openai provider without api key")
	}

	cfg.Embedding.APIKey = "test-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with api key set: %v", err)
	}
}

func TestValidate_MissingModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Ingest.Workers = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative ingest workers")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "paperdex" {
		t.Errorf("expected KeyPrefix='paperdex', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Embedding.Provider != "ollama" {
		t.Errorf("expected Provider='ollama', got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.TimeoutSec != 30 {
		t.Errorf("expected TimeoutSec=30, got %d", cfg.Embedding.TimeoutSec)
	}
	if cfg.Pagination.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Pagination.DefaultPageSize)
	}
	if cfg.Pagination.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Pagination.MaxPageSize)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:   DatabaseConfig{ReadinessTimeout: 15},
		Storage:    StorageConfig{KeyPrefix: "lab"},
		Embedding:  EmbeddingConfig{Provider: "openai", TimeoutSec: 60},
		Pagination: PaginationConfig{DefaultPageSize: 50, MaxPageSize: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "lab" {
		t.Errorf("expected KeyPrefix='lab', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected Provider='openai', got %q", cfg.Embedding.Provider)
	}
	if cfg.Pagination.DefaultPageSize != 50 {
		t.Errorf("expected DefaultPageSize=50, got %d", cfg.Pagination.DefaultPageSize)
	}
}
