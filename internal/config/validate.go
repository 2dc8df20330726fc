package config

import (
	"fmt"
	"strings"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch backend {
	case StoreBackendMemory:
		// no database required
	case StoreBackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when store.backend is %q", backend)
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q",
			StoreBackendMemory, StoreBackendPostgres, c.Store.Backend)
	}
	c.Store.Backend = backend

	if c.Ingest.UploadDelay < 0 || c.Ingest.ProcessingDelay < 0 {
		return fmt.Errorf("ingest delays must be non-negative")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if c.Cases.MaxCasesPerUser < -1 || c.Cases.MaxCasesPerUser == 0 {
		return fmt.Errorf("cases.max_cases_per_user must be positive or -1 for unlimited")
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be non-negative")
	}
	return nil
}
