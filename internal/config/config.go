// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string
	DBPath          string
	CredentialsPath string // OAuth client descriptor (credentials.json).
	TokenPath       string // Cached mailbox credential (token.json).
	FetchLimit      int64
	IngestEnabled   bool
}

// Load reads configuration from environment variables and returns a
// validated Config. All variables are optional with defaults:
// MAILLEDGER_LISTEN_ADDR (127.0.0.1:4000), MAILLEDGER_DB_PATH
// (mailledger.db), MAILLEDGER_CREDENTIALS_PATH (credentials.json),
// MAILLEDGER_TOKEN_PATH (token.json), MAILLEDGER_FETCH_LIMIT (10),
// MAILLEDGER_INGEST (true).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:4000"
	if v, ok := os.LookupEnv("MAILLEDGER_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "mailledger.db"
	if v, ok := os.LookupEnv("MAILLEDGER_DB_PATH"); ok {
		dbPath = v
	}

	credentialsPath := "credentials.json"
	if v, ok := os.LookupEnv("MAILLEDGER_CREDENTIALS_PATH"); ok {
		credentialsPath = v
	}

	tokenPath := "token.json"
	if v, ok := os.LookupEnv("MAILLEDGER_TOKEN_PATH"); ok {
		tokenPath = v
	}

	fetchLimit := int64(10)
	if v, ok := os.LookupEnv("MAILLEDGER_FETCH_LIMIT"); ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAILLEDGER_FETCH_LIMIT has invalid value %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("MAILLEDGER_FETCH_LIMIT must be positive, got %d", parsed)
		}
		fetchLimit = parsed
	}

	ingestEnabled := true
	if v, ok := os.LookupEnv("MAILLEDGER_INGEST"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MAILLEDGER_INGEST has invalid value %q: %w", v, err)
		}
		ingestEnabled = parsed
	}

	return &Config{
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		CredentialsPath: credentialsPath,
		TokenPath:       tokenPath,
		FetchLimit:      fetchLimit,
		IngestEnabled:   ingestEnabled,
	}, nil
}
