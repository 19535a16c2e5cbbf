// Package tokenfile persists the cached mailbox credential as a JSON file
// at a fixed, configured path.
package tokenfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialCache = (*Cache)(nil)

// Cache reads and writes the single process-wide cached credential.
type Cache struct {
	path string
}

// New creates a Cache persisting to the given file path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Load reads the cached credential. A missing file is reported as
// driven.ErrNoCredential; an unreadable or undecodable file is a real error
// that the auth service downgrades to an interactive grant.
func (c *Cache) Load(_ context.Context) (model.Credential, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Credential{}, driven.ErrNoCredential
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("read credential file %s: %w", c.path, err)
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return model.Credential{}, fmt.Errorf("decode credential file %s: %w", c.path, err)
	}

	return cred, nil
}

// Save writes the credential with owner-only permissions.
func (c *Cache) Save(_ context.Context, cred model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential file %s: %w", c.path, err)
	}

	return nil
}
