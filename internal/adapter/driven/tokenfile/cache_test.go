package tokenfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

func TestCache_Load_MissingFile(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "token.json"))

	_, err := cache.Load(context.Background())
	assert.ErrorIs(t, err, driven.ErrNoCredential)
}

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	cache := New(path)
	ctx := context.Background()

	cred := model.Credential{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, cache.Save(ctx, cred))

	got, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cred, got)
}

func TestCache_Save_OwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	cache := New(path)

	require.NoError(t, cache.Save(context.Background(), model.Credential{AccessToken: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCache_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	cache := New(path)
	_, err := cache.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrNoCredential)
}
