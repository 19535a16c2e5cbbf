package application_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarsden/mailledger/internal/application"
	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockCredentialCache struct {
	loaded  model.Credential
	loadErr error
	saved   []model.Credential
	saveErr error
}

func (m *mockCredentialCache) Load(_ context.Context) (model.Credential, error) {
	return m.loaded, m.loadErr
}

func (m *mockCredentialCache) Save(_ context.Context, cred model.Credential) error {
	m.saved = append(m.saved, cred)
	return m.saveErr
}

type mockExchanger struct {
	url         string
	exchanged   []string
	cred        model.Credential
	exchangeErr error
}

func (m *mockExchanger) AuthCodeURL() string {
	return m.url
}

func (m *mockExchanger) Exchange(_ context.Context, code string) (model.Credential, error) {
	m.exchanged = append(m.exchanged, code)
	if m.exchangeErr != nil {
		return model.Credential{}, m.exchangeErr
	}
	return m.cred, nil
}

type mockPrompter struct {
	promptedURLs []string
	code         string
	err          error
}

func (m *mockPrompter) Prompt(_ context.Context, authURL string) (string, error) {
	m.promptedURLs = append(m.promptedURLs, authURL)
	if m.err != nil {
		return "", m.err
	}
	return m.code, nil
}

func newAuthService(cache *mockCredentialCache, exchanger *mockExchanger, prompter *mockPrompter) *application.AuthService {
	return application.NewAuthService(cache, exchanger, prompter, slog.New(slog.DiscardHandler))
}

// --- Tests ---

func TestAuthorize_CachedCredentialSkipsPrompt(t *testing.T) {
	cache := &mockCredentialCache{loaded: model.Credential{AccessToken: "cached-token"}}
	exchanger := &mockExchanger{url: "https://auth.example"}
	prompter := &mockPrompter{code: "unused"}

	cred, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "cached-token", cred.AccessToken)
	assert.Empty(t, prompter.promptedURLs, "cached credential must not trigger the interactive grant")
	assert.Empty(t, exchanger.exchanged)
	assert.Empty(t, cache.saved)
}

func TestAuthorize_EmptyCacheRunsInteractiveGrant(t *testing.T) {
	cache := &mockCredentialCache{loadErr: driven.ErrNoCredential}
	exchanger := &mockExchanger{
		url:  "https://auth.example?scope=readonly",
		cred: model.Credential{AccessToken: "fresh-token", RefreshToken: "rt"},
	}
	prompter := &mockPrompter{code: "typed-code"}

	cred, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.AccessToken)

	// The operator saw the provider URL and their code went to the exchange.
	require.Len(t, prompter.promptedURLs, 1)
	assert.Equal(t, "https://auth.example?scope=readonly", prompter.promptedURLs[0])
	assert.Equal(t, []string{"typed-code"}, exchanger.exchanged)

	// The fresh credential was persisted.
	require.Len(t, cache.saved, 1)
	assert.Equal(t, "fresh-token", cache.saved[0].AccessToken)
}

func TestAuthorize_MalformedCachedCredentialFallsBack(t *testing.T) {
	// A cache that decodes to an empty credential is treated as a miss.
	cache := &mockCredentialCache{loaded: model.Credential{}}
	exchanger := &mockExchanger{cred: model.Credential{AccessToken: "fresh-token"}}
	prompter := &mockPrompter{code: "typed-code"}

	cred, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.AccessToken)
	assert.Len(t, prompter.promptedURLs, 1)
}

func TestAuthorize_CacheReadErrorFallsBack(t *testing.T) {
	cache := &mockCredentialCache{loadErr: errors.New("corrupt file")}
	exchanger := &mockExchanger{cred: model.Credential{AccessToken: "fresh-token"}}
	prompter := &mockPrompter{code: "typed-code"}

	cred, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.AccessToken)
}

func TestAuthorize_ExchangeFailurePropagates(t *testing.T) {
	cache := &mockCredentialCache{loadErr: driven.ErrNoCredential}
	exchangeErr := errors.New("invalid_grant")
	exchanger := &mockExchanger{exchangeErr: exchangeErr}
	prompter := &mockPrompter{code: "bad-code"}

	_, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, exchangeErr)
	assert.Empty(t, cache.saved, "failed exchange must not persist anything")
}

func TestAuthorize_PromptFailurePropagates(t *testing.T) {
	cache := &mockCredentialCache{loadErr: driven.ErrNoCredential}
	exchanger := &mockExchanger{}
	prompter := &mockPrompter{err: errors.New("stdin closed")}

	_, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	require.Error(t, err)
	assert.Empty(t, exchanger.exchanged)
}

func TestAuthorize_SaveFailureIsNonFatal(t *testing.T) {
	cache := &mockCredentialCache{
		loadErr: driven.ErrNoCredential,
		saveErr: errors.New("disk full"),
	}
	exchanger := &mockExchanger{cred: model.Credential{AccessToken: "fresh-token"}}
	prompter := &mockPrompter{code: "typed-code"}

	cred, err := newAuthService(cache, exchanger, prompter).Authorize(context.Background())

	// Authorization proceeds with the in-memory credential.
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.AccessToken)
}
