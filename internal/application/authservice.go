// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// AuthService owns the mailbox credential lifecycle. It reads the cached
// credential at startup, or walks the interactive authorization-code grant
// when the cache is empty, persisting the exchanged credential best-effort.
// It is constructed once in the composition root and passed by reference;
// there is no module-level credential state.
type AuthService struct {
	cache     driven.CredentialCache
	exchanger driven.CodeExchanger
	prompter  driven.CodePrompter
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	cache driven.CredentialCache,
	exchanger driven.CodeExchanger,
	prompter driven.CodePrompter,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		cache:     cache,
		exchanger: exchanger,
		prompter:  prompter,
		logger:    logger,
	}
}

// Authorize produces a ready-to-use mailbox credential.
//
// A well-formed cached credential short-circuits the flow. Otherwise the
// operator is shown the provider authorization URL and Authorize blocks
// until they type the code obtained out-of-band; the code is then exchanged
// with the provider. An exchange failure is fatal to the caller's run. A
// cache write failure is logged and swallowed: authorization still succeeds
// with the in-memory credential.
func (s *AuthService) Authorize(ctx context.Context) (model.Credential, error) {
	cred, err := s.cache.Load(ctx)
	if err == nil && cred.HasToken() {
		s.logger.Info("using cached mailbox credential")
		return cred, nil
	}
	if err != nil && !errors.Is(err, driven.ErrNoCredential) {
		s.logger.Warn("credential cache unreadable, falling back to interactive grant", "error", err)
	}

	code, err := s.prompter.Prompt(ctx, s.exchanger.AuthCodeURL())
	if err != nil {
		return model.Credential{}, fmt.Errorf("read authorization code: %w", err)
	}

	cred, err = s.exchanger.Exchange(ctx, code)
	if err != nil {
		return model.Credential{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := s.cache.Save(ctx, cred); err != nil {
		s.logger.Warn("credential cache write failed, continuing with in-memory credential", "error", err)
	} else {
		s.logger.Info("mailbox credential cached")
	}

	return cred, nil
}
