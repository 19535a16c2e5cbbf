package gmail

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// LoadOAuthConfig reads the Google OAuth client descriptor (the
// credentials.json downloaded from the Google Cloud console) and returns the
// authorization-code flow configuration scoped to read-only mailbox access.
// The descriptor is read once at startup.
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read oauth client descriptor %s: %w", path, err)
	}

	cfg, err := google.ConfigFromJSON(data, gmailapi.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client descriptor %s: %w", path, err)
	}

	return cfg, nil
}

// Compile-time interface satisfaction check.
var _ driven.CodeExchanger = (*Exchanger)(nil)

// Exchanger implements the CodeExchanger port against Google's OAuth2
// endpoints.
type Exchanger struct {
	cfg *oauth2.Config
}

// NewExchanger creates an Exchanger for the given OAuth configuration.
func NewExchanger(cfg *oauth2.Config) *Exchanger {
	return &Exchanger{cfg: cfg}
}

// AuthCodeURL builds the authorization URL requesting offline access so the
// provider issues a refresh token alongside the access token.
func (e *Exchanger) AuthCodeURL() string {
	return e.cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades the operator-supplied authorization code for a credential.
func (e *Exchanger) Exchange(ctx context.Context, code string) (model.Credential, error) {
	tok, err := e.cfg.Exchange(ctx, code)
	if err != nil {
		return model.Credential{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	return credentialFromToken(tok), nil
}

func credentialFromToken(tok *oauth2.Token) model.Credential {
	return model.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
}

func tokenFromCredential(cred model.Credential) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
	}
}
