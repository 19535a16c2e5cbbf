package driven

import (
	"context"
	"errors"

	"github.com/tmarsden/mailledger/internal/domain/model"
)

// ErrNoCredential signals an empty credential cache. It is the expected
// first-run state, not a failure; the auth service falls back to the
// interactive grant when it sees it.
var ErrNoCredential = errors.New("no cached credential")

// CredentialCache persists the process-wide cached mailbox credential.
type CredentialCache interface {
	// Load reads the cached credential. Returns ErrNoCredential when the
	// cache is empty.
	Load(ctx context.Context) (model.Credential, error)

	// Save writes the credential back for reuse across restarts.
	Save(ctx context.Context, cred model.Credential) error
}

// CodeExchanger is the provider side of the one-shot OAuth2
// authorization-code bootstrap.
type CodeExchanger interface {
	// AuthCodeURL builds the provider authorization URL requesting offline,
	// read-only mailbox access.
	AuthCodeURL() string

	// Exchange trades an operator-supplied authorization code for a
	// credential.
	Exchange(ctx context.Context, code string) (model.Credential, error)
}

// CodePrompter delivers the authorization URL to the operator and blocks
// awaiting the out-of-band authorization code. Any code-delivery channel can
// implement it; the default adapter reads from the terminal.
type CodePrompter interface {
	Prompt(ctx context.Context, authURL string) (string, error)
}
