// Package gmail implements the mailbox ports against the Gmail REST API.
package gmail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// gmailUser addresses the mailbox of the authorized account.
const gmailUser = "me"

// Compile-time interface satisfaction check.
var _ driven.MailboxClient = (*Client)(nil)

// Client implements the MailboxClient port using the Gmail REST API with the
// following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. oauth2 token source carrying the bootstrap credential
//  3. generated gmail/v1 service
type Client struct {
	svc *gmailapi.Service
}

// NewClient builds an authorized Gmail client from the OAuth configuration
// and the credential obtained by the authorization manager. The oauth2 token
// source refreshes the access token in-process from the refresh token when
// it expires; no rotation beyond that is modeled.
func NewClient(ctx context.Context, cfg *oauth2.Config, cred model.Credential) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	base := context.WithValue(ctx, oauth2.HTTPClient, cacheTransport.Client())
	httpClient := cfg.Client(base, tokenFromCredential(cred))

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client, baseURL string) (*Client, error) {
	svc, err := gmailapi.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// ListRecentMessageIDs returns up to max ids of the most recent mailbox
// messages, in the order the provider lists them. Only the first page is
// requested; there is no pagination beyond max.
func (c *Client) ListRecentMessageIDs(ctx context.Context, max int64) ([]string, error) {
	resp, err := c.svc.Users.Messages.List(gmailUser).MaxResults(max).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}

	return ids, nil
}

// GetMessageBody fetches one message in full and returns its snippet text,
// which is where the transactional notification emails carry their labeled
// fields.
func (c *Client) GetMessageBody(ctx context.Context, id string) (string, error) {
	msg, err := c.svc.Users.Messages.Get(gmailUser, id).Format("full").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get message %s: %w", id, err)
	}

	return msg.Snippet, nil
}
