package model

import "time"

// Credential is the token material obtained from the mailbox provider's
// OAuth2 authorization-code exchange. It is the single process-wide cached
// credential, persisted between restarts by the credential cache adapter.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// HasToken reports whether the credential carries any token material at all.
// A cached file that decodes to an empty struct is treated as a cache miss.
func (c Credential) HasToken() bool {
	return c.AccessToken != "" || c.RefreshToken != ""
}
