package driven

import "context"

// MailboxClient defines the driven port for reading the external mailbox.
type MailboxClient interface {
	// ListRecentMessageIDs returns up to max of the most recent message ids,
	// in the order the provider lists them. There is no pagination beyond max.
	ListRecentMessageIDs(ctx context.Context, max int64) ([]string, error)

	// GetMessageBody fetches the text body of one message.
	GetMessageBody(ctx context.Context, id string) (string, error)
}
