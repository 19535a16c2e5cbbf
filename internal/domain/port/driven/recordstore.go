// Package driven defines the driven port interfaces the application core
// depends on. Adapters under internal/adapter/driven implement them.
package driven

import (
	"context"
	"errors"

	"github.com/tmarsden/mailledger/internal/domain/model"
)

// ErrRecordNotFound is returned by RecordStore operations that target an id
// with no matching row.
var ErrRecordNotFound = errors.New("email record not found")

// RecordStore defines the driven port for email record persistence. IDs are
// opaque strings minted by the store on insert; callers never construct
// them. A malformed id is a store error like any other, not a distinct
// validation failure.
type RecordStore interface {
	// Insert persists a candidate record and returns it with the
	// store-assigned ID and ingestion timestamp.
	Insert(ctx context.Context, rec model.EmailRecord) (model.EmailRecord, error)

	// ListAll returns every stored record, most recently ingested first.
	// No filtering or pagination.
	ListAll(ctx context.Context) ([]model.EmailRecord, error)

	// GetByID returns the record with the given id.
	// Returns nil, nil if the record does not exist.
	GetByID(ctx context.Context, id string) (*model.EmailRecord, error)

	// Update replaces only the fields named in patch and returns the
	// post-update record. Returns ErrRecordNotFound if no row matches id.
	Update(ctx context.Context, id string, patch model.RecordPatch) (model.EmailRecord, error)

	// Delete removes the record with the given id. Returns ErrRecordNotFound
	// if no row matches, so a second delete of the same id fails rather than
	// succeeding silently.
	Delete(ctx context.Context, id string) error
}
