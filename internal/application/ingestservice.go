package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmarsden/mailledger/internal/domain/parse"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// IngestService orchestrates one ingestion run: list recent mailbox
// messages, fetch each body, parse it into a candidate record, and persist
// the records that pass admission.
type IngestService struct {
	mailbox    driven.MailboxClient
	records    driven.RecordStore
	fetchLimit int64
	logger     *slog.Logger
}

// NewIngestService creates an IngestService. fetchLimit bounds how many of
// the most recent messages one run considers.
func NewIngestService(
	mailbox driven.MailboxClient,
	records driven.RecordStore,
	fetchLimit int64,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		mailbox:    mailbox,
		records:    records,
		fetchLimit: fetchLimit,
		logger:     logger,
	}
}

// Run executes a single ingestion pass. Messages are processed strictly in
// provider order; cancellation is cooperative, checked between messages. A
// fetch or insert failure aborts the remaining iteration and is returned,
// with records inserted before the failure left committed. Runs do not
// deduplicate against earlier runs, so re-ingesting the same mailbox state
// inserts duplicate records.
func (s *IngestService) Run(ctx context.Context) error {
	start := time.Now()

	ids, err := s.mailbox.ListRecentMessageIDs(ctx, s.fetchLimit)
	if err != nil {
		return fmt.Errorf("list recent messages: %w", err)
	}

	var inserted, rejected int
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := s.mailbox.GetMessageBody(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch message %s: %w", id, err)
		}

		rec := parse.Snippet(body)
		if !parse.Admissible(rec) {
			rejected++
			continue
		}

		if _, err := s.records.Insert(ctx, rec); err != nil {
			return fmt.Errorf("insert record from message %s: %w", id, err)
		}
		inserted++
	}

	s.logger.Info("ingest run complete",
		"messages", len(ids),
		"inserted", inserted,
		"rejected", rejected,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return nil
}
