package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tmarsden/mailledger/internal/domain/model"
	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RecordStore = (*RecordRepo)(nil)

// RecordRepo is the SQLite implementation of the RecordStore port interface.
// Record ids exposed at the port boundary are the decimal form of the
// table's rowid.
type RecordRepo struct {
	db *DB
}

// NewRecordRepo creates a new RecordRepo backed by the given DB.
func NewRecordRepo(db *DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// Insert persists a candidate record and returns it with the store-assigned
// id. An empty Value falls back to "0" and a zero IngestedAt is stamped with
// the current time.
func (r *RecordRepo) Insert(ctx context.Context, rec model.EmailRecord) (model.EmailRecord, error) {
	if rec.Value == "" {
		rec.Value = "0"
	}
	if rec.IngestedAt.IsZero() {
		rec.IngestedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO email_records (date, name, memo, value, ingested_at)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := r.db.Writer.ExecContext(ctx, query,
		rec.Date, rec.Name, rec.Memo, rec.Value,
		rec.IngestedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return model.EmailRecord{}, fmt.Errorf("insert email record: %w", err)
	}

	rowID, err := res.LastInsertId()
	if err != nil {
		return model.EmailRecord{}, fmt.Errorf("read inserted record id: %w", err)
	}

	rec.ID = strconv.FormatInt(rowID, 10)
	return rec, nil
}

// ListAll returns every stored record, most recently ingested first.
func (r *RecordRepo) ListAll(ctx context.Context) ([]model.EmailRecord, error) {
	const query = `
		SELECT id, date, name, memo, value, ingested_at
		FROM email_records
		ORDER BY ingested_at DESC, id DESC
	`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query email records: %w", err)
	}
	defer rows.Close()

	var recs []model.EmailRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email record: %w", err)
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email records: %w", err)
	}

	return recs, nil
}

// GetByID retrieves a single record by its opaque id.
// Returns nil, nil if the record does not exist.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*model.EmailRecord, error) {
	rowID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT id, date, name, memo, value, ingested_at
		FROM email_records
		WHERE id = ?
	`

	rec, err := scanRecord(r.db.Reader.QueryRowContext(ctx, query, rowID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get email record %s: %w", id, err)
	}

	return rec, nil
}

// Update replaces only the fields named in patch and returns the post-update
// record. Returns driven.ErrRecordNotFound if no row matches id.
func (r *RecordRepo) Update(ctx context.Context, id string, patch model.RecordPatch) (model.EmailRecord, error) {
	rowID, err := parseID(id)
	if err != nil {
		return model.EmailRecord{}, err
	}

	if patch.IsEmpty() {
		// Nothing to replace; behave like a read of the current row.
		rec, err := r.GetByID(ctx, id)
		if err != nil {
			return model.EmailRecord{}, err
		}
		if rec == nil {
			return model.EmailRecord{}, driven.ErrRecordNotFound
		}
		return *rec, nil
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Memo != nil {
		sets = append(sets, "memo = ?")
		args = append(args, *patch.Memo)
	}
	if patch.Value != nil {
		sets = append(sets, "value = ?")
		args = append(args, *patch.Value)
	}
	args = append(args, rowID)

	query := "UPDATE email_records SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	res, err := r.db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		return model.EmailRecord{}, fmt.Errorf("update email record %s: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return model.EmailRecord{}, fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return model.EmailRecord{}, driven.ErrRecordNotFound
	}

	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return model.EmailRecord{}, err
	}
	if rec == nil {
		return model.EmailRecord{}, driven.ErrRecordNotFound
	}

	return *rec, nil
}

// Delete removes a record by id. Returns driven.ErrRecordNotFound if the
// record does not exist, so deleting twice fails the second time.
func (r *RecordRepo) Delete(ctx context.Context, id string) error {
	rowID, err := parseID(id)
	if err != nil {
		return err
	}

	const query = `DELETE FROM email_records WHERE id = ?`

	res, err := r.db.Writer.ExecContext(ctx, query, rowID)
	if err != nil {
		return fmt.Errorf("delete email record %s: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return driven.ErrRecordNotFound
	}

	return nil
}

// parseID converts an opaque record id back to the rowid the schema uses.
// Ids only ever originate from this store, so a malformed one is reported as
// a plain store error rather than a distinct validation failure.
func parseID(id string) (int64, error) {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed record id %q: %w", id, err)
	}
	return rowID, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.EmailRecord, error) {
	var rec model.EmailRecord
	var rowID int64
	var ingestedAt string

	err := s.Scan(&rowID, &rec.Date, &rec.Name, &rec.Memo, &rec.Value, &ingestedAt)
	if err != nil {
		return nil, err
	}

	rec.ID = strconv.FormatInt(rowID, 10)

	rec.IngestedAt, err = parseTime(ingestedAt)
	if err != nil {
		return nil, fmt.Errorf("parse ingested_at: %w", err)
	}

	return &rec, nil
}

// parseTime handles the timestamp formats SQLite may hand back depending on
// how the value was written.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
