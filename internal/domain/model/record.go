package model

import "time"

// EmailRecord is a structured record extracted from one notification email.
// ID is empty on a candidate record that has not been persisted yet; the
// record store assigns it on insert and callers never mint their own.
type EmailRecord struct {
	ID         string
	Date       string
	Name       string
	Memo       string
	Value      string
	IngestedAt time.Time
}

// RecordPatch names the fields to replace on an existing record.
// Nil fields are left unchanged.
type RecordPatch struct {
	Date  *string
	Name  *string
	Memo  *string
	Value *string
}

// IsEmpty reports whether the patch names no fields at all.
func (p RecordPatch) IsEmpty() bool {
	return p.Date == nil && p.Name == nil && p.Memo == nil && p.Value == nil
}
