package parse

import "github.com/tmarsden/mailledger/internal/domain/model"

// Admissible reports whether a candidate record is complete enough to
// persist: Date, Name and Memo must all be non-empty. Value never gates
// admission. A rejected record is silently dropped, not an error.
func Admissible(rec model.EmailRecord) bool {
	return rec.Date != "" && rec.Name != "" && rec.Memo != ""
}
