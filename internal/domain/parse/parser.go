// Package parse extracts structured records from notification email text.
package parse

import (
	"regexp"
	"strings"

	"github.com/tmarsden/mailledger/internal/domain/model"
)

// Field rules match a labeled segment up to the next newline or comma.
// Each rule is independent: a missing label leaves only its own field empty
// and never prevents the other rules from matching.
var (
	dateRule  = regexp.MustCompile(`Date:\s*([^\n,]+)`)
	nameRule  = regexp.MustCompile(`Name:\s*([^\n,]+)`)
	memoRule  = regexp.MustCompile(`Memo:\s*([^\n,]+)`)
	valueRule = regexp.MustCompile(`Value:\s*([^\n,]+)`)
)

// Snippet extracts a candidate EmailRecord from one message snippet. Absent
// fields yield empty strings, except Value which defaults to "0". Extracted
// values are trimmed of surrounding whitespace but otherwise unvalidated;
// completeness is the admission filter's concern, so Snippet has no failure
// mode.
func Snippet(text string) model.EmailRecord {
	return model.EmailRecord{
		Date:  extract(dateRule, text, ""),
		Name:  extract(nameRule, text, ""),
		Memo:  extract(memoRule, text, ""),
		Value: extract(valueRule, text, "0"),
	}
}

func extract(rule *regexp.Regexp, text, fallback string) string {
	m := rule.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}
	return strings.TrimSpace(m[1])
}
