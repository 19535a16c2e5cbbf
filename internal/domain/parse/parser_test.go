package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmarsden/mailledger/internal/domain/model"
)

func TestSnippet_AllFields(t *testing.T) {
	body := "Payment received. Date: 2024-01-01, Name: Alice, Memo: rent, Value: 100. Thank you."

	rec := Snippet(body)

	assert.Equal(t, "2024-01-01", rec.Date)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, "rent", rec.Memo)
	assert.Equal(t, "100", rec.Value)
}

func TestSnippet_FieldOrderIndependent(t *testing.T) {
	body := "Value: 55\nMemo: utilities\nName: Bob\nDate: 2024-02-15"

	rec := Snippet(body)

	assert.Equal(t, "2024-02-15", rec.Date)
	assert.Equal(t, "Bob", rec.Name)
	assert.Equal(t, "utilities", rec.Memo)
	assert.Equal(t, "55", rec.Value)
}

func TestSnippet_MissingValueDefaultsToZero(t *testing.T) {
	body := "Date: 2024-01-01, Name: Alice, Memo: rent"

	rec := Snippet(body)

	assert.Equal(t, "0", rec.Value)
}

func TestSnippet_MissingFieldsAreIndependent(t *testing.T) {
	// A missing Name: label must not prevent extraction of Memo:.
	body := "Date: 2024-01-01, Memo: rent"

	rec := Snippet(body)

	assert.Equal(t, "2024-01-01", rec.Date)
	assert.Empty(t, rec.Name)
	assert.Equal(t, "rent", rec.Memo)
}

func TestSnippet_NoLabelsAtAll(t *testing.T) {
	rec := Snippet("Your monthly statement is ready.")

	assert.Equal(t, model.EmailRecord{Value: "0"}, rec)
}

func TestSnippet_TrimsWhitespace(t *testing.T) {
	body := "Date:   2024-01-01 \nName:\tAlice  \nMemo:  rent payment \nValue:  100 "

	rec := Snippet(body)

	assert.Equal(t, "2024-01-01", rec.Date)
	assert.Equal(t, "Alice", rec.Name)
	assert.Equal(t, "rent payment", rec.Memo)
	assert.Equal(t, "100", rec.Value)
}

func TestSnippet_StopsAtCommaAndNewline(t *testing.T) {
	body := "Memo: first part, second part\nName: Alice\nextra"

	rec := Snippet(body)

	assert.Equal(t, "first part", rec.Memo)
	assert.Equal(t, "Alice", rec.Name)
}

func TestSnippet_Pure(t *testing.T) {
	body := "Date: 2024-01-01, Name: Alice, Memo: rent, Value: 100"

	first := Snippet(body)
	second := Snippet(body)

	assert.Equal(t, first, second)
}

func TestAdmissible(t *testing.T) {
	tests := []struct {
		name string
		rec  model.EmailRecord
		want bool
	}{
		{
			name: "complete record",
			rec:  model.EmailRecord{Date: "2024-01-01", Name: "Alice", Memo: "rent", Value: "100"},
			want: true,
		},
		{
			name: "empty value still admissible",
			rec:  model.EmailRecord{Date: "2024-01-01", Name: "Alice", Memo: "rent"},
			want: true,
		},
		{
			name: "default value still admissible",
			rec:  model.EmailRecord{Date: "2024-01-01", Name: "Alice", Memo: "rent", Value: "0"},
			want: true,
		},
		{
			name: "missing date",
			rec:  model.EmailRecord{Name: "Alice", Memo: "rent", Value: "100"},
			want: false,
		},
		{
			name: "missing name",
			rec:  model.EmailRecord{Date: "2024-01-01", Memo: "rent", Value: "100"},
			want: false,
		},
		{
			name: "missing memo",
			rec:  model.EmailRecord{Date: "2024-01-01", Name: "Alice", Value: "100"},
			want: false,
		},
		{
			name: "empty record",
			rec:  model.EmailRecord{Value: "0"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admissible(tt.rec))
		})
	}
}
