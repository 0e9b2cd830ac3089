package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davetashner/bigo/internal/model"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONBatch is the document written for a batch run.
type JSONBatch struct {
	Items     []model.BatchItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// JSONComparison is the document written for a comparison.
type JSONComparison struct {
	LabelA string           `json:"label_a,omitempty"`
	LabelB string           `json:"label_b,omitempty"`
	Result model.Comparison `json:"result"`
}

// JSONFormatter writes results as JSON documents.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool
}

// Compile-time interface checks.
var (
	_ BatchFormatter   = (*JSONFormatter)(nil)
	_ ListingFormatter = (*JSONFormatter)(nil)
)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes r with every field present.
func (f *JSONFormatter) Format(r *model.Result, w io.Writer) error {
	return f.write(w, r)
}

// FormatComparison writes the verdict unchanged under "result", with the
// input labels alongside.
func (f *JSONFormatter) FormatComparison(c model.Comparison, labelA, labelB string, w io.Writer) error {
	if c == nil {
		c = model.Comparison{}
	}
	return f.write(w, JSONComparison{LabelA: labelA, LabelB: labelB, Result: c})
}

// FormatBatch writes every item in input order with success counts.
func (f *JSONFormatter) FormatBatch(items []model.BatchItem, w io.Writer) error {
	if items == nil {
		items = []model.BatchItem{}
	}
	ok, failed := BatchCounts(items)
	return f.write(w, JSONBatch{Items: items, Succeeded: ok, Failed: failed})
}

// FormatListing writes the function listing.
func (f *JSONFormatter) FormatListing(l *model.FunctionListing, w io.Writer) error {
	if l.Functions == nil {
		l = &model.FunctionListing{Language: l.Language, Functions: []model.ExtractedFunction{}}
	}
	return f.write(w, l)
}

func (f *JSONFormatter) write(w io.Writer, v any) error {
	var data []byte
	var err error
	if f.Compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}
