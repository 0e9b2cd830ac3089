// Package output renders analysis results, comparisons, batches and function
// listings in the supported output formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/report"
)

// Formatter writes analysis results to a writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "json", "markdown", "table").
	Name() string

	// Format writes a single analysis result to w.
	Format(r *model.Result, w io.Writer) error

	// FormatComparison writes a comparison verdict. labelA and labelB name
	// the two inputs, typically file paths; either may be empty.
	FormatComparison(c model.Comparison, labelA, labelB string, w io.Writer) error
}

// BatchFormatter is implemented by formats with a dedicated batch layout.
// Other formats fall back to one Format call per item (see WriteBatch).
type BatchFormatter interface {
	Formatter
	FormatBatch(items []model.BatchItem, w io.Writer) error
}

// ListingFormatter is implemented by formats with their own rendering of a
// function listing. Other formats use a plain text table (see WriteListing).
type ListingFormatter interface {
	Formatter
	FormatListing(l *model.FunctionListing, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	return sortedNames()
}

// Resolve looks up a formatter by name. When colorEnabled is false, the
// "rich" format degrades to "table".
func Resolve(name string, colorEnabled bool) (Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "rich"
	}
	if name == "rich" && !colorEnabled {
		name = "table"
	}
	return GetFormatter(name)
}

// WriteBatch renders batch items with f, using its batch layout when it has
// one. Otherwise each item gets a heading followed by its result or error.
func WriteBatch(f Formatter, items []model.BatchItem, w io.Writer) error {
	if bf, ok := f.(BatchFormatter); ok {
		return bf.FormatBatch(items, w)
	}
	for i, item := range items {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("write batch: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w, report.SectionTitle(itemLabel(item))); err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
		if !item.OK() {
			if _, err := fmt.Fprintf(w, "%s %s\n", report.ColorError("error:"), errorText(item)); err != nil {
				return fmt.Errorf("write batch: %w", err)
			}
			continue
		}
		if err := f.Format(item.Result, w); err != nil {
			return err
		}
	}
	return writeBatchTotals(w, items)
}

// WriteListing renders a function listing with f, or as a text table when f
// has no listing layout.
func WriteListing(f Formatter, l *model.FunctionListing, w io.Writer) error {
	if lf, ok := f.(ListingFormatter); ok {
		return lf.FormatListing(l, w)
	}
	if _, err := fmt.Fprintf(w, "%s %s\n\n", report.Label("Language:"), l.Language); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	if len(l.Functions) == 0 {
		_, err := fmt.Fprintln(w, "No functions found.")
		return err
	}
	tbl := report.NewTable(
		report.Column{Header: "Function"},
		report.Column{Header: "Lines", Align: report.AlignRight},
	)
	for _, fn := range l.Functions {
		tbl.AddRow(fn.Name, listingLines(fn))
	}
	return tbl.Render(w)
}

// BatchCounts returns the number of succeeded and failed items.
func BatchCounts(items []model.BatchItem) (ok, failed int) {
	for _, item := range items {
		if item.OK() {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

func writeBatchTotals(w io.Writer, items []model.BatchItem) error {
	ok, failed := BatchCounts(items)
	_, err := fmt.Fprintf(w, "\n%d analyzed, %d failed\n", ok, failed)
	if err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

func itemLabel(item model.BatchItem) string {
	if item.Source != "" {
		return item.Source
	}
	return fmt.Sprintf("item %d", item.Index+1)
}

func errorText(item model.BatchItem) string {
	if item.Err == nil {
		return "no result"
	}
	return item.Err.Error()
}

func listingLines(fn model.ExtractedFunction) string {
	switch {
	case fn.LineStart <= 0:
		return "-"
	case fn.LineEnd < fn.LineStart:
		return fmt.Sprintf("%d", fn.LineStart)
	default:
		return fmt.Sprintf("%d-%d", fn.LineStart, fn.LineEnd)
	}
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

// formatNames returns a comma-separated sorted list of registered format names.
func formatNames() string {
	return strings.Join(sortedNames(), ", ")
}

func sortedNames() []string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
