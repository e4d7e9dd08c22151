package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/convert/diagnostics"
)

// NamespaceSummary describes one written namespace.
type NamespaceSummary struct {
	Namespace string
	Items     int
	File      string
}

// Report is the outcome of a run.
type Report struct {
	Direction  convert.Direction
	InputDir   string
	OutputDir  string
	Namespaces []NamespaceSummary
	Converted  int
	Skipped    int

	// Written lists output files relative to OutputDir. Empty on dry runs.
	Written     []string
	Diagnostics diagnostics.Diagnostics
	Duration    time.Duration
}

// Summary returns the one-line outcome.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d converted, %d skipped", r.Converted, r.Skipped)
}

// KindCounts returns how many diagnostics of each kind the run produced,
// sorted by kind.
func (r *Report) KindCounts() []lo.Entry[diagnostics.Kind, int] {
	grouped := lo.GroupBy(r.Diagnostics.All(), func(d diagnostics.Diagnostic) diagnostics.Kind {
		return d.Kind
	})

	counts := lo.MapToSlice(grouped, func(k diagnostics.Kind, ds []diagnostics.Diagnostic) lo.Entry[diagnostics.Kind, int] {
		return lo.Entry[diagnostics.Kind, int]{Key: k, Value: len(ds)}
	})
	slices.SortFunc(counts, func(a, b lo.Entry[diagnostics.Kind, int]) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})
	return counts
}

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Conversion report\n\n")
	fmt.Fprintf(&b, "- **Direction:** `%s`\n", r.Direction)
	fmt.Fprintf(&b, "- **Input:** `%s`\n", r.InputDir)
	fmt.Fprintf(&b, "- **Output:** `%s`\n", r.OutputDir)
	fmt.Fprintf(&b, "- **Result:** %s in %s\n\n", r.Summary(), r.Duration.Round(time.Millisecond))

	if len(r.Namespaces) > 0 {
		b.WriteString("## Namespaces\n\n")
		b.WriteString("| Namespace | Items | File |\n|---|---:|---|\n")
		for _, ns := range r.Namespaces {
			fmt.Fprintf(&b, "| %s | %d | `%s` |\n", ns.Namespace, ns.Items, ns.File)
		}
		b.WriteString("\n")
	}

	if r.Diagnostics.Len() == 0 {
		b.WriteString("No diagnostics.\n")
		return b.String()
	}

	b.WriteString("## Diagnostics\n\n")
	b.WriteString("| Kind | Count |\n|---|---:|\n")
	for _, kc := range r.KindCounts() {
		fmt.Fprintf(&b, "| %s | %d |\n", kc.Key, kc.Value)
	}
	b.WriteString("\n")

	writeList := func(title string, ds []diagnostics.Diagnostic) {
		if len(ds) == 0 {
			return
		}
		fmt.Fprintf(&b, "### %s\n\n", title)
		for _, d := range ds {
			fmt.Fprintf(&b, "- `%s` %s\n", d.Location, d.Message)
		}
		b.WriteString("\n")
	}
	writeList("Errors", r.Diagnostics.Errors())
	writeList("Warnings", r.Diagnostics.Warnings())

	return b.String()
}
