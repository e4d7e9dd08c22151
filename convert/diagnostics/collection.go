package diagnostics

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Diagnostics accumulates errors and warnings in the order they were found.
// The zero value is ready to use.
type Diagnostics struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

// Push adds d to the errors or warnings depending on its severity.
func (d *Diagnostics) Push(diag Diagnostic) {
	if diag.Severity == SeverityWarning {
		d.warnings = append(d.warnings, diag)
		return
	}
	d.errors = append(d.errors, diag)
}

// PushError adds an error diagnostic.
func (d *Diagnostics) PushError(diag Diagnostic) {
	diag.Severity = SeverityError
	d.errors = append(d.errors, diag)
}

// PushWarning adds a warning diagnostic.
func (d *Diagnostics) PushWarning(diag Diagnostic) {
	diag.Severity = SeverityWarning
	d.warnings = append(d.warnings, diag)
}

// Merge appends everything in other, keeping its order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.errors = append(d.errors, other.errors...)
	d.warnings = append(d.warnings, other.warnings...)
}

// Errors returns all errors in the collection.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.errors
}

// Warnings returns all warnings in the collection.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.warnings
}

// All returns errors followed by warnings.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.errors)+len(d.warnings))
	all = append(all, d.errors...)
	return append(all, d.warnings...)
}

// OfKind returns every diagnostic of the given kind.
func (d *Diagnostics) OfKind(kind Kind) []Diagnostic {
	var out []Diagnostic
	for _, diag := range d.All() {
		if diag.Kind == kind {
			out = append(out, diag)
		}
	}
	return out
}

// HasErrors returns true if there is at least one error in this collection.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.errors) + len(d.warnings)
}

// ToPrettyString formats all diagnostics, errors first.
func (d *Diagnostics) ToPrettyString() string {
	var buf bytes.Buffer
	_ = d.PrettyPrint(&buf)
	return buf.String()
}

// PrettyPrint writes all diagnostics to w with colors, errors first.
func (d *Diagnostics) PrettyPrint(w io.Writer) error {
	for _, diag := range d.errors {
		if err := writePretty(w, diag, color.New(color.FgRed, color.Bold)); err != nil {
			return err
		}
	}
	for _, diag := range d.warnings {
		if err := writePretty(w, diag, color.New(color.FgYellow, color.Bold)); err != nil {
			return err
		}
	}
	return nil
}

func writePretty(w io.Writer, diag Diagnostic, title *color.Color) error {
	arrowColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.Underline)
	descColor := color.New(color.Bold)
	kindColor := color.New(color.Faint)

	if _, err := title.Fprint(w, diag.Severity.String()); err != nil {
		return err
	}
	fmt.Fprint(w, ": ")
	descColor.Fprint(w, diag.Message)
	kindColor.Fprintf(w, " [%s]\n", diag.Kind)

	if loc := diag.Location.String(); loc != "" {
		arrowColor.Fprint(w, "  --> ")
		pathColor.Fprintf(w, "%s\n", loc)
	}
	return nil
}
