// Package ui renders CLI output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/service"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#E0115F")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	InfoColor      = lipgloss.Color("#00D9FF")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// NewLogger returns the CLI logger. Verbose enables debug output.
func NewLogger(verbose bool) *pterm.Logger {
	logger := pterm.DefaultLogger.WithWriter(os.Stderr)
	if verbose {
		return logger.WithLevel(pterm.LogLevelDebug)
	}
	return logger.WithLevel(pterm.LogLevelInfo)
}

// PrintHeader prints the boxed title line.
func PrintHeader(title string, subtitle string) {
	header := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 2).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				TitleStyle.Render(title),
				SecondaryStyle.Render(subtitle),
			),
		)

	fmt.Println(header)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(SuccessStyle.Render("✓ " + message))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(WarningStyle.Render("⚠ " + message))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(InfoStyle.Render("ℹ " + message))
}

// PrintTable prints a table using pterm
func PrintTable(headers []string, rows [][]string) error {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// PrintMarkdown renders markdown content
func PrintMarkdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(content)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

// PrintSpinner starts a spinner.
func PrintSpinner(message string) (*pterm.SpinnerPrinter, error) {
	return pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
}

// NamespaceRows turns the report namespaces into table rows.
func NamespaceRows(report *service.Report) [][]string {
	rows := make([][]string, 0, len(report.Namespaces))
	for _, ns := range report.Namespaces {
		rows = append(rows, []string{ns.Namespace, fmt.Sprint(ns.Items), ns.File})
	}
	return rows
}

// PrintReport prints the namespace table, the diagnostics and the summary
// line.
func PrintReport(report *service.Report) error {
	if len(report.Namespaces) > 0 {
		if err := PrintTable([]string{"Namespace", "Items", "File"}, NamespaceRows(report)); err != nil {
			return err
		}
	}

	if report.Diagnostics.Len() > 0 {
		fmt.Fprintln(os.Stderr)
		if err := PrintDiagnostics(os.Stderr, &report.Diagnostics); err != nil {
			return err
		}
	}

	summary := report.Summary()
	switch {
	case report.Diagnostics.HasErrors():
		PrintWarning("%s", summary)
	default:
		PrintSuccess("%s", summary)
	}
	return nil
}

// PrintDiagnostics pretty-prints diags to w.
func PrintDiagnostics(w io.Writer, diags *diagnostics.Diagnostics) error {
	return diags.PrettyPrint(w)
}
