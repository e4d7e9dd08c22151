package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/service"
)

func TestNamespaceRows(t *testing.T) {
	report := &service.Report{Namespaces: []service.NamespaceSummary{
		{Namespace: "gems", Items: 3, File: "items/gems.yml"},
		{Namespace: "armor", Items: 1, File: "items/armor.yml"},
	}}

	assert.Equal(t, [][]string{
		{"gems", "3", "items/gems.yml"},
		{"armor", "1", "items/armor.yml"},
	}, NamespaceRows(report))
}

func TestPrintDiagnostics(t *testing.T) {
	var diags diagnostics.Diagnostics
	diags.PushError(diagnostics.NewLoadError("contents/a.yml", errors.New("bad indent")))

	var buf bytes.Buffer
	assert.NoError(t, PrintDiagnostics(&buf, &diags))
	assert.Contains(t, buf.String(), "contents/a.yml")
	assert.Contains(t, buf.String(), "bad indent")
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, pterm.LogLevelDebug, NewLogger(true).Level)
	assert.Equal(t, pterm.LogLevelInfo, NewLogger(false).Level)
}
