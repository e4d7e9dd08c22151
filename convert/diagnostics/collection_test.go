package diagnostics

import (
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oria-mc/oria/schema"
)

func TestDiagnostics_PushBySeverity(t *testing.T) {
	var d Diagnostics
	d.Push(NewMissingNamespaceError("a.yml"))
	d.Push(NewUnsupportedFeatureWarning(ItemLocation("b.yml", "gems", "ruby", 0), "Ruby", "blocked_enchants"))

	require.Len(t, d.Errors(), 1)
	require.Len(t, d.Warnings(), 1)
	assert.True(t, d.HasErrors())
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, KindMissingNamespace, d.All()[0].Kind)
	assert.Equal(t, KindUnsupportedFeature, d.All()[1].Kind)
}

func TestDiagnostics_MergeKeepsOrder(t *testing.T) {
	var a, b Diagnostics
	a.PushError(NewLoadError("1.yml", errors.New("boom")))
	b.PushError(NewLoadError("2.yml", errors.New("bang")))
	b.PushWarning(NewEmptyDocumentWarning("3.yml"))

	a.Merge(b)

	require.Len(t, a.Errors(), 2)
	assert.Equal(t, "1.yml", a.Errors()[0].Location.File)
	assert.Equal(t, "2.yml", a.Errors()[1].Location.File)
	assert.Len(t, a.OfKind(KindEmptyDocument), 1)
}

func TestDiagnostic_ErrorsIs(t *testing.T) {
	cause := schema.NewMissingFieldError("resource.material")
	diag := NewMissingFieldError(ItemLocation("f.yml", "gems", "ruby", 2), "Ruby", cause.Field, cause)

	assert.True(t, errors.Is(diag, ErrMissingField))
	assert.True(t, errors.Is(diag, schema.ErrMissingField))
	assert.False(t, errors.Is(diag, ErrUnknownAttributeModifier))
	assert.Equal(t, "resource.material", diag.Field)

	unknown := NewUnknownAttributeModifierError(ItemLocation("f.yml", "gems", "ruby", 2), "Ruby", "teleportSpeed")
	assert.True(t, errors.Is(unknown, ErrUnknownAttributeModifier))
	assert.Contains(t, unknown.Error(), "unknown attribute modifier \"teleportSpeed\"")
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"file only", FileLocation("a.yml"), "a.yml"},
		{"item", ItemLocation("a.yml", "gems", "ruby", 3), "a.yml gems:ruby"},
		{"index fallback", ItemLocation("a.yml", "gems", "", 3), "a.yml gems #3"},
		{"empty", Location{Index: -1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestItemLabel(t *testing.T) {
	assert.Equal(t, "Ruby", ItemLabel("Ruby", 4))
	assert.Equal(t, "#4", ItemLabel("", 4))
}

func TestDiagnostics_ToPrettyString(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var d Diagnostics
	d.Push(NewMissingNamespaceError("contents/a.yml"))
	d.Push(NewUnsupportedFeatureWarning(FileLocation("recipes/r.yml"), "", "recipes"))

	out := d.ToPrettyString()
	assert.Contains(t, out, "error: info.namespace is missing, record skipped [missing-namespace]")
	assert.Contains(t, out, "  --> contents/a.yml")
	assert.Contains(t, out, "warning: recipes has no equivalent in the target schema and was dropped")
}
