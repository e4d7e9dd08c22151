package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/document"
	"github.com/oria-mc/oria/internal/storage"
)

const gemsConfig = `
info:
  namespace: gems
items:
  ruby_sword:
    display_name: Ruby Sword
    resource:
      material: DIAMOND_SWORD
      generate: true
      textures: [ruby_sword]
    attribute_modifiers:
      mainHand:
        attackDamage: 5
  ghost:
    display_name: Ghost
    resource:
      generate: true
      textures: [ghost]
`

func newService(t *testing.T, files map[string]string) (*ConvertService, *storage.AferoStorage) {
	t.Helper()
	store := storage.NewMemory()
	for p, content := range files {
		require.NoError(t, store.Write(context.Background(), p, []byte(content)))
	}
	return NewConvertService(store, convert.New(), nil), store
}

func TestRun_ToOxaren(t *testing.T) {
	svc, store := newService(t, map[string]string{
		"in/contents/gems/configs/items.yml":        gemsConfig,
		"in/contents/_iainternal/configs/items.yml": "info:\n  namespace: _iainternal\n",
		"in/contents/gems/configs/empty.yml":        "",
	})
	ctx := context.Background()

	report, err := svc.Run(ctx, Request{InputDir: "in", OutputDir: "out", Direction: convert.ItemsAdderToOxaren})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Converted)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, "1 converted, 1 skipped", report.Summary())
	assert.Equal(t, []NamespaceSummary{{Namespace: "gems", Items: 1, File: "items/gems.yml"}}, report.Namespaces)
	assert.Equal(t, []string{"items/gems.yml"}, report.Written)

	require.Len(t, report.Diagnostics.OfKind(diagnostics.KindMissingField), 1)
	require.Len(t, report.Diagnostics.OfKind(diagnostics.KindEmptyDocument), 1)

	out, err := store.Read(ctx, "out/items/gems.yml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "ruby_sword:")
	assert.Contains(t, string(out), "displayname: Ruby Sword")
	assert.Contains(t, string(out), "attribute: GENERIC_ATTACK_DAMAGE")
	assert.NotContains(t, string(out), "ghost")

	exists, err := store.Exists(ctx, "out/items/_iainternal.yml")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRun_ToItemsAdder(t *testing.T) {
	svc, store := newService(t, map[string]string{
		"in/items/gems.yml": `
ruby_sword:
  displayname: Ruby Sword
  material: DIAMOND_SWORD
  Pack: {generate_model: true, textures: [ruby_sword]}
`,
		"in/recipes/gems.yml": "ruby_block: {}\n",
	})
	ctx := context.Background()

	report, err := svc.Run(ctx, Request{InputDir: "in", OutputDir: "out", Direction: convert.OxarenToItemsAdder})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Converted)
	assert.Equal(t, []string{document.ItemsAdderPath("gems")}, report.Written)
	require.Len(t, report.Diagnostics.Warnings(), 1)
	assert.Equal(t, diagnostics.KindUnsupportedFeature, report.Diagnostics.Warnings()[0].Kind)

	out, err := store.Read(ctx, "out/contents/gems/configs/items.yml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "info:\n  namespace: gems\nitems:\n"))
	assert.Contains(t, string(out), "display_name: Ruby Sword")
}

func TestRun_DuplicateKeyAcrossFiles(t *testing.T) {
	ruby := func(material string) string {
		return "info:\n  namespace: gems\nitems:\n  ruby:\n    display_name: Ruby\n" +
			"    resource: {material: " + material + ", generate: false, textures: [ruby]}\n"
	}
	svc, store := newService(t, map[string]string{
		"in/contents/gems/configs/a.yml": ruby("EMERALD"),
		"in/contents/gems/configs/b.yml": ruby("REDSTONE"),
	})
	ctx := context.Background()

	report, err := svc.Run(ctx, Request{InputDir: "in", OutputDir: "out", Direction: convert.ItemsAdderToOxaren})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Converted)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []NamespaceSummary{{Namespace: "gems", Items: 1, File: "items/gems.yml"}}, report.Namespaces)

	dups := report.Diagnostics.OfKind(diagnostics.KindDuplicateKey)
	require.Len(t, dups, 1)
	assert.Equal(t, "contents/gems/configs/b.yml", dups[0].Location.File)
	assert.Contains(t, dups[0].Message, "contents/gems/configs/a.yml")

	out, err := store.Read(ctx, "out/items/gems.yml")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "ruby:"))
	assert.Contains(t, string(out), "material: EMERALD")
	assert.NotContains(t, string(out), "REDSTONE")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	svc, store := newService(t, map[string]string{"in/contents/gems/configs/items.yml": gemsConfig})
	ctx := context.Background()

	report, err := svc.Run(ctx, Request{InputDir: "in", OutputDir: "out", DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Converted)
	assert.Empty(t, report.Written)

	empty, err := svc.OutputIsEmpty(ctx, "out")
	require.NoError(t, err)
	assert.True(t, empty)

	exists, _ := store.Exists(ctx, "out")
	assert.False(t, exists)
}

func TestRun_Failures(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		svc, _ := newService(t, nil)
		_, err := svc.Run(context.Background(), Request{InputDir: "in", OutputDir: "out"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, document.ErrInputNotFound))
	})

	t.Run("record without info", func(t *testing.T) {
		svc, _ := newService(t, map[string]string{
			"in/contents/gems/configs/items.yml": "items:\n  a:\n    display_name: A\n",
		})
		_, err := svc.Run(context.Background(), Request{InputDir: "in", OutputDir: "out"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, convert.ErrMissingInfo))
	})

	t.Run("cancelled", func(t *testing.T) {
		svc, _ := newService(t, map[string]string{"in/contents/gems/configs/items.yml": gemsConfig})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Run(ctx, Request{InputDir: "in", OutputDir: "out"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestReport_Markdown(t *testing.T) {
	svc, _ := newService(t, map[string]string{"in/contents/gems/configs/items.yml": gemsConfig})

	report, err := svc.Run(context.Background(), Request{InputDir: "in", OutputDir: "out", DryRun: true})
	require.NoError(t, err)

	md := report.Markdown()
	assert.Contains(t, md, "# Conversion report")
	assert.Contains(t, md, "`ia-to-oxaren`")
	assert.Contains(t, md, "| gems | 1 | `items/gems.yml` |")
	assert.Contains(t, md, "| missing-field | 1 |")
	assert.Contains(t, md, "### Errors")
	assert.NotContains(t, md, "### Warnings")
}

func TestReport_KindCounts(t *testing.T) {
	var r Report
	r.Diagnostics.PushWarning(diagnostics.NewEmptyDocumentWarning("a.yml"))
	r.Diagnostics.PushError(diagnostics.NewLoadError("b.yml", errors.New("boom")))
	r.Diagnostics.PushWarning(diagnostics.NewEmptyDocumentWarning("c.yml"))

	counts := r.KindCounts()
	require.Len(t, counts, 2)
	assert.Equal(t, diagnostics.KindEmptyDocument, counts[0].Key)
	assert.Equal(t, 2, counts[0].Value)
	assert.Equal(t, diagnostics.KindLoad, counts[1].Key)
}
