package document

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/internal/storage"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

func seed(t *testing.T, files map[string]string) *storage.AferoStorage {
	t.Helper()
	s := storage.NewMemory()
	for p, content := range files {
		require.NoError(t, s.Write(context.Background(), p, []byte(content)))
	}
	return s
}

func TestOxarenNamespace(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"gems.yml", "gems"},
		{"gems.yaml", "gems"},
		{"gems/swords.yml", "gems"},
		{"gems/deep/swords.yml", "gems"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, OxarenNamespace(tt.rel))
		})
	}
}

func TestLoadItemsAdder(t *testing.T) {
	s := seed(t, map[string]string{
		"in/contents/gems/configs/items.yml": `
info:
  namespace: gems
items:
  ruby:
    display_name: Ruby
  emerald:
    display_name: Emerald
`,
		"in/contents/gems/configs/empty.yml":   "# nothing here\n",
		"in/contents/gems/configs/broken.yaml": "items: [unclosed\n",
		"in/contents/gems/textures/ruby.png":   "png",
		"in/contents/armor/configs/armor.YAML": "info:\n  namespace: armor\n",
		"in/readme.yml":                        "ignored: true\n",
	})

	records, diags, err := NewLoader(s, nil).LoadItemsAdder(context.Background(), "in")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "contents/armor/configs/armor.YAML", records[0].Path)
	assert.Equal(t, "armor", records[0].Namespace())
	assert.Equal(t, "contents/gems/configs/items.yml", records[1].Path)
	assert.Equal(t, []string{"ruby", "emerald"}, records[1].Items.Keys())

	load := diags.OfKind(diagnostics.KindLoad)
	require.Len(t, load, 1)
	assert.Equal(t, "contents/gems/configs/broken.yaml", load[0].Location.File)

	empty := diags.OfKind(diagnostics.KindEmptyDocument)
	require.Len(t, empty, 1)
	assert.Equal(t, "contents/gems/configs/empty.yml", empty[0].Location.File)
}

func TestLoadItemsAdder_MissingInput(t *testing.T) {
	_, _, err := NewLoader(storage.NewMemory(), nil).LoadItemsAdder(context.Background(), "nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
}

func TestLoadItemsAdder_NoContentsDir(t *testing.T) {
	s := seed(t, map[string]string{"in/other/file.yml": "a: 1\n"})

	records, diags, err := NewLoader(s, nil).LoadItemsAdder(context.Background(), "in")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, diags.Len())
}

func TestLoadOxaren(t *testing.T) {
	s := seed(t, map[string]string{
		"in/items/gems.yml": `
ruby_sword:
  displayname: Ruby Sword
  material: DIAMOND_SWORD
  Pack: {generate_model: true, textures: [ruby_sword]}
`,
		"in/items/armor/helmets.yml": "iron_cap:\n  displayname: Iron Cap\n",
		"in/items/list.yml":          "- not\n- a mapping\n",
		"in/recipes/gems.yml":        "ruby_block:\n  shape: [RRR, RRR, RRR]\n",
	})

	docs, diags, err := NewLoader(s, nil).LoadOxaren(context.Background(), "in")
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "items/armor/helmets.yml", docs[0].Path)
	assert.Equal(t, "armor", docs[0].Namespace)
	assert.Equal(t, oxaren.KindItems, docs[0].Kind)

	assert.Equal(t, "gems", docs[1].Namespace)
	assert.Equal(t, []string{"ruby_sword"}, docs[1].Items.Keys())

	assert.Equal(t, "recipes/gems.yml", docs[2].Path)
	assert.Equal(t, oxaren.KindRecipes, docs[2].Kind)
	assert.Equal(t, "gems", docs[2].Namespace)

	load := diags.OfKind(diagnostics.KindLoad)
	require.Len(t, load, 1)
	assert.Equal(t, "items/list.yml", load[0].Location.File)
}

func TestWriteOxaren_ReloadsIntoSameBuckets(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()

	buckets := []convert.Bucket[oxaren.Item]{
		{Namespace: "gems", Entries: []convert.Entry[oxaren.Item]{
			{Key: "ruby_sword", Item: oxaren.Item{
				DisplayName: "Ruby Sword",
				Material:    "DIAMOND_SWORD",
				AttributeModifiers: []oxaren.AttributeModifier{{
					Name: "Ruby Sword-attackDamage", Attribute: "GENERIC_ATTACK_DAMAGE",
					Amount: 5, UUID: "5b8e", Slot: oxaren.SlotHand,
				}},
				Mechanics: []oxaren.Mechanic{oxaren.NewDurabilityMechanic(100)},
				Pack:      oxaren.Pack{GenerateModel: true, Textures: []string{"ruby_sword"}},
			}},
			{Key: "amber", Item: oxaren.Item{
				DisplayName: "Amber",
				Material:    "GOLD_NUGGET",
				Pack:        oxaren.Pack{Textures: []string{}},
			}},
		}},
	}

	written, err := NewWriter(s).WriteOxaren(ctx, "out", buckets)
	require.NoError(t, err)
	assert.Equal(t, []string{"items/gems.yml"}, written)

	docs, diags, err := NewLoader(s, nil).LoadOxaren(ctx, "out")
	require.NoError(t, err)
	assert.Zero(t, diags.Len())
	require.Len(t, docs, 1)
	assert.Equal(t, "gems", docs[0].Namespace)
	assert.Equal(t, []string{"ruby_sword", "amber"}, docs[0].Items.Keys())

	res, err := convert.New().ToItemsAdder(ctx, docs)
	require.NoError(t, err)

	require.Len(t, res.Buckets, 1)
	assert.Equal(t, 2, res.Converted)
	item := res.Buckets[0].Entries[0].Item
	assert.Equal(t, "Ruby Sword", item.DisplayName)
	assert.Equal(t, 100, *item.Durability.MaxCustomDurability)
}

func TestWriteItemsAdder_ReloadsIntoSameBuckets(t *testing.T) {
	ctx := context.Background()
	s := seed(t, map[string]string{
		"in/items/gems.yml": `
ruby_sword:
  displayname: Ruby Sword
  material: DIAMOND_SWORD
  lore: [Sharp]
  Pack: {generate_model: true, textures: [ruby_sword]}
`,
	})
	loader := NewLoader(s, nil)

	docs, _, err := loader.LoadOxaren(ctx, "in")
	require.NoError(t, err)
	res, err := convert.New().ToItemsAdder(ctx, docs)
	require.NoError(t, err)

	written, err := NewWriter(s).WriteItemsAdder(ctx, "out", res.Buckets)
	require.NoError(t, err)
	assert.Equal(t, []string{"contents/gems/configs/items.yml"}, written)

	records, diags, err := loader.LoadItemsAdder(ctx, "out")
	require.NoError(t, err)
	assert.Zero(t, diags.Len())
	require.Len(t, records, 1)
	assert.Equal(t, "gems", records[0].Namespace())
	assert.Equal(t, []string{"ruby_sword"}, records[0].Items.Keys())

	forward, err := convert.New().ToOxaren(ctx, records)
	require.NoError(t, err)
	require.Len(t, forward.Buckets, 1)
	assert.Equal(t, "gems", forward.Buckets[0].Namespace)
	assert.Equal(t, "Ruby Sword", forward.Buckets[0].Entries[0].Item.DisplayName)
	assert.Equal(t, []string{"Sharp"}, forward.Buckets[0].Entries[0].Item.Lore)
}

func TestWriter_RejectsEscapingNamespace(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	w := NewWriter(s)

	for _, ns := range []string{"../../escaped", "a/b", `a\b`, ".."} {
		t.Run(ns, func(t *testing.T) {
			_, err := w.WriteOxaren(ctx, "out", []convert.Bucket[oxaren.Item]{
				{Namespace: ns, Entries: []convert.Entry[oxaren.Item]{{Key: "x", Item: oxaren.Item{DisplayName: "X"}}}},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostics.ErrInvalidNamespace))

			_, err = w.WriteItemsAdder(ctx, "out", []convert.Bucket[itemsadder.Item]{
				{Namespace: ns, Entries: []convert.Entry[itemsadder.Item]{{Key: "x", Item: itemsadder.Item{DisplayName: "X"}}}},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostics.ErrInvalidNamespace))
		})
	}

	for _, p := range []string{"out", "escaped.yml", "escaped/configs/items.yml"} {
		ok, err := s.Exists(ctx, p)
		require.NoError(t, err)
		assert.False(t, ok, p)
	}
}

func TestLoadItemsAdder_EscapingNamespaceIsNotWritten(t *testing.T) {
	ctx := context.Background()
	s := seed(t, map[string]string{
		"in/contents/evil/configs/items.yml": `
info:
  namespace: ../../escaped
items:
  ruby:
    display_name: Ruby
    resource: {material: EMERALD, generate: false, textures: [ruby]}
`,
	})

	records, _, err := NewLoader(s, nil).LoadItemsAdder(ctx, "in")
	require.NoError(t, err)

	res, err := convert.New().ToOxaren(ctx, records)
	require.NoError(t, err)
	assert.Empty(t, res.Buckets)

	invalid := res.Diagnostics.OfKind(diagnostics.KindInvalidNamespace)
	require.Len(t, invalid, 1)
	assert.Equal(t, "contents/evil/configs/items.yml", invalid[0].Location.File)

	written, err := NewWriter(s).WriteOxaren(ctx, "out", res.Buckets)
	require.NoError(t, err)
	assert.Empty(t, written)
	ok, err := s.Exists(ctx, "escaped.yml")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadItemsAdder_DuplicateKeyInFile(t *testing.T) {
	s := seed(t, map[string]string{
		"in/contents/gems/configs/items.yml": `
info:
  namespace: gems
items:
  ruby:
    display_name: Ruby
  ruby:
    display_name: Second Ruby
`,
	})

	records, diags, err := NewLoader(s, nil).LoadItemsAdder(context.Background(), "in")
	require.NoError(t, err)
	assert.Empty(t, records)

	load := diags.OfKind(diagnostics.KindLoad)
	require.Len(t, load, 1)
	assert.Equal(t, "contents/gems/configs/items.yml", load[0].Location.File)
	assert.Contains(t, load[0].Message, `duplicate key "ruby"`)
}
