package convert

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

// sequentialIDs hands out "id-1", "id-2", ...
func sequentialIDs() IDGenerator {
	var n atomic.Int64
	return IDGeneratorFunc(func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	})
}

func newTestConverter(opts ...Option) *Converter {
	return New(append([]Option{WithIDGenerator(sequentialIDs())}, opts...)...)
}

func parseRecord(t *testing.T, path, src string) *itemsadder.Record {
	t.Helper()
	var rec itemsadder.Record
	require.NoError(t, yaml.Unmarshal([]byte(src), &rec))
	rec.Path = path
	return &rec
}

func parseDocument(t *testing.T, path, namespace, src string) *oxaren.Document {
	t.Helper()
	doc := &oxaren.Document{Path: path, Namespace: namespace, Kind: oxaren.KindItems}
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc.Items))
	return doc
}

const rubySwordRecord = `
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
`

func encodeNode(t *testing.T, v any) yaml.Node {
	t.Helper()
	var node yaml.Node
	require.NoError(t, node.Encode(v))
	return node
}

func itemNodeFromRecord(t *testing.T, src, key string) *yaml.Node {
	t.Helper()
	rec := parseRecord(t, "f.yml", src)
	node, ok := rec.Items.Get(key)
	require.True(t, ok, key)
	return &node
}
