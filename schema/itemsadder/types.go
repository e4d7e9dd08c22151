// Package itemsadder models the ItemsAdder item configuration schema.
//
// An ItemsAdder pack is a tree of YAML documents under contents/. Each
// document names its namespace under info and lists item definitions under
// items, keyed by the item identifier used in-game as "namespace:key".
package itemsadder

import (
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/schema/ordered"
)

// Hand slot keys used under attribute_modifiers.
const (
	SlotMainHand = "mainHand"
	SlotOffHand  = "offHand"
)

// Record is one parsed ItemsAdder document.
type Record struct {
	// Path is the file the record was loaded from. It is never serialized.
	Path string `yaml:"-"`

	Info *Info `yaml:"info,omitempty"`

	// Items holds undecoded item nodes so that one malformed item does not
	// prevent the rest of the document from loading.
	Items ordered.Map[yaml.Node] `yaml:"items,omitempty"`
}

// Info is the info block of a document.
type Info struct {
	Namespace string `yaml:"namespace"`
}

// Item is a decoded item definition. Required fields are plain values; a
// value obtained from DecodeItem without error has all of them populated.
type Item struct {
	DisplayName string      `yaml:"display_name"`
	Resource    Resource    `yaml:"resource"`
	Durability  *Durability `yaml:"durability,omitempty"`
	Lore        []string    `yaml:"lore,omitempty"`

	// Enchants is carried as-is; no translation exists for it yet.
	Enchants any `yaml:"enchants,omitempty"`

	// AttributeModifiers maps a hand slot to modifier name → amount.
	AttributeModifiers ordered.Map[ordered.Map[float64]] `yaml:"attribute_modifiers,omitempty"`

	BlockedEnchants any `yaml:"blocked_enchants,omitempty"`
}

// Resource describes the model and textures of an item.
type Resource struct {
	Material string   `yaml:"material"`
	Generate bool     `yaml:"generate"`
	Textures []string `yaml:"textures"`
}

// Durability holds the custom durability settings of an item.
type Durability struct {
	MaxCustomDurability *int `yaml:"max_custom_durability,omitempty"`
}

// HasDurability reports whether the item declares a custom durability.
func (it Item) HasDurability() bool {
	return it.Durability != nil && it.Durability.MaxCustomDurability != nil
}

// NewRecord builds a record for namespace with no items.
func NewRecord(namespace string) *Record {
	return &Record{Info: &Info{Namespace: namespace}}
}

// UnmarshalYAML decodes a record. An info key that is present but null
// decodes to an empty Info, so the record is reported as lacking a namespace
// rather than lacking an info block.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	type plain Record
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	if out.Info == nil && hasKey(node, "info") {
		out.Info = &Info{}
	}
	out.Path = r.Path
	*r = Record(out)
	return nil
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Namespace returns the record's namespace, or "" when the info block or
// the namespace is absent.
func (r *Record) Namespace() string {
	if r.Info == nil {
		return ""
	}
	return r.Info.Namespace
}
