// Package oxaren models the Oxaren item configuration schema.
//
// Oxaren keeps items in flat YAML files under items/, each a mapping from item
// key to definition. Behaviour that is not part of the base item lives in
// Mechanics blocks and AttributeModifiers entries.
package oxaren

import (
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/schema/ordered"
)

// Attribute modifier slots.
const (
	SlotHand    = "HAND"
	SlotOffHand = "OFF_HAND"
)

// OperationAdd is the only modifier operation the converter emits.
const OperationAdd = 0

// DocumentKind tells item files apart from recipe files.
type DocumentKind string

const (
	KindItems   DocumentKind = "items"
	KindRecipes DocumentKind = "recipes"
)

// Document is one parsed Oxaren file.
type Document struct {
	Path      string
	Namespace string
	Kind      DocumentKind
	Items     ordered.Map[yaml.Node]
}

// Item is a decoded Oxaren item. Required fields are plain values, so an
// Item assembled by the converter always carries all of them.
type Item struct {
	DisplayName        string              `yaml:"displayname"`
	Material           string              `yaml:"material"`
	Lore               []string            `yaml:"lore,omitempty"`
	AttributeModifiers []AttributeModifier `yaml:"AttributeModifiers,omitempty"`
	Mechanics          []Mechanic          `yaml:"Mechanics,omitempty"`
	Pack               Pack                `yaml:"Pack"`
}

// Pack holds the resource pack settings of an item.
type Pack struct {
	GenerateModel bool     `yaml:"generate_model"`
	Textures      []string `yaml:"textures"`
}

// Mechanic is one mechanic block. Only durability is understood; any other
// mechanic key lands in Extra when decoding.
type Mechanic struct {
	Durability *DurabilityMechanic `yaml:"durability,omitempty"`
	Extra      map[string]any      `yaml:",inline"`
}

// DurabilityMechanic sets a custom durability.
type DurabilityMechanic struct {
	Value int `yaml:"value"`
}

// AttributeModifier is a slot-scoped adjustment of a game attribute.
type AttributeModifier struct {
	Name      string  `yaml:"name"`
	Attribute string  `yaml:"attribute"`
	Amount    float64 `yaml:"amount"`
	Operation int     `yaml:"operation"`
	UUID      string  `yaml:"uuid"`
	Slot      string  `yaml:"slot"`
}

// NewDurabilityMechanic returns a mechanic block setting durability to value.
func NewDurabilityMechanic(value int) Mechanic {
	return Mechanic{Durability: &DurabilityMechanic{Value: value}}
}
