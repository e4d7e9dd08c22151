package oxaren

import (
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/schema"
)

type itemDoc struct {
	DisplayName        *string             `yaml:"displayname"`
	Material           *string             `yaml:"material"`
	Lore               []string            `yaml:"lore"`
	AttributeModifiers []AttributeModifier `yaml:"AttributeModifiers"`
	Mechanics          []Mechanic          `yaml:"Mechanics"`
	Pack               *packDoc            `yaml:"Pack"`
}

type packDoc struct {
	GenerateModel *bool    `yaml:"generate_model"`
	Textures      []string `yaml:"textures"`
}

// DecodeItem decodes an item node and checks the required fields in the
// order displayname, material, Pack.generate_model, Pack.textures. See
// itemsadder.DecodeItem for the error contract.
func DecodeItem(node *yaml.Node) (Item, error) {
	var doc itemDoc
	if err := node.Decode(&doc); err != nil {
		return Item{}, err
	}

	item := Item{
		Lore:               doc.Lore,
		AttributeModifiers: doc.AttributeModifiers,
		Mechanics:          doc.Mechanics,
	}
	if doc.DisplayName != nil {
		item.DisplayName = *doc.DisplayName
	}
	if doc.Material != nil {
		item.Material = *doc.Material
	}
	if doc.Pack != nil {
		if doc.Pack.GenerateModel != nil {
			item.Pack.GenerateModel = *doc.Pack.GenerateModel
		}
		item.Pack.Textures = doc.Pack.Textures
	}

	switch {
	case doc.DisplayName == nil:
		return item, schema.NewMissingFieldError("displayname")
	case doc.Material == nil:
		return item, schema.NewMissingFieldError("material")
	case doc.Pack == nil || doc.Pack.GenerateModel == nil:
		return item, schema.NewMissingFieldError("Pack.generate_model")
	case doc.Pack.Textures == nil:
		return item, schema.NewMissingFieldError("Pack.textures")
	}

	return item, nil
}
