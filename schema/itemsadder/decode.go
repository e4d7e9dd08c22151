package itemsadder

import (
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/schema"
	"github.com/oria-mc/oria/schema/ordered"
)

// itemDoc mirrors Item with pointers so absent fields can be told apart from
// zero values.
type itemDoc struct {
	DisplayName        *string                            `yaml:"display_name"`
	Resource           *resourceDoc                       `yaml:"resource"`
	Durability         *Durability                        `yaml:"durability"`
	Lore               []string                           `yaml:"lore"`
	Enchants           any                                `yaml:"enchants"`
	AttributeModifiers ordered.Map[ordered.Map[float64]] `yaml:"attribute_modifiers"`
	BlockedEnchants    any                                `yaml:"blocked_enchants"`
}

type resourceDoc struct {
	Material *string  `yaml:"material"`
	Generate *bool    `yaml:"generate"`
	Textures []string `yaml:"textures"`
}

// DecodeItem decodes an item node and checks its required fields in the
// order display_name, resource.material, resource.generate,
// resource.textures. The first absent one is reported as a
// *schema.MissingFieldError. The returned Item is filled with whatever was
// present, so DisplayName can identify the item even on error.
func DecodeItem(node *yaml.Node) (Item, error) {
	var doc itemDoc
	if err := node.Decode(&doc); err != nil {
		return Item{}, err
	}

	item := Item{
		Durability:         doc.Durability,
		Lore:               doc.Lore,
		Enchants:           doc.Enchants,
		AttributeModifiers: doc.AttributeModifiers,
		BlockedEnchants:    doc.BlockedEnchants,
	}
	if doc.DisplayName != nil {
		item.DisplayName = *doc.DisplayName
	}
	if doc.Resource != nil {
		if doc.Resource.Material != nil {
			item.Resource.Material = *doc.Resource.Material
		}
		if doc.Resource.Generate != nil {
			item.Resource.Generate = *doc.Resource.Generate
		}
		item.Resource.Textures = doc.Resource.Textures
	}

	switch {
	case doc.DisplayName == nil:
		return item, schema.NewMissingFieldError("display_name")
	case doc.Resource == nil || doc.Resource.Material == nil:
		return item, schema.NewMissingFieldError("resource.material")
	case doc.Resource.Generate == nil:
		return item, schema.NewMissingFieldError("resource.generate")
	case doc.Resource.Textures == nil:
		return item, schema.NewMissingFieldError("resource.textures")
	}

	return item, nil
}
