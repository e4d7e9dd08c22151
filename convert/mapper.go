package convert

import (
	"errors"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/schema"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

// groupResult is what mapping one namespace produced.
type groupResult[T any] struct {
	entries []Entry[T]
	skipped int
	diags   diagnostics.Diagnostics
}

// duplicate reports an item whose key was already emitted for the namespace
// from firstFile, and counts it as skipped.
func (r *groupResult[T]) duplicate(loc diagnostics.Location, firstFile string, node *yaml.Node) {
	r.diags.PushError(diagnostics.NewDuplicateKeyError(loc, diagnostics.ItemLabel(displayNameOf(node), loc.Index), firstFile))
	r.skipped++
}

// displayNameOf returns the display name of a raw item node in either schema,
// or "" when it has none.
func displayNameOf(node *yaml.Node) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "display_name", "displayname":
			if v := node.Content[i+1]; v.Kind == yaml.ScalarNode {
				return v.Value
			}
		}
	}
	return ""
}

func (c *Converter) mapItemsAdderGroup(group namespaceGroup[*itemsadder.Record]) groupResult[oxaren.Item] {
	var res groupResult[oxaren.Item]

	c.logger.Debug("mapping namespace", c.logger.Args("namespace", group.namespace, "records", len(group.records)))

	emitted := make(map[string]string)
	for _, rec := range group.records {
		for idx, pair := range rec.Items.Pairs() {
			loc := diagnostics.ItemLocation(rec.Path, group.namespace, pair.Key, idx)
			node := pair.Value

			if first, dup := emitted[pair.Key]; dup {
				res.duplicate(loc, first, &node)
				continue
			}

			item, ok := c.toOxarenItem(&node, loc, &res.diags)
			if !ok {
				res.skipped++
				continue
			}
			emitted[pair.Key] = rec.Path
			res.entries = append(res.entries, Entry[oxaren.Item]{Key: pair.Key, Item: item})
		}
	}

	return res
}

// toOxarenItem maps one ItemsAdder item. Problems are pushed to diags; ok is
// false when the item must be left out of the output.
func (c *Converter) toOxarenItem(node *yaml.Node, loc diagnostics.Location, diags *diagnostics.Diagnostics) (oxaren.Item, bool) {
	src, err := itemsadder.DecodeItem(node)
	label := diagnostics.ItemLabel(src.DisplayName, loc.Index)
	if err != nil {
		diags.PushError(decodeDiagnostic(loc, label, err))
		return oxaren.Item{}, false
	}

	out := oxaren.Item{
		DisplayName: src.DisplayName,
		Material:    src.Resource.Material,
		Pack: oxaren.Pack{
			GenerateModel: src.Resource.Generate,
			Textures:      slices.Clone(src.Resource.Textures),
		},
	}

	if src.HasDurability() {
		out.Mechanics = append(out.Mechanics, oxaren.NewDurabilityMechanic(*src.Durability.MaxCustomDurability))
	}

	if src.Lore != nil {
		out.Lore = slices.Clone(src.Lore)
	}

	c.mapEnchants(src, loc)

	modifiers, err := toOxarenModifiers(src.DisplayName, src.AttributeModifiers, c.ids)
	if err != nil {
		diags.PushError(unknownModifierDiagnostic(loc, label, err))
		return oxaren.Item{}, false
	}
	out.AttributeModifiers = modifiers

	if src.BlockedEnchants != nil {
		diags.PushWarning(diagnostics.NewUnsupportedFeatureWarning(loc, label, "blocked_enchants"))
	}

	return out, true
}

// mapEnchants drops enchants. Oxaren uses a different enchantment registry
// and there is no mapping between the two yet.
func (c *Converter) mapEnchants(src itemsadder.Item, loc diagnostics.Location) {
	if src.Enchants == nil {
		return
	}
	c.logger.Debug("enchants are not converted", c.logger.Args("item", loc.String()))
}

func decodeDiagnostic(loc diagnostics.Location, label string, err error) diagnostics.Diagnostic {
	var missing *schema.MissingFieldError
	if errors.As(err, &missing) {
		return diagnostics.NewMissingFieldError(loc, label, missing.Field, err)
	}
	return diagnostics.NewMalformedItemError(loc, label, err)
}

func unknownModifierDiagnostic(loc diagnostics.Location, label string, err error) diagnostics.Diagnostic {
	name := err.Error()
	var unknown *UnknownModifierError
	if errors.As(err, &unknown) {
		name = unknown.Name
	}
	diag := diagnostics.NewUnknownAttributeModifierError(loc, label, name)
	diag.Err = err
	return diag
}
