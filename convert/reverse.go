package convert

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

func (c *Converter) mapOxarenGroup(group namespaceGroup[*oxaren.Document]) groupResult[itemsadder.Item] {
	var res groupResult[itemsadder.Item]

	c.logger.Debug("mapping namespace", c.logger.Args("namespace", group.namespace, "documents", len(group.records)))

	emitted := make(map[string]string)
	for _, doc := range group.records {
		for idx, pair := range doc.Items.Pairs() {
			loc := diagnostics.ItemLocation(doc.Path, group.namespace, pair.Key, idx)
			node := pair.Value

			if first, dup := emitted[pair.Key]; dup {
				res.duplicate(loc, first, &node)
				continue
			}

			item, ok := c.toItemsAdderItem(&node, loc, &res.diags)
			if !ok {
				res.skipped++
				continue
			}
			emitted[pair.Key] = doc.Path
			res.entries = append(res.entries, Entry[itemsadder.Item]{Key: pair.Key, Item: item})
		}
	}

	return res
}

// toItemsAdderItem is the inverse of toOxarenItem.
func (c *Converter) toItemsAdderItem(node *yaml.Node, loc diagnostics.Location, diags *diagnostics.Diagnostics) (itemsadder.Item, bool) {
	src, err := oxaren.DecodeItem(node)
	label := diagnostics.ItemLabel(src.DisplayName, loc.Index)
	if err != nil {
		diags.PushError(decodeDiagnostic(loc, label, err))
		return itemsadder.Item{}, false
	}

	out := itemsadder.Item{
		DisplayName: src.DisplayName,
		Resource: itemsadder.Resource{
			Material: src.Material,
			Generate: src.Pack.GenerateModel,
			Textures: slices.Clone(src.Pack.Textures),
		},
	}

	if src.Lore != nil {
		out.Lore = slices.Clone(src.Lore)
	}

	var warnings []diagnostics.Diagnostic
	for _, mech := range src.Mechanics {
		if mech.Durability != nil {
			if out.HasDurability() {
				warnings = append(warnings, diagnostics.NewUnsupportedFeatureWarning(loc, label, "second durability mechanic"))
			} else {
				value := mech.Durability.Value
				out.Durability = &itemsadder.Durability{MaxCustomDurability: &value}
			}
		}
		for _, name := range sortedKeys(mech.Extra) {
			warnings = append(warnings, diagnostics.NewUnsupportedFeatureWarning(loc, label, fmt.Sprintf("mechanic %q", name)))
		}
	}

	modifiers, modWarnings, err := toItemsAdderModifiers(src.AttributeModifiers, loc, label)
	if err != nil {
		diags.PushError(unknownModifierDiagnostic(loc, label, err))
		return itemsadder.Item{}, false
	}
	out.AttributeModifiers = modifiers

	for _, w := range append(warnings, modWarnings...) {
		diags.PushWarning(w)
	}

	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
