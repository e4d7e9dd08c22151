package convert

import (
	"fmt"

	"github.com/oria-mc/oria/convert/diagnostics"
	"github.com/oria-mc/oria/schema/ordered"
	"github.com/oria-mc/oria/schema/oxaren"
)

// UnknownModifierError is returned when an attribute modifier has no entry in
// the translation table.
type UnknownModifierError struct {
	Name string
}

func (e *UnknownModifierError) Error() string {
	return fmt.Sprintf("unknown attribute modifier %q", e.Name)
}

// Is makes errors.Is(err, diagnostics.ErrUnknownAttributeModifier) true.
func (e *UnknownModifierError) Is(target error) bool {
	return target == diagnostics.ErrUnknownAttributeModifier
}

// toOxarenModifiers expands an ItemsAdder attribute_modifiers block into one
// Oxaren modifier per (hand, modifier) pair, in document order. Any unknown
// modifier name fails the whole block.
func toOxarenModifiers(
	itemName string,
	modifiers ordered.Map[ordered.Map[float64]],
	ids IDGenerator,
) ([]oxaren.AttributeModifier, error) {
	if modifiers.Len() == 0 {
		return nil, nil
	}

	var out []oxaren.AttributeModifier
	for _, hand := range modifiers.Pairs() {
		slot := OxarenSlot(hand.Key)
		for _, mod := range hand.Value.Pairs() {
			attribute, ok := OxarenAttribute(mod.Key)
			if !ok {
				return nil, &UnknownModifierError{Name: mod.Key}
			}
			out = append(out, oxaren.AttributeModifier{
				Name:      itemName + "-" + mod.Key,
				Attribute: attribute,
				Amount:    mod.Value,
				Operation: oxaren.OperationAdd,
				UUID:      ids.NewID(),
				Slot:      slot,
			})
		}
	}
	return out, nil
}

// toItemsAdderModifiers folds Oxaren modifiers back into hand → name → amount.
// Modifiers using an operation other than add cannot be expressed and are
// dropped with a warning; so is a second modifier for the same hand and name.
func toItemsAdderModifiers(
	modifiers []oxaren.AttributeModifier,
	loc diagnostics.Location,
	label string,
) (ordered.Map[ordered.Map[float64]], []diagnostics.Diagnostic, error) {
	var out ordered.Map[ordered.Map[float64]]
	var warnings []diagnostics.Diagnostic

	for _, mod := range modifiers {
		name, ok := ItemsAdderModifier(mod.Attribute)
		if !ok {
			return ordered.Map[ordered.Map[float64]]{}, nil, &UnknownModifierError{Name: mod.Attribute}
		}
		if mod.Operation != oxaren.OperationAdd {
			warnings = append(warnings, diagnostics.NewUnsupportedFeatureWarning(loc, label,
				fmt.Sprintf("attribute modifier %q with operation %d", mod.Name, mod.Operation)))
			continue
		}

		hand := ItemsAdderSlot(mod.Slot)
		slot, _ := out.Get(hand)
		if _, dup := slot.Get(name); dup {
			warnings = append(warnings, diagnostics.NewUnsupportedFeatureWarning(loc, label,
				fmt.Sprintf("second %s modifier for %s", name, hand)))
			continue
		}
		slot.Set(name, mod.Amount)
		out.Set(hand, slot)
	}

	return out, warnings, nil
}
