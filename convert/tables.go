package convert

import (
	"regexp"

	"github.com/oria-mc/oria/schema/itemsadder"
	"github.com/oria-mc/oria/schema/oxaren"
)

// reservedNamespaces are internal ItemsAdder namespaces that never hold user
// items.
var reservedNamespaces = map[string]struct{}{
	"_common":     {},
	"_iainternal": {},
}

// IsReservedNamespace reports whether namespace is excluded from conversion.
func IsReservedNamespace(namespace string) bool {
	_, ok := reservedNamespaces[namespace]
	return ok
}

var namespacePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidNamespace reports whether namespace uses the ItemsAdder namespace
// charset. Valid namespaces are safe to use as a single path element.
func ValidNamespace(namespace string) bool {
	return namespacePattern.MatchString(namespace)
}

// tablePair is one row of a bidirectional lookup table.
type tablePair struct {
	itemsAdder string
	oxaren     string
}

// attributeTable translates ItemsAdder modifier names to Oxaren attribute
// identifiers. Both columns are unique, so the table inverts cleanly.
var attributeTable = newTable([]tablePair{
	{"attackDamage", "GENERIC_ATTACK_DAMAGE"},
	{"attackSpeed", "GENERIC_ATTACK_SPEED"},
	{"maxHealth", "GENERIC_MAX_HEALTH"},
	{"movementSpeed", "GENERIC_MOVEMENT_SPEED"},
	{"armor", "GENERIC_ARMOR"},
	{"armorToughness", "GENERIC_ARMOR_TOUGHNESS"},
	{"attackKnockback", "GENERIC_ATTACK_KNOCKBACK"},
	{"luck", "GENERIC_LUCK"},
	{"knockbackResistance", "GENERIC_KNOCKBACK_RESISTANCE"},
})

// slotTable translates hand slots. Unlisted keys fall back to the off hand
// in both directions.
var slotTable = newTable([]tablePair{
	{itemsadder.SlotMainHand, oxaren.SlotHand},
	{itemsadder.SlotOffHand, oxaren.SlotOffHand},
})

type table struct {
	rows      []tablePair
	toOxaren  map[string]string
	toItemsAd map[string]string
}

func newTable(rows []tablePair) table {
	t := table{
		rows:      rows,
		toOxaren:  make(map[string]string, len(rows)),
		toItemsAd: make(map[string]string, len(rows)),
	}
	for _, r := range rows {
		t.toOxaren[r.itemsAdder] = r.oxaren
		t.toItemsAd[r.oxaren] = r.itemsAdder
	}
	return t
}

// OxarenAttribute returns the Oxaren attribute for an ItemsAdder modifier name.
func OxarenAttribute(modifier string) (string, bool) {
	attr, ok := attributeTable.toOxaren[modifier]
	return attr, ok
}

// ItemsAdderModifier returns the ItemsAdder modifier name for an Oxaren attribute.
func ItemsAdderModifier(attribute string) (string, bool) {
	name, ok := attributeTable.toItemsAd[attribute]
	return name, ok
}

// OxarenSlot maps an ItemsAdder hand key to an Oxaren slot.
func OxarenSlot(hand string) string {
	if slot, ok := slotTable.toOxaren[hand]; ok {
		return slot
	}
	return oxaren.SlotOffHand
}

// ItemsAdderSlot maps an Oxaren slot to an ItemsAdder hand key.
func ItemsAdderSlot(slot string) string {
	if hand, ok := slotTable.toItemsAd[slot]; ok {
		return hand
	}
	return itemsadder.SlotOffHand
}

// AttributeModifierNames lists the ItemsAdder modifier names in table order.
func AttributeModifierNames() []string {
	names := make([]string, len(attributeTable.rows))
	for i, r := range attributeTable.rows {
		names[i] = r.itemsAdder
	}
	return names
}
