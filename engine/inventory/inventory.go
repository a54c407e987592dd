// Package inventory implements the player's item bookkeeping: stacking,
// removal, potion use and weapon/armour equipment. What an item can do is
// decided by its Kind alone.
package inventory

import (
	"fmt"
	"sort"

	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/types"
)

// Category display names, in display order.
var Categories = []string{"Weapons", "Armours", "Potions", "Miscellaneous"}

// CanEquip reports whether an item occupies an equipment slot.
func CanEquip(item *types.Item) bool {
	return item.Kind == types.ItemWeapon || item.Kind == types.ItemArmour
}

// CanUse reports whether an item is consumed on use.
func CanUse(item *types.Item) bool {
	return item.Kind == types.ItemPotion
}

// CategoryOf returns the display category for an item.
func CategoryOf(item *types.Item) string {
	switch item.Kind {
	case types.ItemWeapon:
		return "Weapons"
	case types.ItemArmour:
		return "Armours"
	case types.ItemPotion:
		return "Potions"
	default:
		return "Miscellaneous"
	}
}

// Add puts qty copies of an item into the inventory, stacking by key.
func Add(p *types.Player, item *types.Item, qty int) string {
	if qty <= 0 {
		qty = 1
	}
	if slot, ok := p.Inventory[item.Key]; ok {
		slot.Quantity += qty
	} else {
		p.Inventory[item.Key] = &types.InventorySlot{Item: item, Quantity: qty}
	}
	return fmt.Sprintf("%s has been added to your inventory.", item.Name)
}

// Remove takes qty copies of an item out of the inventory. Removing the
// last copy of an equipped item unequips it first. Returns false when the
// item is not carried.
func Remove(p *types.Player, key string, qty int) bool {
	slot, ok := p.Inventory[key]
	if !ok {
		return false
	}
	if qty <= 0 {
		qty = 1
	}
	if slot.Quantity > qty {
		slot.Quantity -= qty
		return true
	}
	if p.Weapon == slot.Item {
		Unequip(p, types.ItemWeapon)
	}
	if p.Armour == slot.Item {
		Unequip(p, types.ItemArmour)
	}
	delete(p.Inventory, key)
	return true
}

// Has reports whether the player carries at least one of an item.
func Has(p *types.Player, key string) bool {
	_, ok := p.Inventory[key]
	return ok
}

// Count returns how many of an item the player carries.
func Count(p *types.Player, key string) int {
	if slot, ok := p.Inventory[key]; ok {
		return slot.Quantity
	}
	return 0
}

// UseResult describes the outcome of using an inventory item.
type UseResult struct {
	// Acted is true when something changed: a potion was drunk or a
	// weapon/armour was equipped.
	Acted   bool
	Message string
}

// Use uses or equips an item from the inventory by key.
func Use(p *types.Player, key string) UseResult {
	slot, ok := p.Inventory[key]
	if !ok {
		return UseResult{Message: fmt.Sprintf("Item '%s' is not in your inventory.", key)}
	}
	item := slot.Item

	switch {
	case CanEquip(item):
		return UseResult{Acted: true, Message: Equip(p, item)}

	case CanUse(item):
		var msg string
		switch item.Effect {
		case types.PotionHeal:
			healed := player.Heal(p, item.Value)
			msg = fmt.Sprintf("%s used %s and healed %d health.", p.Name, item.Name, healed)
		case types.PotionStrengthBoost:
			if player.HasEffect(p, types.PotionStrengthBoost) {
				return UseResult{Message: "You already have an active strength boost. Wait until it wears off to use another."}
			}
			player.AddEffect(p, types.PotionStrengthBoost, item.Value, item.Duration)
			msg = fmt.Sprintf("%s gained a temporary %s effect.", p.Name, item.Name)
		default:
			return UseResult{Message: fmt.Sprintf("%s has no effect.", item.Name)}
		}
		slot.Quantity--
		if slot.Quantity <= 0 {
			delete(p.Inventory, key)
		}
		return UseResult{Acted: true, Message: msg}

	default:
		return UseResult{Message: fmt.Sprintf("%s cannot be used.", item.Name)}
	}
}

// Equip puts a weapon or armour in its slot, replacing whatever was there.
// Base stats move by the difference.
func Equip(p *types.Player, item *types.Item) string {
	switch item.Kind {
	case types.ItemWeapon:
		if p.Weapon != nil {
			p.BaseAttack -= p.Weapon.Value
		}
		p.Weapon = item
		p.BaseAttack += item.Value
		p.Attack = p.BaseAttack
		return fmt.Sprintf("%s equipped %s, gaining +%d attack.", p.Name, item.Name, item.Value)
	case types.ItemArmour:
		if p.Armour != nil {
			p.BaseDefence -= p.Armour.Value
		}
		p.Armour = item
		p.BaseDefence += item.Value
		return fmt.Sprintf("%s equipped %s, gaining +%d defence.", p.Name, item.Name, item.Value)
	default:
		return fmt.Sprintf("%s cannot be equipped.", item.Name)
	}
}

// Unequip empties the weapon or armour slot.
func Unequip(p *types.Player, kind types.ItemKind) string {
	switch kind {
	case types.ItemWeapon:
		if p.Weapon == nil {
			return "You have no weapon equipped."
		}
		item := p.Weapon
		p.BaseAttack -= item.Value
		p.Attack = p.BaseAttack
		p.Weapon = nil
		return fmt.Sprintf("%s unequipped %s, losing -%d attack.", p.Name, item.Name, item.Value)
	case types.ItemArmour:
		if p.Armour == nil {
			return "You have no armour equipped."
		}
		item := p.Armour
		p.BaseDefence -= item.Value
		p.Armour = nil
		return fmt.Sprintf("%s unequipped %s, losing -%d defence.", p.Name, item.Name, item.Value)
	default:
		return "Only weapons and armour can be unequipped."
	}
}

// Categorise groups the inventory by display category. Slots within a
// category are sorted by item name.
func Categorise(p *types.Player) map[string][]*types.InventorySlot {
	out := make(map[string][]*types.InventorySlot, len(Categories))
	for _, slot := range p.Inventory {
		cat := CategoryOf(slot.Item)
		out[cat] = append(out[cat], slot)
	}
	for _, slots := range out {
		sort.Slice(slots, func(i, j int) bool { return slots[i].Item.Name < slots[j].Item.Name })
	}
	return out
}

// Describe renders the inventory as display lines.
func Describe(p *types.Player) []string {
	if len(p.Inventory) == 0 {
		return []string{"Your inventory is empty."}
	}
	grouped := Categorise(p)
	var out []string
	for _, cat := range Categories {
		slots := grouped[cat]
		if len(slots) == 0 {
			continue
		}
		out = append(out, cat+":")
		for _, slot := range slots {
			line := "  " + slot.Item.Name
			if slot.Quantity > 1 {
				line += fmt.Sprintf(" (x%d)", slot.Quantity)
			}
			if slot.Item == p.Weapon || slot.Item == p.Armour {
				line += " (Equipped)"
			}
			if slot.Item.Description != "" {
				line += " - " + slot.Item.Description
			}
			out = append(out, line)
		}
	}
	return out
}
