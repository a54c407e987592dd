// Package shop buys and sells items against a shop's stock list.
package shop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/inventory"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/types"
)

// Trade errors. The engine turns each into a line for the player.
var (
	ErrNotStocked    = errors.New("item not available")
	ErrNotEnoughGold = errors.New("not enough gold")
	ErrNotOwned      = errors.New("item not in inventory")
	ErrNotAccepted   = errors.New("this shop does not accept that item")
)

// Categories in display order.
var Categories = []string{"weapons", "armours", "potions"}

// Find returns the stock entry for an item key or name.
func Find(s *types.ShopDef, name string) (types.ShopEntry, bool) {
	key := catalog.Key(name)
	for _, e := range s.Stock {
		if e.Item == key {
			return e, true
		}
	}
	return types.ShopEntry{}, false
}

// SellPrice is what the shop pays for an item it stocks: half its price,
// rounded down.
func SellPrice(e types.ShopEntry) int {
	return e.Price / 2
}

// Buy moves gold from the player to the shop in exchange for one item.
func Buy(p *types.Player, s *types.ShopDef, cat *catalog.Catalog, name string) (string, error) {
	e, ok := Find(s, name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotStocked, name)
	}
	item, err := cat.Item(e.Item)
	if err != nil {
		return "", fmt.Errorf("shop %s: %w", s.Key, err)
	}
	if p.Gold < e.Price {
		return "", ErrNotEnoughGold
	}
	inventory.Add(p, item, 1)
	player.AdjustGold(p, -e.Price)
	return fmt.Sprintf("Bought %s for %d gold.", item.Name, e.Price), nil
}

// Sell removes one item from the player's inventory and pays the sell
// price. The shop only accepts items it stocks.
func Sell(p *types.Player, s *types.ShopDef, name string) (string, error) {
	key := catalog.Key(name)
	slot, ok := p.Inventory[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotOwned, name)
	}
	e, ok := Find(s, key)
	if !ok {
		return "", ErrNotAccepted
	}
	price := SellPrice(e)
	itemName := slot.Item.Name
	inventory.Remove(p, key, 1)
	player.AdjustGold(p, price)
	return fmt.Sprintf("Sold %s for %d gold.", itemName, price), nil
}

// Listing renders the stock grouped by category.
func Listing(s *types.ShopDef, cat *catalog.Catalog) []string {
	out := []string{"Here are the items for sale:"}
	for _, c := range Categories {
		out = append(out, strings.ToUpper(c[:1])+c[1:]+":")
		n := 0
		for _, e := range s.Stock {
			if e.Category != c {
				continue
			}
			n++
			line := fmt.Sprintf("- %s - %d gold", cat.ItemName(e.Item), e.Price)
			if item, err := cat.Item(e.Item); err == nil && item.Description != "" {
				line = fmt.Sprintf("- %s - %s - %d gold", item.Name, item.Description, e.Price)
			}
			out = append(out, line)
		}
		if n == 0 {
			out = append(out, "No items available in this category.")
		}
	}
	return out
}
