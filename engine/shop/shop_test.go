package shop

import (
	"errors"
	"testing"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/inventory"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/types"
)

func fixture() (*types.Player, *types.ShopDef, *catalog.Catalog) {
	c := catalog.New()
	c.Items["iron_sword"] = &types.Item{Key: "iron_sword", Name: "Iron Sword", Kind: types.ItemWeapon, Value: 3, Description: "A sturdy blade."}
	c.Items["healing_potion"] = &types.Item{Key: "healing_potion", Name: "Healing Potion", Kind: types.ItemPotion, Effect: types.PotionHeal, Value: 10}
	c.Items["old_map"] = &types.Item{Key: "old_map", Name: "Old Map", Kind: types.ItemMisc}
	s := &types.ShopDef{Key: "general", Name: "Adventurer's Shop", Stock: []types.ShopEntry{
		{Category: "weapons", Item: "iron_sword", Price: 25},
		{Category: "potions", Item: "healing_potion", Price: 7},
	}}
	return player.New(types.PlayerDef{Name: "Hero", Gold: 15}), s, c
}

func TestBuy(t *testing.T) {
	p, s, c := fixture()
	msg, err := Buy(p, s, c, "Healing Potion")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Bought Healing Potion for 7 gold." || p.Gold != 8 {
		t.Errorf("msg=%q gold=%d", msg, p.Gold)
	}
	if inventory.Count(p, "healing_potion") != 1 {
		t.Error("potion should be in the inventory")
	}
}

func TestBuy_Errors(t *testing.T) {
	p, s, c := fixture()
	if _, err := Buy(p, s, c, "iron_sword"); !errors.Is(err, ErrNotEnoughGold) {
		t.Errorf("err = %v, want ErrNotEnoughGold", err)
	}
	if p.Gold != 15 {
		t.Errorf("failed purchase changed gold to %d", p.Gold)
	}
	if _, err := Buy(p, s, c, "dragon_egg"); !errors.Is(err, ErrNotStocked) {
		t.Errorf("err = %v, want ErrNotStocked", err)
	}
}

func TestSell(t *testing.T) {
	p, s, c := fixture()
	p.Gold = 100
	if _, err := Buy(p, s, c, "iron_sword"); err != nil {
		t.Fatal(err)
	}
	item, _ := c.Item("iron_sword")
	inventory.Equip(p, item)

	msg, err := Sell(p, s, "Iron Sword")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Sold Iron Sword for 12 gold." || p.Gold != 87 {
		t.Errorf("msg=%q gold=%d", msg, p.Gold)
	}
	if p.Weapon != nil {
		t.Error("selling the last equipped copy unequips it")
	}
}

func TestSell_Errors(t *testing.T) {
	p, s, c := fixture()
	if _, err := Sell(p, s, "iron_sword"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("err = %v, want ErrNotOwned", err)
	}
	item, _ := c.Item("old_map")
	inventory.Add(p, item, 1)
	if _, err := Sell(p, s, "old_map"); !errors.Is(err, ErrNotAccepted) {
		t.Errorf("err = %v, want ErrNotAccepted", err)
	}
	if !inventory.Has(p, "old_map") {
		t.Error("refused sale must keep the item")
	}
}

func TestListing(t *testing.T) {
	_, s, c := fixture()
	got := Listing(s, c)
	want := []string{
		"Here are the items for sale:",
		"Weapons:",
		"- Iron Sword - A sturdy blade. - 25 gold",
		"Armours:",
		"No items available in this category.",
		"Potions:",
		"- Healing Potion - 7 gold",
	}
	if len(got) != len(want) {
		t.Fatalf("listing = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
