package rewards

import (
	"testing"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/types"
)

func TestDispense_FixedXPAndGold(t *testing.T) {
	creatures := []*types.Creature{
		{Name: "Zombie", XPDrop: 3, GoldDrop: 2},
		{Name: "Orc", XPDrop: 10, GoldDrop: 5},
		{Name: "Troll", XPDrop: 12, GoldDrop: 8},
	}
	for _, c := range creatures {
		for seed := int64(0); seed < 20; seed++ {
			r := Dispense(c, dice.NewRNG(seed))
			if r.XP != c.XPDrop || r.Gold != c.GoldDrop {
				t.Fatalf("%s seed %d: reward = %+v", c.Name, seed, r)
			}
			if r.Item != "" {
				t.Fatalf("%s has no loot but got %q", c.Name, r.Item)
			}
		}
	}
}

func TestDispense_LootFromSet(t *testing.T) {
	c := &types.Creature{Name: "Dark Wizard", XPDrop: 20, GoldDrop: 10, Loot: []string{"great_sword", "wizard_hat"}}
	seen := map[string]int{}
	rng := dice.NewRNG(7)
	for i := 0; i < 1000; i++ {
		seen[Dispense(c, rng).Item]++
	}
	if len(seen) != 2 {
		t.Fatalf("expected both loot entries, got %v", seen)
	}
	for item, n := range seen {
		if n < 400 {
			t.Errorf("%s drawn %d/1000 times, expected roughly half", item, n)
		}
	}
}

func TestReward_Effects(t *testing.T) {
	effs := Reward{XP: 3, Gold: 2, Item: "great_sword"}.Effects()
	want := []types.EffectType{types.EffectXP, types.EffectGold, types.EffectGiveItem}
	if len(effs) != len(want) {
		t.Fatalf("effects = %+v", effs)
	}
	for i, e := range effs {
		if e.Type != want[i] {
			t.Errorf("effect %d = %s, want %s", i, e.Type, want[i])
		}
	}
	if effs[2].Item != "great_sword" {
		t.Errorf("item = %q", effs[2].Item)
	}

	if got := (Reward{}).Effects(); len(got) != 0 {
		t.Errorf("empty reward should produce no effects, got %+v", got)
	}
}

func TestBundle(t *testing.T) {
	effs := Bundle(types.Reward{XP: 50, Gold: 20, Items: []string{"old_map", "healing_potion"}})
	if len(effs) != 4 {
		t.Fatalf("effects = %+v", effs)
	}
	if effs[0].Amount != 50 || effs[1].Amount != 20 {
		t.Errorf("xp/gold = %d/%d", effs[0].Amount, effs[1].Amount)
	}
	if effs[3].Item != "healing_potion" {
		t.Errorf("last item = %q", effs[3].Item)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(types.Reward{XP: 50, Gold: 20, Items: []string{"old_map"}}, catalog.DisplayName)
	if got != "50 XP, 20 gold, Items: Old Map" {
		t.Errorf("Describe = %q", got)
	}
	got = Describe(types.Reward{XP: 5}, catalog.DisplayName)
	if got != "5 XP, 0 gold, Items: None" {
		t.Errorf("Describe = %q", got)
	}
}
