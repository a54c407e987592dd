// Package rewards converts defeated creatures and completed quests into
// grants. Computing a reward is pure; applying it is expressed as effects
// so the same ordered mutation path serves combat and quests.
package rewards

import (
	"fmt"
	"strings"

	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/types"
)

// Reward is what a defeated creature yields. Item is empty when the
// creature carries no loot.
type Reward struct {
	XP   int
	Gold int
	Item string
}

// Dispense returns a creature's fixed xp and gold drop and, if it has
// loot, one entry chosen uniformly at random.
func Dispense(c *types.Creature, rng *dice.RNG) Reward {
	r := Reward{XP: c.XPDrop, Gold: c.GoldDrop}
	if len(c.Loot) > 0 {
		r.Item = c.Loot[rng.Pick(len(c.Loot))]
	}
	return r
}

// Lines describes a creature reward for display.
func (r Reward) Lines(itemName func(string) string) []string {
	out := []string{"Rewards:"}
	if r.XP > 0 {
		out = append(out, fmt.Sprintf("- XP: %d", r.XP))
	}
	if r.Gold > 0 {
		out = append(out, fmt.Sprintf("- Gold: %d", r.Gold))
	}
	if r.Item != "" {
		out = append(out, fmt.Sprintf("- Item: %s", itemName(r.Item)))
	}
	return out
}

// Effects returns the ordered grants for a creature reward: xp, gold, item.
func (r Reward) Effects() []types.Effect {
	var effs []types.Effect
	if r.XP > 0 {
		effs = append(effs, types.Effect{Type: types.EffectXP, Amount: r.XP})
	}
	if r.Gold > 0 {
		effs = append(effs, types.Effect{Type: types.EffectGold, Amount: r.Gold})
	}
	if r.Item != "" {
		effs = append(effs, types.Effect{Type: types.EffectGiveItem, Item: r.Item})
	}
	return effs
}

// Bundle returns the ordered grants for a quest reward bundle.
func Bundle(r types.Reward) []types.Effect {
	var effs []types.Effect
	if r.XP > 0 {
		effs = append(effs, types.Effect{Type: types.EffectXP, Amount: r.XP})
	}
	if r.Gold > 0 {
		effs = append(effs, types.Effect{Type: types.EffectGold, Amount: r.Gold})
	}
	for _, item := range r.Items {
		effs = append(effs, types.Effect{Type: types.EffectGiveItem, Item: item})
	}
	return effs
}

// Describe formats a quest reward bundle:
// "50 XP, 20 gold, Items: Old Map".
func Describe(r types.Reward, itemName func(string) string) string {
	items := "None"
	if len(r.Items) > 0 {
		names := make([]string, len(r.Items))
		for i, key := range r.Items {
			names[i] = itemName(key)
		}
		items = strings.Join(names, ", ")
	}
	return fmt.Sprintf("%d XP, %d gold, Items: %s", r.XP, r.Gold, items)
}
