package engine

import (
	"fmt"
	"sort"

	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// Status renders the player's character sheet.
func Status(w *state.World) []string {
	p := w.Player
	out := []string{
		fmt.Sprintf("%s - Level %d", p.Name, p.Level),
		fmt.Sprintf("XP: %d/%d", p.XP, player.XPNeeded(p.Level)),
		fmt.Sprintf("Health: %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Attack: %d", p.Attack),
		fmt.Sprintf("Defence: %d", p.BaseDefence),
		fmt.Sprintf("Gold: %d", p.Gold),
		"Weapon: " + gearName(p.Weapon),
		"Armour: " + gearName(p.Armour),
	}

	if len(p.Effects) > 0 {
		kinds := make([]string, 0, len(p.Effects))
		for k := range p.Effects {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			eff := p.Effects[types.PotionEffect(k)]
			out = append(out, fmt.Sprintf("Effect: %s +%d (%d turns left)", k, eff.Value, eff.Duration))
		}
	}
	return append(out, quest.Progress(p)...)
}

func gearName(item *types.Item) string {
	if item == nil {
		return "None"
	}
	return fmt.Sprintf("%s (+%d)", item.Name, item.Value)
}
