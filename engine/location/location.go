// Package location builds the menu a player sees at each hub. Choices are
// plain types.Action values; the engine decides what each one does.
package location

import (
	"fmt"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/engine/rewards"
	"github.com/nathoo/questline/engine/rules"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// Menus opened from the home location.
const (
	MenuStatus    = "status"
	MenuInventory = "inventory"
	MenuShop      = "shop"
)

// Choices returns the numbered choices available at the player's location.
func Choices(w *state.World) []types.Action {
	switch w.Location {
	case state.Home:
		return []types.Action{
			{Kind: types.ActionGo, Target: state.Village, Label: "Visit the village"},
			{Kind: types.ActionGo, Target: state.Exploration, Label: "Explore an area"},
			{Kind: types.ActionMenu, Target: MenuStatus, Label: "Check Status"},
			{Kind: types.ActionMenu, Target: MenuInventory, Label: "Manage inventory"},
		}

	case state.Village:
		var out []types.Action
		if loc := w.Current(); loc != nil {
			for _, npc := range loc.NPCs {
				if offered(w, npc) {
					out = append(out, types.Action{Kind: types.ActionTalk, Target: npc.Key, Label: "Talk to " + npc.Name})
				}
			}
		}
		for _, s := range w.ShopsAt(state.Village) {
			out = append(out, types.Action{Kind: types.ActionMenu, Target: MenuShop + ":" + s.Key, Label: "Visit the " + s.Name})
		}
		return append(out,
			types.Action{Kind: types.ActionGo, Target: state.QuestHall, Label: "Go to the Quest Hall"},
			types.Action{Kind: types.ActionGo, Target: state.Home, Label: "Return home"},
		)

	case state.QuestHall:
		var out []types.Action
		for _, q := range w.Hall.Available() {
			label := fmt.Sprintf("%s - Rewards: %s", q.Description, rewards.Describe(q.Reward, w.Catalog.ItemName))
			out = append(out, types.Action{Kind: types.ActionAccept, Target: q.ID, Label: label})
		}
		return append(out, types.Action{Kind: types.ActionGo, Target: state.Village, Label: "Return to Village"})

	case state.Exploration:
		var out []types.Action
		for _, a := range w.AreasInOrder() {
			label := fmt.Sprintf("%s (Difficulty: %d)", a.Def.Name, a.Def.Difficulty)
			if a.Locked {
				label = a.Def.Name + " (Locked)"
			}
			out = append(out, types.Action{Kind: types.ActionExplore, Target: a.Def.Key, Label: label})
		}
		return append(out, types.Action{Kind: types.ActionGo, Target: state.Home, Label: "Return home"})
	}
	return nil
}

// Describe renders the location: its description, any location-specific
// header, and the numbered choices.
func Describe(w *state.World) []string {
	loc := w.Current()
	if loc == nil {
		return nil
	}
	out := []string{loc.Description}
	if w.Location == state.QuestHall {
		out = append(out, questHeader(w.Player)...)
	}
	for i, a := range Choices(w) {
		out = append(out, fmt.Sprintf("%d. %s", i+1, a.Label))
	}
	return out
}

func questHeader(p *types.Player) []string {
	if p.ActiveQuest == nil {
		return []string{"You have no active quest at the moment."}
	}
	return quest.Progress(p)
}

// offered reports whether an NPC's Talk choice belongs in the menu: it has
// not spoken yet, or the active story step is waiting on it again.
func offered(w *state.World, npc *types.NPC) bool {
	if !npc.Interacted {
		return true
	}
	q := quest.ActiveStory(w.Player)
	if q == nil {
		return false
	}
	step, ok := rules.CurrentStep(q.Story)
	return ok && step.Type == types.TriggerInteraction && step.Trigger["npc"] == npc.Trigger
}

// Choice returns the n-th (1-based) choice at the current location.
func Choice(w *state.World, n int) (types.Action, bool) {
	choices := Choices(w)
	if n < 1 || n > len(choices) {
		return types.Action{}, false
	}
	return choices[n-1], true
}

// Match finds a choice whose target or label names the given text.
func Match(w *state.World, kind types.ActionKind, name string) (types.Action, bool) {
	key := catalog.Key(name)
	for _, a := range Choices(w) {
		if a.Kind != kind {
			continue
		}
		if a.Target == key || catalog.Key(a.Label) == key {
			return a, true
		}
	}
	return types.Action{}, false
}
