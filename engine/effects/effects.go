// Package effects implements centralized world mutation via the Apply
// function. Every effect type is one atomic operation, applied in list
// order. No decisions are made here; quests, combat and exploration decide
// what happens and this package makes it so.
package effects

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/engine/inventory"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// RevealLine formats narrative text so presentation layers can spot it
// and pace it: the text is wrapped in single quotes after a speaker label.
func RevealLine(speaker, text string) string {
	return fmt.Sprintf("%s: '%s'", speaker, text)
}

// Apply applies a list of effects to the world, mutating it.
// Returns events emitted and output text collected.
func Apply(w *state.World, effs []types.Effect, log logrus.FieldLogger) ([]types.Event, []string) {
	var events []types.Event
	var output []string
	p := w.Player

	for _, eff := range effs {
		switch eff.Type {
		case types.EffectSay:
			output = append(output, interpolate(eff.Text, w))

		case types.EffectReveal:
			output = append(output, RevealLine("Story", interpolate(eff.Text, w)))
			events = append(events, types.Event{
				Type: "story_revealed",
				Data: map[string]any{"text": eff.Text},
			})

		case types.EffectUnlockArea:
			area, ok := w.Area(eff.Area)
			if !ok {
				log.WithField("area", eff.Area).Warn("unlock references unknown area")
				output = append(output, fmt.Sprintf("Area '%s' could not be found.", eff.Area))
				continue
			}
			if !area.Locked {
				continue
			}
			area.Locked = false
			output = append(output, "Area unlocked: "+area.Def.Name)
			events = append(events, types.Event{
				Type: "area_unlocked",
				Data: map[string]any{"area": area.Def.Key},
			})

		case types.EffectGiveItem:
			item, err := w.Catalog.Item(eff.Item)
			if err != nil {
				log.WithError(err).Warn("grant references unknown item")
				output = append(output, fmt.Sprintf("The item '%s' could not be identified.", eff.Item))
				continue
			}
			output = append(output, inventory.Add(p, item, 1))
			events = append(events, types.Event{
				Type: "item_received",
				Data: map[string]any{"item": item.Key},
			})

		case types.EffectGold:
			player.AdjustGold(p, eff.Amount)
			output = append(output, fmt.Sprintf("%s now has %d gold.", p.Name, p.Gold))
			events = append(events, types.Event{
				Type: "gold_changed",
				Data: map[string]any{"amount": eff.Amount, "gold": p.Gold},
			})

		case types.EffectXP:
			before := p.Level
			output = append(output, player.GainXP(p, eff.Amount, w.Growth)...)
			events = append(events, types.Event{
				Type: "xp_gained",
				Data: map[string]any{"amount": eff.Amount},
			})
			if p.Level > before {
				events = append(events, types.Event{
					Type: "level_up",
					Data: map[string]any{"from": before, "to": p.Level},
				})
			}

		case types.EffectRemoveNPCs:
			removed := removeQuestNPCs(w, eff.Quest, eff.Location)
			if removed > 0 {
				events = append(events, types.Event{
					Type: "npcs_removed",
					Data: map[string]any{"quest": eff.Quest, "location": eff.Location, "count": removed},
				})
			}

		case types.EffectRemoveQuest:
			if w.Hall.Remove(eff.Quest) {
				events = append(events, types.Event{
					Type: "quest_removed",
					Data: map[string]any{"quest": eff.Quest},
				})
			}

		case types.EffectUnlockQuest:
			q, changed := w.Hall.Unlock(eff.Quest)
			if q == nil {
				log.WithField("quest", eff.Quest).Warn("unlock references unknown quest")
				continue
			}
			if changed {
				output = append(output, "New quest unlocked: "+q.Description)
				events = append(events, types.Event{
					Type: "quest_unlocked",
					Data: map[string]any{"quest": q.ID},
				})
			}

		default:
			log.WithField("effect", eff.Type).Warn("unknown effect type")
		}
	}

	return events, output
}

// removeQuestNPCs drops the NPCs a story quest placed at a location: every
// NPC named by one of the quest's interaction steps.
func removeQuestNPCs(w *state.World, questID, locationKey string) int {
	loc, ok := w.Locations[locationKey]
	if !ok {
		return 0
	}
	q := w.Hall.Find(questID)
	if q == nil || q.Story == nil {
		return 0
	}
	tied := map[string]bool{}
	for _, step := range q.Story.Steps {
		if step.Type == types.TriggerInteraction {
			if npc := step.Trigger["npc"]; npc != "" {
				tied[npc] = true
			}
		}
	}
	kept := loc.NPCs[:0]
	removed := 0
	for _, npc := range loc.NPCs {
		if tied[npc.Trigger] {
			removed++
			continue
		}
		kept = append(kept, npc)
	}
	loc.NPCs = kept
	return removed
}

// interpolate replaces {player} and {gold} in say text.
func interpolate(text string, w *state.World) string {
	if !strings.Contains(text, "{") {
		return text
	}
	r := strings.NewReplacer(
		"{player}", w.Player.Name,
		"{gold}", fmt.Sprint(w.Player.Gold),
	)
	return r.Replace(text)
}

// Operand returns the field that matters for an effect's type, for traces.
func Operand(e types.Effect) string {
	switch e.Type {
	case types.EffectGold, types.EffectXP:
		return fmt.Sprint(e.Amount)
	case types.EffectUnlockArea:
		return e.Area
	case types.EffectGiveItem:
		return e.Item
	case types.EffectRemoveNPCs:
		return e.Quest + "@" + e.Location
	case types.EffectRemoveQuest, types.EffectUnlockQuest:
		return e.Quest
	}
	return fmt.Sprintf("%q", e.Text)
}
