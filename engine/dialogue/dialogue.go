// Package dialogue places story NPCs in locations and runs conversations
// with them. A story quest's interaction steps name the NPCs it needs; they
// appear at the quest's linked location while the quest is active.
package dialogue

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/effects"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/engine/rules"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// NPCs builds the cast of a story quest in first-appearance order. Each
// NPC carries the dialogue of every interaction step that names it.
func NPCs(q *types.Quest) []*types.NPC {
	if q == nil || q.Story == nil {
		return nil
	}
	var cast []*types.NPC
	byKey := map[string]*types.NPC{}
	for _, step := range q.Story.Steps {
		if step.Type != types.TriggerInteraction {
			continue
		}
		key := step.Trigger["npc"]
		if key == "" {
			continue
		}
		npc, ok := byKey[key]
		if !ok {
			npc = &types.NPC{Key: key, Name: catalog.DisplayName(key), Trigger: key}
			byKey[key] = npc
			cast = append(cast, npc)
		}
		npc.Dialogue = append(npc.Dialogue, step.Dialogue)
	}
	return cast
}

// Sync resets every location's NPCs and repopulates the location linked to
// the player's active story quest.
func Sync(w *state.World) {
	for _, loc := range w.Locations {
		loc.NPCs = nil
	}
	q := quest.ActiveStory(w.Player)
	if q == nil || q.Story.LinkedLocation == "" {
		return
	}
	if loc, ok := w.Locations[q.Story.LinkedLocation]; ok {
		loc.NPCs = NPCs(q)
	}
}

// Line returns what the NPC says right now. An NPC's own dialogue list is
// indexed by how many of its interaction steps the story has passed; once
// all of them are behind the player it only offers thanks.
func Line(npc *types.NPC, p *types.Player) string {
	q := quest.ActiveStory(p)
	if q == nil || npc.Trigger == "" {
		return nothingMore(npc)
	}
	spoken := 0
	for i, step := range q.Story.Steps {
		if i >= q.Story.CurrentStep {
			break
		}
		if step.Type == types.TriggerInteraction && step.Trigger["npc"] == npc.Trigger {
			spoken++
		}
	}
	if spoken >= len(npc.Dialogue) {
		return effects.RevealLine(npc.Name, "Thank you for your help, brave adventurer!")
	}
	step, ok := rules.CurrentStep(q.Story)
	if !ok || step.Type != types.TriggerInteraction || step.Trigger["npc"] != npc.Trigger {
		return nothingMore(npc)
	}
	if npc.Dialogue[spoken] == "" {
		return nothingMore(npc)
	}
	return effects.RevealLine(npc.Name, npc.Dialogue[spoken])
}

// Interact talks to an NPC. When the active story quest is waiting on this
// NPC, its line is revealed and the step advances; otherwise the NPC says
// whatever Line gives.
func Interact(w *state.World, npc *types.NPC, log logrus.FieldLogger) types.Result {
	p := w.Player
	output := []string{Line(npc, p)}
	q := quest.ActiveStory(p)
	if npc.Trigger == "" || q == nil {
		return types.Result{Output: output}
	}
	step, ok := rules.CurrentStep(q.Story)
	if !ok || step.Type != types.TriggerInteraction || step.Trigger["npc"] != npc.Trigger {
		return types.Result{Output: output}
	}

	progressed, effs := quest.TriggerStep(p, types.TriggerInteraction, map[string]string{"npc": npc.Trigger})
	if !progressed {
		log.WithFields(logrus.Fields{"npc": npc.Key, "quest": q.ID}).Debug("trigger did not match, step not progressed")
		return types.Result{Output: output}
	}
	npc.Interacted = true
	events := []types.Event{{
		Type: "npc_interacted",
		Data: map[string]any{"npc": npc.Key, "quest": q.ID},
	}}
	evts, out := effects.Apply(w, effs, log)
	return types.Result{
		Effects: effs,
		Events:  append(events, evts...),
		Output:  append(output, out...),
	}
}

func nothingMore(npc *types.NPC) string {
	return fmt.Sprintf("%s has nothing more to say right now.", npc.Name)
}
