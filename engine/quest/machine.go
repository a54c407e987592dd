package quest

import (
	"fmt"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/rewards"
	"github.com/nathoo/questline/engine/rules"
	"github.com/nathoo/questline/types"
)

// ActiveStory returns the player's active quest if it is a story quest.
func ActiveStory(p *types.Player) *types.Quest {
	if q := p.ActiveQuest; q != nil && q.Kind == types.QuestStory && q.Story != nil {
		return q
	}
	return nil
}

// ActiveCombat returns the player's active quest if it is a combat quest.
func ActiveCombat(p *types.Player) *types.Quest {
	if q := p.ActiveQuest; q != nil && q.Kind == types.QuestCombat && q.Combat != nil {
		return q
	}
	return nil
}

// TriggerStep offers a trigger to the player's active story quest. Only
// the current step is evaluated. On a match the step's side effects are
// returned in order and the step index advances; reaching the last step
// completes the quest. A non-match changes nothing.
func TriggerStep(p *types.Player, trigger types.TriggerType, data map[string]string) (bool, []types.Effect) {
	q := ActiveStory(p)
	if q == nil {
		return false, nil
	}
	step, ok := rules.CurrentStep(q.Story)
	if !ok || !rules.MatchTrigger(step, trigger, data) {
		return false, nil
	}
	return true, progressStep(p, q, step)
}

// progressStep runs one matched step: unlock, narrative, story item,
// reward item, advance. Completion fires when the index reaches the end.
func progressStep(p *types.Player, q *types.Quest, step types.Step) []types.Effect {
	var effs []types.Effect
	if step.UnlockArea != "" {
		effs = append(effs, types.Effect{Type: types.EffectUnlockArea, Area: step.UnlockArea})
	}
	if step.Type == types.TriggerExploration && step.StoryText != "" {
		effs = append(effs, types.Effect{Type: types.EffectReveal, Text: step.StoryText})
	}
	if step.StoryItem != "" {
		effs = append(effs, types.Effect{Type: types.EffectGiveItem, Item: step.StoryItem})
	}
	if step.RewardItem != "" {
		effs = append(effs, types.Effect{Type: types.EffectGiveItem, Item: step.RewardItem})
	}
	q.Story.CurrentStep++

	if q.Story.CurrentStep >= len(q.Story.Steps) {
		effs = append(effs, say("You have completed all the steps in this quest!"))
		return append(effs, completeStory(p, q)...)
	}
	if next, ok := rules.CurrentStep(q.Story); ok && next.Description != "" {
		effs = append(effs, say(next.Description))
	}
	return effs
}

// completeStory grants the reward and hands cleanup to the world: the
// quest's NPCs leave, the hall drops the quest and the next one unlocks.
// Guarded so it can only fire once per quest.
func completeStory(p *types.Player, q *types.Quest) []types.Effect {
	if q.Story.Completed {
		return nil
	}
	q.Story.Completed = true

	effs := completionEffects(q)
	if q.Story.LinkedLocation != "" {
		effs = append(effs, types.Effect{Type: types.EffectRemoveNPCs, Quest: q.ID, Location: q.Story.LinkedLocation})
	}
	effs = append(effs, types.Effect{Type: types.EffectRemoveQuest, Quest: q.ID})
	if q.Story.UnlockQuest != "" {
		effs = append(effs, types.Effect{Type: types.EffectUnlockQuest, Quest: q.Story.UnlockQuest})
	}
	finish(p, q)
	return effs
}

// RecordKill advances the player's combat quest if the kill counts, and
// completes it once the target count is reached.
func RecordKill(p *types.Player, c *types.Creature, difficulty int) (bool, []types.Effect) {
	q := ActiveCombat(p)
	if q == nil || !rules.KillCounts(*q.Combat, c, difficulty) {
		return false, nil
	}
	p.QuestProgress++
	effs := []types.Effect{say(fmt.Sprintf("Quest Progress: %d/%d", p.QuestProgress, q.Combat.Count))}
	if p.QuestProgress < q.Combat.Count {
		return true, effs
	}

	effs = append(effs, completionEffects(q)...)
	effs = append(effs,
		types.Effect{Type: types.EffectRemoveQuest, Quest: q.ID},
		say("Quest completed and rewards granted."),
	)
	finish(p, q)
	return true, effs
}

func completionEffects(q *types.Quest) []types.Effect {
	effs := []types.Effect{
		say("Quest Complete: " + q.Description),
		say("Rewards: " + rewards.Describe(q.Reward, catalog.DisplayName)),
	}
	return append(effs, rewards.Bundle(q.Reward)...)
}

func finish(p *types.Player, q *types.Quest) {
	if p.ActiveQuest == q {
		p.ActiveQuest = nil
	}
	p.QuestProgress = 0
	p.CompletedQuests = append(p.CompletedQuests, q.ID)
}

// Progress describes the player's active quest.
func Progress(p *types.Player) []string {
	q := p.ActiveQuest
	if q == nil {
		return []string{fmt.Sprintf("%s does not have an active quest.", p.Name)}
	}
	out := []string{"Current Quest: " + q.Description}
	switch q.Kind {
	case types.QuestCombat:
		out = append(out, fmt.Sprintf("Progress: %d/%d", p.QuestProgress, q.Combat.Count))
	case types.QuestStory:
		if step, ok := rules.CurrentStep(q.Story); ok {
			out = append(out, fmt.Sprintf("Step %d/%d: %s", q.Story.CurrentStep+1, len(q.Story.Steps), step.Description))
		}
	}
	return out
}

func say(text string) types.Effect {
	return types.Effect{Type: types.EffectSay, Text: text}
}
