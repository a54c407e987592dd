// Package rules holds the predicates that decide quest progress: whether a
// trigger matches a story step and whether a kill counts toward a combat
// goal. Predicates never mutate state.
package rules

import "github.com/nathoo/questline/types"

// MatchTrigger reports whether a trigger of the given type and data
// matches a story step. The type must equal the step's type and every key
// in data must be present in the step's trigger map with the same value.
// A key the step does not declare never matches.
func MatchTrigger(step types.Step, trigger types.TriggerType, data map[string]string) bool {
	if step.Type != trigger {
		return false
	}
	for key, want := range data {
		got, ok := step.Trigger[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// CurrentStep returns the story line's current step, or false when every
// step is done.
func CurrentStep(story *types.StoryLine) (types.Step, bool) {
	if story == nil || story.CurrentStep < 0 || story.CurrentStep >= len(story.Steps) {
		return types.Step{}, false
	}
	return story.Steps[story.CurrentStep], true
}
