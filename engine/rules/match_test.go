package rules

import (
	"testing"

	"github.com/nathoo/questline/types"
)

func TestMatchTrigger(t *testing.T) {
	talk := types.Step{Type: types.TriggerInteraction, Trigger: map[string]string{"npc": "villager"}}
	visit := types.Step{Type: types.TriggerExploration, Trigger: map[string]string{"area": "forest"}}
	bare := types.Step{Type: types.TriggerExploration}

	tests := []struct {
		name    string
		step    types.Step
		trigger types.TriggerType
		data    map[string]string
		want    bool
	}{
		{"npc match", talk, types.TriggerInteraction, map[string]string{"npc": "villager"}, true},
		{"wrong npc", talk, types.TriggerInteraction, map[string]string{"npc": "elder"}, false},
		{"wrong type", talk, types.TriggerExploration, map[string]string{"npc": "villager"}, false},
		{"area match", visit, types.TriggerExploration, map[string]string{"area": "forest"}, true},
		{"wrong area", visit, types.TriggerExploration, map[string]string{"area": "swamp"}, false},
		{"undeclared key", visit, types.TriggerExploration, map[string]string{"npc": "forest"}, false},
		{"extra key", visit, types.TriggerExploration, map[string]string{"area": "forest", "npc": "x"}, false},
		{"no trigger map", bare, types.TriggerExploration, map[string]string{"area": "forest"}, false},
		{"empty data matches type", visit, types.TriggerExploration, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchTrigger(tt.step, tt.trigger, tt.data); got != tt.want {
				t.Errorf("MatchTrigger() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrentStep(t *testing.T) {
	story := &types.StoryLine{Steps: []types.Step{
		{Description: "first"},
		{Description: "second"},
	}}

	step, ok := CurrentStep(story)
	if !ok || step.Description != "first" {
		t.Errorf("step = %+v, %v", step, ok)
	}

	story.CurrentStep = 1
	step, ok = CurrentStep(story)
	if !ok || step.Description != "second" {
		t.Errorf("step = %+v, %v", step, ok)
	}

	story.CurrentStep = 2
	if _, ok := CurrentStep(story); ok {
		t.Error("expected no step past the end")
	}
	if _, ok := CurrentStep(nil); ok {
		t.Error("expected no step for nil story")
	}
}
