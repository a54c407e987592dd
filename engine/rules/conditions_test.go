package rules

import (
	"testing"

	"github.com/nathoo/questline/types"
)

var (
	zombie      = &types.Creature{Key: "zombie", Name: "Zombie", Type: "Undead"}
	fairyQueen  = &types.Creature{Key: "fairy_queen", Name: "Fairy Queen", Type: "Ethereal"}
	goblinScout = &types.Creature{Key: "goblin", Name: "Goblin", Type: "Humanoid"}
)

func TestMatchesTarget(t *testing.T) {
	tests := []struct {
		target string
		c      *types.Creature
		want   bool
	}{
		{"any", zombie, true},
		{"ANY", goblinScout, true},
		{"zombie", zombie, true},
		{"Zombie", zombie, true},
		{"undead", zombie, true},
		{"skeleton", zombie, false},
		{"fairy queen", fairyQueen, true},
		{"fairy_queen", fairyQueen, true},
		{"ethereal", fairyQueen, true},
		{"fairy", fairyQueen, false},
		{"humanoid", zombie, false},
	}
	for _, tt := range tests {
		if got := MatchesTarget(tt.target, tt.c); got != tt.want {
			t.Errorf("MatchesTarget(%q, %s) = %v, want %v", tt.target, tt.c.Key, got, tt.want)
		}
	}
}

func TestKillCounts(t *testing.T) {
	goal := types.CombatGoal{Target: "zombie", Count: 2, MinDifficulty: 2}

	tests := []struct {
		name       string
		c          *types.Creature
		difficulty int
		want       bool
	}{
		{"below min difficulty", zombie, 1, false},
		{"at min difficulty", zombie, 2, true},
		{"above min difficulty", zombie, 3, true},
		{"wrong creature", goblinScout, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KillCounts(goal, tt.c, tt.difficulty); got != tt.want {
				t.Errorf("KillCounts() = %v, want %v", got, tt.want)
			}
		})
	}

	anyGoal := types.CombatGoal{Target: "any", Count: 5}
	if !KillCounts(anyGoal, goblinScout, 0) {
		t.Error("wildcard goal with no minimum should count every kill")
	}
}
