package parser

import (
	"testing"

	"github.com/nathoo/questline/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Menu numbers
		{
			name:  "bare number",
			input: "3",
			want:  types.Intent{Verb: VerbChoose, Object: "3"},
		},
		{
			name:  "padded number",
			input: "  12 ",
			want:  types.Intent{Verb: VerbChoose, Object: "12"},
		},

		// Basic verbs (no object)
		{
			name:  "look",
			input: "look",
			want:  types.Intent{Verb: "look"},
		},
		{
			name:  "attack",
			input: "ATTACK",
			want:  types.Intent{Verb: "attack"},
		},

		// Verb aliases
		{
			name:  "l → look",
			input: "l",
			want:  types.Intent{Verb: "look"},
		},
		{
			name:  "i → inventory",
			input: "i",
			want:  types.Intent{Verb: "inventory"},
		},
		{
			name:  "hit → attack",
			input: "hit",
			want:  types.Intent{Verb: "attack"},
		},
		{
			name:  "run → flee",
			input: "run",
			want:  types.Intent{Verb: "flee"},
		},
		{
			name:  "drink potion → use potion",
			input: "drink healing potion",
			want:  types.Intent{Verb: "use", Object: "healing potion"},
		},
		{
			name:  "wield → equip",
			input: "wield the iron sword",
			want:  types.Intent{Verb: "equip", Object: "iron sword"},
		},
		{
			name:  "stats → status",
			input: "stats",
			want:  types.Intent{Verb: "status"},
		},

		// Multi-word verbs
		{
			name:  "talk to",
			input: "talk to the village elder",
			want:  types.Intent{Verb: "talk", Object: "village elder"},
		},
		{
			name:  "take off",
			input: "take off leather armour",
			want:  types.Intent{Verb: "unequip", Object: "leather armour"},
		},
		{
			name:  "run away",
			input: "run away",
			want:  types.Intent{Verb: "flee"},
		},
		{
			name:  "go back",
			input: "go back",
			want:  types.Intent{Verb: "go", Object: "home"},
		},
		{
			name:  "check quest",
			input: "check quest",
			want:  types.Intent{Verb: "quest"},
		},

		// Leading prepositions
		{
			name:  "go to the quest hall",
			input: "go to the quest hall",
			want:  types.Intent{Verb: "go", Object: "quest hall"},
		},
		{
			name:  "return to village",
			input: "return to village",
			want:  types.Intent{Verb: "go", Object: "village"},
		},
		{
			name:  "explore forest",
			input: "explore the forest",
			want:  types.Intent{Verb: "explore", Object: "forest"},
		},

		// Names keep their inner words
		{
			name:  "quest name with preposition",
			input: "accept whispers in the grove",
			want:  types.Intent{Verb: "accept", Object: "whispers in the grove"},
		},
		{
			name:  "item name with preposition",
			input: "buy the potion of healing",
			want:  types.Intent{Verb: "buy", Object: "potion of healing"},
		},
		{
			name:  "area name with article",
			input: "explore the tower of the moon",
			want:  types.Intent{Verb: "explore", Object: "tower of the moon"},
		},
		{
			name:  "accept quest",
			input: "accept zombie hunt",
			want:  types.Intent{Verb: "accept", Object: "zombie hunt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
