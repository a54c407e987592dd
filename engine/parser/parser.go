// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/questline/types"
)

// VerbChoose is the verb for a bare menu number.
const VerbChoose = "choose"

var verbAliases = map[string]string{
	// Look
	"l":        "look",
	"describe": "look",
	"menu":     "look",

	// Movement
	"walk":   "go",
	"move":   "go",
	"head":   "go",
	"travel": "go",
	"visit":  "go",
	"enter":  "go",
	"return": "go",

	// Exploration
	"venture": "explore",
	"search":  "explore",

	// Combat
	"hit":     "attack",
	"fight":   "attack",
	"strike":  "attack",
	"kill":    "attack",
	"run":     "flee",
	"escape":  "flee",
	"retreat": "flee",

	// Items
	"drink":   "use",
	"quaff":   "use",
	"consume": "use",
	"wield":   "equip",
	"wear":    "equip",
	"don":     "equip",
	"remove":  "unequip",
	"doff":    "unequip",

	// Talk
	"ask":      "talk",
	"speak":    "talk",
	"chat":     "talk",
	"converse": "talk",
	"greet":    "talk",

	// Trade
	"purchase": "buy",
	"trade":    "shop",
	"browse":   "shop",

	// Quests
	"take":     "accept",
	"progress": "quest",
	"quests":   "quest",
	"journal":  "quest",
	"drop":     "abandon",
	"forfeit":  "abandon",

	// Miscellaneous
	"inv":   "inventory",
	"i":     "inventory",
	"stats": "status",
	"char":  "status",
	"h":     "help",
	"?":     "help",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "from": true,
	"about": true, "into": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Menu shortcut: a bare number picks a numbered choice.
	if len(words) == 1 {
		if _, err := strconv.Atoi(words[0]); err == nil {
			return types.Intent{Verb: VerbChoose, Object: words[0]}
		}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := words[1:]

	// "go to the quest hall": a leading preposition belongs to the verb.
	if len(rest) > 0 && prepositions[rest[0]] {
		rest = rest[1:]
	}

	// The object is every remaining word, so names like "whispers in the
	// grove" survive intact.
	return types.Intent{
		Verb:   verb,
		Object: strings.Join(stripArticles(rest), " "),
	}
}

// expandMultiWordVerbs handles "look around", "talk to", "put on" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "around" {
			return append([]string{"look"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "put":
		if words[1] == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "take":
		if words[1] == "off" {
			return append([]string{"unequip"}, words[2:]...)
		}
	case "run", "get":
		if words[1] == "away" {
			return []string{"flee"}
		}
	case "go", "return":
		if words[1] == "back" || words[1] == "home" {
			return []string{"go", "home"}
		}
	case "check":
		switch words[1] {
		case "quest", "quests", "progress":
			return []string{"quest"}
		case "status", "stats":
			return []string{"status"}
		}
	}

	return words
}

// stripArticles drops the articles leading an object: "the iron sword"
// becomes "iron sword".
func stripArticles(words []string) []string {
	for len(words) > 0 && articles[words[0]] {
		words = words[1:]
	}
	return words
}
