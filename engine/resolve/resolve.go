// Package resolve maps names typed by the player to catalog keys. Each
// command resolves against its own candidate set: carried items, NPCs in
// the room, areas, quests on offer or a shop's stock.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// Candidate is one thing a name may refer to.
type Candidate struct {
	Key  string
	Name string
}

// AmbiguityError indicates multiple candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no candidate matched a name.
type NotFoundError struct {
	Name string
	What string
}

func (e *NotFoundError) Error() string {
	if e.What == "" {
		return fmt.Sprintf("there is no %q here", e.Name)
	}
	return fmt.Sprintf("there is no %s called %q", e.What, e.Name)
}

// Resolve picks the single candidate a name refers to.
func Resolve(name string, candidates []Candidate) (string, error) {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	// 1. Exact key match wins outright.
	key := catalog.Key(nameLower)
	for _, c := range candidates {
		if c.Key == key {
			return c.Key, nil
		}
	}

	// 2. Name matches, exact or by a single word.
	var matches []Candidate
	for _, c := range candidates {
		if matchesName(c, nameLower) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0].Key, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		sort.Strings(names)
		return "", &AmbiguityError{Name: name, Candidates: names}
	}
}

// matchesName checks a candidate's display name against the query
// (case-insensitive). "potion" matches "healing potion"; "elder" matches
// "village elder".
func matchesName(c Candidate, nameLower string) bool {
	entityNameLower := strings.ToLower(c.Name)
	if entityNameLower == nameLower {
		return true
	}
	for _, word := range strings.Fields(entityNameLower) {
		if word == nameLower {
			return true
		}
	}
	return false
}

// Items returns the player's inventory as candidates.
func Items(p *types.Player) []Candidate {
	out := make([]Candidate, 0, len(p.Inventory))
	for key, slot := range p.Inventory {
		out = append(out, Candidate{Key: key, Name: slot.Item.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// NPCs returns the NPCs at the player's location.
func NPCs(w *state.World) []Candidate {
	loc := w.Current()
	if loc == nil {
		return nil
	}
	out := make([]Candidate, 0, len(loc.NPCs))
	for _, npc := range loc.NPCs {
		out = append(out, Candidate{Key: npc.Key, Name: npc.Name})
	}
	return out
}

// Areas returns every area, locked or not.
func Areas(w *state.World) []Candidate {
	var out []Candidate
	for _, a := range w.AreasInOrder() {
		out = append(out, Candidate{Key: a.Def.Key, Name: a.Def.Name})
	}
	return out
}

// Quests returns the quests the hall offers. Quest descriptions double as
// names.
func Quests(w *state.World) []Candidate {
	var out []Candidate
	for _, q := range w.Hall.Available() {
		out = append(out, Candidate{Key: q.ID, Name: q.Description})
	}
	return out
}

// Stock returns what a shop sells.
func Stock(s *types.ShopDef, cat *catalog.Catalog) []Candidate {
	out := make([]Candidate, 0, len(s.Stock))
	for _, e := range s.Stock {
		out = append(out, Candidate{Key: e.Item, Name: cat.ItemName(e.Item)})
	}
	return out
}

// Locations returns the hubs the player can walk to.
func Locations(w *state.World) []Candidate {
	out := make([]Candidate, 0, len(w.Locations))
	for key, loc := range w.Locations {
		out = append(out, Candidate{Key: key, Name: loc.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Describe names what kind of thing a NotFoundError was looking for.
func Describe(err error, what string) error {
	if nf, ok := err.(*NotFoundError); ok {
		return &NotFoundError{Name: nf.Name, What: what}
	}
	return err
}
