// Package catalog is the immutable registry of static game definitions:
// creature templates, items, areas, shops and quests. It is built once by
// the loader and passed by pointer to every component that needs lookups.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/types"
)

// Configuration errors. Content that references a missing key degrades
// gracefully at the call site; these are never fatal during play.
var (
	ErrUnknownCreature = errors.New("unknown creature type")
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownArea     = errors.New("unknown area")
	ErrUnknownQuest    = errors.New("unknown quest")
)

// Catalog holds the game definitions. Maps are keyed by normalized key
// (see Key); the order slices preserve declaration order.
type Catalog struct {
	Game      types.GameDef
	Creatures map[string]types.CreatureTemplate
	Items     map[string]*types.Item
	Areas     map[string]*types.AreaDef
	Shops     map[string]*types.ShopDef
	Quests    []types.Quest

	AreaOrder []string
	ShopOrder []string
}

// New returns an empty catalog ready to be filled.
func New() *Catalog {
	return &Catalog{
		Creatures: map[string]types.CreatureTemplate{},
		Items:     map[string]*types.Item{},
		Areas:     map[string]*types.AreaDef{},
		Shops:     map[string]*types.ShopDef{},
	}
}

// Key normalizes a display name or key: "Fairy Queen" -> "fairy_queen".
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Spawn instantiates a fresh creature from its template, with health
// drawn uniformly from the template's range.
func (c *Catalog) Spawn(key string, rng *dice.RNG) (*types.Creature, error) {
	tmpl, ok := c.Creatures[Key(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCreature, key)
	}
	health := rng.Between(tmpl.HealthMin, tmpl.HealthMax)
	loot := make([]string, len(tmpl.Loot))
	copy(loot, tmpl.Loot)
	return &types.Creature{
		Key:       tmpl.Key,
		Name:      tmpl.Name,
		Type:      tmpl.Type,
		MaxHealth: health,
		Health:    health,
		Attack:    tmpl.Attack,
		XPDrop:    tmpl.XPDrop,
		GoldDrop:  tmpl.GoldDrop,
		Loot:      loot,
	}, nil
}

// Item returns the canonical item for a key.
func (c *Catalog) Item(key string) (*types.Item, error) {
	item, ok := c.Items[Key(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, key)
	}
	return item, nil
}

// Area returns the static definition of an area.
func (c *Catalog) Area(key string) (*types.AreaDef, error) {
	def, ok := c.Areas[Key(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArea, key)
	}
	return def, nil
}

// Quest returns the definition of a quest by ID.
func (c *Catalog) Quest(id string) (types.Quest, error) {
	for _, q := range c.Quests {
		if q.ID == id {
			return q, nil
		}
	}
	return types.Quest{}, fmt.Errorf("%w: %q", ErrUnknownQuest, id)
}

// ItemName returns the display name for an item key, falling back to a
// title-cased key ("great_sword" -> "Great Sword") for unknown items.
func (c *Catalog) ItemName(key string) string {
	if item, ok := c.Items[Key(key)]; ok {
		return item.Name
	}
	return DisplayName(key)
}

// DisplayName derives a human-readable name from a key.
// "great_hall" -> "Great Hall".
func DisplayName(key string) string {
	words := strings.Split(strings.ReplaceAll(key, " ", "_"), "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
