// Package state holds the mutable game world: the player, runtime area
// state, the location registry with its NPCs, and the quest hall. Static
// definitions stay in the catalog; everything here changes during play.
package state

import (
	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/inventory"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/types"
)

// Location keys.
const (
	Home        = "home"
	Village     = "village"
	QuestHall   = "quest_hall"
	Exploration = "exploration"
)

// World is the complete mutable game state.
type World struct {
	Catalog   *catalog.Catalog
	Player    *types.Player
	Areas     map[string]*types.Area
	Locations map[string]*types.Location
	Hall      *quest.Hall
	Growth    player.Growth

	// Location is the key of the location the player stands in.
	Location string
	// Shop is the key of the shop menu the player has open, if any.
	Shop string
	// GameOver is set when the player dies. No further play is possible.
	GameOver bool
}

// New builds a fresh world from the catalog.
func New(cat *catalog.Catalog, growth player.Growth) *World {
	w := &World{
		Catalog:   cat,
		Player:    player.New(cat.Game.Player),
		Areas:     make(map[string]*types.Area, len(cat.Areas)),
		Locations: defaultLocations(),
		Hall:      quest.NewHall(cat.Quests),
		Growth:    growth,
		Location:  cat.Game.Start,
	}
	if _, ok := w.Locations[w.Location]; !ok {
		w.Location = Home
	}
	for key, def := range cat.Areas {
		w.Areas[key] = &types.Area{Def: def, Locked: def.Locked}
	}
	for _, key := range cat.Game.Player.Items {
		if item, err := cat.Item(key); err == nil {
			inventory.Add(w.Player, item, 1)
		}
	}
	return w
}

func defaultLocations() map[string]*types.Location {
	return map[string]*types.Location{
		Home:        {Key: Home, Name: "Home", Description: "You are in your cozy home."},
		Village:     {Key: Village, Name: "Village", Description: "The bustling village awaits."},
		QuestHall:   {Key: QuestHall, Name: "Quest Hall", Description: "Welcome to the Quest Hall!"},
		Exploration: {Key: Exploration, Name: "Exploration", Description: "You venture out to explore an area."},
	}
}

// Current returns the location the player stands in.
func (w *World) Current() *types.Location {
	return w.Locations[w.Location]
}

// Area returns the runtime state of an area by key or display name.
func (w *World) Area(key string) (*types.Area, bool) {
	a, ok := w.Areas[catalog.Key(key)]
	return a, ok
}

// AreasInOrder returns every area in declaration order.
func (w *World) AreasInOrder() []*types.Area {
	out := make([]*types.Area, 0, len(w.Areas))
	for _, key := range w.Catalog.AreaOrder {
		if a, ok := w.Areas[key]; ok {
			out = append(out, a)
		}
	}
	return out
}

// UnlockedAreas returns the areas the player may explore, in declaration order.
func (w *World) UnlockedAreas() []*types.Area {
	var out []*types.Area
	for _, a := range w.AreasInOrder() {
		if !a.Locked {
			out = append(out, a)
		}
	}
	return out
}

// ShopsAt returns the shops located at a location, in declaration order.
func (w *World) ShopsAt(location string) []*types.ShopDef {
	var out []*types.ShopDef
	for _, key := range w.Catalog.ShopOrder {
		if s, ok := w.Catalog.Shops[key]; ok && s.Location == location {
			out = append(out, s)
		}
	}
	return out
}

// NPC returns an NPC at the current location by key or display name.
func (w *World) NPC(name string) (*types.NPC, bool) {
	loc := w.Current()
	if loc == nil {
		return nil, false
	}
	key := catalog.Key(name)
	for _, npc := range loc.NPCs {
		if npc.Key == key || catalog.Key(npc.Name) == key {
			return npc, true
		}
	}
	return nil, false
}
