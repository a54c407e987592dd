// Package events implements the exploration event kinds: creature combat
// groups, boss encounters and treasure. Events are stateless; they read an
// area and the shared RNG and report what they produced.
package events

import (
	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/types"
)

// Event tags understood by the sequencer. Any other tag in an area's
// sequence is a story checkpoint.
const (
	Combat   = "combat"
	Treasure = "treasure"
	Boss     = "boss"
)

// IsStoryCheckpoint reports whether a sequence tag is a story checkpoint.
func IsStoryCheckpoint(tag string) bool {
	switch tag {
	case Combat, Treasure, Boss:
		return false
	}
	return true
}

// SpawnGroup generates the creatures for a combat event: a uniform count in
// [1, max creatures], each of a type chosen uniformly from the area's
// allowed set, in spawn order. Types the catalog cannot spawn are skipped
// and reported.
func SpawnGroup(area *types.Area, cat *catalog.Catalog, rng *dice.RNG) ([]*types.Creature, []error) {
	def := area.Def
	if len(def.CreatureTypes) == 0 {
		return nil, nil
	}
	n := rng.Between(1, max(1, def.MaxCreatures))
	var group []*types.Creature
	var errs []error
	for i := 0; i < n; i++ {
		kind := def.CreatureTypes[rng.Pick(len(def.CreatureTypes))]
		c, err := cat.Spawn(kind, rng)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		group = append(group, c)
	}
	return group, errs
}

// SpawnBoss spawns the area's boss and marks it active. It returns nil
// when the area has no boss or the boss is already active.
func SpawnBoss(area *types.Area, cat *catalog.Catalog, rng *dice.RNG) (*types.Creature, error) {
	if area.Def.Boss == "" || area.BossActive {
		return nil, nil
	}
	boss, err := cat.Spawn(area.Def.Boss, rng)
	if err != nil {
		return nil, err
	}
	area.BossActive = true
	return boss, nil
}
