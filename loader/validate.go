package loader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/events"
	"github.com/nathoo/questline/engine/rules"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var hubs = map[string]bool{
	state.Home:        true,
	state.Village:     true,
	state.QuestHall:   true,
	state.Exploration: true,
}

// validate checks the compiled catalog for referential integrity and
// consistency. Errors make the content unplayable; warnings describe
// content the engine tolerates at runtime.
func validate(cat *catalog.Catalog) *ValidationError {
	ve := &ValidationError{}

	if cat.Game.Title == "" {
		ve.errorf("Game.title is required")
	}
	if !hubs[cat.Game.Start] {
		ve.errorf("Game.start %q is not a location", cat.Game.Start)
	}
	if cat.Game.Player.Health <= 0 {
		ve.errorf("Game.player.health must be positive")
	}
	for _, item := range cat.Game.Player.Items {
		checkItem(cat, ve, "Game.player.items", item)
	}

	for _, key := range slices.Sorted(maps.Keys(cat.Creatures)) {
		c := cat.Creatures[key]
		if c.HealthMin <= 0 || c.HealthMax < c.HealthMin {
			ve.errorf("creature %q: invalid health range %d-%d", key, c.HealthMin, c.HealthMax)
		}
		if c.Attack < 0 {
			ve.errorf("creature %q: attack must not be negative", key)
		}
		for _, loot := range c.Loot {
			if _, ok := cat.Items[loot]; !ok {
				ve.warnf("creature %q: loot %q is not an item", key, loot)
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(cat.Items)) {
		item := cat.Items[key]
		switch item.Kind {
		case types.ItemWeapon, types.ItemArmour:
			if item.Value <= 0 {
				ve.warnf("item %q: %s has no bonus", key, item.Kind)
			}
		case types.ItemPotion:
			if item.Value <= 0 {
				ve.errorf("item %q: potion value must be positive", key)
			}
			if item.Effect == types.PotionStrengthBoost && item.Duration <= 0 {
				ve.errorf("item %q: strength boost needs a duration", key)
			}
		}
	}

	for _, key := range cat.AreaOrder {
		validateArea(cat, ve, cat.Areas[key])
	}

	for _, key := range cat.ShopOrder {
		shop := cat.Shops[key]
		if !hubs[shop.Location] {
			ve.errorf("shop %q: location %q is not a location", key, shop.Location)
		}
		for _, e := range shop.Stock {
			checkItem(cat, ve, "shop "+key, e.Item)
			if e.Price <= 0 {
				ve.errorf("shop %q: %q must have a positive price", key, e.Item)
			}
		}
	}

	ids := map[string]bool{}
	for _, q := range cat.Quests {
		ids[q.ID] = true
	}
	for i := range cat.Quests {
		validateQuest(cat, ve, &cat.Quests[i], ids)
	}

	return ve
}

func validateArea(cat *catalog.Catalog, ve *ValidationError, area *types.AreaDef) {
	key := area.Key
	if area.Difficulty < 1 {
		ve.errorf("area %q: difficulty must be at least 1", key)
	}
	if area.TreasureChance < 0 || area.TreasureChance > 1 {
		ve.errorf("area %q: treasure_chance must be between 0 and 1", key)
	}
	if area.MaxCreatures < 1 {
		ve.errorf("area %q: max_creatures must be at least 1", key)
	}
	for _, c := range area.CreatureTypes {
		if _, ok := cat.Creatures[c]; !ok {
			ve.errorf("area %q: unknown creature %q", key, c)
		}
	}
	if area.Boss != "" {
		if _, ok := cat.Creatures[area.Boss]; !ok {
			ve.errorf("area %q: unknown boss %q", key, area.Boss)
		}
	}
	for _, q := range area.TreasureQualities {
		if q < 1 || q > 6 {
			ve.warnf("area %q: treasure quality %d is outside 1-6", key, q)
		}
	}
	for _, tag := range area.Events {
		if events.IsStoryCheckpoint(tag) && !exploredByStory(cat, key) {
			ve.warnf("area %q: story event %q but no story quest explores it", key, tag)
		}
		if tag == events.Boss && area.Boss == "" {
			ve.warnf("area %q: boss event without a boss", key)
		}
	}
}

func exploredByStory(cat *catalog.Catalog, area string) bool {
	for _, q := range cat.Quests {
		if q.Story == nil {
			continue
		}
		for _, step := range q.Story.Steps {
			if step.Type == types.TriggerExploration && step.Trigger["area"] == area {
				return true
			}
		}
	}
	return false
}

func validateQuest(cat *catalog.Catalog, ve *ValidationError, q *types.Quest, ids map[string]bool) {
	where := "quest " + q.ID
	if q.Description == "" {
		ve.errorf("%s: description is required", where)
	}
	if q.Area != "" {
		checkArea(cat, ve, where, q.Area)
	}
	for _, item := range q.Reward.Items {
		checkItem(cat, ve, where+" reward", item)
	}

	if q.Combat != nil {
		if q.Combat.Count <= 0 {
			ve.errorf("%s: count must be positive", where)
		}
		if !anyCreatureMatches(cat, q.Combat.Target) {
			ve.warnf("%s: no creature matches target %q", where, q.Combat.Target)
		}
		return
	}

	story := q.Story
	if !hubs[story.LinkedLocation] {
		ve.errorf("%s: linked_location %q is not a location", where, story.LinkedLocation)
	}
	if story.UnlockQuest != "" && !ids[story.UnlockQuest] {
		ve.errorf("%s: unlock_quest %q does not exist", where, story.UnlockQuest)
	}
	for i, step := range story.Steps {
		at := fmt.Sprintf("%s step %d", where, i+1)
		switch step.Type {
		case types.TriggerInteraction:
			if step.Trigger["npc"] == "" {
				ve.errorf("%s: interaction step needs an npc", at)
			}
		case types.TriggerExploration:
			if step.Trigger["area"] == "" {
				ve.errorf("%s: exploration step needs an area", at)
			} else {
				checkArea(cat, ve, at, step.Trigger["area"])
			}
		}
		if step.UnlockArea != "" {
			checkArea(cat, ve, at, step.UnlockArea)
		}
		if step.StoryItem != "" {
			checkItem(cat, ve, at, step.StoryItem)
		}
		if step.RewardItem != "" {
			checkItem(cat, ve, at, step.RewardItem)
		}
	}
}

func anyCreatureMatches(cat *catalog.Catalog, target string) bool {
	for _, tmpl := range cat.Creatures {
		c := &types.Creature{Key: tmpl.Key, Name: tmpl.Name, Type: tmpl.Type}
		if rules.MatchesTarget(target, c) {
			return true
		}
	}
	return false
}

func checkItem(cat *catalog.Catalog, ve *ValidationError, where, key string) {
	if _, ok := cat.Items[key]; !ok {
		ve.errorf("%s: unknown item %q", where, key)
	}
}

func checkArea(cat *catalog.Catalog, ve *ValidationError, where, key string) {
	if _, ok := cat.Areas[key]; !ok {
		ve.errorf("%s: unknown area %q", where, key)
	}
}
