// Package loader loads Lua game content into a catalog at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
	lua "github.com/yuin/gopher-lua"
)

// Area defaults applied when a field is omitted.
const (
	defaultMaxCreatures   = 3
	defaultTreasureChance = 0.5
	defaultDifficulty     = 1
)

var potionEffects = map[string]types.PotionEffect{
	"heal":           types.PotionHeal,
	"strength_boost": types.PotionStrengthBoost,
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getStringOr returns a string field, or def when missing or empty.
func getStringOr(tbl *lua.LTable, key, def string) string {
	if s := getString(tbl, key); s != "" {
		return s
	}
	return def
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	return int(getNumber(tbl, key, float64(def)))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns the array part of a table field as strings.
// Non-string elements are skipped.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// getInts returns the array part of a table field as ints.
func getInts(tbl *lua.LTable, key string) []int {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var out []int
	for i := 1; i <= arr.MaxN(); i++ {
		if n, ok := arr.RawGetInt(i).(lua.LNumber); ok {
			out = append(out, int(n))
		}
	}
	return out
}

func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = catalog.Key(string(vs))
			}
		}
	})
	return m
}

// compile converts collected Lua tables into a catalog. It rejects
// structurally broken content (duplicate keys, unknown variants);
// cross-references are checked afterwards by validate.
func compile(coll *collector) (*catalog.Catalog, error) {
	cat := catalog.New()

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	cat.Game = compileGame(coll.game)
	if cat.Game.Start == "" {
		cat.Game.Start = state.Home
	}
	if cat.Game.Player.Name == "" {
		cat.Game.Player.Name = player.DefaultName
	}

	for _, raw := range coll.creatures {
		c := compileCreature(raw)
		if _, dup := cat.Creatures[c.Key]; dup {
			return nil, fmt.Errorf("duplicate creature %q", raw.key)
		}
		cat.Creatures[c.Key] = c
	}

	for _, raw := range coll.items {
		item, err := compileItem(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := cat.Items[item.Key]; dup {
			return nil, fmt.Errorf("duplicate item %q", raw.key)
		}
		cat.Items[item.Key] = item
	}

	for _, raw := range coll.areas {
		area := compileArea(raw)
		if _, dup := cat.Areas[area.Key]; dup {
			return nil, fmt.Errorf("duplicate area %q", raw.key)
		}
		cat.Areas[area.Key] = area
		cat.AreaOrder = append(cat.AreaOrder, area.Key)
	}

	for _, raw := range coll.shops {
		shop := compileShop(raw)
		if _, dup := cat.Shops[shop.Key]; dup {
			return nil, fmt.Errorf("duplicate shop %q", raw.key)
		}
		cat.Shops[shop.Key] = shop
		cat.ShopOrder = append(cat.ShopOrder, shop.Key)
	}

	seen := map[string]bool{}
	for _, raw := range coll.quests {
		q, err := compileQuest(raw)
		if err != nil {
			return nil, err
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate quest %q", raw.key)
		}
		seen[q.ID] = true
		cat.Quests = append(cat.Quests, q)
	}

	return cat, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	def := types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   catalog.Key(getString(tbl, "start")),
		Intro:   getString(tbl, "intro"),
		Player: types.PlayerDef{
			Gold:    player.DefaultGold,
			Health:  player.DefaultHealth,
			Attack:  player.DefaultAttack,
			Defence: player.DefaultDefence,
		},
	}
	if p := getTable(tbl, "player"); p != nil {
		def.Player = types.PlayerDef{
			Name:    getString(p, "name"),
			Gold:    getInt(p, "gold", player.DefaultGold),
			Health:  getInt(p, "health", player.DefaultHealth),
			Attack:  getInt(p, "attack", player.DefaultAttack),
			Defence: getInt(p, "defence", player.DefaultDefence),
			Items:   keys(getStrings(p, "items")),
		}
	}
	return def
}

func compileCreature(raw rawDef) types.CreatureTemplate {
	tbl := raw.table
	key := catalog.Key(raw.key)
	c := types.CreatureTemplate{
		Key:      key,
		Name:     getStringOr(tbl, "name", catalog.DisplayName(key)),
		Type:     getString(tbl, "type"),
		Attack:   getInt(tbl, "attack", 0),
		XPDrop:   getInt(tbl, "xp", 0),
		GoldDrop: getInt(tbl, "gold", 0),
		Loot:     keys(getStrings(tbl, "loot")),
	}
	// health = 12 or health = Range(10, 14)
	if r := getTable(tbl, "health"); r != nil {
		c.HealthMin = int(lua.LVAsNumber(r.RawGetInt(1)))
		c.HealthMax = int(lua.LVAsNumber(r.RawGetInt(2)))
	} else {
		c.HealthMin = getInt(tbl, "health", 1)
		c.HealthMax = c.HealthMin
	}
	return c
}

func compileItem(raw rawDef) (*types.Item, error) {
	tbl := raw.table
	key := catalog.Key(raw.key)
	item := &types.Item{
		Key:         key,
		Name:        getStringOr(tbl, "name", catalog.DisplayName(key)),
		Description: getString(tbl, "description"),
		Value:       getInt(tbl, "value", 0),
	}
	switch raw.kind {
	case kindWeapon:
		item.Kind = types.ItemWeapon
		item.Value = getInt(tbl, "attack", item.Value)
	case kindArmour:
		item.Kind = types.ItemArmour
		item.Value = getInt(tbl, "defence", item.Value)
	case kindPotion:
		item.Kind = types.ItemPotion
		effect, ok := potionEffects[getStringOr(tbl, "effect", "heal")]
		if !ok {
			return nil, fmt.Errorf("potion %q: unknown effect %q", raw.key, getString(tbl, "effect"))
		}
		item.Effect = effect
		item.Duration = getInt(tbl, "duration", 0)
	default:
		item.Kind = types.ItemMisc
		item.Tag = getString(tbl, "tag")
	}
	return item, nil
}

func compileArea(raw rawDef) *types.AreaDef {
	tbl := raw.table
	key := catalog.Key(raw.key)
	area := &types.AreaDef{
		Key:               key,
		Name:              getStringOr(tbl, "name", catalog.DisplayName(key)),
		Difficulty:        getInt(tbl, "difficulty", defaultDifficulty),
		CreatureTypes:     keys(getStrings(tbl, "creatures")),
		MaxCreatures:      getInt(tbl, "max_creatures", defaultMaxCreatures),
		Boss:              catalog.Key(getString(tbl, "boss")),
		TreasureChance:    getNumber(tbl, "treasure_chance", defaultTreasureChance),
		TreasureQualities: getInts(tbl, "treasure_qualities"),
		Events:            getStrings(tbl, "events"),
		Locked:            getBool(tbl, "locked", true),
	}
	if len(area.TreasureQualities) == 0 {
		area.TreasureQualities = []int{1}
	}
	if len(area.Events) == 0 {
		area.Events = []string{"combat"}
	}
	return area
}

var shopCategories = []string{"weapons", "armours", "potions"}

func compileShop(raw rawDef) *types.ShopDef {
	tbl := raw.table
	key := catalog.Key(raw.key)
	shop := &types.ShopDef{
		Key:      key,
		Name:     getStringOr(tbl, "name", catalog.DisplayName(key)),
		Location: catalog.Key(getStringOr(tbl, "location", state.Village)),
	}
	for _, cat := range shopCategories {
		entries := getTable(tbl, cat)
		if entries == nil {
			continue
		}
		for i := 1; i <= entries.MaxN(); i++ {
			e, ok := entries.RawGetInt(i).(*lua.LTable)
			if !ok {
				continue
			}
			shop.Stock = append(shop.Stock, types.ShopEntry{
				Category: cat,
				Item:     catalog.Key(getString(e, "item")),
				Price:    getInt(e, "price", 0),
			})
		}
	}
	return shop
}

func compileReward(tbl *lua.LTable) types.Reward {
	if tbl == nil {
		return types.Reward{}
	}
	return types.Reward{
		XP:    getInt(tbl, "xp", 0),
		Gold:  getInt(tbl, "gold", 0),
		Items: keys(getStrings(tbl, "items")),
	}
}

func compileQuest(raw rawDef) (types.Quest, error) {
	tbl := raw.table
	q := types.Quest{
		ID:          catalog.Key(raw.key),
		Description: getString(tbl, "description"),
		Area:        catalog.Key(getString(tbl, "area")),
		Reward:      compileReward(getTable(tbl, "reward")),
	}
	if raw.kind == kindCombat {
		q.Kind = types.QuestCombat
		q.Combat = &types.CombatGoal{
			Target:        getStringOr(tbl, "target", "any"),
			Count:         getInt(tbl, "count", 1),
			MinDifficulty: getInt(tbl, "min_difficulty", 0),
		}
		return q, nil
	}

	q.Kind = types.QuestStory
	story := &types.StoryLine{
		Locked:         getBool(tbl, "locked", true),
		LinkedLocation: catalog.Key(getStringOr(tbl, "linked_location", state.Village)),
		UnlockQuest:    catalog.Key(getString(tbl, "unlock_quest")),
	}
	steps := getTable(tbl, "steps")
	if steps == nil || steps.MaxN() == 0 {
		return q, fmt.Errorf("story quest %q has no steps", raw.key)
	}
	for i := 1; i <= steps.MaxN(); i++ {
		st, ok := steps.RawGetInt(i).(*lua.LTable)
		if !ok {
			return q, fmt.Errorf("story quest %q: step %d is not a table", raw.key, i)
		}
		step, err := compileStep(st)
		if err != nil {
			return q, fmt.Errorf("story quest %q: step %d: %w", raw.key, i, err)
		}
		story.Steps = append(story.Steps, step)
	}
	q.Story = story
	return q, nil
}

func compileStep(tbl *lua.LTable) (types.Step, error) {
	step := types.Step{
		Type:        types.TriggerType(getString(tbl, "type")),
		Trigger:     tableToStringMap(getTable(tbl, "trigger")),
		Description: getString(tbl, "description"),
		Dialogue:    getString(tbl, "dialogue"),
		StoryText:   getString(tbl, "story_text"),
		StoryItem:   catalog.Key(getString(tbl, "story_item")),
		RewardItem:  catalog.Key(getString(tbl, "reward_item")),
		UnlockArea:  catalog.Key(getString(tbl, "unlock_area")),
	}
	switch step.Type {
	case types.TriggerInteraction, types.TriggerExploration:
	default:
		return step, fmt.Errorf("unknown step type %q", step.Type)
	}
	return step, nil
}

// keys normalizes a list of keys or display names.
func keys(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = catalog.Key(s)
	}
	return out
}

// sortedLuaFiles returns files with game.lua first and the rest sorted.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
