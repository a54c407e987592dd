package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerStepHelpers(L)
	registerValueHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", player = { ... } }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Creature "key" { ... }: curried, Creature("key") returns a function
	// that takes the definition table.
	L.SetGlobal("Creature", L.NewFunction(curried(func(key string, tbl *lua.LTable) {
		coll.creatures = append(coll.creatures, rawDef{key: key, table: tbl})
	})))

	for name, kind := range map[string]string{
		"Weapon": kindWeapon,
		"Armour": kindArmour,
		"Potion": kindPotion,
		"Misc":   kindMisc,
	} {
		L.SetGlobal(name, L.NewFunction(curried(func(key string, tbl *lua.LTable) {
			coll.items = append(coll.items, rawDef{key: key, kind: kind, table: tbl})
		})))
	}

	L.SetGlobal("Area", L.NewFunction(curried(func(key string, tbl *lua.LTable) {
		coll.areas = append(coll.areas, rawDef{key: key, table: tbl})
	})))

	L.SetGlobal("Shop", L.NewFunction(curried(func(key string, tbl *lua.LTable) {
		coll.shops = append(coll.shops, rawDef{key: key, table: tbl})
	})))

	// Quests keep one list so the hall sees them in declaration order.
	L.SetGlobal("CombatQuest", L.NewFunction(curried(func(key string, tbl *lua.LTable) {
		coll.quests = append(coll.quests, rawDef{key: key, kind: kindCombat, table: tbl})
	})))

	L.SetGlobal("StoryQuest", L.NewFunction(curried(func(key string, tbl *lua.LTable) {
		coll.quests = append(coll.quests, rawDef{key: key, kind: kindStory, table: tbl})
	})))
}

// curried wraps a two-stage constructor: Name("key") { ... }.
func curried(fn func(key string, tbl *lua.LTable)) lua.LGFunction {
	return func(L *lua.LState) int {
		key := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			fn(key, L.CheckTable(1))
			return 0
		}))
		return 1
	}
}

func registerStepHelpers(L *lua.LState) {
	// Talk "npc" { dialogue = "..." }: an interaction step.
	L.SetGlobal("Talk", L.NewFunction(stepHelper("interaction", "npc")))

	// Visit "area" { story_text = "..." }: an exploration step.
	L.SetGlobal("Visit", L.NewFunction(stepHelper("exploration", "area")))
}

// stepHelper returns a curried constructor that tags the step table with
// its trigger type and trigger key, then hands it back to the caller.
func stepHelper(trigger, field string) lua.LGFunction {
	return func(L *lua.LState) int {
		target := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.OptTable(1, L.NewTable())
			tbl.RawSetString("type", lua.LString(trigger))
			when := L.NewTable()
			when.RawSetString(field, lua.LString(target))
			tbl.RawSetString("trigger", when)
			L.Push(tbl)
			return 1
		}))
		return 1
	}
}

func registerValueHelpers(L *lua.LState) {
	// Stock("item", price)
	L.SetGlobal("Stock", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		price := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("item", lua.LString(item))
		tbl.RawSetString("price", price)
		L.Push(tbl)
		return 1
	}))

	// Reward { xp = n, gold = n, items = { ... } }: pass-through.
	L.SetGlobal("Reward", L.NewFunction(func(L *lua.LState) int {
		L.Push(L.CheckTable(1))
		return 1
	}))

	// Range(min, max) for creature health.
	L.SetGlobal("Range", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckNumber(1)
		hi := L.OptNumber(2, lo)
		tbl := L.NewTable()
		tbl.RawSetInt(1, lo)
		tbl.RawSetInt(2, hi)
		L.Push(tbl)
		return 1
	}))
}
