package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
)

// Definition kinds recorded by the constructors.
const (
	kindWeapon = "weapon"
	kindArmour = "armour"
	kindPotion = "potion"
	kindMisc   = "misc"
	kindCombat = "combat"
	kindStory  = "story"
)

// rawDef holds a keyed definition table before compilation.
type rawDef struct {
	key   string
	kind  string
	table *lua.LTable
}

// collector accumulates Lua definitions during file execution, in
// declaration order.
type collector struct {
	game      *lua.LTable
	creatures []rawDef
	items     []rawDef
	areas     []rawDef
	shops     []rawDef
	quests    []rawDef
}

// Load reads all .lua files from dir, compiles them into a catalog,
// validates references, and returns it. Validation warnings are logged;
// errors abort the load. The Lua VM is discarded after loading.
func Load(dir string, log logrus.FieldLogger) (*catalog.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		log.WithField("file", f).Debug("executing game file")
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	report := validate(cat)
	for _, w := range report.Warnings {
		log.Warn(w)
	}
	if len(report.Errors) > 0 {
		return nil, report
	}

	log.WithFields(logrus.Fields{
		"title":     cat.Game.Title,
		"creatures": len(cat.Creatures),
		"items":     len(cat.Items),
		"areas":     len(cat.Areas),
		"quests":    len(cat.Quests),
	}).Info("game loaded")
	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must not reseed; the engine owns the RNG.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}
