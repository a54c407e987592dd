// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, the hub menus, exploration and combat into a single
// turn.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/combat"
	"github.com/nathoo/questline/engine/dialogue"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/engine/explore"
	"github.com/nathoo/questline/engine/inventory"
	"github.com/nathoo/questline/engine/location"
	"github.com/nathoo/questline/engine/parser"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/engine/resolve"
	"github.com/nathoo/questline/engine/shop"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// Options tunes a new engine. Zero values fall back to the defaults; a nil
// FleeChance keeps the stock chance so an explicit zero can disable fleeing.
type Options struct {
	Seed       int64
	FleeChance *float64
	Gold       map[int]int
	Growth     player.Growth
	Log        logrus.FieldLogger
}

// Engine holds the catalog and the mutable world.
type Engine struct {
	Catalog *catalog.Catalog
	World   *state.World
	RNG     *dice.RNG
	Log     logrus.FieldLogger

	CommandLog []string
	TurnCount  int

	resolver *combat.Resolver
	explorer *explore.Sequencer
	run      *explore.Run
}

// New creates a new engine from a loaded catalog.
func New(cat *catalog.Catalog, opts Options) *Engine {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	growth := opts.Growth
	if growth == (player.Growth{}) {
		growth = player.DefaultGrowth
	}

	w := state.New(cat, growth)
	rng := dice.NewRNG(opts.Seed)
	r := combat.NewResolver(w, rng, log)
	if opts.FleeChance != nil {
		r.FleeChance = *opts.FleeChance
	}
	seq := explore.New(r, log)
	if len(opts.Gold) > 0 {
		seq.Gold = opts.Gold
	}

	return &Engine{
		Catalog:  cat,
		World:    w,
		RNG:      rng,
		Log:      log.WithField("component", "engine"),
		resolver: r,
		explorer: seq,
	}
}

// InCombat reports whether a creature is waiting for the player's move.
func (e *Engine) InCombat() bool {
	return e.run != nil && e.run.Encounter() != nil
}

// Encounter returns the creature being fought, or nil.
func (e *Engine) Encounter() *combat.Encounter {
	if e.run == nil {
		return nil
	}
	return e.run.Encounter()
}

// Intro returns the opening text of the game.
func (e *Engine) Intro() []string {
	var out []string
	if e.Catalog.Game.Intro != "" {
		out = append(out, e.Catalog.Game.Intro)
	}
	return append(out, location.Describe(e.World)...)
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 0. Game over: block all gameplay commands.
	if e.World.GameOver {
		result.Output = append(result.Output, "Game over. Use /quit to exit.")
		return result
	}

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Log the command.
	e.CommandLog = append(e.CommandLog, input)

	// 3. Empty input.
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}
	e.Log.WithFields(logrus.Fields{"verb": intent.Verb, "object": intent.Object}).Debug("command")

	// 4. Combat mode: only combat verbs and free look-ups are allowed.
	if e.InCombat() {
		e.combatStep(intent, &result)
	} else {
		e.dispatch(intent, &result)
	}

	// 5. Increment turn count.
	e.TurnCount++

	return result
}

// combatStep maps a command onto a combat action and resumes the run.
func (e *Engine) combatStep(intent types.Intent, result *types.Result) {
	var action types.CombatAction
	switch intent.Verb {
	case parser.VerbChoose:
		switch intent.Object {
		case "1":
			action.Kind = types.CombatAttack
		case "2":
			action.Kind = types.CombatUseItem
		case "3":
			action.Kind = types.CombatCheckQuest
		case "4":
			action.Kind = types.CombatFlee
		default:
			result.Output = append(result.Output, "Invalid choice. Please select a valid option.")
			return
		}
	case "attack":
		action.Kind = types.CombatAttack
	case "use":
		action = types.CombatAction{Kind: types.CombatUseItem, Item: intent.Object}
		if intent.Object != "" {
			key, err := resolve.Resolve(intent.Object, resolve.Items(e.World.Player))
			if err != nil {
				result.Output = append(result.Output, resolve.Describe(err, "item").Error())
				return
			}
			action.Item = key
		}
	case "quest":
		action.Kind = types.CombatCheckQuest
	case "flee", "go":
		action.Kind = types.CombatFlee
	case "status":
		result.Output = append(result.Output, Status(e.World)...)
		return
	case "inventory":
		result.Output = append(result.Output, inventory.Describe(e.World.Player)...)
		return
	case "look":
		result.Output = append(result.Output, e.resolver.Status(e.run.Encounter())...)
		result.Output = append(result.Output, combatMenu...)
		return
	case "help":
		result.Output = append(result.Output, combatHelp)
		return
	default:
		result.Output = append(result.Output, "You're in the middle of a fight! "+combatHelp)
		return
	}

	step := e.explorer.Resume(e.run, action)
	e.absorb(step, result)
}

var combatMenu = []string{
	"Choose an action:",
	"1. Attack",
	"2. Use an item",
	"3. Check quest progress",
	"4. Try to flee from combat",
}

const combatHelp = "(attack, use <item>, quest, flee)"

// absorb folds an exploration step into the turn result and drops the run
// once it is over.
func (e *Engine) absorb(step explore.Step, result *types.Result) {
	result.Output = append(result.Output, step.Output...)
	result.Effects = append(result.Effects, step.Effects...)
	result.Events = append(result.Events, step.Events...)
	switch {
	case step.Waiting():
		result.Output = append(result.Output, combatMenu...)
	case step.Done:
		e.run = nil
		if !e.World.GameOver {
			result.Output = append(result.Output, location.Describe(e.World)...)
		}
	}
}

// dispatch runs a command outside of combat.
func (e *Engine) dispatch(intent types.Intent, result *types.Result) {
	w := e.World
	switch intent.Verb {
	case parser.VerbChoose:
		n, _ := strconv.Atoi(intent.Object)
		action, ok := location.Choice(w, n)
		if !ok {
			result.Output = append(result.Output, "Invalid choice. Please try again.")
			return
		}
		e.act(action, result)

	case "look":
		result.Output = append(result.Output, location.Describe(w)...)

	case "go":
		e.builtinGo(intent.Object, result)

	case "explore":
		e.builtinExplore(intent.Object, result)

	case "status":
		result.Output = append(result.Output, Status(w)...)

	case "inventory":
		result.Output = append(result.Output, inventory.Describe(w.Player)...)

	case "use":
		e.withItem(intent.Object, "Use what?", result, func(key string) {
			result.Output = append(result.Output, inventory.Use(w.Player, key).Message)
		})

	case "equip":
		e.withItem(intent.Object, "Equip what?", result, func(key string) {
			slot := w.Player.Inventory[key]
			result.Output = append(result.Output, inventory.Equip(w.Player, slot.Item))
		})

	case "unequip":
		e.builtinUnequip(intent.Object, result)

	case "shop":
		e.builtinShop(result)

	case "buy":
		e.builtinTrade(intent, result, true)

	case "sell":
		e.builtinTrade(intent, result, false)

	case "talk":
		e.builtinTalk(intent.Object, result)

	case "accept":
		e.builtinAccept(intent.Object, result)

	case "abandon":
		q, err := w.Hall.Abandon(w.Player)
		if err != nil {
			result.Output = append(result.Output, "You have no active quest to abandon.")
			return
		}
		dialogue.Sync(w)
		result.Output = append(result.Output, "You have abandoned the quest: "+q.Description)
		result.Events = append(result.Events, types.Event{Type: "quest_abandoned", Data: map[string]any{"quest": q.ID}})

	case "quest":
		result.Output = append(result.Output, quest.Progress(w.Player)...)

	case "attack", "flee":
		result.Output = append(result.Output, "There is nothing to fight here.")

	case "help":
		result.Output = append(result.Output, helpText...)

	default:
		result.Output = append(result.Output, "I don't understand that. Type 'help' for a list of commands.")
	}
}

var helpText = []string{
	"Type the number of a choice, or a command:",
	"  look, go <place>, explore <area>, status, inventory",
	"  use/equip/unequip <item>, shop, buy/sell <item>",
	"  talk <npc>, accept <quest>, abandon, quest",
	"In combat: attack, use <item>, quest, flee (or 1-4).",
}

// act performs a menu choice.
func (e *Engine) act(a types.Action, result *types.Result) {
	w := e.World
	switch a.Kind {
	case types.ActionGo:
		e.moveTo(a.Target, result)
	case types.ActionExplore:
		e.startExplore(a.Target, result)
	case types.ActionTalk:
		e.talkTo(a.Target, result)
	case types.ActionAccept:
		e.accept(a.Target, result)
	case types.ActionMenu:
		switch {
		case a.Target == location.MenuStatus:
			result.Output = append(result.Output, Status(w)...)
		case a.Target == location.MenuInventory:
			result.Output = append(result.Output, inventory.Describe(w.Player)...)
		case strings.HasPrefix(a.Target, location.MenuShop+":"):
			e.builtinShop(result)
		}
	default:
		e.Log.WithField("action", a.Kind).Warn("unknown menu action")
	}
}

func (e *Engine) moveTo(key string, result *types.Result) {
	e.World.Location = key
	result.Events = append(result.Events, types.Event{Type: "moved", Data: map[string]any{"location": key}})
	result.Output = append(result.Output, location.Describe(e.World)...)
}

// builtinGo walks to a hub reachable from the current menu.
func (e *Engine) builtinGo(name string, result *types.Result) {
	if name == "" {
		result.Output = append(result.Output, "Go where?")
		return
	}
	key, err := resolve.Resolve(name, resolve.Locations(e.World))
	if err != nil {
		result.Output = append(result.Output, resolve.Describe(err, "place").Error())
		return
	}
	if key == e.World.Location {
		result.Output = append(result.Output, "You are already there.")
		return
	}
	for _, a := range location.Choices(e.World) {
		if a.Kind == types.ActionGo && a.Target == key {
			e.moveTo(key, result)
			return
		}
	}
	result.Output = append(result.Output, "You can't go there from here.")
}

// builtinExplore starts a run from the exploration hub.
func (e *Engine) builtinExplore(name string, result *types.Result) {
	w := e.World
	if w.Location != state.Exploration {
		if name == "" {
			e.builtinGo(state.Exploration, result)
			return
		}
		result.Output = append(result.Output, "You need to head out to explore first.")
		return
	}
	if name == "" {
		result.Output = append(result.Output, "Explore where?")
		return
	}
	key, err := resolve.Resolve(name, resolve.Areas(w))
	if err != nil {
		result.Output = append(result.Output, resolve.Describe(err, "area").Error())
		return
	}
	e.startExplore(key, result)
}

func (e *Engine) startExplore(key string, result *types.Result) {
	area, ok := e.World.Area(key)
	if !ok {
		e.Log.WithError(catalog.ErrUnknownArea).WithField("area", key).Warn("exploration target missing")
		result.Output = append(result.Output, fmt.Sprintf("Area '%s' could not be found.", key))
		return
	}
	if area.Locked {
		result.Output = append(result.Output, "This area is locked. Complete quests to unlock it!")
		return
	}
	run, step := e.explorer.Begin(area)
	e.run = run
	e.absorb(step, result)
}

// withItem resolves an inventory item and hands its key to fn.
func (e *Engine) withItem(name, prompt string, result *types.Result, fn func(key string)) {
	if name == "" {
		result.Output = append(result.Output, prompt)
		return
	}
	key, err := resolve.Resolve(name, resolve.Items(e.World.Player))
	if err != nil {
		result.Output = append(result.Output, resolve.Describe(err, "item in your inventory").Error())
		return
	}
	fn(key)
}

func (e *Engine) builtinUnequip(name string, result *types.Result) {
	p := e.World.Player
	switch strings.ToLower(name) {
	case "":
		result.Output = append(result.Output, "Unequip what?")
		return
	case "weapon":
		result.Output = append(result.Output, inventory.Unequip(p, types.ItemWeapon))
		return
	case "armour", "armor":
		result.Output = append(result.Output, inventory.Unequip(p, types.ItemArmour))
		return
	}
	e.withItem(name, "Unequip what?", result, func(key string) {
		item := p.Inventory[key].Item
		if p.Weapon != item && p.Armour != item {
			result.Output = append(result.Output, fmt.Sprintf("%s is not equipped.", item.Name))
			return
		}
		result.Output = append(result.Output, inventory.Unequip(p, item.Kind))
	})
}

// localShop returns the first shop at the current location.
func (e *Engine) localShop() *types.ShopDef {
	shops := e.World.ShopsAt(e.World.Location)
	if len(shops) == 0 {
		return nil
	}
	return shops[0]
}

func (e *Engine) builtinShop(result *types.Result) {
	s := e.localShop()
	if s == nil {
		result.Output = append(result.Output, "There is no shop here.")
		return
	}
	e.World.Shop = s.Key
	result.Output = append(result.Output, "Welcome to the "+s.Name+"!")
	result.Output = append(result.Output, shop.Listing(s, e.Catalog)...)
	result.Output = append(result.Output, fmt.Sprintf("You have %d gold.", e.World.Player.Gold))
}

func (e *Engine) builtinTrade(intent types.Intent, result *types.Result, buying bool) {
	s := e.localShop()
	if s == nil {
		result.Output = append(result.Output, "There is no shop here.")
		return
	}
	p := e.World.Player
	if intent.Object == "" {
		if buying {
			result.Output = append(result.Output, "Buy what?")
		} else {
			result.Output = append(result.Output, "Sell what?")
		}
		return
	}

	var msg string
	var err error
	if buying {
		key, rerr := resolve.Resolve(intent.Object, resolve.Stock(s, e.Catalog))
		if rerr != nil {
			result.Output = append(result.Output, "Item not available.")
			return
		}
		msg, err = shop.Buy(p, s, e.Catalog, key)
	} else {
		key, rerr := resolve.Resolve(intent.Object, resolve.Items(p))
		if rerr != nil {
			result.Output = append(result.Output, "Item not in inventory.")
			return
		}
		msg, err = shop.Sell(p, s, key)
	}

	switch {
	case err == nil:
		result.Output = append(result.Output, msg)
		result.Events = append(result.Events, types.Event{Type: "gold_changed", Data: map[string]any{"gold": p.Gold}})
	case errors.Is(err, shop.ErrNotEnoughGold):
		result.Output = append(result.Output, "Not enough gold.")
	case errors.Is(err, shop.ErrNotAccepted):
		result.Output = append(result.Output, "This shop does not accept that item.")
	default:
		e.Log.WithError(err).WithField("shop", s.Key).Warn("trade failed")
		result.Output = append(result.Output, "Item not available.")
	}
}

func (e *Engine) builtinTalk(name string, result *types.Result) {
	if name == "" {
		result.Output = append(result.Output, "Talk to whom?")
		return
	}
	key, err := resolve.Resolve(name, resolve.NPCs(e.World))
	if err != nil {
		result.Output = append(result.Output, resolve.Describe(err, "one").Error())
		return
	}
	e.talkTo(key, result)
}

func (e *Engine) talkTo(key string, result *types.Result) {
	npc, ok := e.World.NPC(key)
	if !ok {
		result.Output = append(result.Output, "There is no one by that name here.")
		return
	}
	r := dialogue.Interact(e.World, npc, e.Log)
	result.Effects = append(result.Effects, r.Effects...)
	result.Events = append(result.Events, r.Events...)
	result.Output = append(result.Output, r.Output...)
}

func (e *Engine) builtinAccept(name string, result *types.Result) {
	if e.World.Location != state.QuestHall {
		result.Output = append(result.Output, "Quests are handed out at the Quest Hall.")
		return
	}
	if name == "" {
		result.Output = append(result.Output, "Accept which quest?")
		return
	}
	key, err := resolve.Resolve(name, resolve.Quests(e.World))
	if err != nil {
		result.Output = append(result.Output, resolve.Describe(err, "quest").Error())
		return
	}
	e.accept(key, result)
}

func (e *Engine) accept(id string, result *types.Result) {
	w := e.World
	q, err := w.Hall.Accept(w.Player, id)
	switch {
	case err == nil:
	case errors.Is(err, quest.ErrQuestActive):
		result.Output = append(result.Output, "You already have an active quest. Finish or abandon it first.")
		return
	case errors.Is(err, quest.ErrLocked):
		result.Output = append(result.Output, "That quest is not available yet.")
		return
	default:
		e.Log.WithError(err).Warn("quest could not be accepted")
		result.Output = append(result.Output, "Invalid choice. Please select a valid quest.")
		return
	}
	dialogue.Sync(w)
	result.Output = append(result.Output, "You have accepted the quest: "+q.Description)
	result.Events = append(result.Events, types.Event{Type: "quest_accepted", Data: map[string]any{"quest": q.ID}})
}
