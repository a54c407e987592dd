// Package combat resolves one turn at a time between the player and a
// single creature. Kills feed the reward dispenser and the combat quest
// counter; every other surviving turn ends with the creature striking back.
package combat

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/engine/effects"
	"github.com/nathoo/questline/engine/inventory"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/engine/rewards"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// DefaultFleeChance is the probability that a flee attempt succeeds.
const DefaultFleeChance = 0.25

// Outcome is how a turn left the encounter.
type Outcome string

const (
	// Ongoing: both sides still stand.
	Ongoing Outcome = "ongoing"
	// Defeated: the creature died this turn.
	Defeated Outcome = "defeated"
	// Fled: the player escaped; the encounter is over.
	Fled Outcome = "fled"
	// GameOver: the player died.
	GameOver Outcome = "game_over"
	// NoChange: nothing happened and the creature did not act.
	NoChange Outcome = "no_change"
)

// Encounter is one creature being fought in one area.
type Encounter struct {
	Creature *types.Creature
	Area     *types.Area
}

// Result is the outcome of a single turn.
type Result struct {
	Outcome Outcome
	Output  []string
	Effects []types.Effect
	Events  []types.Event
}

// Resolver resolves combat turns against the world.
type Resolver struct {
	World      *state.World
	RNG        *dice.RNG
	FleeChance float64
	Log        logrus.FieldLogger
}

// NewResolver creates a resolver with the default flee chance.
func NewResolver(w *state.World, rng *dice.RNG, log logrus.FieldLogger) *Resolver {
	return &Resolver{
		World:      w,
		RNG:        rng,
		FleeChance: DefaultFleeChance,
		Log:        log.WithField("component", "combat"),
	}
}

// Start opens a battle: the player's defence pool is restored.
func (r *Resolver) Start(enc *Encounter) []string {
	return []string{
		fmt.Sprintf("You encounter a %s!", enc.Creature.Name),
		player.StartBattle(r.World.Player),
	}
}

// Status describes both combatants' health.
func (r *Resolver) Status(enc *Encounter) []string {
	p := r.World.Player
	return []string{
		fmt.Sprintf("%s's Health: %d", enc.Creature.Name, enc.Creature.Health),
		fmt.Sprintf("%s's Health: %d/%d", p.Name, p.Health, p.MaxHealth),
	}
}

// Turn resolves one player action.
func (r *Resolver) Turn(enc *Encounter, action types.CombatAction) Result {
	p := r.World.Player
	if player.Dead(p) {
		return Result{Outcome: GameOver}
	}
	if enc.Creature.Health <= 0 {
		return Result{Outcome: Defeated}
	}

	switch action.Kind {
	case types.CombatAttack:
		return r.attack(enc)
	case types.CombatUseItem:
		return r.useItem(enc, action.Item)
	case types.CombatCheckQuest:
		return Result{Outcome: NoChange, Output: quest.Progress(p)}
	case types.CombatFlee:
		return r.flee(enc)
	default:
		return Result{Outcome: NoChange, Output: []string{"Invalid choice. Please select a valid option."}}
	}
}

func (r *Resolver) attack(enc *Encounter) Result {
	p := r.World.Player
	c := enc.Creature
	var res Result

	dmg := player.ApplyAttackEffects(p)
	res.Output = append(res.Output, fmt.Sprintf("%s attacks %s for %d damage!", p.Name, c.Name, dmg))
	c.Health -= dmg
	res.Output = append(res.Output, player.TickAttackEffects(p)...)

	if c.Health > 0 {
		r.retaliate(enc, &res)
		return res
	}

	res.Output = append(res.Output, fmt.Sprintf("%s has been defeated!", c.Name))
	res.Events = append(res.Events, types.Event{
		Type: "creature_defeated",
		Data: map[string]any{"creature": c.Key, "area": enc.Area.Def.Key},
	})
	r.Log.WithFields(logrus.Fields{"creature": c.Key, "area": enc.Area.Def.Key}).Debug("creature defeated")

	reward := rewards.Dispense(c, r.RNG)
	res.Output = append(res.Output, reward.Lines(r.World.Catalog.ItemName)...)
	r.apply(&res, reward.Effects())

	if counted, effs := quest.RecordKill(p, c, enc.Area.Def.Difficulty); counted {
		r.apply(&res, effs)
	}
	res.Outcome = Defeated
	return res
}

func (r *Resolver) useItem(enc *Encounter, item string) Result {
	p := r.World.Player
	if len(p.Inventory) == 0 {
		return Result{Outcome: NoChange, Output: []string{"Your inventory is empty. Please choose another option."}}
	}
	if item == "" {
		return Result{Outcome: NoChange, Output: []string{"Use what?"}}
	}
	used := inventory.Use(p, catalog.Key(item))
	res := Result{Output: []string{used.Message}}
	if !used.Acted {
		res.Outcome = NoChange
		return res
	}
	r.retaliate(enc, &res)
	return res
}

func (r *Resolver) flee(enc *Encounter) Result {
	p := r.World.Player
	var res Result
	if r.RNG.Chance(r.FleeChance) {
		res.Outcome = Fled
		res.Output = append(res.Output, fmt.Sprintf("%s successfully fled from %s!", p.Name, enc.Creature.Name))
		return res
	}
	res.Output = append(res.Output, fmt.Sprintf("%s tried to flee, but %s blocked the escape!", p.Name, enc.Creature.Name))
	r.retaliate(enc, &res)
	return res
}

// retaliate lets the creature strike the player and sets the outcome.
func (r *Resolver) retaliate(enc *Encounter, res *Result) {
	p := r.World.Player
	c := enc.Creature
	res.Output = append(res.Output, fmt.Sprintf("%s attacks %s for %d damage.", c.Name, p.Name, c.Attack))
	absorbed, _ := player.TakeDamage(p, c.Attack)

	if player.Dead(p) {
		r.World.GameOver = true
		res.Outcome = GameOver
		res.Output = append(res.Output, "You have died.")
		res.Events = append(res.Events, types.Event{
			Type: "player_died",
			Data: map[string]any{"creature": c.Key},
		})
		r.Log.WithField("creature", c.Key).Info("player died")
		return
	}
	if absorbed > 0 {
		res.Output = append(res.Output, fmt.Sprintf("%s's remaining defence: %d", p.Name, p.Defence))
	}
	res.Outcome = Ongoing
}

func (r *Resolver) apply(res *Result, effs []types.Effect) {
	evts, out := effects.Apply(r.World, effs, r.Log)
	res.Effects = append(res.Effects, effs...)
	res.Events = append(res.Events, evts...)
	res.Output = append(res.Output, out...)
}
