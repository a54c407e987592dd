// Package explore drives an area's event sequence for one visit. A run is
// resumable: Begin advances until a creature needs a player decision and
// Resume feeds that decision back in, so a shell can take one command per
// turn. Run drives a whole visit with a Decider.
package explore

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/questline/engine/combat"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/engine/effects"
	"github.com/nathoo/questline/engine/events"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

// maxTurns bounds Run against a Decider that never ends a fight.
const maxTurns = 10000

// Decider chooses the player's action for each combat turn.
type Decider interface {
	Decide(enc *combat.Encounter) types.CombatAction
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(enc *combat.Encounter) types.CombatAction

// Decide calls f(enc).
func (f DeciderFunc) Decide(enc *combat.Encounter) types.CombatAction {
	return f(enc)
}

// Sequencer runs exploration visits against the world.
type Sequencer struct {
	World    *state.World
	Resolver *combat.Resolver
	RNG      *dice.RNG
	Gold     map[int]int
	Log      logrus.FieldLogger
}

// New creates a sequencer sharing the resolver's world and RNG.
func New(r *combat.Resolver, log logrus.FieldLogger) *Sequencer {
	return &Sequencer{
		World:    r.World,
		Resolver: r,
		RNG:      r.RNG,
		Gold:     events.DefaultGold,
		Log:      log.WithField("component", "explore"),
	}
}

// Run is the state of one visit to an area.
type Run struct {
	Area *types.Area

	tags       []string
	next       int
	current    *combat.Encounter
	boss       bool
	progressed bool
	done       bool
}

// Encounter returns the fight awaiting a decision, or nil.
func (r *Run) Encounter() *combat.Encounter {
	return r.current
}

// Done reports whether the visit has ended.
func (r *Run) Done() bool {
	return r.done
}

// Step is what one advance of a run produced.
type Step struct {
	Output  []string
	Effects []types.Effect
	Events  []types.Event
	// Encounter is set when the run is waiting for a combat action.
	Encounter *combat.Encounter
	Done      bool
	GameOver  bool
}

// Waiting reports whether the run needs a combat action to continue.
func (s Step) Waiting() bool {
	return s.Encounter != nil
}

// Begin starts a visit and advances it to the first decision point.
func (s *Sequencer) Begin(area *types.Area) (*Run, Step) {
	tags := area.Def.Events
	if len(tags) == 0 {
		tags = []string{events.Combat}
	}
	run := &Run{Area: area, tags: append([]string(nil), tags...)}
	area.Creatures = nil

	var step Step
	step.Output = append(step.Output, fmt.Sprintf("Exploring %s...", area.Def.Name))
	s.Log.WithFields(logrus.Fields{"area": area.Def.Key, "events": run.tags}).Debug("exploration started")
	s.advance(run, &step)
	return run, step
}

// Resume applies one combat action to the waiting encounter and advances
// the run to the next decision point.
func (s *Sequencer) Resume(run *Run, action types.CombatAction) Step {
	var step Step
	if run.done || run.current == nil {
		step.Done = run.done
		return step
	}
	enc := run.current
	res := s.Resolver.Turn(enc, action)
	step.Output = append(step.Output, res.Output...)
	step.Effects = append(step.Effects, res.Effects...)
	step.Events = append(step.Events, res.Events...)

	switch res.Outcome {
	case combat.Ongoing, combat.NoChange:
		step.Encounter = enc
		step.Output = append(step.Output, s.Resolver.Status(enc)...)
		return step

	case combat.Defeated:
		if run.boss {
			run.Area.BossActive = false
			run.boss = false
		}
		run.current = nil
		if len(run.Area.Creatures) == 0 {
			step.Output = append(step.Output, "Victory!")
			step.Events = append(step.Events, types.Event{
				Type: "victory",
				Data: map[string]any{"area": run.Area.Def.Key},
			})
		}

	case combat.Fled:
		// A fled boss stays active; the rest of the group is discarded.
		run.boss = false
		run.current = nil
		run.Area.Creatures = nil

	case combat.GameOver:
		run.current = nil
		run.done = true
		step.Output = append(step.Output, "Game over!")
		step.Done = true
		step.GameOver = true
		return step
	}

	s.advance(run, &step)
	return step
}

// Run drives a whole visit, asking d for every combat decision.
func (s *Sequencer) Run(area *types.Area, d Decider) Step {
	run, step := s.Begin(area)
	total := step
	for turns := 0; step.Waiting(); turns++ {
		if turns >= maxTurns {
			s.Log.WithField("area", area.Def.Key).Warn("exploration aborted: decider made no progress")
			run.current = nil
			run.done = true
			total.Done = true
			break
		}
		step = s.Resume(run, d.Decide(step.Encounter))
		total.Output = append(total.Output, step.Output...)
		total.Events = append(total.Events, step.Events...)
		total.Effects = append(total.Effects, step.Effects...)
		total.Done = step.Done
		total.GameOver = step.GameOver
	}
	total.Encounter = nil
	return total
}

// advance processes events until a creature needs a decision or the
// sequence ends.
func (s *Sequencer) advance(run *Run, step *Step) {
	p := s.World.Player
	for {
		if player.Dead(p) {
			run.done = true
			step.Done = true
			step.GameOver = true
			return
		}

		if len(run.Area.Creatures) > 0 {
			c := run.Area.Creatures[0]
			run.Area.Creatures = run.Area.Creatures[1:]
			run.current = &combat.Encounter{Creature: c, Area: run.Area}
			step.Output = append(step.Output, s.Resolver.Start(run.current)...)
			step.Output = append(step.Output, s.Resolver.Status(run.current)...)
			step.Encounter = run.current
			return
		}

		if run.next >= len(run.tags) {
			s.finish(run, step)
			return
		}
		tag := run.tags[run.next]
		run.next++
		s.trigger(run, tag, step)
	}
}

// trigger runs one event tag. Combat and boss events only queue
// creatures; the fights themselves happen through advance and Resume.
func (s *Sequencer) trigger(run *Run, tag string, step *Step) {
	area := run.Area
	switch tag {
	case events.Combat:
		group, errs := events.SpawnGroup(area, s.World.Catalog, s.RNG)
		for _, err := range errs {
			s.Log.WithError(err).WithField("area", area.Def.Key).Warn("creature could not be spawned")
			step.Output = append(step.Output, "Something stirs, but nothing appears.")
		}
		if len(group) > 0 {
			step.Output = append(step.Output, fmt.Sprintf("%d creatures have appeared in %s!", len(group), area.Def.Name))
		}
		area.Creatures = group

	case events.Treasure:
		tier, gold, found := events.Find(area, s.Gold, s.RNG)
		if !found {
			return
		}
		step.Output = append(step.Output,
			fmt.Sprintf("You have found a %s treasure!", events.RarityName(tier)),
			fmt.Sprintf("You received %d gold as a reward!", gold),
		)
		s.apply(step, []types.Effect{{Type: types.EffectGold, Amount: gold}})

	case events.Boss:
		boss, err := events.SpawnBoss(area, s.World.Catalog, s.RNG)
		if err != nil {
			s.Log.WithError(err).WithField("area", area.Def.Key).Warn("boss could not be spawned")
			return
		}
		if boss == nil {
			step.Output = append(step.Output, "The boss has already been defeated or does not exist in this area.")
			return
		}
		step.Output = append(step.Output, fmt.Sprintf("The boss %s has appeared!", boss.Name))
		area.Creatures = []*types.Creature{boss}
		run.boss = true

	default:
		if quest.ActiveStory(s.World.Player) != nil && !run.progressed {
			s.checkStory(run, step)
			return
		}
		s.Log.WithField("event", tag).Debug("story checkpoint skipped")
	}
}

// finish makes the end-of-visit story attempt and closes the run.
func (s *Sequencer) finish(run *Run, step *Step) {
	if quest.ActiveStory(s.World.Player) != nil && !run.progressed {
		s.checkStory(run, step)
	}
	step.Output = append(step.Output, fmt.Sprintf("Exploration of %s is complete.", run.Area.Def.Name))
	run.done = true
	step.Done = true
}

func (s *Sequencer) checkStory(run *Run, step *Step) {
	key := run.Area.Def.Key
	ok, effs := quest.TriggerStep(s.World.Player, types.TriggerExploration, map[string]string{"area": key})
	if !ok {
		s.Log.WithField("area", key).Debug("trigger did not match, step not progressed")
		return
	}
	run.progressed = true
	step.Events = append(step.Events, types.Event{
		Type: "quest_step",
		Data: map[string]any{"trigger": string(types.TriggerExploration), "area": key},
	})
	s.apply(step, effs)
}

func (s *Sequencer) apply(step *Step, effs []types.Effect) {
	evts, out := effects.Apply(s.World, effs, s.Log)
	step.Effects = append(step.Effects, effs...)
	step.Events = append(step.Events, evts...)
	step.Output = append(step.Output, out...)
}
