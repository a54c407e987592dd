package explore

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/combat"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/engine/player"
	"github.com/nathoo/questline/engine/state"
	"github.com/nathoo/questline/types"
)

func testWorld(areas ...*types.AreaDef) *state.World {
	c := catalog.New()
	c.Game = types.GameDef{Player: types.PlayerDef{Name: "Hero", Gold: 15, Health: 30, Attack: 5}}
	c.Creatures["rat"] = types.CreatureTemplate{Key: "rat", Name: "Rat", Type: "Beast", HealthMin: 1, HealthMax: 1, Attack: 1, XPDrop: 1, GoldDrop: 1}
	c.Creatures["troll"] = types.CreatureTemplate{Key: "troll", Name: "Troll", Type: "Beast", HealthMin: 28, HealthMax: 32, Attack: 7, XPDrop: 12, GoldDrop: 8}
	c.Creatures["ogre"] = types.CreatureTemplate{Key: "ogre", Name: "Ogre", Type: "Beast", HealthMin: 50, HealthMax: 50, Attack: 40}
	for _, a := range areas {
		c.Areas[a.Key] = a
		c.AreaOrder = append(c.AreaOrder, a.Key)
	}
	return state.New(c, player.DefaultGrowth)
}

func newSequencer(w *state.World, seed int64) *Sequencer {
	log, _ := test.NewNullLogger()
	r := combat.NewResolver(w, dice.NewRNG(seed), log)
	return New(r, log)
}

func area(t *testing.T, w *state.World, key string) *types.Area {
	t.Helper()
	a, ok := w.Area(key)
	if !ok {
		t.Fatalf("area %q missing", key)
	}
	return a
}

var (
	alwaysAttack = DeciderFunc(func(*combat.Encounter) types.CombatAction {
		return types.CombatAction{Kind: types.CombatAttack}
	})
	alwaysFlee = DeciderFunc(func(*combat.Encounter) types.CombatAction {
		return types.CombatAction{Kind: types.CombatFlee}
	})
)

func contains(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func count(lines []string, sub string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, sub) {
			n++
		}
	}
	return n
}

func TestRun_CombatThenTreasure(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "cellar", Name: "Cellar", Difficulty: 1,
		CreatureTypes: []string{"rat"}, MaxCreatures: 3,
		TreasureChance: 1, TreasureQualities: []int{1},
		Events: []string{"combat", "treasure"},
	})
	s := newSequencer(w, 7)
	step := s.Run(area(t, w, "cellar"), alwaysAttack)

	if !step.Done || step.GameOver {
		t.Fatalf("done=%v gameover=%v", step.Done, step.GameOver)
	}
	kills := count(step.Output, "You encounter a Rat!")
	if kills < 1 || kills > 3 {
		t.Errorf("encounters = %d, want 1..3", kills)
	}
	// Each rat drops 1 gold; the tier 1 treasure adds 10.
	if want := 15 + kills + 10; w.Player.Gold != want {
		t.Errorf("gold = %d, want %d", w.Player.Gold, want)
	}
	if !contains(step.Output, "You have found a Common treasure!") {
		t.Errorf("treasure line missing: %v", step.Output)
	}
	if !contains(step.Output, "Victory!") {
		t.Error("clearing the group should announce victory")
	}
	if step.Output[0] != "Exploring Cellar..." || step.Output[len(step.Output)-1] != "Exploration of Cellar is complete." {
		t.Errorf("framing lines wrong: %q ... %q", step.Output[0], step.Output[len(step.Output)-1])
	}
}

func TestRun_FightsInSpawnOrder(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "cellar", Name: "Cellar", Difficulty: 1,
		CreatureTypes: []string{"rat"}, MaxCreatures: 6,
		Events: []string{"combat"},
	})
	a := area(t, w, "cellar")
	s := newSequencer(w, 3)

	var fought, pending []*types.Creature
	d := DeciderFunc(func(enc *combat.Encounter) types.CombatAction {
		if len(fought) == 0 || fought[len(fought)-1] != enc.Creature {
			if len(fought) == 0 {
				pending = append(pending, a.Creatures...)
			}
			fought = append(fought, enc.Creature)
		}
		return types.CombatAction{Kind: types.CombatAttack}
	})
	s.Run(a, d)

	if len(fought) != len(pending)+1 {
		t.Fatalf("fought %d creatures, queue held %d after the first", len(fought), len(pending))
	}
	for i, c := range pending {
		if fought[i+1] != c {
			t.Errorf("creature %d fought out of order", i+1)
		}
	}
}

func TestRun_FleeAbortsOnlyCurrentCombat(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "cellar", Name: "Cellar", Difficulty: 1,
		CreatureTypes: []string{"ogre"}, MaxCreatures: 4,
		TreasureChance: 1, TreasureQualities: []int{2},
		Events: []string{"combat", "treasure"},
	})
	s := newSequencer(w, 11)
	s.Resolver.FleeChance = 1
	a := area(t, w, "cellar")
	step := s.Run(a, alwaysFlee)

	if got := count(step.Output, "You encounter a"); got != 1 {
		t.Errorf("encounters = %d, want 1 after fleeing", got)
	}
	if len(a.Creatures) != 0 {
		t.Errorf("remaining creatures should be discarded, got %d", len(a.Creatures))
	}
	if w.Player.Gold != 15+20 {
		t.Errorf("treasure after flee: gold = %d, want 35", w.Player.Gold)
	}
	if !contains(step.Output, "Hero successfully fled from Ogre!") {
		t.Errorf("flee line missing: %v", step.Output)
	}
}

func TestRun_BossFleeKeepsBossActive(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "bridge", Name: "Bridge", Difficulty: 4,
		Boss: "troll", Events: []string{"boss"},
	})
	s := newSequencer(w, 5)
	s.Resolver.FleeChance = 1
	a := area(t, w, "bridge")

	first := s.Run(a, alwaysFlee)
	if !contains(first.Output, "The boss Troll has appeared!") {
		t.Fatalf("boss did not appear: %v", first.Output)
	}
	if !a.BossActive {
		t.Fatal("boss should stay active after the player flees")
	}

	second := s.Run(a, alwaysFlee)
	if contains(second.Output, "has appeared") {
		t.Error("an active boss must not be spawned again")
	}
	if !contains(second.Output, "The boss has already been defeated or does not exist in this area.") {
		t.Errorf("notice missing: %v", second.Output)
	}
	if !a.BossActive {
		t.Error("boss should still be active")
	}
}

func TestRun_BossDefeatClearsFlag(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "bridge", Name: "Bridge", Difficulty: 4,
		Boss: "troll", Events: []string{"boss"},
	})
	w.Player.BaseAttack = 40
	w.Player.Attack = 40
	s := newSequencer(w, 5)
	a := area(t, w, "bridge")

	step := s.Run(a, alwaysAttack)
	if a.BossActive {
		t.Error("defeated boss should be cleared")
	}
	if w.Player.Level != 2 || w.Player.XP != 1 {
		t.Errorf("level/xp = %d/%d, want 2/1", w.Player.Level, w.Player.XP)
	}
	if !contains(step.Output, "Victory!") {
		t.Error("victory line missing")
	}
}

func TestRun_DeathStopsSequence(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "cave", Name: "Cave", Difficulty: 2,
		CreatureTypes: []string{"ogre"}, MaxCreatures: 1,
		TreasureChance: 1, TreasureQualities: []int{1},
		Events: []string{"combat", "treasure"},
	})
	s := newSequencer(w, 2)
	step := s.Run(area(t, w, "cave"), alwaysAttack)

	if !step.GameOver || !w.GameOver {
		t.Fatal("player should be dead")
	}
	if w.Player.Gold != 15 {
		t.Errorf("treasure after death: gold = %d", w.Player.Gold)
	}
	if contains(step.Output, "Exploration of Cave is complete.") {
		t.Error("a fatal run does not complete")
	}
}

func TestBeginResume_WaitsForDecisions(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "cellar", Name: "Cellar", Difficulty: 1,
		CreatureTypes: []string{"rat"}, MaxCreatures: 1,
		Events: []string{"combat"},
	})
	s := newSequencer(w, 1)
	run, step := s.Begin(area(t, w, "cellar"))
	if !step.Waiting() || run.Encounter() == nil {
		t.Fatal("run should wait for the first combat action")
	}

	step = s.Resume(run, types.CombatAction{Kind: types.CombatCheckQuest})
	if !step.Waiting() {
		t.Fatal("checking the quest keeps the fight going")
	}
	step = s.Resume(run, types.CombatAction{Kind: types.CombatAttack})
	if step.Waiting() || !step.Done || !run.Done() {
		t.Fatalf("the single rat should die and end the run: %+v", step)
	}

	// Resuming a finished run is a no-op.
	if again := s.Resume(run, types.CombatAction{Kind: types.CombatAttack}); len(again.Output) != 0 {
		t.Errorf("unexpected output: %v", again.Output)
	}
}

func storyWorld(events ...string) *state.World {
	w := testWorld(&types.AreaDef{Key: "forest", Name: "Forest", Difficulty: 2, Events: events})
	q := &types.Quest{
		ID: "lost_map", Description: "Recover the map", Kind: types.QuestStory,
		Story: &types.StoryLine{Steps: []types.Step{
			{Type: types.TriggerExploration, Trigger: map[string]string{"area": "forest"}, Description: "Search the forest", StoryText: "Leaves whisper."},
			{Type: types.TriggerExploration, Trigger: map[string]string{"area": "forest"}, Description: "Search again"},
			{Type: types.TriggerInteraction, Trigger: map[string]string{"npc": "elder"}, Description: "Report back"},
		}},
	}
	w.Player.ActiveQuest = q
	return w
}

func TestRun_StoryCheckpointOncePerRun(t *testing.T) {
	w := storyWorld("story", "story")
	s := newSequencer(w, 1)
	step := s.Run(area(t, w, "forest"), alwaysAttack)

	if got := w.Player.ActiveQuest.Story.CurrentStep; got != 1 {
		t.Errorf("current step = %d, want 1", got)
	}
	if !contains(step.Output, "Story: 'Leaves whisper.'") {
		t.Errorf("story reveal missing: %v", step.Output)
	}
}

func TestRun_EndOfRunStoryFallback(t *testing.T) {
	w := storyWorld("treasure")
	s := newSequencer(w, 1)
	s.Run(area(t, w, "forest"), alwaysAttack)

	if got := w.Player.ActiveQuest.Story.CurrentStep; got != 1 {
		t.Errorf("current step = %d, want 1 from the end-of-run attempt", got)
	}
}

func TestRun_StoryTagWithoutQuestIsSkipped(t *testing.T) {
	w := testWorld(&types.AreaDef{Key: "forest", Name: "Forest", Difficulty: 2, Events: []string{"story"}})
	s := newSequencer(w, 1)
	step := s.Run(area(t, w, "forest"), alwaysAttack)
	if !step.Done || len(step.Output) != 2 {
		t.Errorf("output = %v", step.Output)
	}
}

func TestRun_StuckDeciderIsBounded(t *testing.T) {
	w := testWorld(&types.AreaDef{
		Key: "cellar", Name: "Cellar", Difficulty: 1,
		CreatureTypes: []string{"rat"}, MaxCreatures: 1,
		Events: []string{"combat"},
	})
	s := newSequencer(w, 1)
	stuck := DeciderFunc(func(*combat.Encounter) types.CombatAction {
		return types.CombatAction{Kind: types.CombatCheckQuest}
	})
	if step := s.Run(area(t, w, "cellar"), stuck); !step.Done {
		t.Error("run should be aborted")
	}
}
