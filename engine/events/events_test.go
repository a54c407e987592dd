package events

import (
	"errors"
	"testing"

	"github.com/nathoo/questline/engine/catalog"
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/types"
)

func testCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Creatures["zombie"] = types.CreatureTemplate{Key: "zombie", Name: "Zombie", Type: "Undead", HealthMin: 8, HealthMax: 14, Attack: 2}
	c.Creatures["skeleton"] = types.CreatureTemplate{Key: "skeleton", Name: "Skeleton", Type: "Undead", HealthMin: 7, HealthMax: 12, Attack: 4}
	c.Creatures["troll"] = types.CreatureTemplate{Key: "troll", Name: "Troll", Type: "Humanoid", HealthMin: 28, HealthMax: 32, Attack: 7}
	return c
}

func TestIsStoryCheckpoint(t *testing.T) {
	for _, tag := range []string{Combat, Treasure, Boss} {
		if IsStoryCheckpoint(tag) {
			t.Errorf("%q is not a checkpoint", tag)
		}
	}
	for _, tag := range []string{"story", "quest", "anything"} {
		if !IsStoryCheckpoint(tag) {
			t.Errorf("%q should be a checkpoint", tag)
		}
	}
}

func TestSpawnGroup(t *testing.T) {
	cat := testCatalog()
	area := &types.Area{Def: &types.AreaDef{Key: "graveyard", CreatureTypes: []string{"zombie", "skeleton"}, MaxCreatures: 3}}
	rng := dice.NewRNG(42)
	counts := map[int]int{}
	kinds := map[string]int{}
	for i := 0; i < 600; i++ {
		group, errs := SpawnGroup(area, cat, rng)
		if len(errs) != 0 {
			t.Fatalf("errors: %v", errs)
		}
		counts[len(group)]++
		for _, c := range group {
			kinds[c.Key]++
		}
	}
	for n := 1; n <= 3; n++ {
		if counts[n] == 0 {
			t.Errorf("group size %d never drawn: %v", n, counts)
		}
	}
	if counts[0] != 0 || counts[4] != 0 {
		t.Errorf("group size out of range: %v", counts)
	}
	if kinds["zombie"] == 0 || kinds["skeleton"] == 0 {
		t.Errorf("both creature types should appear: %v", kinds)
	}
}

func TestSpawnGroup_UnknownType(t *testing.T) {
	cat := testCatalog()
	area := &types.Area{Def: &types.AreaDef{CreatureTypes: []string{"dragon"}, MaxCreatures: 1}}
	group, errs := SpawnGroup(area, cat, dice.NewRNG(1))
	if len(group) != 0 {
		t.Errorf("group = %v", group)
	}
	if len(errs) != 1 || !errors.Is(errs[0], catalog.ErrUnknownCreature) {
		t.Errorf("errs = %v", errs)
	}
}

func TestSpawnBoss(t *testing.T) {
	cat := testCatalog()
	area := &types.Area{Def: &types.AreaDef{Key: "bridge", Boss: "troll"}}
	rng := dice.NewRNG(1)

	boss, err := SpawnBoss(area, cat, rng)
	if err != nil || boss == nil {
		t.Fatalf("SpawnBoss: %v, %v", boss, err)
	}
	if !area.BossActive {
		t.Error("boss should be active")
	}

	again, err := SpawnBoss(area, cat, rng)
	if again != nil || err != nil {
		t.Error("an active boss must not spawn twice")
	}

	none := &types.Area{Def: &types.AreaDef{Key: "meadow"}}
	if b, _ := SpawnBoss(none, cat, rng); b != nil || none.BossActive {
		t.Error("areas without a boss spawn nothing")
	}
}

func TestQualityWeights(t *testing.T) {
	tests := []struct {
		name      string
		qualities []int
		want      []int
	}{
		{"single", []int{1}, []int{1}},
		{"full 1..3", []int{1, 2, 3}, []int{4, 2, 1}},
		{"full 1..6", []int{1, 2, 3, 4, 5, 6}, []int{32, 16, 8, 4, 2, 1}},
		{"partial", []int{2, 4}, []int{2, 1}},
		{"gap", []int{1, 3}, []int{2, 1}},
		{"unordered", []int{2, 1}, []int{2, 1}},
		{"partial three", []int{3, 4, 5}, []int{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QualityWeights(tt.qualities)
			if len(got) != len(tt.want) {
				t.Fatalf("weights = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("weights = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestChooseQuality_FullRangeFavoursCommon(t *testing.T) {
	rng := dice.NewRNG(42)
	counts := map[int]int{}
	const n = 7000
	for i := 0; i < n; i++ {
		counts[ChooseQuality([]int{1, 2, 3}, rng)]++
	}
	// Expected 4000 / 2000 / 1000.
	if counts[1] <= counts[2] || counts[2] <= counts[3] {
		t.Errorf("expected tier 1 > tier 2 > tier 3, got %v", counts)
	}
	if counts[1] < 3700 || counts[1] > 4300 {
		t.Errorf("tier 1 = %d, expected about 4000", counts[1])
	}
	if counts[3] < 800 || counts[3] > 1200 {
		t.Errorf("tier 3 = %d, expected about 1000", counts[3])
	}
}

func TestChooseQuality_PartialIsLinear(t *testing.T) {
	rng := dice.NewRNG(7)
	counts := map[int]int{}
	const n = 9000
	for i := 0; i < n; i++ {
		counts[ChooseQuality([]int{2, 4}, rng)]++
	}
	// Expected 6000 / 3000.
	if counts[2] < 5700 || counts[2] > 6300 {
		t.Errorf("tier 2 = %d, expected about 6000", counts[2])
	}
	if counts[2]+counts[4] != n {
		t.Errorf("unexpected tiers drawn: %v", counts)
	}
}

func TestChooseQuality_Empty(t *testing.T) {
	if got := ChooseQuality(nil, dice.NewRNG(1)); got != 1 {
		t.Errorf("ChooseQuality(nil) = %d, want 1", got)
	}
}

func TestGoldFor(t *testing.T) {
	want := map[int]int{1: 10, 2: 20, 3: 35, 4: 50, 5: 75, 6: 100, 7: 10, 0: 10}
	for tier, gold := range want {
		if got := GoldFor(DefaultGold, tier); got != gold {
			t.Errorf("GoldFor(%d) = %d, want %d", tier, got, gold)
		}
	}
}

func TestRarityName(t *testing.T) {
	if RarityName(1) != "Common" || RarityName(6) != "Divine" {
		t.Error("unexpected rarity names")
	}
	if RarityName(9) != "Mysterious" {
		t.Errorf("RarityName(9) = %q", RarityName(9))
	}
}

func TestFind(t *testing.T) {
	always := &types.Area{Def: &types.AreaDef{TreasureChance: 1, TreasureQualities: []int{3}}}
	tier, gold, found := Find(always, DefaultGold, dice.NewRNG(1))
	if !found || tier != 3 || gold != 35 {
		t.Errorf("Find = %d, %d, %v", tier, gold, found)
	}

	never := &types.Area{Def: &types.AreaDef{TreasureChance: 0, TreasureQualities: []int{1}}}
	if _, _, found := Find(never, DefaultGold, dice.NewRNG(1)); found {
		t.Error("zero chance must never find treasure")
	}
}
