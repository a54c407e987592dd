package events

import (
	"github.com/nathoo/questline/engine/dice"
	"github.com/nathoo/questline/types"
)

// FallbackGold is paid for a tier missing from the gold table.
const FallbackGold = 10

// DefaultGold is the gold paid per treasure quality tier.
var DefaultGold = map[int]int{1: 10, 2: 20, 3: 35, 4: 50, 5: 75, 6: 100}

var rarityNames = map[int]string{
	1: "Common",
	2: "Blessed",
	3: "Enchanted",
	4: "Arcane",
	5: "Mythic",
	6: "Divine",
}

// RarityName returns the display name of a quality tier.
func RarityName(tier int) string {
	if name, ok := rarityNames[tier]; ok {
		return name
	}
	return "Mysterious"
}

// GoldFor returns the gold paid for a tier under the given table.
func GoldFor(table map[int]int, tier int) int {
	if gold, ok := table[tier]; ok {
		return gold
	}
	return FallbackGold
}

// QualityWeights returns the selection weight of each configured tier.
// A complete ascending range 1..max weighs tier t as 2^(max-t); any other
// list weighs position i as len-i.
func QualityWeights(qualities []int) []int {
	weights := make([]int, len(qualities))
	if isFullRange(qualities) {
		top := len(qualities)
		for i, q := range qualities {
			weights[i] = 1 << (top - q)
		}
		return weights
	}
	for i := range qualities {
		weights[i] = len(qualities) - i
	}
	return weights
}

func isFullRange(qualities []int) bool {
	for i, q := range qualities {
		if q != i+1 {
			return false
		}
	}
	return len(qualities) > 0
}

// ChooseQuality draws one tier from the configured list with a single
// weighted draw. An empty list yields tier 1.
func ChooseQuality(qualities []int, rng *dice.RNG) int {
	if len(qualities) == 0 {
		return 1
	}
	return qualities[rng.WeightedSelect(QualityWeights(qualities))]
}

// Find rolls the area's treasure chance and, on success, picks a tier and
// the gold it pays.
func Find(area *types.Area, table map[int]int, rng *dice.RNG) (tier, gold int, found bool) {
	if !rng.Chance(area.Def.TreasureChance) {
		return 0, 0, false
	}
	tier = ChooseQuality(area.Def.TreasureQualities, rng)
	return tier, GoldFor(table, tier), true
}
