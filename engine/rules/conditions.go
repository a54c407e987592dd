package rules

import (
	"strings"

	"github.com/nathoo/questline/types"
)

// AnyTarget is the combat goal wildcard.
const AnyTarget = "any"

// MatchesTarget reports whether a creature satisfies a combat goal's
// target filter. The filter is compared case-insensitively against the
// creature's key, type tag and display name.
func MatchesTarget(target string, c *types.Creature) bool {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == AnyTarget {
		return true
	}
	underscored := strings.ReplaceAll(target, " ", "_")
	switch {
	case strings.ToLower(c.Key) == underscored:
		return true
	case strings.ToLower(c.Type) == target:
		return true
	case strings.ToLower(c.Name) == target:
		return true
	}
	return false
}

// KillCounts reports whether defeating a creature in an area of the given
// difficulty advances a combat goal.
func KillCounts(goal types.CombatGoal, c *types.Creature, difficulty int) bool {
	return MatchesTarget(goal.Target, c) && difficulty >= goal.MinDifficulty
}
