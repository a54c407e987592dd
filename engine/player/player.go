// Package player implements the player's stat rules: damage absorption,
// per-battle defence, temporary attack effects and experience.
package player

import (
	"fmt"

	"github.com/nathoo/questline/types"
)

// Starting values used when the game content leaves a field unset.
const (
	DefaultName    = "Adventurer"
	DefaultGold    = 15
	DefaultHealth  = 30
	DefaultAttack  = 5
	DefaultDefence = 0
)

// Growth controls the stat gains applied on each level-up.
type Growth struct {
	HealthPerLevel int // added to both max and current health
	AttackEvery    int // base attack +1 on levels divisible by this
}

// DefaultGrowth is +3 health per level and +1 attack every third level.
var DefaultGrowth = Growth{HealthPerLevel: 3, AttackEvery: 3}

// New creates a level 1 player from the game's starting definition.
// Starting items are added by the caller, which owns the item catalog.
func New(def types.PlayerDef) *types.Player {
	p := &types.Player{
		Name:        def.Name,
		Gold:        def.Gold,
		Level:       1,
		MaxHealth:   def.Health,
		BaseAttack:  def.Attack,
		BaseDefence: def.Defence,
		Inventory:   map[string]*types.InventorySlot{},
		Effects:     map[types.PotionEffect]*types.ActiveEffect{},
	}
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.MaxHealth <= 0 {
		p.MaxHealth = DefaultHealth
	}
	if p.BaseAttack <= 0 {
		p.BaseAttack = DefaultAttack
	}
	p.Health = p.MaxHealth
	p.Attack = p.BaseAttack
	p.Defence = p.BaseDefence
	return p
}

// Dead reports whether the player's health has run out.
func Dead(p *types.Player) bool {
	return p.Health <= 0
}

// StartBattle resets the consumable defence pool to base defence.
// This is the only place defence is restored.
func StartBattle(p *types.Player) string {
	p.Defence = p.BaseDefence
	return fmt.Sprintf("%s starts with %d defence.", p.Name, p.Defence)
}

// TakeDamage applies incoming damage. Defence absorbs as much as it can
// and is used up by what it absorbs; the rest comes off health.
func TakeDamage(p *types.Player, damage int) (absorbed, taken int) {
	if damage < 0 {
		damage = 0
	}
	absorbed = min(p.Defence, damage)
	taken = damage - absorbed
	p.Defence -= absorbed
	p.Health -= taken
	if p.Health < 0 {
		p.Health = 0
	}
	return absorbed, taken
}

// ApplyAttackEffects recomputes effective attack from base attack plus any
// active strength boost, and returns it.
func ApplyAttackEffects(p *types.Player) int {
	p.Attack = p.BaseAttack
	if eff, ok := p.Effects[types.PotionStrengthBoost]; ok {
		p.Attack += eff.Value
	}
	return p.Attack
}

// TickAttackEffects counts down the strength boost after an attack and
// removes it once it runs out.
func TickAttackEffects(p *types.Player) []string {
	eff, ok := p.Effects[types.PotionStrengthBoost]
	if !ok {
		return nil
	}
	eff.Duration--
	if eff.Duration > 0 {
		return nil
	}
	delete(p.Effects, types.PotionStrengthBoost)
	return []string{fmt.Sprintf("%s's strength boost has worn off.", p.Name)}
}

// AddEffect starts (or replaces) a temporary effect.
func AddEffect(p *types.Player, kind types.PotionEffect, value, duration int) {
	if p.Effects == nil {
		p.Effects = map[types.PotionEffect]*types.ActiveEffect{}
	}
	p.Effects[kind] = &types.ActiveEffect{Value: value, Duration: duration}
}

// HasEffect reports whether an effect of the given kind is active.
func HasEffect(p *types.Player, kind types.PotionEffect) bool {
	_, ok := p.Effects[kind]
	return ok
}

// Heal restores health up to the maximum and returns the amount restored.
func Heal(p *types.Player, amount int) int {
	before := p.Health
	p.Health = min(p.MaxHealth, p.Health+amount)
	return p.Health - before
}

// AdjustGold adds (or, when negative, removes) gold.
func AdjustGold(p *types.Player, amount int) {
	p.Gold += amount
}

// XPNeeded returns the experience required to advance from level:
// floor(1.2*level^3 + 10*level), computed in integers.
func XPNeeded(level int) int {
	return 6*level*level*level/5 + 10*level
}

// GainXP adds experience and applies every level-up it pays for.
func GainXP(p *types.Player, amount int, g Growth) []string {
	if amount <= 0 {
		return nil
	}
	p.XP += amount
	var out []string
	for p.XP >= XPNeeded(p.Level) {
		out = append(out, levelUp(p, g)...)
	}
	return out
}

func levelUp(p *types.Player, g Growth) []string {
	p.XP -= XPNeeded(p.Level)
	p.Level++
	p.MaxHealth += g.HealthPerLevel
	p.Health += g.HealthPerLevel
	if g.AttackEvery > 0 && p.Level%g.AttackEvery == 0 {
		p.BaseAttack++
	}
	p.Attack = p.BaseAttack
	return []string{
		fmt.Sprintf("%s leveled up to Level %d!", p.Name, p.Level),
		fmt.Sprintf("Health is now %d/%d and Attack is now %d.", p.Health, p.MaxHealth, p.Attack),
	}
}
