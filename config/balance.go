package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/questline/engine"
	"github.com/nathoo/questline/engine/combat"
	"github.com/nathoo/questline/engine/events"
	"github.com/nathoo/questline/engine/player"
)

// Balance holds the tunable game numbers.
type Balance struct {
	FleeChance   float64     `yaml:"flee_chance"`
	TreasureGold map[int]int `yaml:"treasure_gold"`
	Leveling     Leveling    `yaml:"leveling"`
}

// Leveling tunes what a player gains on level-up. Zero fields take the
// stock values.
type Leveling struct {
	HealthPerLevel int `yaml:"health_per_level"`
	AttackEvery    int `yaml:"attack_every"`
}

// DefaultBalance returns the stock numbers.
func DefaultBalance() Balance {
	b := Balance{FleeChance: combat.DefaultFleeChance}
	b.ApplyDefaults()
	return b
}

// ApplyDefaults fills the gold table and leveling with stock values where
// unset. A partial gold table is merged over the stock one. FleeChance is
// left alone: zero means fleeing never works.
func (b *Balance) ApplyDefaults() {
	gold := make(map[int]int, len(events.DefaultGold))
	for tier, amount := range events.DefaultGold {
		gold[tier] = amount
	}
	for tier, amount := range b.TreasureGold {
		gold[tier] = amount
	}
	b.TreasureGold = gold
	if b.Leveling.HealthPerLevel == 0 {
		b.Leveling.HealthPerLevel = player.DefaultGrowth.HealthPerLevel
	}
	if b.Leveling.AttackEvery == 0 {
		b.Leveling.AttackEvery = player.DefaultGrowth.AttackEvery
	}
}

// LoadBalance reads a balance file. An empty path, or a missing file when
// optional is set, yields the defaults.
func LoadBalance(path string, optional bool) (Balance, error) {
	if path == "" {
		return DefaultBalance(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return DefaultBalance(), nil
		}
		return Balance{}, fmt.Errorf("reading balance %s: %w", path, err)
	}
	b := DefaultBalance()
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Balance{}, fmt.Errorf("parsing balance %s: %w", path, err)
	}
	b.ApplyDefaults()
	if b.FleeChance < 0 || b.FleeChance > 1 {
		return Balance{}, fmt.Errorf("balance %s: flee_chance must be between 0 and 1", path)
	}
	return b, nil
}

// Options converts the balance into engine options.
func (b Balance) Options() engine.Options {
	flee := b.FleeChance
	return engine.Options{
		FleeChance: &flee,
		Gold:       b.TreasureGold,
		Growth: player.Growth{
			HealthPerLevel: b.Leveling.HealthPerLevel,
			AttackEvery:    b.Leveling.AttackEvery,
		},
	}
}
