package models

import (
	"fmt"
	"strings"
)

// Hit chances are percentages rolled against a d100.
const (
	MinHitChance = 1
	MaxHitChance = 99
	// EvadeBonus is added to a living character's hit chance after a dodge.
	EvadeBonus = 3
)

// RandSource draws uniform integers in [0, n).
// Sources shared between workers must be safe for concurrent use.
type RandSource interface {
	Intn(n int) int
}

// Variety holds the ranges character modifiers are drawn from.
type Variety struct {
	Weapon int `json:"weapon" yaml:"weapon"` // survivor hit modifier in [0, Weapon]
	Armor  int `json:"armor" yaml:"armor"`   // survivor defense modifier in [0, Armor]
	Zombie int `json:"zombie" yaml:"zombie"` // zombie hit modifier in [-Zombie, +Zombie]
}

// Character is a survivor or a zombie. The role is a flag, not a type:
// a survivor converted by a bite keeps its identity and becomes a zombie.
//
// A Character is not safe for concurrent mutation. During a fight only the
// worker owning a survivor mutates it.
type Character struct {
	name            string
	hitChance       int
	hitModifier     int
	defenseModifier int
	zombie          bool
	evaded          bool
}

// New builds a character. Zombies get their modifier from the zombie
// variety; survivors roll weapon then armor. A zero range draws nothing.
// Out-of-range hit chances are clamped, never rejected.
func New(src RandSource, hitChance int, asZombie bool, variety Variety, name string) *Character {
	c := &Character{name: name}
	if asZombie {
		c.Zombify(src, hitChance, variety.Zombie)
		return c
	}
	c.SetHitChance(hitChance)
	c.hitModifier = rollUpTo(src, variety.Weapon)
	c.defenseModifier = rollUpTo(src, variety.Armor)
	return c
}

// Name returns the display name.
func (c *Character) Name() string { return c.name }

// HitChance returns the clamped base hit chance without modifiers.
func (c *Character) HitChance() int { return c.hitChance }

// SetHitChance assigns the base hit chance, clamped to [1, 99].
func (c *Character) SetHitChance(v int) {
	c.hitChance = clampChance(v)
}

// HitModifier returns the weapon (or zombie variety) offset.
func (c *Character) HitModifier() int { return c.hitModifier }

// DefenseModifier returns the armor value subtracted from zombie attacks.
func (c *Character) DefenseModifier() int { return c.defenseModifier }

// IsZombie reports whether the character is a zombie.
func (c *Character) IsZombie() bool { return c.zombie }

// IsAlive reports whether the character is a living survivor.
func (c *Character) IsAlive() bool { return !c.zombie }

// Evaded reports whether the character has dodged an attack before.
func (c *Character) Evaded() bool { return c.evaded }

// MarkEvaded records a dodge. Calling it again changes nothing.
func (c *Character) MarkEvaded() { c.evaded = true }

// EffectiveHitChance is the value a d100 roll must stay below to hit.
func (c *Character) EffectiveHitChance() int {
	chance := clampChance(c.hitChance + c.hitModifier)
	if !c.zombie && c.evaded {
		chance += EvadeBonus
	}
	return chance
}

// Zombify turns the character into a zombie. The base hit chance is reset
// and a new modifier is drawn from [-variety, +variety].
func (c *Character) Zombify(src RandSource, hitChance, variety int) {
	c.zombie = true
	c.SetHitChance(hitChance)
	c.hitModifier = rollSymmetric(src, variety)
}

// ModifierInfo renders the modifiers, e.g. "(5⚔ 3🛡)". Empty without modifiers.
func (c *Character) ModifierInfo() string {
	parts := make([]string, 0, 2)
	if c.hitModifier != 0 {
		parts = append(parts, fmt.Sprintf("%d⚔", c.hitModifier))
	}
	if c.defenseModifier != 0 {
		parts = append(parts, fmt.Sprintf("%d🛡", c.defenseModifier))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (c *Character) String() string {
	return c.name + c.ModifierInfo()
}

func clampChance(v int) int {
	if v < MinHitChance {
		return MinHitChance
	}
	if v > MaxHitChance {
		return MaxHitChance
	}
	return v
}

func rollUpTo(src RandSource, n int) int {
	if n <= 0 {
		return 0
	}
	return src.Intn(n + 1)
}

func rollSymmetric(src RandSource, n int) int {
	if n <= 0 {
		return 0
	}
	return src.Intn(2*n+1) - n
}
