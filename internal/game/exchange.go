package game

import (
	"errors"
	"fmt"

	"github.com/Thokas/zombie-survival/internal/engine"
	"github.com/Thokas/zombie-survival/internal/models"
)

// ErrInvalidExchange reports an exchange attempted with the wrong roles.
var ErrInvalidExchange = errors.New("invalid exchange")

// Rules are the conversion parameters applied when a survivor is bitten.
type Rules struct {
	ZombifyChance int
	ZombieVariety int
}

// RulesFromSettings extracts the conversion rules.
func RulesFromSettings(s models.Settings) Rules {
	return Rules{ZombifyChance: s.ZombifyChance, ZombieVariety: s.ZombieVariety}
}

// ResolveExchange runs one attack/counterattack cycle between a living
// survivor and a zombie already popped from the pool.
//
// A killed zombie is discarded. A missed zombie goes back to the pool
// before it counterattacks; a bitten survivor is zombified and pushed
// after it. Both checks are strict: a roll equal to the chance misses.
func ResolveExchange(s, z *models.Character, pool *engine.ZombiePool, src engine.Source, rules Rules, sink Sink) (Exchange, error) {
	switch {
	case s == nil || z == nil:
		return Exchange{}, fmt.Errorf("%w: missing combatant", ErrInvalidExchange)
	case !s.IsAlive():
		return Exchange{}, fmt.Errorf("%w: %s is already a zombie", ErrInvalidExchange, s.Name())
	case !z.IsZombie():
		return Exchange{}, fmt.Errorf("%w: %s is not a zombie", ErrInvalidExchange, z.Name())
	}
	if sink == nil {
		sink = Discard
	}

	sink.Notify(Event{Kind: EventExchangeStarted, Survivor: s.Name(), Zombie: z.Name()})

	ex := Exchange{AttackChance: s.EffectiveHitChance()}
	ex.AttackRoll = engine.D100(src)
	if ex.AttackRoll < ex.AttackChance {
		ex.Outcome = OutcomeKilled
		sink.Notify(Event{Kind: EventZombieKilled, Survivor: s.Name(), Zombie: z.Name(), Roll: ex.AttackRoll, Chance: ex.AttackChance})
		return ex, nil
	}

	pool.Push(z)
	sink.Notify(Event{Kind: EventAttackMissed, Survivor: s.Name(), Zombie: z.Name(), Roll: ex.AttackRoll, Chance: ex.AttackChance})

	// Armor may push the counter chance below 1; that is not clamped.
	ex.CounterChance = z.EffectiveHitChance() - s.DefenseModifier()
	ex.CounterRoll = engine.D100(src)
	if ex.CounterRoll < ex.CounterChance {
		ex.Outcome = OutcomeConverted
		s.Zombify(src, rules.ZombifyChance, rules.ZombieVariety)
		pool.Push(s)
		sink.Notify(Event{Kind: EventSurvivorConverted, Survivor: s.Name(), Zombie: z.Name(), Roll: ex.CounterRoll, Chance: ex.CounterChance})
		return ex, nil
	}

	ex.Outcome = OutcomeEvaded
	s.MarkEvaded()
	sink.Notify(Event{Kind: EventSurvivorEvaded, Survivor: s.Name(), Zombie: z.Name(), Roll: ex.CounterRoll, Chance: ex.CounterChance})
	return ex, nil
}
