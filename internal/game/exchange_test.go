package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thokas/zombie-survival/internal/engine"
	"github.com/Thokas/zombie-survival/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func survivor(hit int, name string) *models.Character {
	return models.New(engine.NewScript(), hit, false, models.Variety{}, name)
}

func zombieWith(hit int, name string) *models.Character {
	return models.New(engine.NewScript(), hit, true, models.Variety{}, name)
}

var defaultRules = Rules{ZombifyChance: 30}

func TestResolveExchangeKillsZombie(t *testing.T) {
	s := survivor(100, "Alice Adams")
	z := zombieWith(1, "Zombie 1")
	pool := engine.NewZombiePool()
	src := engine.ScriptD100(50)
	rec := &recorder{}

	ex, err := ResolveExchange(s, z, pool, src, defaultRules, rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeKilled, ex.Outcome)
	assert.Equal(t, 50, ex.AttackRoll)
	assert.Equal(t, 99, ex.AttackChance)
	assert.Zero(t, ex.CounterRoll)
	assert.True(t, pool.IsEmpty())
	assert.True(t, s.IsAlive())
	assert.Equal(t, 1, src.Used(), "a kill skips the counterattack roll")
	assert.Equal(t, []EventKind{EventExchangeStarted, EventZombieKilled}, rec.kinds())
}

func TestResolveExchangeConvertsSurvivor(t *testing.T) {
	s := survivor(1, "Bob Baker")
	z := zombieWith(99, "Zombie 1")
	pool := engine.NewZombiePool()
	src := engine.ScriptD100(50, 10)
	rec := &recorder{}

	ex, err := ResolveExchange(s, z, pool, src, defaultRules, rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeConverted, ex.Outcome)
	assert.Equal(t, 10, ex.CounterRoll)
	assert.Equal(t, 99, ex.CounterChance)
	assert.True(t, s.IsZombie())
	assert.Equal(t, 30, s.HitChance())
	assert.Equal(t, []string{"Zombie 1", "Bob Baker"}, pool.Names())
	assert.Equal(t, []EventKind{EventExchangeStarted, EventAttackMissed, EventSurvivorConverted}, rec.kinds())

	last := rec.snapshot()[2]
	assert.Equal(t, "Bob Baker", last.Survivor)
	assert.Equal(t, "Zombie 1", last.Zombie)
}

func TestResolveExchangeRollEqualToChanceMisses(t *testing.T) {
	s := survivor(50, "Carol Clark")
	z := zombieWith(30, "Zombie 1")
	pool := engine.NewZombiePool()
	// 50 is not below 50; 30 is not below 30.
	src := engine.ScriptD100(50, 30)

	ex, err := ResolveExchange(s, z, pool, src, defaultRules, nil)

	require.NoError(t, err)
	assert.Equal(t, OutcomeEvaded, ex.Outcome)
	assert.True(t, s.IsAlive())
	assert.True(t, s.Evaded())
	assert.Equal(t, 50+models.EvadeBonus, s.EffectiveHitChance())
	assert.Equal(t, []string{"Zombie 1"}, pool.Names())
}

func TestResolveExchangeArmorIsNotClamped(t *testing.T) {
	// Armor variety 10 with a raw draw of 10 gives a defense modifier of 10.
	s := models.New(engine.NewScript(10), 50, false, models.Variety{Armor: 10}, "Dan Davis")
	require.Equal(t, 10, s.DefenseModifier())
	z := zombieWith(5, "Zombie 1")
	src := engine.ScriptD100(100, 1)

	ex, err := ResolveExchange(s, z, engine.NewZombiePool(), src, defaultRules, nil)

	require.NoError(t, err)
	assert.Equal(t, -5, ex.CounterChance)
	assert.Equal(t, OutcomeEvaded, ex.Outcome, "roll 1 is not below -5")
}

func TestResolveExchangeEvadeIsIdempotent(t *testing.T) {
	s := survivor(10, "Eve Evans")
	pool := engine.NewZombiePool()
	src := engine.ScriptD100(100, 100, 100, 100)

	for i := 0; i < 2; i++ {
		ex, err := ResolveExchange(s, zombieWith(30, "Zombie 1"), pool, src, defaultRules, nil)
		require.NoError(t, err)
		assert.Equal(t, OutcomeEvaded, ex.Outcome)
	}

	assert.Equal(t, 10+models.EvadeBonus, s.EffectiveHitChance())
}

func TestResolveExchangeRejectsWrongRoles(t *testing.T) {
	pool := engine.NewZombiePool()
	src := engine.ScriptD100()

	_, err := ResolveExchange(zombieWith(30, "Zombie 2"), zombieWith(30, "Zombie 1"), pool, src, defaultRules, nil)
	assert.ErrorIs(t, err, ErrInvalidExchange)

	_, err = ResolveExchange(survivor(50, "Al"), survivor(50, "Bo"), pool, src, defaultRules, nil)
	assert.ErrorIs(t, err, ErrInvalidExchange)

	_, err = ResolveExchange(nil, zombieWith(30, "Zombie 1"), pool, src, defaultRules, nil)
	assert.ErrorIs(t, err, ErrInvalidExchange)

	assert.True(t, pool.IsEmpty())
	assert.Zero(t, src.Used())
}

func TestBuildZombiePoolNamesInOrder(t *testing.T) {
	pool := BuildZombiePool(engine.NewSource(1), 3, 30, models.Variety{Zombie: 5, Weapon: 9})

	assert.Equal(t, []string{"Zombie 1", "Zombie 2", "Zombie 3"}, pool.Names())
	for _, z := range pool.Snapshot() {
		assert.True(t, z.IsZombie())
		assert.Equal(t, 30, z.HitChance())
		assert.GreaterOrEqual(t, z.HitModifier(), -5)
		assert.LessOrEqual(t, z.HitModifier(), 5)
	}
}

type fixedNamer struct{}

func (fixedNamer) FirstName() string { return "Jane" }
func (fixedNamer) LastName() string  { return "Doe" }

func TestBuildSurvivors(t *testing.T) {
	survivors := BuildSurvivors(engine.NewSource(7), fixedNamer{}, 4, 150, models.Variety{Weapon: 3, Armor: 2, Zombie: 9})

	require.Len(t, survivors, 4)
	for _, s := range survivors {
		assert.True(t, s.IsAlive())
		assert.Equal(t, models.MaxHitChance, s.HitChance())
		assert.GreaterOrEqual(t, s.HitModifier(), 0)
		assert.LessOrEqual(t, s.HitModifier(), 3)
		assert.GreaterOrEqual(t, s.DefenseModifier(), 0)
		assert.LessOrEqual(t, s.DefenseModifier(), 2)
	}
}

func TestBuildSurvivorsUniqueNames(t *testing.T) {
	survivors := BuildSurvivors(engine.NewSource(7), fixedNamer{}, 4, 50, models.Variety{})

	names := make([]string, 0, len(survivors))
	for _, s := range survivors {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"Jane Doe", "Jane Doe 2", "Jane Doe 3", "Jane Doe 4"}, names)
}

type listNamer struct{ first, last []string }

func (n *listNamer) FirstName() string {
	v := n.first[0]
	n.first = n.first[1:]
	return v
}

func (n *listNamer) LastName() string {
	v := n.last[0]
	n.last = n.last[1:]
	return v
}

func TestBuildSurvivorsSkipsTakenSuffix(t *testing.T) {
	namer := &listNamer{
		first: []string{"Ada", "Ada", "Ada"},
		last:  []string{"Lee 2", "Lee", "Lee"},
	}

	survivors := BuildSurvivors(engine.NewSource(1), namer, 3, 50, models.Variety{})

	require.Len(t, survivors, 3)
	assert.Equal(t, "Ada Lee 2", survivors[0].Name())
	assert.Equal(t, "Ada Lee", survivors[1].Name())
	assert.Equal(t, "Ada Lee 3", survivors[2].Name())
}
