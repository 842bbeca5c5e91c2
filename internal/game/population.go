package game

import (
	"fmt"

	"github.com/Thokas/zombie-survival/internal/engine"
	"github.com/Thokas/zombie-survival/internal/models"
)

// Namer supplies survivor names.
type Namer interface {
	FirstName() string
	LastName() string
}

// BuildSurvivors creates count survivors with independently rolled weapon
// and armor modifiers. Names are unique within the group: a repeated
// "First Last" gets a numeric suffix, e.g. "Ada Lee 2".
func BuildSurvivors(src engine.Source, namer Namer, count, hitChance int, variety models.Variety) []*models.Character {
	survivors := make([]*models.Character, 0, count)
	taken := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		name := uniqueName(taken, namer.FirstName()+" "+namer.LastName())
		survivors = append(survivors, models.New(src, hitChance, false, variety, name))
	}
	return survivors
}

func uniqueName(taken map[string]bool, base string) string {
	name := base
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s %d", base, n)
	}
	taken[name] = true
	return name
}

// BuildZombiePool seeds a pool with count zombies named "Zombie 1".."Zombie N"
// in pop order. Only variety.Zombie applies.
func BuildZombiePool(src engine.Source, count, hitChance int, variety models.Variety) *engine.ZombiePool {
	pool := engine.NewZombiePool()
	for i := 1; i <= count; i++ {
		pool.Push(models.New(src, hitChance, true, variety, ZombieName(i)))
	}
	return pool
}

// ZombieName is the display name of the i-th seeded zombie.
func ZombieName(i int) string {
	return fmt.Sprintf("Zombie %d", i)
}
