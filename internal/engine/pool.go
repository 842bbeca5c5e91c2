package engine

import (
	"sync"

	"github.com/Thokas/zombie-survival/internal/models"
)

// ZombiePool is an unbounded FIFO of zombies shared by all survivor workers.
// Every zombie pushed is popped at most once; none is lost or duplicated.
type ZombiePool struct {
	mu    sync.Mutex
	queue []*models.Character
}

// NewZombiePool returns a pool holding zombies in the given order.
func NewZombiePool(zombies ...*models.Character) *ZombiePool {
	p := &ZombiePool{}
	for _, z := range zombies {
		p.Push(z)
	}
	return p
}

// Push appends a zombie. It is visible to every worker once Push returns.
func (p *ZombiePool) Push(z *models.Character) {
	if z == nil {
		panic("engine: push of nil zombie")
	}
	p.mu.Lock()
	p.queue = append(p.queue, z)
	p.mu.Unlock()
}

// TryPop removes and returns the oldest zombie, or false when the pool is empty.
func (p *ZombiePool) TryPop() (*models.Character, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return nil, false
	}
	z := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	if len(p.queue) == 0 {
		p.queue = nil
	}
	return z, true
}

// Len returns the number of zombies currently in the pool.
func (p *ZombiePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// IsEmpty is a snapshot: another worker may push right after it returns.
func (p *ZombiePool) IsEmpty() bool {
	return p.Len() == 0
}

// Snapshot copies the pool contents in pop order.
func (p *ZombiePool) Snapshot() []*models.Character {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*models.Character(nil), p.queue...)
}

// Names returns the names of the zombies in pop order.
func (p *ZombiePool) Names() []string {
	zombies := p.Snapshot()
	names := make([]string, len(zombies))
	for i, z := range zombies {
		names[i] = z.Name()
	}
	return names
}
