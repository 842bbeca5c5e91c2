package stats

import (
	"sync"
	"time"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
	"github.com/Thokas/zombie-survival/internal/game"
)

// Summary is the compact form of a finished run kept in listings.
type Summary struct {
	ID               string        `json:"id"`
	Seed             int64         `json:"seed"`
	Winner           string        `json:"winner"`
	Survivors        int           `json:"survivors"`
	Alive            int           `json:"alive"`
	InitialZombies   int           `json:"initial_zombies"`
	ZombiesRemaining int           `json:"zombies_remaining"`
	Kills            int           `json:"kills"`
	Conversions      int           `json:"conversions"`
	Exchanges        int           `json:"exchanges"`
	Elapsed          time.Duration `json:"elapsed"`
	FinishedAt       time.Time     `json:"finished_at"`
}

// Summarize reduces a result to its summary.
func Summarize(r game.Result) Summary {
	return Summary{
		ID:               r.ID,
		Seed:             r.Seed,
		Winner:           r.Winner(),
		Survivors:        len(r.Survivors),
		Alive:            len(r.Alive()),
		InitialZombies:   r.InitialZombies,
		ZombiesRemaining: len(r.ZombiesRemaining),
		Kills:            r.Kills,
		Conversions:      r.Conversions,
		Exchanges:        r.Exchanges,
		Elapsed:          r.Elapsed,
		FinishedAt:       r.StartedAt.Add(r.Elapsed),
	}
}

// Totals aggregates every run saved since the store was created.
type Totals struct {
	Runs         int           `json:"runs"`
	SurvivorWins int           `json:"survivor_wins"`
	ZombieWins   int           `json:"zombie_wins"`
	Kills        int           `json:"kills"`
	Conversions  int           `json:"conversions"`
	Exchanges    int           `json:"exchanges"`
	Alive        int           `json:"alive"`
	Elapsed      time.Duration `json:"elapsed"`
}

// SurvivalRate is the share of runs won by the survivors.
func (t Totals) SurvivalRate() float64 {
	if t.Runs == 0 {
		return 0
	}
	return float64(t.SurvivorWins) / float64(t.Runs)
}

// AverageAlive is the mean number of survivors standing at the end.
func (t Totals) AverageAlive() float64 {
	if t.Runs == 0 {
		return 0
	}
	return float64(t.Alive) / float64(t.Runs)
}

// AverageElapsed is the mean fight duration.
func (t Totals) AverageElapsed() time.Duration {
	if t.Runs == 0 {
		return 0
	}
	return t.Elapsed / time.Duration(t.Runs)
}

// Store keeps the most recent results in memory.
type Store struct {
	mu       sync.Mutex
	capacity int
	order    []string
	results  map[string]game.Result
	totals   Totals
	// best run per UTC day, see daily.go
	daily map[string]Summary
	now   func() time.Time
	// results directory and its reader, see persist.go
	dir  string
	load func(dir, id string) (game.Result, bool)
}

// NewStore keeps up to capacity full results. Totals cover every run.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		capacity: capacity,
		results:  make(map[string]game.Result),
		daily:    make(map[string]Summary),
		now:      time.Now,
		load:     loadResult,
	}
}

// Save records a finished run, evicting the oldest kept result when full.
// Saving a kept ID again replaces the result without counting it twice.
func (s *Store) Save(r game.Result) Summary {
	sum := Summarize(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[r.ID]; exists {
		s.results[r.ID] = r
		return sum
	}
	s.order = append(s.order, r.ID)
	s.results[r.ID] = r
	for len(s.order) > s.capacity {
		delete(s.results, s.order[0])
		s.order = s.order[1:]
	}

	s.totals.Runs++
	if sum.Winner == game.WinnerSurvivors {
		s.totals.SurvivorWins++
	} else {
		s.totals.ZombieWins++
	}
	s.totals.Kills += sum.Kills
	s.totals.Conversions += sum.Conversions
	s.totals.Exchanges += sum.Exchanges
	s.totals.Alive += sum.Alive
	s.totals.Elapsed += sum.Elapsed

	s.recordDailyLocked(sum)
	return sum
}

// Get returns a kept result by id, falling back to the results directory.
// The directory is read without holding the store lock.
func (s *Store) Get(id string) (game.Result, error) {
	s.mu.Lock()
	r, ok := s.results[id]
	dir := s.dir
	s.mu.Unlock()
	if !ok {
		r, ok = s.load(dir, id)
	}
	if !ok {
		return game.Result{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			"simulation not found", map[string]string{"id": id})
	}
	return r, nil
}

// Recent returns up to n summaries, newest first. n <= 0 returns all kept.
func (s *Store) Recent(n int) []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.order) {
		n = len(s.order)
	}
	out := make([]Summary, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, Summarize(s.results[s.order[i]]))
	}
	return out
}

// Totals returns the aggregate over all saved runs.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}
