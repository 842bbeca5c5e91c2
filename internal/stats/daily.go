package stats

// This file tracks the best run of each UTC day. It complements stats.go.

func (s *Store) dateKey() string {
	return s.now().UTC().Format("2006-01-02")
}

// recordDailyLocked keeps sum if it beats today's best: more kills first,
// fewer conversions on a tie. Callers hold s.mu.
func (s *Store) recordDailyLocked(sum Summary) {
	key := s.dateKey()
	cur, ok := s.daily[key]
	if !ok || sum.Kills > cur.Kills || (sum.Kills == cur.Kills && sum.Conversions < cur.Conversions) {
		s.daily[key] = sum
	}
}

// BestToday returns today's best run, if any.
func (s *Store) BestToday() (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.daily[s.dateKey()]
	return sum, ok
}

// ResetDaily clears the per-day records.
// Intended for tests and dev convenience.
func (s *Store) ResetDaily() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.daily {
		delete(s.daily, k)
	}
}
