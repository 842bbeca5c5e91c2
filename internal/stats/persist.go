package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Thokas/zombie-survival/internal/game"
)

// ============ Optional local persistence for full results ============
// When a directory is set, Persist writes each result to <id>.json and Get
// loads results from there once they are evicted from memory.

// PersistTo enables persistence under dir, creating it if needed.
func (s *Store) PersistTo(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("results dir: %w", err)
	}
	s.mu.Lock()
	s.dir = dir
	s.mu.Unlock()
	return nil
}

// Persist writes r to the results directory. It is a no-op without one.
func (s *Store) Persist(r game.Result) error {
	s.mu.Lock()
	dir := s.dir
	s.mu.Unlock()
	if dir == "" {
		return nil
	}
	path := resultFilePath(dir, r.ID)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result %s: %w", r.ID, err)
	}
	// write atomically
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", r.ID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write result %s: %w", r.ID, err)
	}
	return nil
}

func loadResult(dir, id string) (game.Result, bool) {
	if dir == "" || strings.TrimSpace(id) == "" {
		return game.Result{}, false
	}
	data, err := os.ReadFile(resultFilePath(dir, id))
	if err != nil {
		return game.Result{}, false
	}
	var r game.Result
	if err := json.Unmarshal(data, &r); err != nil || r.ID != id {
		return game.Result{}, false
	}
	return r, true
}

// sanitizeID keeps alnum, dash and underscore; anything else becomes '-'.
func sanitizeID(id string) string {
	b := make([]rune, 0, len(id))
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b = append(b, r)
		} else {
			b = append(b, '-')
		}
	}
	out := strings.Trim(string(b), "-")
	if out == "" {
		out = "result"
	}
	return out
}

func resultFilePath(dir, id string) string {
	return filepath.Join(dir, sanitizeID(id)+".json")
}
