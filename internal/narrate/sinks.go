package narrate

import (
	"github.com/charmbracelet/log"

	"github.com/Thokas/zombie-survival/internal/game"
)

// LogSink writes every event as a debug-level structured log line.
type LogSink struct {
	Logger *log.Logger
}

// Notify implements game.Sink.
func (s LogSink) Notify(e game.Event) {
	if s.Logger == nil {
		return
	}
	kv := []interface{}{"kind", e.Kind}
	if e.Survivor != "" {
		kv = append(kv, "survivor", e.Survivor)
	}
	if e.Zombie != "" {
		kv = append(kv, "zombie", e.Zombie)
	}
	if e.Roll != 0 || e.Chance != 0 {
		kv = append(kv, "roll", e.Roll, "chance", e.Chance)
	}
	switch e.Kind {
	case game.EventZombiePoolSeeded, game.EventSimulationStarted:
		kv = append(kv, "count", e.Count)
	case game.EventSimulationEnded:
		kv = append(kv, "alive", e.Alive, "remaining", e.Remaining, "elapsed", e.Elapsed)
	}
	s.Logger.Debug("event", kv...)
}
