package game

import "time"

// EventKind names a discrete engine notification.
type EventKind string

const (
	EventSimulationStarted EventKind = "simulation_started"
	EventZombieRisen       EventKind = "zombie_risen"
	EventZombiePoolSeeded  EventKind = "zombie_pool_seeded"
	EventExchangeStarted   EventKind = "exchange_started"
	EventZombieKilled      EventKind = "zombie_killed"
	EventAttackMissed      EventKind = "attack_missed"
	EventSurvivorEvaded    EventKind = "survivor_evaded"
	EventSurvivorConverted EventKind = "survivor_converted"
	EventSimulationEnded   EventKind = "simulation_ended"
)

// Event carries enough data to render a message. It holds names and
// numbers only, never characters, so sinks can keep events around.
type Event struct {
	Kind      EventKind     `json:"kind"`
	Survivor  string        `json:"survivor,omitempty"`
	Zombie    string        `json:"zombie,omitempty"`
	Roll      int           `json:"roll,omitempty"`
	Chance    int           `json:"chance,omitempty"`
	Count     int           `json:"count,omitempty"` // zombies seeded
	Alive     int           `json:"alive,omitempty"`
	Remaining int           `json:"remaining,omitempty"`
	Elapsed   time.Duration `json:"elapsed,omitempty"`
}

// Sink receives engine events. Workers notify concurrently, so
// implementations must be safe for concurrent use.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Notify calls f(e).
func (f SinkFunc) Notify(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

type multiSink []Sink

func (m multiSink) Notify(e Event) {
	for _, s := range m {
		s.Notify(e)
	}
}

// Sinks fans events out to every non-nil sink in order.
func Sinks(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return Discard
	case 1:
		return out[0]
	}
	return out
}
