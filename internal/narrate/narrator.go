package narrate

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/buger/goterm"
	"golang.org/x/text/message"

	"github.com/Thokas/zombie-survival/internal/game"
)

// Options control how a Narrator renders events.
type Options struct {
	Locale string
	Story  bool // full sentences instead of one-word shouts
	Color  bool // ANSI colors for kills, bites and dodges
}

// Narrator writes one line per event. Safe for concurrent use: workers
// notify from their own goroutines and lines never interleave.
type Narrator struct {
	mu    sync.Mutex
	w     io.Writer
	p     *message.Printer
	story bool
	color bool
}

// NewNarrator returns a narrator writing to w.
func NewNarrator(w io.Writer, opts Options) *Narrator {
	return &Narrator{
		w:     w,
		p:     Printer(opts.Locale),
		story: opts.Story,
		color: opts.Color,
	}
}

// Notify implements game.Sink.
func (n *Narrator) Notify(e game.Event) {
	line, color, ok := n.render(e)
	if !ok {
		return
	}
	if n.color && color >= 0 {
		line = goterm.Color(line, color)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, line)
}

// render returns the line for e and a goterm color, or -1 for none.
func (n *Narrator) render(e game.Event) (string, int, bool) {
	if n.story {
		return n.renderStory(e)
	}
	return n.renderTerse(e)
}

func (n *Narrator) renderStory(e game.Event) (string, int, bool) {
	p := n.p
	switch e.Kind {
	case game.EventSimulationStarted:
		return p.Sprintf("story.night_falls"), goterm.MAGENTA, true
	case game.EventZombieRisen:
		return p.Sprintf("story.zombie_risen", e.Zombie), -1, true
	case game.EventExchangeStarted:
		return p.Sprintf("story.exchange_started", e.Survivor, e.Zombie), -1, true
	case game.EventZombieKilled:
		return p.Sprintf("story.zombie_killed", e.Survivor, e.Zombie), goterm.GREEN, true
	case game.EventAttackMissed:
		return p.Sprintf("story.attack_missed", e.Survivor), goterm.YELLOW, true
	case game.EventSurvivorEvaded:
		return p.Sprintf("story.survivor_evaded", e.Survivor), goterm.CYAN, true
	case game.EventSurvivorConverted:
		return p.Sprintf("story.survivor_converted", e.Survivor, e.Zombie) + "\n" +
			p.Sprintf("story.survivor_risen", e.Survivor), goterm.RED, true
	case game.EventSimulationEnded:
		// Every second of fighting counts as an hour.
		hours := int(math.Round(e.Elapsed.Seconds()))
		return p.Sprintf("story.ended", hours), goterm.MAGENTA, true
	}
	return "", -1, false
}

func (n *Narrator) renderTerse(e game.Event) (string, int, bool) {
	p := n.p
	switch e.Kind {
	case game.EventZombieRisen:
		return p.Sprintf("terse.zombie_risen"), -1, true
	case game.EventZombieKilled:
		return p.Sprintf("terse.zombie_killed"), goterm.GREEN, true
	case game.EventAttackMissed:
		return p.Sprintf("terse.attack_missed"), goterm.YELLOW, true
	case game.EventSurvivorEvaded:
		return p.Sprintf("terse.survivor_evaded"), goterm.CYAN, true
	case game.EventSurvivorConverted:
		return p.Sprintf("terse.survivor_converted"), goterm.RED, true
	case game.EventSimulationEnded:
		return p.Sprintf("terse.ended", e.Elapsed.String()), -1, true
	}
	return "", -1, false
}
