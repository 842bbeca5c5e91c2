package narrate

import (
	"fmt"
	"io"
	"time"

	"github.com/Thokas/zombie-survival/internal/game"
	"github.com/Thokas/zombie-survival/internal/stats"
)

// WriteReport prints the end-of-run summary. Story mode lists the living
// and the fallen by name; terse mode prints the winner and a count.
func WriteReport(w io.Writer, r game.Result, opts Options) error {
	p := Printer(opts.Locale)
	alive := r.Alive()
	var lines []string

	switch {
	case len(alive) > 0 && opts.Story:
		if len(alive) == 1 {
			lines = append(lines, p.Sprintf("report.one_survivor"))
		} else {
			lines = append(lines, p.Sprintf("report.survivors", len(alive)))
		}
		for _, s := range alive {
			lines = append(lines, "  "+s.Label)
		}
		if fallen := r.Converted(); len(fallen) > 0 {
			lines = append(lines, p.Sprintf("report.fallen", len(fallen)))
			for _, s := range fallen {
				lines = append(lines, "  † "+s.Label)
			}
		}
	case len(alive) > 0:
		lines = append(lines, p.Sprintf("report.winner_survivors"), p.Sprintf("report.count", len(alive)))
	case opts.Story:
		lines = append(lines, p.Sprintf("report.overrun"), p.Sprintf("report.roaming", len(r.ZombiesRemaining)))
	default:
		lines = append(lines, p.Sprintf("report.winner_zombies"), p.Sprintf("report.count", len(r.ZombiesRemaining)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// WriteRunLine prints the one-line summary of run n in a batch.
func WriteRunLine(w io.Writer, n int, sum stats.Summary, locale string) error {
	p := Printer(locale)
	line := p.Sprintf("batch.run", n, sum.Alive, sum.Survivors, sum.ZombiesRemaining, sum.Elapsed.Round(time.Microsecond))
	_, err := fmt.Fprintln(w, line)
	return err
}

// WriteTotals prints the aggregate of a batch.
func WriteTotals(w io.Writer, t stats.Totals, locale string) error {
	p := Printer(locale)
	var kills, bites int
	if t.Runs > 0 {
		kills, bites = t.Kills/t.Runs, t.Conversions/t.Runs
	}
	_, err := fmt.Fprintln(w,
		p.Sprintf("batch.totals", t.Runs, t.SurvivorWins, t.ZombieWins, 100*t.SurvivalRate())+"\n"+
			p.Sprintf("batch.averages", t.AverageAlive(), kills, bites, t.AverageElapsed().Round(time.Microsecond)))
	return err
}
