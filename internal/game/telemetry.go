package game

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Thokas/zombie-survival/internal/game"

func defaultTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

func defaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments counts simulation activity. Instruments that fail to
// register fall back to no-ops so metrics never break a run.
type instruments struct {
	runs        metric.Int64Counter
	kills       metric.Int64Counter
	conversions metric.Int64Counter
	exchanges   metric.Int64Counter
}

func newInstruments(m metric.Meter) instruments {
	if m == nil {
		m = defaultMeter()
	}
	fallback := noop.Meter{}
	counter := func(name, desc string) metric.Int64Counter {
		c, err := m.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}
	return instruments{
		runs:        counter("zombie_survival.runs", "Completed simulations"),
		kills:       counter("zombie_survival.kills", "Zombies killed"),
		conversions: counter("zombie_survival.conversions", "Survivors converted"),
		exchanges:   counter("zombie_survival.exchanges", "Exchanges resolved"),
	}
}

func (i instruments) record(ctx context.Context, r Result) {
	attrs := metric.WithAttributes(attribute.String("winner", r.Winner()))
	i.runs.Add(ctx, 1, attrs)
	i.kills.Add(ctx, int64(r.Kills))
	i.conversions.Add(ctx, int64(r.Conversions))
	i.exchanges.Add(ctx, int64(r.Exchanges))
}
