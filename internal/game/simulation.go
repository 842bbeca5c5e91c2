package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Thokas/zombie-survival/internal/engine"
	"github.com/Thokas/zombie-survival/internal/models"
	"github.com/Thokas/zombie-survival/internal/names"
)

type runConfig struct {
	sink   Sink
	source engine.Source
	namer  Namer
	tracer trace.Tracer
	meter  metric.Meter
}

// Option customizes Run.
type Option func(*runConfig)

// WithSink sends run events to s.
func WithSink(s Sink) Option {
	return func(c *runConfig) { c.sink = s }
}

// WithSource replaces the seeded dice source.
func WithSource(src engine.Source) Option {
	return func(c *runConfig) { c.source = src }
}

// WithNamer replaces the seeded name generator.
func WithNamer(n Namer) Option {
	return func(c *runConfig) { c.namer = n }
}

// WithTracer sets the tracer used for run and worker spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *runConfig) { c.tracer = t }
}

// WithMeter sets the meter that counts runs, kills and conversions.
func WithMeter(m metric.Meter) Option {
	return func(c *runConfig) { c.meter = m }
}

// Run validates settings, builds the population and fights it out.
//
// A zero seed draws a fresh one. Dice and names use separate generators
// derived from the seed, so a run with Serial set replays exactly.
func Run(ctx context.Context, settings models.Settings, opts ...Option) (Result, error) {
	if err := settings.Validate(); err != nil {
		return Result{}, err
	}
	seed := settings.Seed
	if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return Result{}, fmt.Errorf("run: %w", err)
		}
	}

	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sink == nil {
		cfg.sink = Discard
	}
	if cfg.source == nil {
		cfg.source = engine.NewSource(seed)
	}
	if cfg.namer == nil {
		cfg.namer = names.NewGenerator(seed)
	}
	if cfg.tracer == nil {
		cfg.tracer = defaultTracer()
	}

	id := uuid.NewString()
	ctx, span := cfg.tracer.Start(ctx, "game.Run", trace.WithAttributes(
		attribute.String("run.id", id),
		attribute.Int64("run.seed", seed),
	))
	defer span.End()

	startedAt := time.Now()
	cfg.sink.Notify(Event{Kind: EventSimulationStarted, Count: settings.ZombieCount, Alive: settings.SurvivorCount})

	pool := BuildZombiePool(cfg.source, settings.ZombieCount, settings.ZombifyChance, settings.Variety())
	for _, name := range pool.Names() {
		cfg.sink.Notify(Event{Kind: EventZombieRisen, Zombie: name})
	}
	cfg.sink.Notify(Event{Kind: EventZombiePoolSeeded, Count: pool.Len()})

	survivors := BuildSurvivors(cfg.source, cfg.namer, settings.SurvivorCount, settings.HitChance, settings.Variety())

	coord := Coordinator{
		Source: cfg.source,
		Rules:  RulesFromSettings(settings),
		Sink:   cfg.sink,
		Serial: settings.Serial,
		Tracer: cfg.tracer,
	}
	res, err := coord.Fight(ctx, survivors, pool)
	res.ID = id
	res.Seed = seed
	res.Settings = settings
	res.Settings.Seed = seed
	res.StartedAt = startedAt
	res.InitialZombies = settings.ZombieCount
	if err != nil {
		return res, fmt.Errorf("run %s: %w", id, err)
	}

	cfg.sink.Notify(Event{
		Kind:      EventSimulationEnded,
		Elapsed:   res.Elapsed,
		Alive:     len(res.Alive()),
		Remaining: len(res.ZombiesRemaining),
	})
	newInstruments(cfg.meter).record(ctx, res)
	span.SetAttributes(attribute.String("run.winner", res.Winner()))
	return res, nil
}
