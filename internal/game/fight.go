package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Thokas/zombie-survival/internal/engine"
	"github.com/Thokas/zombie-survival/internal/models"
)

// Coordinator runs one worker per living survivor against a shared pool.
type Coordinator struct {
	Source engine.Source
	Rules  Rules
	Sink   Sink
	// Serial runs workers one at a time in roster order. Together with a
	// seeded source it makes a run reproducible.
	Serial bool
	Tracer trace.Tracer
}

// Fight blocks until every worker has finished. Worker errors, including
// recovered panics, do not stop the other workers; the first one is
// returned once all of them are done.
//
// ctx carries tracing only. A started fight always runs to completion.
func (c Coordinator) Fight(ctx context.Context, survivors []*models.Character, pool *engine.ZombiePool) (Result, error) {
	if c.Source == nil {
		return Result{}, errors.New("fight: nil source")
	}
	if pool == nil {
		return Result{}, errors.New("fight: nil pool")
	}
	sink := c.Sink
	if sink == nil {
		sink = Discard
	}
	tracer := c.Tracer
	if tracer == nil {
		tracer = defaultTracer()
	}

	ctx, span := tracer.Start(ctx, "game.Fight", trace.WithAttributes(
		attribute.Int("survivors", len(survivors)),
		attribute.Int("zombies", pool.Len()),
		attribute.Bool("serial", c.Serial),
	))
	defer span.End()

	start := time.Now()
	slots := make([]SurvivorOutcome, len(survivors))
	for i, s := range survivors {
		slots[i] = SurvivorOutcome{
			Name:            s.Name(),
			Label:           s.String(),
			Status:          StatusAlive,
			HitModifier:     s.HitModifier(),
			DefenseModifier: s.DefenseModifier(),
			Evaded:          s.Evaded(),
		}
		if !s.IsAlive() {
			slots[i].Status = StatusConverted
		}
	}

	var g errgroup.Group
	if c.Serial {
		g.SetLimit(1)
	}
	for i, s := range survivors {
		s := s // per-iteration copy: module targets go 1.21 loop semantics
		if !s.IsAlive() {
			continue
		}
		slot := &slots[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("survivor %s: panic: %v", slot.Name, r)
				}
			}()
			return c.work(ctx, tracer, s, pool, sink, slot)
		})
	}
	err := g.Wait()

	res := Result{
		Survivors:        slots,
		ZombiesRemaining: pool.Names(),
		Elapsed:          time.Since(start),
	}
	for _, slot := range slots {
		res.Kills += slot.Kills
		res.Exchanges += slot.Exchanges
		if slot.ConvertedBy != "" {
			res.Conversions++
		}
	}
	span.SetAttributes(
		attribute.Int("kills", res.Kills),
		attribute.Int("conversions", res.Conversions),
		attribute.Int("zombies_remaining", len(res.ZombiesRemaining)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	return res, nil
}

// work is the fight loop of one survivor. It ends when the pool is empty
// or the survivor has been converted.
func (c Coordinator) work(ctx context.Context, tracer trace.Tracer, s *models.Character, pool *engine.ZombiePool, sink Sink, slot *SurvivorOutcome) error {
	_, span := tracer.Start(ctx, "game.survivor", trace.WithAttributes(attribute.String("survivor", s.Name())))
	defer span.End()

	for {
		z, ok := pool.TryPop()
		if !ok {
			break
		}
		ex, err := ResolveExchange(s, z, pool, c.Source, c.Rules, sink)
		if err != nil {
			// The resolver rejects before touching the pool.
			pool.Push(z)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("survivor %s: %w", s.Name(), err)
		}
		slot.Exchanges++
		switch ex.Outcome {
		case OutcomeKilled:
			slot.Kills++
		case OutcomeEvaded:
			slot.Evaded = true
		case OutcomeConverted:
			slot.Status = StatusConverted
			slot.ConvertedBy = z.Name()
		}
		if ex.Outcome == OutcomeConverted {
			break
		}
	}

	span.SetAttributes(
		attribute.String("status", string(slot.Status)),
		attribute.Int("kills", slot.Kills),
		attribute.Int("exchanges", slot.Exchanges),
	)
	return nil
}
