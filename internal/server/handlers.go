package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
	"github.com/Thokas/zombie-survival/internal/game"
	"github.com/Thokas/zombie-survival/internal/models"
	"github.com/Thokas/zombie-survival/internal/narrate"
	"github.com/Thokas/zombie-survival/internal/stats"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.DefaultSettings())
}

// decodeSettings overlays a JSON settings object onto the defaults.
func decodeSettings(data []byte) (models.Settings, error) {
	settings := models.DefaultSettings()
	if len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, apperrors.Wrap(apperrors.CodeInvalidConfiguration, "invalid settings: "+err.Error(), err)
	}
	return settings, nil
}

// simulate validates, runs and stores one simulation.
func (s *Server) simulate(ctx context.Context, settings models.Settings, sink game.Sink) (game.Result, error) {
	if err := settings.Validate(); err != nil {
		return game.Result{}, err
	}
	if s.cfg.MaxPopulation > 0 && settings.ZombieCount+settings.SurvivorCount > s.cfg.MaxPopulation {
		return game.Result{}, apperrors.WithMetadata(apperrors.CodeInvalidConfiguration,
			fmt.Sprintf("zombie_count + survivor_count must not exceed %d", s.cfg.MaxPopulation),
			map[string]string{"field": "zombie_count"})
	}
	res, err := s.run(ctx, settings,
		game.WithSink(game.Sinks(sink, narrate.LogSink{Logger: s.logger})))
	if err != nil {
		s.logger.Error("simulation failed", "err", err)
		return game.Result{}, apperrors.Wrap(apperrors.CodeInternal, "simulation failed", err)
	}
	sum := s.store.Save(res)
	s.logger.Info("simulation", "id", sum.ID, "seed", sum.Seed, "winner", sum.Winner,
		"kills", sum.Kills, "conversions", sum.Conversions, "elapsed", sum.Elapsed)
	if err := s.store.Persist(res); err != nil {
		s.logger.Warn("persist result", "id", res.ID, "err", err)
	}
	return res, nil
}

// POST /api/simulations
func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	settings, err := decodeSettings(raw)
	if err != nil {
		writeAppError(w, err)
		return
	}
	res, err := s.simulate(r.Context(), settings, nil)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Location", "/api/simulations/"+res.ID)
	writeJSONStatus(w, http.StatusCreated, res)
}

// GET /api/simulations?limit=n
func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, s.store.Recent(limit))
}

// GET /api/simulations/{id}
func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, res)
}

type statsResponse struct {
	stats.Totals
	SurvivalRate   float64 `json:"survival_rate"`
	AverageAlive   float64 `json:"average_alive"`
	AverageElapsed string  `json:"average_elapsed"`
}

// GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	t := s.store.Totals()
	writeJSON(w, statsResponse{
		Totals:         t,
		SurvivalRate:   t.SurvivalRate(),
		AverageAlive:   t.AverageAlive(),
		AverageElapsed: t.AverageElapsed().String(),
	})
}

// GET /api/stats/today
func (s *Server) handleStatsToday(w http.ResponseWriter, r *http.Request) {
	best, ok := s.store.BestToday()
	if !ok {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, best)
}
