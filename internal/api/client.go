// Package api is a Go client for the simulation server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
	"github.com/Thokas/zombie-survival/internal/game"
	"github.com/Thokas/zombie-survival/internal/models"
	"github.com/Thokas/zombie-survival/internal/stats"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

const defaultsCacheTTL = 5 * time.Minute

// Config holds API configuration
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	config Config

	// Cached /api/defaults response.
	defaultsMu   sync.RWMutex
	defaults     *models.Settings
	defaultsTime time.Time
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL, HTTPClient: httpClient},
	}
}

// NewClientWithConfig uses cfg.HTTPClient, or a default client when nil.
func NewClientWithConfig(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = httpClient
	}
	return &Client{config: cfg}
}

// StatsResponse mirrors GET /api/stats.
type StatsResponse struct {
	stats.Totals
	SurvivalRate   float64 `json:"survival_rate"`
	AverageAlive   float64 `json:"average_alive"`
	AverageElapsed string  `json:"average_elapsed"`
}

type apiError struct {
	Message  string            `json:"message"`
	Status   int               `json:"status"`
	Code     string            `json:"code"`
	Metadata map[string]string `json:"metadata"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// decodeError turns an error response into an *apperrors.Error when the
// server sent a code, so callers can use errors.Is.
func decodeError(resp *http.Response) error {
	var body apiError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return fmt.Errorf("api status %d", resp.StatusCode)
	}
	return apperrors.WithMetadata(apperrors.Code(body.Code), body.Message, body.Metadata)
}

func (c *Client) apiGet(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// RunSimulation runs a simulation on the server and returns its result.
func (c *Client) RunSimulation(ctx context.Context, settings models.Settings) (game.Result, error) {
	var res game.Result
	if err := c.do(ctx, http.MethodPost, "/api/simulations", settings, &res); err != nil {
		return game.Result{}, err
	}
	return res, nil
}

// GetSimulation fetches a stored result.
func (c *Client) GetSimulation(ctx context.Context, id string) (game.Result, error) {
	var res game.Result
	if err := c.apiGet(ctx, "/api/simulations/"+url.PathEscape(id), &res); err != nil {
		return game.Result{}, err
	}
	return res, nil
}

// ListSimulations returns up to limit recent run summaries, newest first.
func (c *Client) ListSimulations(ctx context.Context, limit int) ([]stats.Summary, error) {
	path := "/api/simulations"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []stats.Summary
	if err := c.apiGet(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats fetches the aggregate statistics.
func (c *Client) Stats(ctx context.Context) (StatsResponse, error) {
	var out StatsResponse
	if err := c.apiGet(ctx, "/api/stats", &out); err != nil {
		return StatsResponse{}, err
	}
	return out, nil
}

// Defaults returns the server's default settings. Responses are cached
// for a few minutes.
func (c *Client) Defaults(ctx context.Context) (models.Settings, error) {
	c.defaultsMu.RLock()
	if c.defaults != nil && time.Since(c.defaultsTime) < defaultsCacheTTL {
		s := *c.defaults
		c.defaultsMu.RUnlock()
		return s, nil
	}
	c.defaultsMu.RUnlock()

	var s models.Settings
	if err := c.apiGet(ctx, "/api/defaults", &s); err != nil {
		return models.Settings{}, err
	}
	c.defaultsMu.Lock()
	c.defaults = &s
	c.defaultsTime = time.Now()
	c.defaultsMu.Unlock()
	return s, nil
}

// Healthy reports whether the server answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	return c.apiGet(ctx, "/api/healthz", nil)
}
