// Package config loads simulation and server settings from defaults,
// environment variables, YAML scenario files and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/Thokas/zombie-survival/internal/models"
)

// EnvPrefix prefixes every variable read by this package.
const EnvPrefix = "ZS_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Server is the API server configuration.
type Server struct {
	Port         string `env:"PORT"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	// HistorySize caps the runs kept for GET /api/simulations/{id}.
	HistorySize int `env:"HISTORY_SIZE" envDefault:"100"`
	// MaxPopulation caps zombies plus survivors per API request.
	MaxPopulation int    `env:"MAX_POPULATION" envDefault:"10000"`
	AllowOrigin   string `env:"ALLOW_ORIGIN" envDefault:"*"`
	// ResultsDir, when set, keeps every result as JSON on disk.
	ResultsDir string `env:"RESULTS_DIR"`
}

// LoadServer reads ZS_* variables. The port falls back to PORT, as set by
// container platforms, and then to 8080.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.Port == "" {
		cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.HistorySize < 1 {
		return Server{}, fmt.Errorf("parse env: %sHISTORY_SIZE must be greater than 0", EnvPrefix)
	}
	return cfg, nil
}

// settingsEnv mirrors models.Settings. Unset variables keep the value
// already in the struct.
type settingsEnv struct {
	ZombieCount   int    `env:"ZOMBIE_COUNT"`
	SurvivorCount int    `env:"SURVIVOR_COUNT"`
	HitChance     int    `env:"HIT_CHANCE"`
	ZombifyChance int    `env:"ZOMBIFY_CHANCE"`
	ZombieVariety int    `env:"ZOMBIE_VARIETY"`
	WeaponVariety int    `env:"WEAPON_VARIETY"`
	ArmorVariety  int    `env:"ARMOR_VARIETY"`
	StoryMode     bool   `env:"STORY_MODE"`
	Seed          int64  `env:"SEED"`
	Serial        bool   `env:"SERIAL"`
	Locale        string `env:"LOCALE"`
}

// ApplyEnv overlays ZS_* simulation variables onto s.
func ApplyEnv(s models.Settings) (models.Settings, error) {
	e := settingsEnv(s)
	if err := ParseEnv(&e); err != nil {
		return s, err
	}
	return models.Settings(e), nil
}
