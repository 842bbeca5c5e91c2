package game

import (
	"time"

	"github.com/Thokas/zombie-survival/internal/models"
)

// Outcome is the result of one exchange between a survivor and a zombie.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeKilled              // survivor hit, zombie discarded
	OutcomeEvaded              // survivor missed, zombie missed too
	OutcomeConverted           // survivor missed and was bitten
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnspecified:
		return "Unspecified"
	case OutcomeKilled:
		return "Killed"
	case OutcomeEvaded:
		return "Evaded"
	case OutcomeConverted:
		return "Converted"
	default:
		return "Unknown"
	}
}

// Exchange captures the rolls and targets of one exchange.
// Counter fields stay zero when the zombie was killed outright.
type Exchange struct {
	Outcome       Outcome `json:"outcome"`
	AttackRoll    int     `json:"attack_roll"`
	AttackChance  int     `json:"attack_chance"`
	CounterRoll   int     `json:"counter_roll,omitempty"`
	CounterChance int     `json:"counter_chance,omitempty"`
}

// Status is the terminal state of a survivor.
type Status string

const (
	StatusAlive     Status = "alive"
	StatusConverted Status = "converted"
)

// SurvivorOutcome is one roster slot. Only the survivor's own worker writes it.
type SurvivorOutcome struct {
	Name            string `json:"name"`
	Label           string `json:"label"` // name with modifier info at the start of the fight
	Status          Status `json:"status"`
	HitModifier     int    `json:"hit_modifier"`
	DefenseModifier int    `json:"defense_modifier"`
	Evaded          bool   `json:"evaded"`
	Kills           int    `json:"kills"`
	Exchanges       int    `json:"exchanges"`
	ConvertedBy     string `json:"converted_by,omitempty"`
}

// Winner labels.
const (
	WinnerSurvivors = "survivors"
	WinnerZombies   = "zombies"
)

// Result summarizes a finished simulation.
type Result struct {
	ID               string            `json:"id,omitempty"`
	Seed             int64             `json:"seed,omitempty"`
	Settings         models.Settings   `json:"settings"`
	StartedAt        time.Time         `json:"started_at"`
	Elapsed          time.Duration     `json:"elapsed"`
	Survivors        []SurvivorOutcome `json:"survivors"`
	ZombiesRemaining []string          `json:"zombies_remaining"`
	InitialZombies   int               `json:"initial_zombies"`
	Kills            int               `json:"kills"`
	Conversions      int               `json:"conversions"`
	Exchanges        int               `json:"exchanges"`
}

// Alive returns the survivors that were never converted.
func (r Result) Alive() []SurvivorOutcome {
	return r.filter(StatusAlive)
}

// Converted returns the survivors that became zombies.
func (r Result) Converted() []SurvivorOutcome {
	return r.filter(StatusConverted)
}

// Winner is "survivors" while anyone is alive, otherwise "zombies".
func (r Result) Winner() string {
	if len(r.Alive()) > 0 {
		return WinnerSurvivors
	}
	return WinnerZombies
}

func (r Result) filter(status Status) []SurvivorOutcome {
	out := make([]SurvivorOutcome, 0, len(r.Survivors))
	for _, s := range r.Survivors {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}
