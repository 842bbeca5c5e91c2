package models

import (
	"fmt"
	"strconv"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
)

// ========================= Settings =========================
// Defaults follow the classic scenario: 20 zombies against 5 survivors.

const (
	DefaultZombieCount   = 20
	DefaultSurvivorCount = 5
	DefaultHitChance     = 60
	DefaultZombifyChance = 30
)

// Supported narration locales.
const (
	LocaleEnglish = "en"
	LocaleGerman  = "de"
)

// Settings is the validated parameter set for one simulation run.
type Settings struct {
	ZombieCount   int `json:"zombie_count" yaml:"zombie_count"`
	SurvivorCount int `json:"survivor_count" yaml:"survivor_count"`
	HitChance     int `json:"hit_chance" yaml:"hit_chance"`         // survivor base hit chance
	ZombifyChance int `json:"zombify_chance" yaml:"zombify_chance"` // zombie hit (bite) chance
	ZombieVariety int `json:"zombie_variety" yaml:"zombie_variety"`
	WeaponVariety int `json:"weapon_variety" yaml:"weapon_variety"`
	ArmorVariety  int `json:"armor_variety" yaml:"armor_variety"`

	StoryMode bool   `json:"story_mode" yaml:"story_mode"`
	Seed      int64  `json:"seed,omitempty" yaml:"seed"` // 0 draws a fresh seed
	Serial    bool   `json:"serial,omitempty" yaml:"serial"`
	Locale    string `json:"locale,omitempty" yaml:"locale"`
}

// DefaultSettings returns the classic scenario.
func DefaultSettings() Settings {
	return Settings{
		ZombieCount:   DefaultZombieCount,
		SurvivorCount: DefaultSurvivorCount,
		HitChance:     DefaultHitChance,
		ZombifyChance: DefaultZombifyChance,
		StoryMode:     true,
		Locale:        LocaleEnglish,
	}
}

// Variety returns the modifier ranges of the settings.
func (s Settings) Variety() Variety {
	return Variety{Weapon: s.WeaponVariety, Armor: s.ArmorVariety, Zombie: s.ZombieVariety}
}

// Validate checks counts, chances and varieties. The first violation is
// returned as an InvalidConfiguration error naming the field.
func (s Settings) Validate() error {
	checks := []error{
		CheckCount("zombie_count", s.ZombieCount),
		CheckCount("survivor_count", s.SurvivorCount),
		CheckChance("hit_chance", s.HitChance),
		CheckChance("zombify_chance", s.ZombifyChance),
		CheckVariety("zombie_variety", s.ZombieVariety),
		CheckVariety("weapon_variety", s.WeaponVariety),
		CheckVariety("armor_variety", s.ArmorVariety),
		CheckLocale(s.Locale),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckCount requires a count of at least one.
func CheckCount(field string, v int) error {
	if v < 1 {
		return invalid(field, v, fmt.Sprintf("%s must be greater than 0", field))
	}
	return nil
}

// CheckChance requires a percentage in [1, 99].
func CheckChance(field string, v int) error {
	if v < MinHitChance || v > MaxHitChance {
		return invalid(field, v, fmt.Sprintf("%s must be between %d and %d", field, MinHitChance, MaxHitChance))
	}
	return nil
}

// CheckVariety requires a non-negative range.
func CheckVariety(field string, v int) error {
	if v < 0 {
		return invalid(field, v, fmt.Sprintf("%s must not be negative", field))
	}
	return nil
}

// CheckLocale accepts an empty locale (English) or a supported one.
func CheckLocale(locale string) error {
	switch locale {
	case "", LocaleEnglish, LocaleGerman:
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeInvalidConfiguration,
		fmt.Sprintf("locale %q is not supported", locale),
		map[string]string{"field": "locale", "value": locale})
}

func invalid(field string, v int, msg string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidConfiguration, msg,
		map[string]string{"field": field, "value": strconv.Itoa(v)})
}
