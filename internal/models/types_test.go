package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 20, s.ZombieCount)
	assert.Equal(t, 5, s.SurvivorCount)
	assert.Equal(t, 60, s.HitChance)
	assert.Equal(t, 30, s.ZombifyChance)
	assert.True(t, s.StoryMode)
	assert.Zero(t, s.ZombieVariety)
	assert.Zero(t, s.WeaponVariety)
	assert.Zero(t, s.ArmorVariety)
	require.NoError(t, s.Validate())
}

func TestSettingsValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Settings)
		field string
	}{
		{"no zombies", func(s *Settings) { s.ZombieCount = 0 }, "zombie_count"},
		{"no survivors", func(s *Settings) { s.SurvivorCount = -1 }, "survivor_count"},
		{"hit chance zero", func(s *Settings) { s.HitChance = 0 }, "hit_chance"},
		{"hit chance hundred", func(s *Settings) { s.HitChance = 100 }, "hit_chance"},
		{"zombify chance", func(s *Settings) { s.ZombifyChance = 100 }, "zombify_chance"},
		{"zombie variety", func(s *Settings) { s.ZombieVariety = -1 }, "zombie_variety"},
		{"weapon variety", func(s *Settings) { s.WeaponVariety = -1 }, "weapon_variety"},
		{"armor variety", func(s *Settings) { s.ArmorVariety = -3 }, "armor_variety"},
		{"locale", func(s *Settings) { s.Locale = "fr" }, "locale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.edit(&s)

			err := s.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.InvalidConfiguration))
			var domainErr *apperrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.field, domainErr.Metadata["field"])
		})
	}
}

func TestSettingsValidate_AcceptsBounds(t *testing.T) {
	s := Settings{ZombieCount: 1, SurvivorCount: 1, HitChance: 1, ZombifyChance: 99, Locale: LocaleGerman}

	assert.NoError(t, s.Validate())
}

func TestSettingsVariety(t *testing.T) {
	s := Settings{ZombieVariety: 1, WeaponVariety: 2, ArmorVariety: 3}

	assert.Equal(t, Variety{Zombie: 1, Weapon: 2, Armor: 3}, s.Variety())
}
