package config

import (
	"flag"

	"github.com/Thokas/zombie-survival/internal/models"
)

// SettingsFlags binds one flag per simulation setting. Only flags given on
// the command line override lower layers.
type SettingsFlags struct {
	fs     *flag.FlagSet
	values models.Settings
}

// BindSettings registers the setting flags on fs with defaults as shown
// in -help.
func BindSettings(fs *flag.FlagSet, defaults models.Settings) *SettingsFlags {
	f := &SettingsFlags{fs: fs, values: defaults}
	v := &f.values
	fs.IntVar(&v.ZombieCount, "zombies", defaults.ZombieCount, "number of zombies at the start")
	fs.IntVar(&v.SurvivorCount, "survivors", defaults.SurvivorCount, "number of survivors at the start")
	fs.IntVar(&v.HitChance, "hit-chance", defaults.HitChance, "survivor hit chance in percent (1-99)")
	fs.IntVar(&v.ZombifyChance, "zombify-chance", defaults.ZombifyChance, "zombie hit chance in percent (1-99)")
	fs.IntVar(&v.ZombieVariety, "zombie-variety", defaults.ZombieVariety, "zombie hit modifier range (+/-)")
	fs.IntVar(&v.WeaponVariety, "weapon-variety", defaults.WeaponVariety, "survivor weapon modifier range (0 ~ n)")
	fs.IntVar(&v.ArmorVariety, "armor-variety", defaults.ArmorVariety, "survivor armor modifier range (0 ~ n)")
	fs.BoolVar(&v.StoryMode, "story", defaults.StoryMode, "narrate the battle as a story")
	fs.Int64Var(&v.Seed, "seed", defaults.Seed, "random seed (0 = random)")
	fs.BoolVar(&v.Serial, "serial", defaults.Serial, "run survivors one after another (reproducible with -seed)")
	fs.StringVar(&v.Locale, "locale", defaults.Locale, "narration language (en, de)")
	return f
}

// Apply copies every explicitly set flag onto s.
func (f *SettingsFlags) Apply(s models.Settings) models.Settings {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "zombies":
			s.ZombieCount = f.values.ZombieCount
		case "survivors":
			s.SurvivorCount = f.values.SurvivorCount
		case "hit-chance":
			s.HitChance = f.values.HitChance
		case "zombify-chance":
			s.ZombifyChance = f.values.ZombifyChance
		case "zombie-variety":
			s.ZombieVariety = f.values.ZombieVariety
		case "weapon-variety":
			s.WeaponVariety = f.values.WeaponVariety
		case "armor-variety":
			s.ArmorVariety = f.values.ArmorVariety
		case "story":
			s.StoryMode = f.values.StoryMode
		case "seed":
			s.Seed = f.values.Seed
		case "serial":
			s.Serial = f.values.Serial
		case "locale":
			s.Locale = f.values.Locale
		}
	})
	return s
}

// Resolve layers defaults, ZS_* variables, the scenario file (when path is
// set) and the explicit flags, then validates the result.
func (f *SettingsFlags) Resolve(scenarioPath string) (Scenario, error) {
	s, err := ApplyEnv(models.DefaultSettings())
	if err != nil {
		return Scenario{}, err
	}
	sc := Scenario{Runs: 1, Settings: s}
	if scenarioPath != "" {
		if sc, err = LoadScenario(scenarioPath, s); err != nil {
			return Scenario{}, err
		}
	}
	sc.Settings = f.Apply(sc.Settings)
	if err := sc.Settings.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}
