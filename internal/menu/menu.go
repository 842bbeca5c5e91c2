// Package menu is the interactive front end of the CLI: a main menu to
// start a run or edit settings, and a settings menu that validates every
// value before accepting it.
package menu

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/message"

	"github.com/Thokas/zombie-survival/internal/config"
	"github.com/Thokas/zombie-survival/internal/models"
	"github.com/Thokas/zombie-survival/internal/narrate"
)

// RunFunc starts one simulation with the current settings.
type RunFunc func(models.Settings) error

// Menu drives the main and settings menus.
type Menu struct {
	in       Input
	out      io.Writer
	run      RunFunc
	settings models.Settings
}

// New returns a menu starting from settings.
func New(in Input, out io.Writer, settings models.Settings, run RunFunc) *Menu {
	return &Menu{in: in, out: out, run: run, settings: settings}
}

// Settings returns the current settings.
func (m *Menu) Settings() models.Settings {
	return m.settings
}

func (m *Menu) printer() *message.Printer {
	return narrate.Printer(m.settings.Locale)
}

// Loop shows the main menu until the user quits or input ends.
func (m *Menu) Loop() error {
	for {
		p := m.printer()
		choice, err := m.choose(p.Sprintf("menu.welcome"),
			p.Sprintf("menu.start"), p.Sprintf("menu.settings"), p.Sprintf("menu.quit"))
		if err != nil {
			return ignoreEOF(err)
		}
		switch choice {
		case 1:
			if err := m.run(m.settings); err != nil {
				return err
			}
		case 2:
			if err := m.settingsLoop(); err != nil {
				return ignoreEOF(err)
			}
		default:
			return nil
		}
	}
}

// field is one settings entry. Entries without get toggle story mode.
type field struct {
	label string // menu.<label> and menu.ask_<label>
	get   func(*models.Settings) *int
	parse func(string) (int, error)
}

var fields = []field{
	{"zombie_count", func(s *models.Settings) *int { return &s.ZombieCount }, config.ParseCount},
	{"survivor_count", func(s *models.Settings) *int { return &s.SurvivorCount }, config.ParseCount},
	{"hit_chance", func(s *models.Settings) *int { return &s.HitChance }, config.ParseChance},
	{"zombify_chance", func(s *models.Settings) *int { return &s.ZombifyChance }, config.ParseChance},
	{label: "story_mode"},
	{"zombie_variety", func(s *models.Settings) *int { return &s.ZombieVariety }, config.ParseVariety},
	{"weapon_variety", func(s *models.Settings) *int { return &s.WeaponVariety }, config.ParseVariety},
	{"armor_variety", func(s *models.Settings) *int { return &s.ArmorVariety }, config.ParseVariety},
}

func (m *Menu) settingsLoop() error {
	for {
		p := m.printer()
		options := make([]string, 0, len(fields)+1)
		for _, f := range fields {
			if f.get == nil {
				options = append(options, p.Sprintf("menu."+f.label, m.yesNo(p, m.settings.StoryMode)))
				continue
			}
			options = append(options, p.Sprintf("menu."+f.label, *f.get(&m.settings)))
		}
		options = append(options, p.Sprintf("menu.back"))

		choice, err := m.choose(p.Sprintf("menu.settings"), options...)
		if err != nil {
			return err
		}
		if choice == 0 || choice > len(fields) {
			return nil
		}
		f := fields[choice-1]
		if f.get == nil {
			err = m.askStory(p)
		} else {
			err = m.askNumber(p, f)
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) yesNo(p *message.Printer, v bool) string {
	if v {
		return p.Sprintf("menu.yes")
	}
	return p.Sprintf("menu.no")
}

func (m *Menu) askStory(p *message.Printer) error {
	choice, err := m.choose(p.Sprintf("menu.ask_story_mode"), p.Sprintf("menu.yes"), p.Sprintf("menu.no"))
	if err != nil {
		return err
	}
	if choice != 0 {
		m.settings.StoryMode = choice == 1
	}
	return nil
}

// askNumber prompts until the answer passes f.parse.
func (m *Menu) askNumber(p *message.Printer, f field) error {
	for {
		fmt.Fprintf(m.out, "%s ", p.Sprintf("menu.ask_"+f.label))
		text, err := m.in.Line()
		if err != nil {
			return err
		}
		v, err := f.parse(text)
		if err != nil {
			fmt.Fprintln(m.out, p.Sprintf(invalidKey(err)))
			continue
		}
		*f.get(&m.settings) = v
		return nil
	}
}

func invalidKey(err error) string {
	switch {
	case errors.Is(err, config.ErrNotPositive):
		return "invalid.count"
	case errors.Is(err, config.ErrChanceRange):
		return "invalid.chance"
	case errors.Is(err, config.ErrNegativeSize):
		return "invalid.variety"
	default:
		return "invalid.number"
	}
}

// choose prints a numbered list and returns the 1-based pick, or 0 when
// the user backs out with Esc or q. Other keys are ignored.
func (m *Menu) choose(title string, options ...string) (int, error) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, title)
	for i, o := range options {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, o)
	}
	prompt := m.printer().Sprintf("menu.choose", len(options))
	for {
		fmt.Fprint(m.out, prompt)
		r, err := m.in.Key()
		if err != nil {
			return 0, err
		}
		switch {
		case r == KeyEscape || r == 'q':
			return 0, nil
		case r >= '1' && int(r-'0') <= len(options):
			return int(r - '0'), nil
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
