package menu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thokas/zombie-survival/internal/models"
)

type runs struct {
	got []models.Settings
	err error
}

func (r *runs) run(s models.Settings) error {
	r.got = append(r.got, s)
	return r.err
}

func newMenu(input string, settings models.Settings) (*Menu, *runs, *bytes.Buffer) {
	var out bytes.Buffer
	r := &runs{}
	return New(NewLineInput(strings.NewReader(input)), &out, settings, r.run), r, &out
}

func TestQuit(t *testing.T) {
	m, r, out := newMenu("3\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	assert.Empty(t, r.got)
	assert.Contains(t, out.String(), "Welcome to ZombieSurvival")
	assert.Contains(t, out.String(), "  2) Settings")
	assert.Contains(t, out.String(), "Choose [1-3]: ")
}

func TestStartRunsWithCurrentSettings(t *testing.T) {
	m, r, _ := newMenu("1\n1\n3\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	require.Len(t, r.got, 2)
	assert.Equal(t, models.DefaultSettings(), r.got[0])
}

func TestRunErrorStopsLoop(t *testing.T) {
	m, r, _ := newMenu("1\n1\n", models.DefaultSettings())
	r.err = errors.New("boom")

	assert.EqualError(t, m.Loop(), "boom")
	assert.Len(t, r.got, 1)
}

func TestEditCountRepromptsUntilValid(t *testing.T) {
	m, r, out := newMenu("2\n1\nabc\n0\n7\n9\n1\n3\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	require.Len(t, r.got, 1)
	assert.Equal(t, 7, r.got[0].ZombieCount)
	assert.Contains(t, out.String(), "Number of zombies (20)")
	assert.Contains(t, out.String(), "Number of zombies (7)")
	assert.Contains(t, out.String(), "Please enter a valid number\n")
	assert.Contains(t, out.String(), "Please enter a number greater than 0\n")
}

func TestEditChancesAndVarieties(t *testing.T) {
	input := strings.Join([]string{
		"2",
		"3", "100", "75",
		"4", "0", "45",
		"6", "-1", "10",
		"7", "5",
		"8", "3",
		"2", "9",
		"9",
		"3",
	}, "\n") + "\n"
	m, _, out := newMenu(input, models.DefaultSettings())

	require.NoError(t, m.Loop())

	s := m.Settings()
	assert.Equal(t, 75, s.HitChance)
	assert.Equal(t, 45, s.ZombifyChance)
	assert.Equal(t, 10, s.ZombieVariety)
	assert.Equal(t, 5, s.WeaponVariety)
	assert.Equal(t, 3, s.ArmorVariety)
	assert.Equal(t, 9, s.SurvivorCount)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a valid number between 1 and 99"))
	assert.Contains(t, out.String(), "Please enter a positive number")
	assert.NoError(t, s.Validate())
}

func TestToggleStoryMode(t *testing.T) {
	m, _, out := newMenu("2\n5\n2\n9\n3\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	assert.False(t, m.Settings().StoryMode)
	assert.Contains(t, out.String(), "Story mode (Yes)")
	assert.Contains(t, out.String(), "Story mode (No)")
	assert.Contains(t, out.String(), "Enable story mode?")
}

func TestBackOutWithQ(t *testing.T) {
	m, _, _ := newMenu("2\n5\nq\nq\n3\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	assert.True(t, m.Settings().StoryMode)
}

func TestIgnoresUnknownKeys(t *testing.T) {
	m, r, out := newMenu("x\n\n7\n3\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	assert.Empty(t, r.got)
	assert.Equal(t, 4, strings.Count(out.String(), "Choose [1-3]: "))
}

func TestEndOfInputQuits(t *testing.T) {
	m, r, _ := newMenu("2\n1\n", models.DefaultSettings())

	require.NoError(t, m.Loop())

	assert.Empty(t, r.got)
	assert.Equal(t, models.DefaultZombieCount, m.Settings().ZombieCount)
}

func TestGermanMenu(t *testing.T) {
	s := models.DefaultSettings()
	s.Locale = models.LocaleGerman
	m, _, out := newMenu("2\n1\n-3\n4\n9\n3\n", s)

	require.NoError(t, m.Loop())

	assert.Contains(t, out.String(), "Willkommen bei ZombieSurvival")
	assert.Contains(t, out.String(), "Anzahl Zombies (20)")
	assert.Contains(t, out.String(), "Bitte gebe eine Zahl größer 0 ein")
	assert.Contains(t, out.String(), "Auswahl [1-9]: ")
	assert.Equal(t, 4, m.Settings().ZombieCount)
}

func TestLineInputLastLineWithoutNewline(t *testing.T) {
	in := NewLineInput(strings.NewReader("42"))

	line, err := in.Line()
	require.NoError(t, err)
	assert.Equal(t, "42", line)

	_, err = in.Line()
	assert.Error(t, err)
}
