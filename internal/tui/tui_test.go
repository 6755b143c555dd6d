package tui

import (
	"context"
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-dungeon/internal/engine"
	"github.com/tatianab/text-dungeon/internal/models"
)

type scriptedNarrator struct {
	replies []string
	errs    []error
	calls   int
}

func (s *scriptedNarrator) Narrate(_ context.Context, _ []models.Turn, _ string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return s.replies[i], nil
}

func enter(t *testing.T, m model) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model), cmd
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func TestCredentialRequired(t *testing.T) {
	m := NewModel(engine.NewEngine(&scriptedNarrator{}, nil), Options{})
	m, cmd := enter(t, m)
	assert.Nil(t, cmd)
	assert.Equal(t, stateCredential, m.state)
	assert.Equal(t, "Please enter a valid API key", m.notice)
}

func TestPlayThroughToDefeat(t *testing.T) {
	n := &scriptedNarrator{replies: []string{
		"You stand at the mouth of a cave.",
		"You slay the goblin. [HEALTH: -20] [GOLD: +15]",
		"The troll crushes you. [HEALTH: -200]",
	}}
	eng := engine.NewEngine(n, nil)
	m := NewModel(eng, Options{APIKey: "sk-test"})

	m, cmd := enter(t, m)
	require.NotNil(t, cmd)
	assert.Equal(t, stateLoading, m.state)

	m = update(t, m, m.begin()())
	assert.Equal(t, statePlaying, m.state)
	assert.Contains(t, m.gameLog, "You stand at the mouth of a cave.")

	m.textInput.SetValue("attack the goblin")
	m, cmd = enter(t, m)
	require.NotNil(t, cmd)
	assert.Equal(t, stateLoading, m.state)
	assert.Contains(t, m.gameLog, "> attack the goblin")

	m = update(t, m, m.processTurn("attack the goblin")())
	assert.Equal(t, statePlaying, m.state)
	assert.Equal(t, 80, m.player.Health)
	assert.Equal(t, 65, m.player.Gold)

	m = update(t, m, m.processTurn("fight the troll")())
	assert.Equal(t, stateDefeated, m.state)
	assert.Equal(t, 0, m.player.Health)
	assert.Contains(t, m.gameLog, "You have fallen in battle!")

	// Input stays disabled once defeated.
	m.textInput.SetValue("get up")
	m, cmd = enter(t, m)
	assert.Nil(t, cmd)
	assert.Equal(t, stateDefeated, m.state)
	assert.Equal(t, 3, n.calls)
}

func TestErrorsAreShownAndInputReturns(t *testing.T) {
	n := &scriptedNarrator{
		errs:    []error{errors.New("invalid x-api-key"), errors.New("API request failed")},
		replies: []string{"", "", "A quiet room."},
	}
	m := NewModel(engine.NewEngine(n, nil), Options{APIKey: "bad"})

	m, _ = enter(t, m)
	m = update(t, m, m.begin()())
	assert.Equal(t, statePlaying, m.state)
	assert.Contains(t, m.gameLog, "Error: invalid x-api-key. Please check your API key.")

	m = update(t, m, m.processTurn("look")())
	assert.Equal(t, statePlaying, m.state)
	assert.Contains(t, m.gameLog, "Error: API request failed")

	m = update(t, m, m.processTurn("look")())
	assert.Contains(t, m.gameLog, "A quiet room.")
}

func TestSaveCommand(t *testing.T) {
	dir := t.TempDir()
	n := &scriptedNarrator{replies: []string{"Welcome."}}
	m := NewModel(engine.NewEngine(n, nil), Options{APIKey: "key", SaveDir: dir})
	m, _ = enter(t, m)
	m = update(t, m, m.begin()())

	m.textInput.SetValue("/save")
	m, cmd := enter(t, m)
	assert.Nil(t, cmd)
	assert.Contains(t, m.gameLog, "Transcript saved to")
	assert.Equal(t, 1, n.calls)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, m.engine.SessionID()+".yaml", entries[0].Name())
}

func TestHealthColor(t *testing.T) {
	p := models.NewPlayerState()
	assert.Equal(t, healthHigh, healthColor(p))

	p.Health = 50
	assert.Equal(t, healthMedium, healthColor(p))

	p.Health = 25
	assert.Equal(t, healthLow, healthColor(p))

	p.Health = 0
	assert.Equal(t, healthLow, healthColor(p))
}
