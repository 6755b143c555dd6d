package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-dungeon/internal/models"
)

func TestNewSeed(t *testing.T) {
	tr := New(models.NewPlayerState())
	require.Equal(t, 1, tr.Len())

	seed := tr.Turns()[0]
	assert.Equal(t, models.RoleUser, seed.Role)
	assert.True(t, strings.HasPrefix(seed.Content, "You are a creative dungeon master"))
	assert.Contains(t, seed.Content, "- Health: 100/100")
	assert.Contains(t, seed.Content, "- Attack: 10")
	assert.Contains(t, seed.Content, "- Defense: 5")
	assert.Contains(t, seed.Content, "- Gold: 50")
	assert.Contains(t, seed.Content, "- Inventory: rusty sword, wooden shield")
	assert.Contains(t, seed.Content, "[HEALTH: -15] or [GOLD: +25]")
	assert.Contains(t, seed.Content, "2-4 paragraphs")
	assert.True(t, strings.HasSuffix(seed.Content, "Start the adventure now in a fantasy setting."))
}

func TestPlayerTurn(t *testing.T) {
	p := models.NewPlayerState()
	p.Health = 42
	p.Inventory = append(p.Inventory, "torch")

	turn := PlayerTurn("open the door", p)
	assert.Equal(t, models.RoleUser, turn.Role)
	assert.Equal(t,
		"Player action: open the door\n\nCurrent stats - Health: 42/100, Attack: 10, Defense: 5, Gold: 50, Inventory: rusty sword, wooden shield, torch",
		turn.Content)
}

func TestAlternation(t *testing.T) {
	p := models.NewPlayerState()
	tr := New(p)

	// Seed may be answered directly by the player or by an opening narration.
	assert.True(t, tr.CanAppendPlayer())

	_, err := tr.AppendPlayerTurn("look around", p)
	require.NoError(t, err)

	_, err = tr.AppendPlayerTurn("look again", p)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	_, err = tr.AppendNarratorTurn("A dusty hall.")
	require.NoError(t, err)

	_, err = tr.AppendNarratorTurn("Another reply.")
	assert.ErrorIs(t, err, ErrOutOfOrder)

	assert.Equal(t, 3, tr.Len())
}

func TestOpeningNarration(t *testing.T) {
	p := models.NewPlayerState()
	tr := New(p)

	_, err := tr.AppendNarratorTurn("You wake in a crypt.")
	require.NoError(t, err)
	assert.True(t, tr.CanAppendPlayer())

	_, err = tr.AppendPlayerTurn("stand up", p)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
}

func TestTurnCountAfterExchanges(t *testing.T) {
	p := models.NewPlayerState()
	tr := New(p)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := tr.AppendPlayerTurn("walk north", p)
		require.NoError(t, err)
		_, err = tr.AppendNarratorTurn("You walk north.")
		require.NoError(t, err)
	}

	turns := tr.Turns()
	require.Len(t, turns, 2*n+1)
	for i, turn := range turns[1:] {
		if i%2 == 0 {
			assert.Equal(t, models.RoleUser, turn.Role)
		} else {
			assert.Equal(t, models.RoleAssistant, turn.Role)
		}
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	tr := New(models.NewPlayerState())
	turns := tr.Turns()
	turns[0].Content = "tampered"
	assert.NotEqual(t, "tampered", tr.Turns()[0].Content)
}
