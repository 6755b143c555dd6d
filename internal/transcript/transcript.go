// Package transcript keeps the ordered conversation sent to the narrator.
package transcript

import (
	"bytes"
	_ "embed"
	"errors"
	"strings"
	"text/template"

	"github.com/tatianab/text-dungeon/internal/models"
)

//go:embed prompts/seed.txt
var seedPrompt string

//go:embed prompts/player_turn.txt
var playerTurnPrompt string

var (
	seedTmpl       = template.Must(template.New("seed").Parse(seedPrompt))
	playerTurnTmpl = template.Must(template.New("player_turn").Parse(playerTurnPrompt))
)

// ErrOutOfOrder is returned when an append would break the
// player/narrator alternation.
var ErrOutOfOrder = errors.New("transcript: turn out of order")

// Transcript is an append-only history of turns. The first turn is always
// the seed that carries the game rules. The whole history is sent on every
// request; it is never windowed or summarized.
type Transcript struct {
	turns []models.Turn
}

// New seeds a transcript with the rules and the player's starting stats.
func New(p *models.PlayerState) *Transcript {
	return &Transcript{
		turns: []models.Turn{{Role: models.RoleUser, Content: render(seedTmpl, p)}},
	}
}

// PlayerTurn renders the turn for an action without appending it.
func PlayerTurn(action string, p *models.PlayerState) models.Turn {
	data := struct {
		Action string
		State  *models.PlayerState
	}{Action: action, State: p}
	return models.Turn{Role: models.RoleUser, Content: render(playerTurnTmpl, data)}
}

// AppendPlayerTurn appends the action together with a snapshot of p. A
// player turn may follow the seed or a narrator turn.
func (t *Transcript) AppendPlayerTurn(action string, p *models.PlayerState) (models.Turn, error) {
	if !t.CanAppendPlayer() {
		return models.Turn{}, ErrOutOfOrder
	}
	turn := PlayerTurn(action, p)
	t.turns = append(t.turns, turn)
	return turn, nil
}

// AppendNarratorTurn appends the narrator's reply verbatim. It must answer a
// user turn (the seed or a player action).
func (t *Transcript) AppendNarratorTurn(text string) (models.Turn, error) {
	if t.last().Role != models.RoleUser {
		return models.Turn{}, ErrOutOfOrder
	}
	turn := models.Turn{Role: models.RoleAssistant, Content: text}
	t.turns = append(t.turns, turn)
	return turn, nil
}

// CanAppendPlayer reports whether the next turn may be a player turn.
func (t *Transcript) CanAppendPlayer() bool {
	return len(t.turns) == 1 || t.last().Role == models.RoleAssistant
}

// Turns returns a copy of the history in order.
func (t *Transcript) Turns() []models.Turn {
	return append([]models.Turn(nil), t.turns...)
}

// Len returns the number of turns including the seed.
func (t *Transcript) Len() int {
	return len(t.turns)
}

func (t *Transcript) last() models.Turn {
	return t.turns[len(t.turns)-1]
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	// Templates are embedded and their data types fixed, so Execute cannot
	// fail at runtime.
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
