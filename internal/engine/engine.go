package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tatianab/text-dungeon/internal/models"
	"github.com/tatianab/text-dungeon/internal/stats"
	"github.com/tatianab/text-dungeon/internal/transcript"
)

var (
	ErrCredentialMissing = errors.New("please enter a valid API key")
	ErrEmptyAction       = errors.New("empty action")
	ErrDefeated          = errors.New("the adventure is over")
	ErrAlreadyBegun      = errors.New("adventure already begun")
)

// Narrator turns a transcript into the next piece of the story.
type Narrator interface {
	Narrate(ctx context.Context, turns []models.Turn, credential string) (string, error)
}

// TurnResult is what the UI needs to render after a successful action.
type TurnResult struct {
	Narration string
	Changed   stats.Fields
	Defeated  bool
}

// Engine owns one game session: the player, the transcript and the
// credential. Callers must not run two requests at once; the UI disables
// input while one is in flight.
type Engine struct {
	narrator   Narrator
	logger     *zap.Logger
	id         string
	credential string
	player     *models.PlayerState
	transcript *transcript.Transcript
}

func NewEngine(narrator Narrator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	player := models.NewPlayerState()
	return &Engine{
		narrator:   narrator,
		logger:     logger.With(zap.String("session_id", id)),
		id:         id,
		player:     player,
		transcript: transcript.New(player),
	}
}

// SaveCredential stores the API key for this session only.
func (e *Engine) SaveCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrCredentialMissing
	}
	e.credential = key
	e.logger.Info("credential saved")
	return nil
}

// HasCredential reports whether SaveCredential has succeeded.
func (e *Engine) HasCredential() bool {
	return e.credential != ""
}

// Begin asks the narrator to open the adventure from the seed alone. The
// opening is not scanned for stat directives.
func (e *Engine) Begin(ctx context.Context) (string, error) {
	if !e.HasCredential() {
		return "", ErrCredentialMissing
	}
	if e.transcript.Len() != 1 {
		return "", ErrAlreadyBegun
	}

	text, err := e.narrate(ctx, e.transcript.Turns())
	if err != nil {
		return "", err
	}
	if _, err := e.transcript.AppendNarratorTurn(text); err != nil {
		return "", err
	}
	e.logger.Info("adventure begun")
	return text, nil
}

// SendPlayerAction forwards an action to the narrator and applies any stat
// directives in the reply. The player turn records the stats as they were
// before the action. Nothing is committed to the transcript unless the
// narrator answers, so a failed request can simply be retried.
func (e *Engine) SendPlayerAction(ctx context.Context, action string) (*TurnResult, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, ErrEmptyAction
	}
	if !e.HasCredential() {
		return nil, ErrCredentialMissing
	}
	if stats.IsDefeated(e.player) {
		return nil, ErrDefeated
	}
	if !e.transcript.CanAppendPlayer() {
		return nil, transcript.ErrOutOfOrder
	}

	pending := transcript.PlayerTurn(action, e.player)
	text, err := e.narrate(ctx, append(e.transcript.Turns(), pending))
	if err != nil {
		return nil, err
	}

	if _, err := e.transcript.AppendPlayerTurn(action, e.player); err != nil {
		return nil, err
	}
	changed := stats.Apply(e.player, stats.Extract(text))
	if _, err := e.transcript.AppendNarratorTurn(text); err != nil {
		return nil, err
	}

	result := &TurnResult{
		Narration: text,
		Changed:   changed,
		Defeated:  stats.IsDefeated(e.player),
	}
	e.logger.Info("turn processed",
		zap.Int("turns", e.transcript.Len()),
		zap.Stringer("changed", changed),
		zap.Int("health", e.player.Health),
		zap.Bool("defeated", result.Defeated),
	)
	return result, nil
}

// State returns a copy of the player's current stats.
func (e *Engine) State() *models.PlayerState {
	return e.player.Clone()
}

// Turns returns the transcript so far.
func (e *Engine) Turns() []models.Turn {
	return e.transcript.Turns()
}

// SessionID identifies this session in logs and exports.
func (e *Engine) SessionID() string {
	return e.id
}

// Defeated reports whether the player has fallen.
func (e *Engine) Defeated() bool {
	return stats.IsDefeated(e.player)
}

// Export snapshots the session for writing to disk. The credential is never
// included.
func (e *Engine) Export() *models.Export {
	return &models.Export{
		SessionID:  e.id,
		ExportedAt: time.Now().UTC(),
		Defeated:   e.Defeated(),
		Player:     e.State(),
		Turns:      e.Turns(),
	}
}

func (e *Engine) narrate(ctx context.Context, turns []models.Turn) (string, error) {
	text, err := e.narrator.Narrate(ctx, turns, e.credential)
	if err != nil {
		e.logger.Warn("narration failed", zap.Error(err))
		return "", err
	}
	return text, nil
}
