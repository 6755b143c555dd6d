package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/tatianab/text-dungeon/internal/config"
	"github.com/tatianab/text-dungeon/internal/engine"
	"github.com/tatianab/text-dungeon/internal/logger"
	"github.com/tatianab/text-dungeon/internal/models"
	"github.com/tatianab/text-dungeon/internal/narrator"
)

const maxTurns = 10

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AnthropicAPIKey == "" || cfg.GeminiAPIKey == "" {
		log.Fatal("ANTHROPIC_API_KEY and GEMINI_API_KEY must both be set")
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "console", OutputPath: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// The dungeon master.
	gm := engine.NewEngine(narrator.NewClient(
		narrator.WithEndpoint(cfg.NarratorURL),
		narrator.WithModel(cfg.NarratorModel),
		narrator.WithMaxTokens(cfg.NarratorMaxTokens),
		narrator.WithAnthropicVersion(cfg.AnthropicVersion),
		narrator.WithLogger(zlog.Named("narrator")),
	), zlog.Named("engine"))
	if err := gm.SaveCredential(cfg.AnthropicAPIKey); err != nil {
		log.Fatalf("Failed to save credential: %v", err)
	}

	// The player.
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel("gemini-2.5-flash")

	fmt.Println("--- Opening ---")
	opening, err := gm.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to open the adventure: %v", err)
	}
	fmt.Printf("%s\n\n", opening)

	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		action := getPlayerAction(ctx, playerModel, gm.State(), gm.Turns())
		fmt.Printf("Player Action: %s\n", action)

		result, err := gm.SendPlayerAction(ctx, action)
		if err != nil {
			fmt.Printf("Error processing turn: %v\n", err)
			continue
		}
		fmt.Printf("GM: %s\n", result.Narration)
		if result.Changed != 0 {
			fmt.Printf("Changed: %s\n", result.Changed)
		}

		s := gm.State()
		fmt.Printf("Stats: Health=%d/%d, Attack=%d, Defense=%d, Gold=%d, Inventory=%v\n\n",
			s.Health, s.MaxHealth, s.Attack, s.Defense, s.Gold, s.Inventory)

		if result.Defeated {
			fmt.Println("Game Ended: Player Fell!")
			break
		}
	}

	path, err := gm.Export().Save(cfg.SaveDir)
	if err != nil {
		zlog.Warn("failed to export simulation", zap.Error(err))
		return
	}
	fmt.Printf("Transcript saved to %s\n", path)
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, state *models.PlayerState, turns []models.Turn) string {
	// The seed holds the GM's rules; the player only sees the story.
	var story strings.Builder
	for _, t := range turns[1:] {
		if t.Role == models.RoleAssistant {
			story.WriteString("GM: " + t.Content + "\n")
		} else {
			story.WriteString(t.Content + "\n")
		}
	}

	prompt := fmt.Sprintf(`You are playing a text-based fantasy adventure game.
Health: %d/%d, Attack: %d, Defense: %d, Gold: %d
Inventory: %s

Story so far:
%s

What is your next action? Be creative but stay within the world's logic. Return ONLY the action string, no extra commentary.`,
		state.Health, state.MaxHealth, state.Attack, state.Defense, state.Gold,
		state.InventoryList(),
		story.String(),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "look around"
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "look around"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
