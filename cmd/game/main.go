package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/tatianab/text-dungeon/internal/config"
	"github.com/tatianab/text-dungeon/internal/console"
	"github.com/tatianab/text-dungeon/internal/engine"
	"github.com/tatianab/text-dungeon/internal/logger"
	"github.com/tatianab/text-dungeon/internal/narrator"
	"github.com/tatianab/text-dungeon/internal/tui"
)

// Options are the command line flags, interpreted by go-flags.
type Options struct {
	Plain   bool   `long:"plain" description:"line-mode play without the full screen UI"`
	EnvFile string `long:"env-file" default:".env" description:"optional dotenv file"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogFile,
	})
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := narrator.NewClient(
		narrator.WithEndpoint(cfg.NarratorURL),
		narrator.WithModel(cfg.NarratorModel),
		narrator.WithMaxTokens(cfg.NarratorMaxTokens),
		narrator.WithAnthropicVersion(cfg.AnthropicVersion),
		narrator.WithLogger(log.Named("narrator")),
	)
	eng := engine.NewEngine(client, log.Named("engine"))
	log.Info("session started", zap.String("session_id", eng.SessionID()), zap.Bool("plain", opts.Plain))

	if opts.Plain {
		err = console.New(eng, os.Stdin, os.Stdout, cfg.SaveDir).Run(context.Background(), cfg.AnthropicAPIKey)
	} else {
		err = tui.Run(eng, tui.Options{APIKey: cfg.AnthropicAPIKey, SaveDir: cfg.SaveDir})
	}
	if err != nil {
		log.Error("game ended with error", zap.Error(err))
		fmt.Printf("Error running game: %v\n", err)
		os.Exit(1)
	}
}
