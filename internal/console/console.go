// Package console is a line-mode front end for terminals where the full
// screen UI is unavailable.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tatianab/text-dungeon/internal/engine"
	"github.com/tatianab/text-dungeon/internal/models"
)

const rule = "--------------------------------------------------"

// Console reads actions from in and writes the story to out.
type Console struct {
	engine  *engine.Engine
	in      *bufio.Scanner
	out     io.Writer
	saveDir string
}

func New(eng *engine.Engine, in io.Reader, out io.Writer, saveDir string) *Console {
	return &Console{
		engine:  eng,
		in:      bufio.NewScanner(in),
		out:     out,
		saveDir: saveDir,
	}
}

// Run prompts for a credential unless apiKey is set, opens the adventure and
// loops until input ends, the player quits or is defeated.
func (c *Console) Run(ctx context.Context, apiKey string) error {
	if err := c.engine.SaveCredential(apiKey); err != nil {
		for {
			fmt.Fprint(c.out, "API key: ")
			if !c.in.Scan() {
				return c.in.Err()
			}
			if err := c.engine.SaveCredential(c.in.Text()); err == nil {
				break
			}
			c.renderMessage("Please enter a valid API key", "system")
		}
	}

	c.renderMessage("The dungeon master is thinking...", "system")
	if text, err := c.engine.Begin(ctx); err != nil {
		c.renderMessage(fmt.Sprintf("Error: %s. Please check your API key.", err), "system")
	} else {
		c.renderMessage(text, "narrator")
	}
	c.refreshStatDisplay(c.engine.State())

	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		action := strings.TrimSpace(c.in.Text())
		switch action {
		case "":
			continue
		case "/quit":
			return nil
		case "/save":
			c.save()
			continue
		}

		result, err := c.engine.SendPlayerAction(ctx, action)
		if err != nil {
			c.renderMessage(fmt.Sprintf("Error: %s", err), "system")
			continue
		}
		c.renderMessage(result.Narration, "narrator")
		if result.Changed != 0 {
			c.refreshStatDisplay(c.engine.State())
		}
		if result.Defeated {
			c.renderMessage("💀 You have fallen in battle! Your adventure ends here...", "system")
			return nil
		}
	}
}

func (c *Console) renderMessage(text, role string) {
	switch role {
	case "narrator":
		fmt.Fprintf(c.out, "%s\n%s\n%s\n", rule, text, rule)
	default:
		fmt.Fprintf(c.out, "* %s\n", text)
	}
}

func (c *Console) refreshStatDisplay(p *models.PlayerState) {
	fmt.Fprintf(c.out, "[Health %d/%d | Attack %d | Defense %d | Gold %d | %s]\n",
		p.Health, p.MaxHealth, p.Attack, p.Defense, p.Gold, p.InventoryList())
}

func (c *Console) save() {
	path, err := c.engine.Export().Save(c.saveDir)
	if err != nil {
		c.renderMessage(fmt.Sprintf("Error: %s", err), "system")
		return
	}
	c.renderMessage("Transcript saved to "+path, "system")
}
