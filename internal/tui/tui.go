package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/text-dungeon/internal/engine"
	"github.com/tatianab/text-dungeon/internal/models"
)

type sessionState int

const (
	stateCredential sessionState = iota
	stateLoading
	statePlaying
	stateDefeated
)

// Options configure the UI around an engine.
type Options struct {
	// Prefills the credential prompt.
	APIKey string
	// Directory for /save exports.
	SaveDir string
}

// quickActions are canned actions bound to function keys.
var quickActions = map[tea.KeyType]string{
	tea.KeyF1: "Look around",
	tea.KeyF2: "Search for treasure",
	tea.KeyF3: "Attack the nearest enemy",
	tea.KeyF4: "Rest and recover",
}

const defeatMessage = "💀 You have fallen in battle! Your adventure ends here..."

type model struct {
	state     sessionState
	engine    *engine.Engine
	opts      Options
	player    *models.PlayerState
	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	notice    string
	gameLog   string
	width     int
	height    int
}

var (
	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8787")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// Health colours match the thresholds of the stat panel.
var (
	healthLow    = lipgloss.Color("#F44336")
	healthMedium = lipgloss.Color("#FF9800")
	healthHigh   = lipgloss.Color("#4CAF50")
)

func NewModel(eng *engine.Engine, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Anthropic API key"
	ti.EchoMode = textinput.EchoPassword
	ti.SetValue(opts.APIKey)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		state:     stateCredential,
		engine:    eng,
		opts:      opts,
		player:    eng.State(),
		textInput: ti,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type beganMsg struct {
	text string
	err  error
}

type turnProcessedMsg struct {
	result *engine.TurnResult
	player *models.PlayerState
	err    error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateCredential:
				if err := m.engine.SaveCredential(m.textInput.Value()); err != nil {
					m.notice = "Please enter a valid API key"
					return m, nil
				}
				m.notice = ""
				m.textInput.Reset()
				m.textInput.EchoMode = textinput.EchoNormal
				m.textInput.Placeholder = "What do you do?"
				return m.submit(m.begin())
			case statePlaying:
				action := strings.TrimSpace(m.textInput.Value())
				if action == "" {
					return m, nil
				}
				m.textInput.Reset()
				switch action {
				case "/quit":
					return m, tea.Quit
				case "/save":
					m.saveTranscript()
					return m, nil
				}
				return m.sendAction(action)
			}

		case tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4:
			if m.state == statePlaying {
				return m.sendAction(quickActions[msg.Type])
			}
			return m, nil

		case tea.KeyCtrlS:
			if m.state == statePlaying || m.state == stateDefeated {
				m.saveTranscript()
			}
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-8, 3)
		m.viewport.SetContent(m.gameLog)

	case spinner.TickMsg:
		if m.state == stateLoading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case beganMsg:
		m.state = statePlaying
		m.textInput.Focus()
		if msg.err != nil {
			m.addMessage(fmt.Sprintf("Error: %s. Please check your API key.", msg.err), "system")
			return m, nil
		}
		m.addMessage(msg.text, "narrator")
		return m, nil

	case turnProcessedMsg:
		m.state = statePlaying
		m.textInput.Focus()
		if msg.err != nil {
			m.addMessage(fmt.Sprintf("Error: %s", msg.err), "system")
			return m, nil
		}
		m.refreshStats(msg.player)
		m.addMessage(msg.result.Narration, "narrator")
		if msg.result.Defeated {
			m.addMessage(defeatMessage, "system")
			m.state = stateDefeated
			m.textInput.Blur()
		}
		return m, nil
	}

	if m.state == stateCredential || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sendAction echoes the action and asks the engine for the next passage.
// Input stays disabled until the reply arrives.
func (m model) sendAction(action string) (tea.Model, tea.Cmd) {
	m.addMessage(action, "player")
	return m.submit(m.processTurn(action))
}

func (m model) submit(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.textInput.Blur()
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m *model) addMessage(text, role string) {
	width := m.logWidth()
	var rendered string
	switch role {
	case "player":
		rendered = playerStyle.Width(width).Render("> " + text)
	case "system":
		rendered = systemStyle.Width(width).Render(text)
	default:
		rendered = narratorStyle.Width(width).Render(text)
	}
	m.gameLog += rendered + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m *model) refreshStats(p *models.PlayerState) {
	m.player = p
}

func (m *model) saveTranscript() {
	path, err := m.engine.Export().Save(m.opts.SaveDir)
	if err != nil {
		m.addMessage(fmt.Sprintf("Error: %s", err), "system")
		return
	}
	m.addMessage("Transcript saved to "+path, "system")
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.75)
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateCredential:
		s = fmt.Sprintf(
			"Welcome, adventurer!\n\n%s\n\n%s",
			"Enter your Anthropic API key to begin:",
			m.textInput.View(),
		)
		if m.notice != "" {
			s += "\n\n" + systemStyle.Render(m.notice)
		}

	case stateLoading, statePlaying, stateDefeated:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		var footer string
		switch m.state {
		case stateLoading:
			footer = m.spinner.View() + " The dungeon master is thinking..."
		case stateDefeated:
			footer = helpStyle.Render("Your adventure is over. Ctrl+S saves the transcript, Esc quits.")
		default:
			footer = m.textInput.View() + "\n\n" + helpStyle.Render(
				"F1 look · F2 search · F3 attack · F4 rest · PgUp/PgDn scroll · /save or Ctrl+S · /quit")
		}

		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+footer)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	p := m.player

	statsTitle := titleStyle.Render("STATS") + "\n"
	health := lipgloss.NewStyle().Foreground(healthColor(p)).
		Render(fmt.Sprintf("%d/%d", p.Health, p.MaxHealth))
	stats := fmt.Sprintf("Health: %s\nAttack: %d\nDefense: %d\nGold: %d\n\n",
		health, p.Attack, p.Defense, p.Gold)

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(p.Inventory) == 0 {
		inventory = "(empty)"
	} else {
		for _, item := range p.Inventory {
			inventory += "- " + item + "\n"
		}
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(statsTitle + stats + invTitle + inventory)
}

// healthColor is red at or below a quarter of max health, orange at or
// below half, green otherwise.
func healthColor(p *models.PlayerState) lipgloss.Color {
	if p.MaxHealth <= 0 {
		return healthLow
	}
	percent := float64(p.Health) / float64(p.MaxHealth) * 100
	switch {
	case percent <= 25:
		return healthLow
	case percent <= 50:
		return healthMedium
	default:
		return healthHigh
	}
}

func (m model) begin() tea.Cmd {
	return func() tea.Msg {
		text, err := m.engine.Begin(context.Background())
		return beganMsg{text, err}
	}
}

func (m model) processTurn(action string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.SendPlayerAction(context.Background(), action)
		return turnProcessedMsg{result: result, player: m.engine.State(), err: err}
	}
}

// Run drives the game in the terminal until the player quits.
func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(NewModel(eng, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
