package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rsalas72/away-team/pkg/feed"
)

const PlaceHolderText = "Issue a directive to the away team..."

// ConsoleUI is the BubbleTea model that runs the commander console.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	snapshot     *WorldSnapshot
	log          []feed.LogEntry
	currentTurn  int
	feedViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Last director narration, for clipboard copy
	lastNarration string

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type turnResponseMsg struct {
	response *feed.TurnResponse
	err      error
}

type worldRefreshMsg struct {
	snapshot *WorldSnapshot
	err      error
}

type progressTickMsg struct{}

var (
	feedPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	commanderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	speechStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	thoughtsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // dark grey
			Italic(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

var titleCaser = cases.Title(language.English)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, snapshot *WorldSnapshot) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	feedVp := viewport.New(50, 20)
	feedVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		snapshot:     snapshot,
		currentTurn:  snapshot.CurrentTurn,
		textarea:     ta,
		feedViewport: feedVp,
		metaViewport: metaVp,
		ready:        false,
	}
}

// formatLogEntry renders one radio feed line in its channel's style
func formatLogEntry(entry feed.LogEntry, width int) string {
	author := titleCaser.String(entry.Author)

	switch entry.Type {
	case feed.MessageCommander:
		return commanderStyle.Render(author+": ") + wordwrap.String(entry.Content, width-6)
	case feed.MessageActorThoughts:
		return thoughtsStyle.Render(wordwrap.String("("+author+" thinks) "+entry.Content, width-6))
	case feed.MessageActorSpeech:
		return speechStyle.Render(author+" [comms]: ") + wordwrap.String(entry.Content, width-6)
	case feed.MessageDirectorNarration:
		return narrationStyle.Render(wordwrap.String(entry.Content, width-6))
	case feed.MessageSystem:
		return systemStyle.Render(wordwrap.String("[SYSTEM] "+entry.Content, width-6))
	default:
		return wordwrap.String(entry.Content, width-6)
	}
}

// writeFeedContent rebuilds the radio feed for the current viewport width
func (m *ConsoleUI) writeFeedContent() {
	feedWidth := m.feedViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("AWAY TEAM // HELMET CAM FEED") + "\n\n")
	content.WriteString("Issue directives below. The team acts; you watch the feed.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", feedWidth-6)) + "\n\n")

	lastTurn := 0
	for _, entry := range m.log {
		if entry.Turn != lastTurn {
			if lastTurn != 0 {
				content.WriteString("\n")
			}
			content.WriteString(separatorStyle.Render(fmt.Sprintf("── turn %d ──", entry.Turn)) + "\n\n")
			lastTurn = entry.Turn
		}
		content.WriteString(formatLogEntry(entry, feedWidth) + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.feedViewport.SetContent(content.String())
	m.feedViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("MISSION") + "\n\n")

	gs := m.snapshot
	if gs.Mission.Objective != "" {
		content.WriteString("Objective:\n")
		content.WriteString(gs.Mission.Objective + "\n\n")
	}
	if gs.Mission.Status != "" {
		content.WriteString("Status:\n")
		content.WriteString(gs.Mission.Status + "\n\n")
	}

	content.WriteString(fmt.Sprintf("Turn: %d\n\n", m.currentTurn))

	if c, ok := gs.Characters[gs.ActiveCharacter]; ok {
		content.WriteString(titleStyle.Render("OPERATIVE") + "\n\n")
		content.WriteString(c.Name + "\n")
		if z, ok := gs.Zones[c.CurrentZone]; ok {
			content.WriteString("Location: " + z.Name + "\n")
		}
		content.WriteString("Health: " + c.Status.Health + "\n")
		content.WriteString(fmt.Sprintf("Stress: %d\n", c.Status.Stress))
		if len(c.Status.Conditions) > 0 {
			content.WriteString("Conditions: " + strings.Join(c.Status.Conditions, ", ") + "\n")
		}
		if len(c.Inventory) > 0 {
			content.WriteString("\nInventory:\n")
			for _, item := range c.Inventory {
				content.WriteString("• " + item + "\n")
			}
		}
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Y: Copy feed\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /mission: Brief\n")

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.refreshFeed())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.feedViewport, vpCmd = m.feedViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		feedWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - feedWidth - 6

		m.feedViewport.Width = feedWidth - 2
		m.feedViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(feedWidth - 4)

		m.ready = true
		m.writeFeedContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			if m.lastNarration != "" {
				_ = clipboard.WriteAll(m.lastNarration)
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			// Echo the directive locally; the server log replaces it
			m.log = append(m.log, feed.LogEntry{
				Turn:    m.currentTurn,
				Type:    feed.MessageCommander,
				Author:  "Commander",
				Content: input,
			})
			m.writeFeedContent()

			return m, tea.Batch(m.sendTurn(input), progressTick())
		}

	case turnResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeFeedContent()
			currentContent := m.feedViewport.View()
			errorMsg := systemStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.feedViewport.SetContent(currentContent + errorMsg)
			m.feedViewport.GotoBottom()
			return m, m.refreshFeed()
		}

		if msg.response.Result != nil {
			m.lastNarration = msg.response.Result.HelmetCamFeed
		}
		m.currentTurn = msg.response.CurrentTurn
		return m, tea.Batch(m.refreshFeed(), m.refreshWorld())

	case feedRefreshMsg:
		if msg.err == nil && msg.state != nil {
			m.log = msg.state.Log
			m.currentTurn = msg.state.CurrentTurn
			m.writeFeedContent()
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case worldRefreshMsg:
		if msg.err == nil && msg.snapshot != nil {
			m.snapshot = msg.snapshot
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeFeedContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.feedViewport, vpCmd = m.feedViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /mission - Show the mission brief
• Ctrl+Y - Copy last narration to clipboard
• Ctrl+C - Quit

How to command:
• Type directives and press Enter
• Your operative interprets orders in their own way
• Dice decide risky actions; the feed reports the outcome
`
		currentContent := m.feedViewport.View()
		m.feedViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.feedViewport.GotoBottom()

	case "/mission":
		var brief strings.Builder
		brief.WriteString(titleStyle.Render("Mission Brief:") + "\n")
		if m.snapshot.Mission.Objective != "" {
			brief.WriteString("Objective: " + m.snapshot.Mission.Objective + "\n")
		}
		if m.snapshot.Mission.Status != "" {
			brief.WriteString("Status: " + m.snapshot.Mission.Status + "\n")
		}
		if m.snapshot.Mission.TimePressure != "" {
			brief.WriteString("Time pressure: " + m.snapshot.Mission.TimePressure + "\n")
		}
		brief.WriteString("\n")

		currentContent := m.feedViewport.View()
		m.feedViewport.SetContent(currentContent + brief.String())
		m.feedViewport.GotoBottom()
	}

	m.textarea.Reset()
	return m, nil
}

type feedRefreshMsg struct {
	state *feed.StateResponse
	err   error
}

func (m ConsoleUI) sendTurn(command string) tea.Cmd {
	return func() tea.Msg {
		resp, err := submitTurn(m.client, m.config.APIBaseURL, command)
		return turnResponseMsg{resp, err}
	}
}

func (m ConsoleUI) refreshFeed() tea.Cmd {
	return func() tea.Msg {
		state, err := getState(m.client, m.config.APIBaseURL)
		return feedRefreshMsg{state, err}
	}
}

func (m ConsoleUI) refreshWorld() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := getWorld(m.client, m.config.APIBaseURL)
		return worldRefreshMsg{snapshot, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Abort Mission?"))
	content.WriteString("\n\n")
	content.WriteString("The session is saved; you can resume it later.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	feedWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - feedWidth - 6

	feedPanel := feedPanelStyle.Width(feedWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.feedViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", feedWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, feedPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.feedViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return loadingStyle.Render(bar.String()) + "\n"
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
