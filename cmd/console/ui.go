package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
)

const placeholderText = "Say something..."

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// ConsoleUI is the Bubble Tea model for a conversation with one NPC.
type ConsoleUI struct {
	config   *ConsoleConfig
	client   *http.Client
	npcID    string
	viewport viewport.Model
	textarea textarea.Model
	lines    []string
	ready    bool
	loading  bool
	width    int
	height   int
	err      error
}

type interactionMsg struct {
	response *interaction.Response
	err      error
}

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, npcID string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:   cfg,
		client:   client,
		npcID:    npcID,
		textarea: ta,
		viewport: vp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 7
		m.textarea.SetWidth(msg.Width - 4)
		if !m.ready {
			m.lines = []string{
				titleStyle.Render("NPC ENGINE"),
				"",
				fmt.Sprintf("You approach %s.", m.npcID),
				separatorStyle.Render(strings.Repeat("─", max(m.viewport.Width-2, 10))),
			}
			m.ready = true
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.loading = true
			m.appendLine(userStyle.Render("You: ") + text)
			m.refreshViewport()
			return m, m.sendCmd(text)
		}

	case interactionMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.appendLine(errorStyle.Render("error: " + msg.err.Error()))
		} else {
			m.appendLine(npcStyle.Render(m.npcID+": ") + msg.response.Dialogue)
			if msg.response.Action != nil {
				m.appendLine(actionStyle.Render(fmt.Sprintf("[%s]", msg.response.Action.Type)))
			}
			if msg.response.ActionError != "" {
				m.appendLine(errorStyle.Render("[" + msg.response.ActionError + "]"))
			}
		}
		m.refreshViewport()
	}

	return m, tea.Batch(taCmd, vpCmd)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := ""
	if m.loading {
		status = promptStyle.Render("waiting for reply...")
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		m.viewport.View(),
		status,
		m.textarea.View(),
		promptStyle.Render("enter: send • esc: quit"))
}

func (m *ConsoleUI) appendLine(line string) {
	wrapped := wordwrap.String(line, max(m.viewport.Width-2, 20))
	m.lines = append(m.lines, wrapped, "")
}

func (m *ConsoleUI) refreshViewport() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m ConsoleUI) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendInteraction(m.client, m.config.APIBaseURL, m.npcID, text)
		return interactionMsg{response: resp, err: err}
	}
}
