// Package tui is the terminal front-end: a domain-selection menu and a chat
// view. All conversation logic lives in the session package; the TUI only
// renders state and forwards user intent.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
	"github.com/Nikkoola22/RH-cfdt/internal/session"
)

type view int

const (
	viewMenu view = iota
	viewChat
)

// answerMsg signals that the in-flight request settled.
type answerMsg struct{ ok bool }

// menuItem is one selectable entry of the domain menu.
type menuItem struct {
	label  string
	domain domain.Domain
	quit   bool
}

// Model is the Bubble Tea model for the assistant.
type Model struct {
	session  *session.Session
	input    textinput.Model
	viewport viewport.Model
	view     view
	items    []menuItem
	cursor   int
	ready    bool
}

// New creates the TUI model in the menu view.
func New(sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Tapez votre question ici..."
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	items := make([]menuItem, 0, 4)
	for _, d := range domain.All() {
		items = append(items, menuItem{label: d.Title(), domain: d})
	}
	items = append(items, menuItem{label: "Quitter", quit: true})
	return Model{session: sess, input: ti, viewport: vp, items: items}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + spacer + input frame + status
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.refreshTranscript()
		return m, nil
	case answerMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.view == viewMenu {
			return m.updateMenu(msg)
		}
		return m.updateChat(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "q":
		return m, tea.Quit
	case "enter":
		item := m.items[m.cursor]
		if item.quit {
			return m, tea.Quit
		}
		m.session.Select(item.domain)
		m.view = viewChat
		m.input.Reset()
		m.input.Focus()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.session.Back()
		m.view = viewMenu
		m.cursor = 0
		m.input.Blur()
		return m, nil
	case "enter":
		// Empty questions and submits while a request is pending are
		// silently ignored by the session.
		if m.session.Submit(m.input.Value()) {
			m.input.Reset()
			m.refreshTranscript()
			m.viewport.GotoBottom()
			sess := m.session
			return m, func() tea.Msg {
				_, ok := sess.Resolve(context.Background())
				return answerMsg{ok: ok}
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the current view.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}
	if m.view == viewMenu {
		return m.menuView()
	}
	return m.chatView()
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Atlas : Chatbot CFDT"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Mairie de Gennevilliers"))
	b.WriteString("\n\n")
	b.WriteString("Choisissez votre domaine d'assistance :\n\n")
	for i, item := range m.items {
		cursor := "  "
		style := itemStyle
		if i == m.cursor {
			cursor = "» "
			style = selectedItemStyle
		}
		b.WriteString(cursor + style.Render(item.label) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("↑/↓ : naviguer • Entrée : choisir • q : quitter"))
	return b.String()
}

func (m Model) chatView() string {
	header := titleStyle.Render("Assistant " + m.session.Domain().Title())
	hint := "Posez vos questions, je suis là pour vous aider"
	status := statusStyle.Render("Entrée : envoyer • Échap : retour au menu")
	if m.session.Pending() {
		status = pendingStyle.Render("L'assistant réfléchit...")
	}
	transcript := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	return header + "\n" + subtitleStyle.Render(hint) + "\n" + transcript + "\n" + input + "\n" + status
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
}

func (m Model) renderTranscript() string {
	messages := m.session.Messages()
	if len(messages) == 0 {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(max(20, m.viewport.Width-4))
	var parts []string
	for _, msg := range messages {
		label := assistantLabelStyle.Render("Assistant")
		if msg.Role == domain.RoleUser {
			label = userLabelStyle.Render("Vous")
		}
		stamp := timeStyle.Render(msg.Timestamp.Format("15:04"))
		parts = append(parts, fmt.Sprintf("%s %s\n%s", label, stamp, wrap.Render(msg.Content)))
	}
	return strings.Join(parts, "\n\n")
}

var (
	titleStyle          = lipgloss.NewStyle().Bold(true)
	subtitleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	chatBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	timeStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
