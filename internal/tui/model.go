// Package tui implements the terminal chat interface: a transcript
// viewport over a text input, with slash commands for quick tasks.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfassist/internal/assistant"
	"pdfassist/internal/retrieval"
)

const (
	stateAwaitName = iota
	stateChat
)

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service *assistant.Service
	input   textinput.Model
	vp      viewport.Model

	state      int
	transcript []string
	status     string
	header     string
	busy       bool
	ready      bool
	width      int
}

type replyMsg struct {
	question string
	reply    assistant.Reply
}

type welcomeMsg struct{ text string }

// New creates the chat model. header is shown above the transcript
// (file name and indexing stats).
func New(service *assistant.Service, header string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		service: service,
		input:   ti,
		vp:      vp,
		state:   stateAwaitName,
		header:  header,
	}
	m.pushAssistant(service.Lang().Message("welcome", nil))
	m.status = helpLine
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, fh := transcriptStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + qh + 2 // header + spacer, input frame, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.vp.Width = maxInt(20, msg.Width)
		m.vp.Height = maxInt(3, vh-fh)
		m.refresh()
		return m, nil

	case welcomeMsg:
		m.busy = false
		m.pushAssistant(msg.text)
		m.status = helpLine
		m.refresh()
		return m, nil

	case replyMsg:
		m.busy = false
		m.pushUser(msg.question)
		m.pushAssistant(msg.reply.Text)
		if len(msg.reply.Citations) > 0 {
			m.pushSources(msg.reply.Citations)
		}
		m.status = helpLine
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			return m.submit(text)
		case "up":
			m.vp.LineUp(1)
			return m, nil
		case "down":
			m.vp.LineDown(1)
			return m, nil
		case "pgup":
			m.vp.HalfViewUp()
			return m, nil
		case "pgdown":
			m.vp.HalfViewDown()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	if m.state == stateAwaitName {
		name := assistant.FirstName(text, m.service.Locales())
		if name == "" {
			if fields := strings.Fields(text); len(fields) > 0 {
				name = strings.Trim(fields[0], ".,!?")
			}
		}
		if name == "" {
			m.pushAssistant(m.service.Lang().Message("welcome", nil))
			m.refresh()
			return m, nil
		}
		m.service.Session().UserName = name
		m.state = stateChat
		m.pushUser(text)
		m.busy = true
		m.status = thinkingLine
		m.refresh()
		svc := m.service
		return m, func() tea.Msg {
			return welcomeMsg{text: svc.Welcome(context.Background())}
		}
	}

	if cmd, ok := m.command(text); ok {
		return m, cmd
	}

	m.busy = true
	m.status = thinkingLine
	m.refresh()
	svc := m.service
	return m, func() tea.Msg {
		return replyMsg{question: text, reply: svc.Ask(context.Background(), text)}
	}
}

// command dispatches slash commands; returns false for plain questions.
func (m *Model) command(text string) (tea.Cmd, bool) {
	if !strings.HasPrefix(text, "/") {
		return nil, false
	}
	fields := strings.Fields(text)
	name := strings.ToLower(fields[0])

	switch name {
	case "/lang":
		if len(fields) > 1 {
			m.service.Session().Language = fields[1]
		}
		m.pushAssistant(m.service.Lang().Message("welcome", nil))
		m.refresh()
		return nil, true
	case "/clear":
		m.service.Session().ClearHistory()
		m.transcript = nil
		m.status = helpLine
		m.refresh()
		return nil, true
	case "/theme":
		if len(fields) > 1 {
			m.service.Session().SetTheme(strings.Join(fields[1:], " "))
		}
		m.pushAssistant(m.service.Session().Theme())
		m.refresh()
		return nil, true
	case "/help":
		m.pushAssistant(helpText)
		m.refresh()
		return nil, true
	}

	task, needsPage := taskForCommand(name)
	if task == "" {
		return nil, false
	}
	page := 0
	if needsPage {
		if len(fields) < 2 {
			m.pushAssistant(helpText)
			m.refresh()
			return nil, true
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			m.pushAssistant(helpText)
			m.refresh()
			return nil, true
		}
		page = n - 1
	}

	m.busy = true
	m.status = thinkingLine
	m.refresh()
	svc := m.service
	return func() tea.Msg {
		return replyMsg{question: text, reply: svc.RunTask(context.Background(), task, page)}
	}, true
}

func taskForCommand(name string) (assistant.Task, bool) {
	switch name {
	case "/page":
		return assistant.TaskPageSummary, true
	case "/summary":
		return assistant.TaskDocSummary, false
	case "/glossary":
		return assistant.TaskGlossary, false
	case "/faq":
		return assistant.TaskFAQ, false
	case "/plan":
		return assistant.TaskStudyPlan, false
	case "/exercises":
		return assistant.TaskExercises, false
	}
	return "", false
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(m.header)
	body := transcriptStyle.Render(m.vp.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n\n" + body + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	wrap := lipgloss.NewStyle().Width(maxInt(20, m.width-4))
	m.vp.SetContent(wrap.Render(strings.Join(m.transcript, "\n\n")))
	m.vp.GotoBottom()
}

func (m *Model) pushUser(text string) {
	m.transcript = append(m.transcript, userStyle.Render("you: ")+text)
}

func (m *Model) pushAssistant(text string) {
	m.transcript = append(m.transcript, assistantStyle.Render("assistant: ")+text)
}

func (m *Model) pushSources(citations []retrieval.Citation) {
	seen := map[string]struct{}{}
	parts := make([]string, 0, len(citations))
	for _, c := range citations {
		ref := fmt.Sprintf("p. %d (%s)", c.Page, c.Source)
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		parts = append(parts, ref)
	}
	label := m.service.Lang().Message("sources", nil)
	m.transcript = append(m.transcript, sourceStyle.Render(label+": "+strings.Join(parts, ", ")))
}

const (
	helpLine     = "/page N  /summary  /glossary  /faq  /plan  /exercises  /lang CODE  /theme TEXT  /clear  /help"
	thinkingLine = "..."
	helpText     = "Commands: /page N (summarize page N), /summary, /glossary, /faq, /plan, /exercises, /lang pt|it|en, /theme TEXT, /clear, /help"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	sourceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
