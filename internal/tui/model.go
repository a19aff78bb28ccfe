// Package tui is the interactive terminal front-end for a chat session.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/adapter/fsys"
	"docchat/internal/domain"
	"docchat/internal/usecase"
)

// Options configures the TUI.
type Options struct {
	Session   *usecase.Session
	DocPath   string          // path of the preloaded document, if any
	Changes   <-chan struct{} // emits when the watched document changes; may be nil
	ModelName string
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	session  *usecase.Session
	docPath  string
	changes  <-chan struct{}
	model    string
	input    textinput.Model
	viewport viewport.Model
	status   string
	busy     bool
	ready    bool
}

type answerMsg struct {
	answer string
}

type uploadedMsg struct {
	path string
	err  error
}

type fileChangedMsg struct{}

// New creates a new TUI model instance.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or /help for commands"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)

	status := "No document loaded."
	if doc := opts.Session.Document(); doc != nil {
		status = fmt.Sprintf("Loaded %s (%d chunks).", doc.Name, len(doc.Chunks))
	}

	return Model{
		session:  opts.Session,
		docPath:  opts.DocPath,
		changes:  opts.Changes,
		model:    opts.ModelName,
		input:    ti,
		viewport: vp,
		status:   status,
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update handles key, window, and session events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.busy {
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				break
			}
			m.input.SetValue("")
			if strings.HasPrefix(line, "/") {
				return m.runCommand(line)
			}
			m.busy = true
			m.status = "Thinking..."
			return m, ask(m.session, line)
		}

	case answerMsg:
		m.busy = false
		m.status = m.statusLine()
		m.refreshTranscript()
		return m, nil

	case uploadedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.docPath = msg.path
			doc := m.session.Document()
			m.status = fmt.Sprintf("Loaded %s (%d chunks, %d words).", doc.Name, len(doc.Chunks), doc.Analysis.WordCount)
		}
		m.refreshTranscript()
		return m, nil

	case fileChangedMsg:
		// Watched file was rewritten; re-ingest and keep listening.
		cmds := []tea.Cmd{waitForChange(m.changes)}
		if !m.busy && m.docPath != "" {
			m.busy = true
			m.status = "Document changed, reloading..."
			cmds = append(cmds, upload(m.session, m.docPath))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "Document Chat"
	if m.session.Mode() == usecase.ModeRetrieval {
		title = "Document Chat (RAG)"
	}
	header := headerStyle.Render(fmt.Sprintf("%s · %s", title, m.model))
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		m.status = "/open <file>  /stats  /export  /clear  /reset  /quit"
	case "/quit":
		return m, tea.Quit
	case "/open":
		if len(fields) < 2 {
			m.status = "Usage: /open <file or glob>"
			break
		}
		path, err := fsys.Resolve(strings.Join(fields[1:], " "), m.session.Mode().AllowedExtensions())
		if err != nil {
			m.status = "Error: " + err.Error()
			break
		}
		m.busy = true
		m.status = "Processing " + path + "..."
		return m, upload(m.session, path)
	case "/stats":
		m.status = m.statsLine()
	case "/export":
		name := fmt.Sprintf("docchat_export_%s.json", time.Now().Format("20060102_150405"))
		if len(fields) > 1 {
			name = fields[1]
		}
		data, err := m.session.Export(time.Now())
		if err == nil {
			err = os.WriteFile(name, data, 0644)
		}
		if err != nil {
			m.status = "Export failed: " + err.Error()
		} else {
			m.status = "Conversation exported to " + name
		}
	case "/clear":
		m.session.ClearHistory()
		m.status = "History cleared."
		m.refreshTranscript()
	case "/reset":
		m.session.Reset()
		m.docPath = ""
		m.status = "Session reset. No document loaded."
		m.refreshTranscript()
	default:
		m.status = "Unknown command " + fields[0] + ". Try /help."
	}
	return m, nil
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	history := m.session.History()
	if len(history) == 0 {
		return "No messages yet. Ask a question about the document."
	}
	var b strings.Builder
	for _, msg := range history {
		label := userStyle.Render("You")
		if msg.Role == domain.RoleAssistant {
			label = assistantStyle.Render("Assistant")
		}
		b.WriteString(label + "\n" + msg.Content + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) statusLine() string {
	if doc := m.session.Document(); doc != nil {
		return fmt.Sprintf("%s · %d chunks · state %s", doc.Name, len(doc.Chunks), m.session.State())
	}
	return "No document loaded."
}

func (m Model) statsLine() string {
	doc := m.session.Document()
	if doc == nil {
		return "No document loaded."
	}
	a := doc.Analysis
	return fmt.Sprintf("%s: %d words, %d chars, %d sentences, %d paragraphs, %d unique words, avg length %.2f",
		doc.Name, a.WordCount, a.CharacterCount, a.SentenceCount, a.ParagraphCount, a.UniqueWords, a.AvgWordLength)
}

func ask(session *usecase.Session, question string) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{answer: session.Ask(context.Background(), question)}
	}
}

func upload(session *usecase.Session, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err == nil {
			err = session.Upload(context.Background(), path, data, nil)
		}
		return uploadedMsg{path: path, err: err}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
