// Package tui renders the chat screen in the terminal: message history,
// provider/model settings, and the code-block apply flow including the
// new-file-name prompt.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/pocketide/internal/apply"
	"github.com/user/pocketide/internal/catalog"
	"github.com/user/pocketide/internal/chat"
	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
)

// Styles groups the lipgloss styles used by the chat screen.
type Styles struct {
	Header    lipgloss.Style
	Subtle    lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	CodeHead  lipgloss.Style
	Code      lipgloss.Style
	Alert     lipgloss.Style
	Success   lipgloss.Style
	Help      lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		CodeHead:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Code:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Alert:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// AlertBuffer collects alerts emitted by the core so the event loop can drain
// them on the next update.
type AlertBuffer struct {
	mu     sync.Mutex
	alerts []notify.Alert
}

func (b *AlertBuffer) Add(alert notify.Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append(b.alerts, alert)
}

func (b *AlertBuffer) Drain() []notify.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.alerts
	b.alerts = nil
	return out
}

type sendResultMsg struct{ err error }

type applyResultMsg struct {
	state apply.State
	err   error
}

type filesReloadedMsg struct{ err error }

// Model is the bubbletea model for the chat screen.
type Model struct {
	svc     *chat.Service
	sess    *session.Session
	orch    *apply.Orchestrator
	files   *workspace.Files
	est     *chat.Estimator
	alerts  *AlertBuffer
	styles  *Styles

	// enhanced selects the project-scoped chat call; codeContext rides along
	// on basic sends only.
	enhanced    bool
	codeContext string

	input     textarea.Model
	fileName  textinput.Model
	vp        viewport.Model
	spin      spinner.Model

	width, height int
	ready         bool
	sending       bool
	namingFile    bool
	showSettings  bool
	status        string

	// Applicable blocks of the most recent assistant message.
	blocks      []types.CodeBlock
	blockCursor int
}

// Options configures a chat screen.
type Options struct {
	Session     *session.Session
	Backend     *chat.Service
	Orch        *apply.Orchestrator
	Files       *workspace.Files
	Estimator   *chat.Estimator
	Alerts      *AlertBuffer
	Enhanced    bool
	CodeContext string
}

// NewAlertBuffer creates the buffer callers should hook into the core via
// notify.Func(buf.Add).
func NewAlertBuffer() *AlertBuffer { return &AlertBuffer{} }

// New creates the chat screen model.
func New(opts Options) *Model {
	input := textarea.New()
	input.Placeholder = "Ask me to generate, refactor, or explain code..."
	input.CharLimit = 2000
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	fileName := textinput.New()
	fileName.Placeholder = "File name (e.g., component.js)"

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	if opts.Alerts == nil {
		opts.Alerts = &AlertBuffer{}
	}

	return &Model{
		svc:         opts.Backend,
		sess:        opts.Session,
		orch:        opts.Orch,
		files:       opts.Files,
		est:         opts.Estimator,
		alerts:      opts.Alerts,
		styles:      NewStyles(),
		enhanced:    opts.Enhanced,
		codeContext: opts.CodeContext,
		input:       input,
		fileName:    fileName,
		spin:        spin,
	}
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 9
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.input.SetWidth(msg.Width - 2)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.sending && (m.orch == nil || m.orch.State() != apply.StateApplying) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sendResultMsg:
		m.sending = false
		m.drainAlerts()
		if msg.err != nil && m.status == "" {
			m.status = m.styles.Alert.Render("Failed to send message. Please try again.")
		}
		m.collectBlocks()
		m.refreshViewport()
		return m, nil

	case applyResultMsg:
		return m.handleApplyResult(msg)

	case filesReloadedMsg:
		if msg.err != nil {
			m.status = m.styles.Alert.Render("Failed to load files")
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.namingFile {
		m.fileName, cmd = m.fileName.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.namingFile {
			m.orch.Cancel()
			m.namingFile = false
			m.fileName.Blur()
			m.fileName.SetValue("")
			m.input.Focus()
			m.status = ""
			return m, nil
		}
		if m.showSettings {
			m.showSettings = false
			return m, nil
		}
		return m, nil

	case "enter":
		if m.namingFile {
			return m.confirmFileName()
		}
		return m.send()

	case "ctrl+t":
		m.showSettings = !m.showSettings
		return m, nil

	case "ctrl+l":
		m.svc.Log().Clear(chat.GreetingCleared)
		m.blocks = nil
		m.blockCursor = 0
		m.status = ""
		m.refreshViewport()
		return m, nil

	case "ctrl+p":
		if m.showSettings {
			m.cycleProvider()
			return m, nil
		}

	case "ctrl+o":
		if m.showSettings {
			m.cycleModel()
			return m, nil
		}

	case "ctrl+g":
		if m.showSettings && m.enhanced {
			m.sess.SetIncludeProjectContext(!m.sess.IncludeProjectContext())
			return m, nil
		}

	case "tab":
		if len(m.blocks) > 1 && !m.namingFile {
			m.blockCursor = (m.blockCursor + 1) % len(m.blocks)
			m.refreshViewport()
			return m, nil
		}

	case "ctrl+y":
		if m.enhanced && !m.namingFile {
			return m.applySelected()
		}
	}

	var cmd tea.Cmd
	if m.namingFile {
		m.fileName, cmd = m.fileName.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) send() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.sending = true
	m.status = ""

	sendCmd := func() tea.Msg {
		var err error
		if m.enhanced {
			_, err = m.svc.SendEnhanced(context.Background(), text)
		} else {
			_, err = m.svc.Send(context.Background(), text, m.codeContext)
		}
		return sendResultMsg{err: err}
	}

	return m, tea.Batch(sendCmd, m.spin.Tick)
}

func (m *Model) applySelected() (tea.Model, tea.Cmd) {
	if len(m.blocks) == 0 || m.orch == nil {
		return m, nil
	}
	if m.orch.State() != apply.StateIdle {
		return m, nil
	}
	block := m.blocks[m.blockCursor]
	cmd := func() tea.Msg {
		state, err := m.orch.SelectBlock(context.Background(), block)
		return applyResultMsg{state: state, err: err}
	}
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m *Model) confirmFileName() (tea.Model, tea.Cmd) {
	name := m.fileName.Value()
	cmd := func() tea.Msg {
		state, err := m.orch.ConfirmFileName(context.Background(), name)
		return applyResultMsg{state: state, err: err}
	}
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m *Model) handleApplyResult(msg applyResultMsg) (tea.Model, tea.Cmd) {
	m.drainAlerts()
	switch msg.state {
	case apply.StateAwaitingTarget:
		if errors.Is(msg.err, apply.ErrEmptyFileName) {
			m.status = m.styles.Alert.Render("Please enter a file name")
			return m, nil
		}
		m.namingFile = true
		m.input.Blur()
		m.fileName.SetValue("")
		m.fileName.Focus()
		m.status = fmt.Sprintf("New %s file — enter a name", m.orch.PendingLanguage())
		return m, textinput.Blink

	case apply.StateApplied:
		m.orch.Acknowledge()
		m.namingFile = false
		m.fileName.Blur()
		m.input.Focus()
		m.status = m.styles.Success.Render("Code applied")
		if m.files != nil {
			reload := func() tea.Msg {
				return filesReloadedMsg{err: m.files.Load(context.Background())}
			}
			return m, reload
		}
		return m, nil

	case apply.StateFailed:
		m.orch.Acknowledge()
		m.namingFile = false
		m.fileName.Blur()
		m.input.Focus()
		if m.status == "" {
			m.status = m.styles.Alert.Render("Failed to apply code")
		}
		return m, nil
	}

	if errors.Is(msg.err, apply.ErrBusy) {
		m.status = m.styles.Alert.Render("An apply is already in progress")
	}
	return m, nil
}

// collectBlocks picks the applicable blocks from the most recent assistant
// message for the apply shortcut.
func (m *Model) collectBlocks() {
	m.blocks = nil
	m.blockCursor = 0
	msgs := m.svc.Log().Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != types.RoleAssistant {
			continue
		}
		for _, block := range msgs[i].CodeBlocks {
			if block.CanApply {
				m.blocks = append(m.blocks, block)
			}
		}
		return
	}
}

func (m *Model) drainAlerts() {
	alerts := m.alerts.Drain()
	if len(alerts) > 0 {
		last := alerts[len(alerts)-1]
		m.status = m.styles.Alert.Render(last.Message)
	}
}

func (m *Model) cycleProvider() {
	providers := catalog.Providers()
	current := m.sess.Provider()
	for i, p := range providers {
		if p.ID == current {
			next := providers[(i+1)%len(providers)]
			m.sess.SetProvider(next.ID)
			return
		}
	}
}

func (m *Model) cycleModel() {
	p, ok := catalog.Lookup(m.sess.Provider())
	if !ok {
		return
	}
	current := m.sess.Model()
	for i, model := range p.Models {
		if model == current {
			m.sess.SetModel(p.Models[(i+1)%len(p.Models)])
			return
		}
	}
}
