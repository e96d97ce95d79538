package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/pocketide/internal/catalog"
	"github.com/user/pocketide/internal/types"
)

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	if m.showSettings {
		b.WriteString(m.settingsView())
		b.WriteString("\n")
	}
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	if m.namingFile {
		b.WriteString(m.fileName.View())
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *Model) headerView() string {
	snap := m.sess.Snapshot()
	name := string(snap.Provider)
	if p, ok := catalog.Lookup(snap.Provider); ok {
		name = p.Name
	}
	title := m.styles.Header.Render("AI Assistant")
	detail := m.styles.Subtle.Render(fmt.Sprintf("%s - %s", name, snap.Model))
	return title + "  " + detail
}

func (m *Model) settingsView() string {
	snap := m.sess.Snapshot()
	lines := []string{
		m.styles.Header.Render("Settings"),
		fmt.Sprintf("  provider: %s  (ctrl+p to cycle)", snap.Provider),
		fmt.Sprintf("  model:    %s  (ctrl+o to cycle)", snap.Model),
	}
	if m.enhanced {
		mode := "off"
		if snap.IncludeProjectContext {
			mode = "on"
		}
		lines = append(lines, fmt.Sprintf("  project context: %s  (ctrl+g to toggle)", mode))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) statusView() string {
	if m.sending {
		return m.spin.View() + m.styles.Subtle.Render("AI is thinking...")
	}
	if m.status != "" {
		return m.status
	}
	if m.est != nil {
		text := m.input.Value()
		if text != "" {
			return m.styles.Subtle.Render(fmt.Sprintf("~%d tokens", m.est.Count(text)))
		}
	}
	return ""
}

func (m *Model) helpView() string {
	parts := []string{"enter send", "ctrl+t settings", "ctrl+l clear"}
	if m.namingFile {
		parts = []string{"enter confirm", "esc cancel"}
	} else if m.enhanced && len(m.blocks) > 0 {
		hint := "ctrl+y apply"
		if len(m.blocks) > 1 {
			hint = fmt.Sprintf("ctrl+y apply [%d/%d]", m.blockCursor+1, len(m.blocks))
			parts = append(parts, "tab next block")
		}
		parts = append([]string{hint}, parts...)
	}
	parts = append(parts, "ctrl+c quit")
	return m.styles.Help.Render(strings.Join(parts, " · "))
}

// refreshViewport re-renders the message log into the viewport and scrolls
// to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, msg := range m.svc.Log().Messages() {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

func (m *Model) renderMessage(msg types.Message) string {
	var b strings.Builder
	switch msg.Role {
	case types.RoleUser:
		b.WriteString(m.styles.User.Render("You"))
	default:
		b.WriteString(m.styles.Assistant.Render("Assistant"))
	}
	b.WriteString("  ")
	b.WriteString(m.styles.Subtle.Render(msg.Timestamp.Format("15:04")))
	b.WriteString("\n")
	b.WriteString(msg.Content)
	b.WriteString("\n")

	for _, block := range msg.CodeBlocks {
		head := block.Language
		if block.CanApply {
			head += " [applicable]"
		}
		b.WriteString(m.styles.CodeHead.Render(head))
		b.WriteString("\n")
		for _, line := range strings.Split(block.Code, "\n") {
			b.WriteString("  ")
			b.WriteString(m.styles.Code.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
