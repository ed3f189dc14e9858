package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/octobadge/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.view == ViewChat {
		body = m.renderChat()
	} else {
		body = m.renderBoard()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.renderHelp(),
	)
}

func (m Model) renderHeader() string {
	tabs := []string{"Board", "Chat"}
	for i, tab := range tabs {
		if View(i) == m.view {
			tabs[i] = m.theme.Selected.Render(" " + tab + " ")
		} else {
			tabs[i] = m.theme.Muted.Render(" " + tab + " ")
		}
	}
	title := m.theme.Title.Render("octobadge")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, " "))
}

func (m Model) renderBoard() string {
	var sb strings.Builder

	if profile, ok := m.session.Profile(); ok {
		stats := m.session.Stats()
		name := ""
		if profile.Name != "" {
			name = " (" + profile.Name + ")"
		}
		sb.WriteString(m.theme.Bold.Render("@"+profile.Login) + name)
		sb.WriteString(m.theme.Muted.Render(fmt.Sprintf("  ★ %d stars · %d merged PRs · joined %s",
			stats.TotalStars, stats.MergedPRs, profile.CreatedAt.Format("Jan 2006"))))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.theme.Muted.Render("Not connected. Press c to connect a GitHub user."))
		sb.WriteString("\n")
	}

	switch {
	case m.editingLogin:
		sb.WriteString("Connect: " + m.input.View() + "\n")
	case m.connecting:
		sb.WriteString(m.spinner.View() + " " + m.theme.StatusPending.Render("Fetching "+m.login+"...") + "\n")
	}

	if errMsg := m.session.Err(); errMsg != "" {
		sb.WriteString(m.theme.StatusError.Render(errMsg) + "\n")
	}

	summary := m.session.Summary()
	sb.WriteString(fmt.Sprintf("\nCollection %d/%d · Achievements %d/%d\n",
		summary.Owned, summary.Total, summary.AchievementsOwned, summary.AchievementsTotal))
	if summary.NextGoal != nil {
		sb.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("Next goal: %s %s", summary.NextGoal.Icon, summary.NextGoal.Name)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	badges := m.session.Badges()
	for i, b := range badges {
		row := m.renderBadgeRow(b)
		if i == m.cursor {
			row = m.theme.Selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		sb.WriteString(row + "\n")
	}

	if m.cursor >= 0 && m.cursor < len(badges) {
		sb.WriteString("\n" + m.renderBadgeDetail(badges[m.cursor]))
	}

	return sb.String()
}

func (m Model) renderBadgeRow(b model.EvaluatedBadge) string {
	check := "[ ]"
	if b.Owned {
		check = "[x]"
	}

	parts := []string{check, b.Icon, b.Name, m.theme.Rarity(b.Rarity)}
	if b.Rarity >= model.RarityEpic {
		parts = append(parts, "★")
	}
	if b.Retired {
		parts = append(parts, m.theme.Muted.Render("retired"))
	}
	if tier, ok := b.HighestTier(); ok {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(tier.Color)).Render(tier.Name))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderBadgeDetail(b model.EvaluatedBadge) string {
	var sb strings.Builder
	sb.WriteString(m.theme.Normal.Render(b.Description) + "\n")
	sb.WriteString(m.theme.Muted.Render("How to earn: "+b.HowToEarn) + "\n")
	for _, tier := range b.Tiers {
		mark := "✗"
		if tier.Unlocked {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %s (%d/%d)\n", mark, tier.Name, tier.Requirement, tier.Progress, tier.Threshold))
	}
	return m.theme.RoundedBox.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) renderChat() string {
	prompt := fmt.Sprintf("[%s] ", m.orchestrator.Mode())
	input := prompt + m.input.View()
	if m.submitting {
		input = m.spinner.View() + " " + m.theme.StatusPending.Render("Waiting for the assistant...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), input)
}

func (m Model) renderTranscript() string {
	var sb strings.Builder
	for _, msg := range m.transcript {
		if msg.Role == model.RoleUser {
			sb.WriteString(m.theme.UserLabel.Render("You") + "\n")
			sb.WriteString(m.theme.Normal.Render(msg.Text) + "\n\n")
			continue
		}

		sb.WriteString(m.theme.AssistantLabel.Render("Assistant") + "\n")
		if msg.Thinking {
			sb.WriteString(m.spinner.View() + " " + msg.Text + "\n")
			sb.WriteString(m.theme.StatusPending.Render(ThinkingMarker) + "\n\n")
			continue
		}

		sb.WriteString(m.renderMarkdown(msg.Text))
		for _, img := range msg.Images {
			sb.WriteString(m.theme.Muted.Render(describeImage(img)) + "\n")
		}
		if len(msg.Sources) > 0 {
			sb.WriteString(m.theme.Bold.Render("Sources") + "\n")
			for _, src := range msg.Sources {
				title := src.Title
				if title == "" {
					title = src.URI
				}
				sb.WriteString(m.theme.Muted.Render(fmt.Sprintf("• %s  %s", title, src.URI)) + "\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderMarkdown renders assistant text, falling back to plain text when
// glamour fails.
func (m Model) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content + "\n"
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content + "\n"
}

// describeImage summarizes an image reference; data URIs are too long to
// print.
func describeImage(ref string) string {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return "Concept image: " + ref
	}
	header, payload, _ := strings.Cut(rest, ",")
	mime := strings.TrimSuffix(header, ";base64")
	size := len(payload) * 3 / 4
	return fmt.Sprintf("Concept image generated (%s, %d KB). Save it with: octobadge ask --mode creative --image-dir DIR", mime, size/1024)
}

func (m Model) renderStatus() string {
	var parts []string
	if m.orchestrator != nil {
		parts = append(parts, "mode: "+string(m.orchestrator.Mode()))
	}
	parts = append(parts, "theme: "+m.theme.Name)
	line := m.theme.Muted.Render(strings.Join(parts, " · "))
	if m.status != "" {
		line += "  " + m.theme.Normal.Render(m.status)
	}
	return line
}

func (m Model) renderHelp() string {
	if m.view == ViewChat {
		return m.help.ShortHelpView(m.keymap.ChatHelp())
	}
	return m.help.ShortHelpView(m.keymap.BoardHelp())
}
