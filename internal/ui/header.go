package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/paddock/ergast"
)

// renderHeader renders the status bar: logo, query and fetch status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := []string{
		styles.Logo.Background(bg).Render("paddock"),
		styles.Text.Background(bg).Render(m.current().String()),
	}

	snap := m.snapshot
	switch {
	case m.loading:
		parts = append(parts, styles.WarningText.Background(bg).Render("fetching..."))
	case snap.LastError != nil:
		msg := classifyError(snap.LastError)
		if snap.IsOffline() {
			msg = "OFFLINE " + msg
		}
		parts = append(parts, styles.DangerText.Background(bg).Render(msg))
	case snap.HasTable:
		parts = append(parts, styles.SuccessText.Background(bg).Render(fmt.Sprintf("%d rows", snap.Table.Len())))
	}
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Background(bg).Render(snap.LastUpdated.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// classifyError turns a client error into a short status message.
func classifyError(err error) string {
	switch {
	case errors.Is(err, ergast.ErrInvalidArgument):
		return "INVALID " + strings.TrimPrefix(err.Error(), ergast.ErrInvalidArgument.Error()+": ")
	case errors.Is(err, ergast.ErrConnection):
		return "UNREACHABLE"
	case errors.Is(err, ergast.ErrParse):
		return "BAD RESPONSE"
	}
	return err.Error()
}

// renderTabs renders the view selector.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		if i == m.viewIdx {
			tabs[i] = styles.ActiveTab.Render(string(v))
		} else {
			tabs[i] = styles.Tab.Render(string(v))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(row) <= m.width || m.width == 0 {
		return row
	}
	// Too narrow for every tab: show a window around the selection.
	start := m.viewIdx
	width := lipgloss.Width(tabs[start])
	end := start + 1
	for end < len(tabs) && width+lipgloss.Width(tabs[end]) <= m.width {
		width += lipgloss.Width(tabs[end])
		end++
	}
	for start > 0 && width+lipgloss.Width(tabs[start-1]) <= m.width {
		start--
		width += lipgloss.Width(tabs[start])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs[start:end]...)
}

// renderPodium shows the top three of a ranked table.
func (m Model) renderPodium() string {
	if !m.snapshot.HasTable {
		return ""
	}
	styles := m.theme.Styles()
	names := podium(m.snapshot.Table)
	parts := make([]string, 0, len(names))
	for i, name := range names {
		pos := fmt.Sprint(i + 1)
		badge, ok := styles.PodiumStyle(pos)
		if !ok {
			continue
		}
		parts = append(parts, badge.Render("P"+pos)+" "+styles.Text.Render(name))
	}
	return strings.Join(parts, "   ")
}

// renderFooter shows the edit line while editing, otherwise key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.editing {
		line := m.input.View()
		if m.inputErr != "" {
			line += "  " + styles.DangerText.Render(m.inputErr)
		}
		return line
	}
	return m.help.View(m.keys)
}
