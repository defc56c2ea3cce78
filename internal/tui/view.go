package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"bridgecal/internal/schedule"
	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

func (m *Model) View() string {
	switch m.mode {
	case modeMonth:
		return m.viewMonth()
	case modeAddEvent, modeFeeling, modeHighlight, modeNames:
		return m.viewForm()
	}
	return m.viewTimeline()
}

func (m *Model) viewTimeline() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if banner := m.renderHighlight(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString(m.renderRows())
	if feelings := m.renderFeelings(); feelings != "" {
		b.WriteString("\n")
		b.WriteString(feelings)
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m *Model) renderHeader() string {
	names := m.bridge.Names()
	zone := m.activeZone()
	other := m.otherZone()

	active := names.For(m.activeOwner)
	inactive := names.For(m.activeOwner.Other())

	left := fmt.Sprintf("%s %s %s", active, tz.CurrentLocalTime(m.now, zone), tz.Abbreviation(m.now, zone))
	right := fmt.Sprintf("%s %s %s", inactive, tz.CurrentLocalTime(m.now, other), tz.Abbreviation(m.now, other))
	date := tz.FormatFullDate(m.viewDate, zone)

	title := lipgloss.NewStyle().Foreground(headerColor).Bold(true).Render(left) +
		lipgloss.NewStyle().Foreground(dimColor).Render("  ·  ") +
		lipgloss.NewStyle().Foreground(labelColor).Render(right)
	return title + "\n" + lipgloss.NewStyle().Foreground(labelColor).Render(date)
}

func (m *Model) renderHighlight() string {
	key := tz.DateKey(m.viewDate, m.activeZone())
	h, ok := m.bridge.Highlight(key)
	if !ok || h.Title == "" {
		return ""
	}
	style := lipgloss.NewStyle().Bold(true)
	if h.Color != "" {
		style = style.Foreground(lipgloss.Color(h.Color))
	}
	return style.Render("★ " + h.Title)
}

const cellWidth = 22

func (m *Model) renderRows() string {
	zone := m.activeZone()
	other := m.otherZone()
	slots := tz.HalfHourSlots(m.viewDate, zone)

	activeEvents := m.bridge.EventsFor(m.activeOwner)
	otherEvents := m.bridge.EventsFor(m.activeOwner.Other())

	visible := m.visibleRows()
	m.followCursor(visible)

	end := m.scroll + visible
	if end > tz.SlotCount-1 {
		end = tz.SlotCount - 1
	}

	nowIdx := -1
	if tz.SameDay(m.now, m.viewDate, zone) {
		nowIdx = currentSlotIndex(m.now, zone)
	}

	var rows []string
	for i := m.scroll; i < end; i++ {
		slot := slots[i]

		label := tz.SlotLabel(i, slot, zone)
		otherLabel := tz.FormatInZone(slot, other)

		marker := " "
		if i == m.cursor {
			marker = "▸"
		}

		labelStyle := lipgloss.NewStyle().Foreground(labelColor)
		if i == nowIdx {
			labelStyle = lipgloss.NewStyle().Foreground(nowColor).Bold(true)
		}

		rows = append(rows, fmt.Sprintf("%s %s %s %s %s",
			marker,
			labelStyle.Render(label),
			renderCell(activeEvents, slots, i),
			renderCell(otherEvents, slots, i),
			lipgloss.NewStyle().Foreground(dimColor).Render(otherLabel),
		))
	}
	return strings.Join(rows, "\n")
}

// renderCell draws one timeline cell: the event title on the first slot it
// covers, a solid band on continuation slots, an empty rule otherwise.
func renderCell(events []types.CalendarEvent, slots []time.Time, i int) string {
	ev := schedule.EventInSlot(events, slots[i])
	if ev == nil {
		return lipgloss.NewStyle().Foreground(dimColor).Render(strings.Repeat("·", cellWidth))
	}

	first := i == 0 || schedule.EventInSlot(events, slots[i-1]) == nil ||
		schedule.EventInSlot(events, slots[i-1]).ID != ev.ID
	text := strings.Repeat("▆", cellWidth)
	if first {
		text = padCell(" "+ev.Title, cellWidth)
	}
	return eventStyle(ev.Type).Render(text)
}

func padCell(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}

func (m *Model) renderFeelings() string {
	zone := m.activeZone()
	key := tz.DateKey(m.viewDate, zone)
	names := m.bridge.Names()

	var lines []string
	for _, owner := range []types.Owner{types.OwnerMe, types.OwnerPartner} {
		for _, f := range m.bridge.FeelingsFor(key, owner) {
			entry := fmt.Sprintf("%s %s: %s", f.Emoji, names.For(owner), f.Text)
			lines = append(lines, lipgloss.NewStyle().Foreground(labelColor).Render(entry))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusLine() string {
	status := "synced"
	if m.engine != nil {
		status = string(m.engine.Status())
	}
	parts := []string{
		syncDot(status) + " " + status,
		"tab:switch  ←/→:day  g:month  a:add  d:del  f:feel  h:highlight  n:names  s:sync  q:quit",
	}
	if m.status != "" {
		parts = append([]string{m.status}, parts...)
	}
	return lipgloss.NewStyle().Foreground(statusColor).Render(strings.Join(parts, "  ·  "))
}

func (m *Model) viewForm() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(headerColor).Bold(true).Render(m.form.title))
	b.WriteString("\n\n")
	for i, in := range m.form.inputs {
		b.WriteString(lipgloss.NewStyle().Foreground(labelColor).Render(m.form.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.form.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(nowColor).Render(m.form.err))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(statusColor).Render("enter:next/save  esc:cancel"))
	return b.String()
}

// visibleRows is how many timeline rows fit under the chrome.
func (m *Model) visibleRows() int {
	v := m.height - 8
	if v < 8 {
		v = 8
	}
	if v > tz.SlotCount-1 {
		v = tz.SlotCount - 1
	}
	return v
}

func (m *Model) followCursor(visible int) {
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
