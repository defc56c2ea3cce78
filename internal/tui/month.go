package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bridgecal/internal/tz"
)

// viewMonth renders the month picker: a weekday grid with the selected day
// inverted and highlight days starred.
func (m *Model) viewMonth() string {
	zone := m.activeZone()
	sel := m.monthSel.In(zone)
	year, month := sel.Year(), sel.Month()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(headerColor).Bold(true).Render(
		fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(labelColor).Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	days := tz.DaysInMonth(year, month)
	offset := int(tz.FirstWeekday(year, month))

	var cells []string
	for i := 0; i < offset; i++ {
		cells = append(cells, "   ")
	}
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%3d", day)
		key := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		if h, ok := m.bridge.Highlight(key); ok && h.Title != "" {
			cell = lipgloss.NewStyle().Foreground(headerColor).Render(cell)
		}
		if day == sel.Day() {
			cell = lipgloss.NewStyle().Reverse(true).Render(fmt.Sprintf("%3d", day))
		}
		cells = append(cells, cell)
	}

	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		b.WriteString(strings.Join(cells[i:end], " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(statusColor).Render(
		"arrows:day  [/]:month  enter:open  esc:back"))
	return b.String()
}
