package tui

import (
	"github.com/charmbracelet/lipgloss"

	"bridgecal/internal/types"
)

var (
	headerColor = lipgloss.Color("205")
	dimColor    = lipgloss.Color("240")
	labelColor  = lipgloss.Color("245")
	statusColor = lipgloss.Color("241")
	nowColor    = lipgloss.Color("203")

	syncColors = map[string]lipgloss.Color{
		"synced":  lipgloss.Color("42"),
		"pending": lipgloss.Color("214"),
		"error":   lipgloss.Color("196"),
	}

	eventColors = map[types.EventType]lipgloss.Color{
		types.EventWork:    lipgloss.Color("33"),
		types.EventSleep:   lipgloss.Color("99"),
		types.EventLeisure: lipgloss.Color("42"),
		types.EventDate:    lipgloss.Color("205"),
		types.EventStudy:   lipgloss.Color("214"),
		types.EventOther:   lipgloss.Color("245"),
	}
)

func eventStyle(t types.EventType) lipgloss.Style {
	c, ok := eventColors[t]
	if !ok {
		c = eventColors[types.EventOther]
	}
	return lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("231"))
}

func syncDot(status string) string {
	c, ok := syncColors[status]
	if !ok {
		c = dimColor
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}
