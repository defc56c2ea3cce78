package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bridgecal/internal/schedule"
	"bridgecal/internal/tz"
	"bridgecal/internal/types"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = m.clock.Now()
		return m, tickCmd()

	case cacheChangedMsg:
		m.bridge.Reload()
		return m, nil

	case pullMsg:
		m.notifyPartnerFeelings(msg.result.NewFeelings)
		if n := len(msg.result.NewEvents) + len(msg.result.NewFeelings); n > 0 {
			m.status = fmt.Sprintf("pulled %d update(s)", n)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeMonth:
			return m.updateMonth(msg)
		case modeAddEvent, modeFeeling, modeHighlight, modeNames:
			return m.updateForm(msg)
		}
		return m.updateTimeline(msg)
	}
	return m, nil
}

func (m *Model) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.activeOwner = m.activeOwner.Other()
		m.clampCursor()

	case "left":
		m.viewDate = m.viewDate.AddDate(0, 0, -1)

	case "right":
		m.viewDate = m.viewDate.AddDate(0, 0, 1)

	case "t":
		m.viewDate = m.now
		m.cursor = currentSlotIndex(m.now, m.activeZone())

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < tz.SlotCount-2 {
			m.cursor++
		}

	case "g":
		m.mode = modeMonth
		m.monthSel = m.viewDate

	case "a":
		m.openAddEventForm()

	case "d":
		m.deleteSelectedEvent()

	case "f":
		m.openFeelingForm()

	case "h":
		m.openHighlightForm()

	case "n":
		m.openNamesForm()

	case "s":
		return m, m.manualSyncCmd()
	}
	return m, nil
}

func (m *Model) updateMonth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "g", "q":
		m.mode = modeTimeline

	case "left":
		m.monthSel = m.monthSel.AddDate(0, 0, -1)
	case "right":
		m.monthSel = m.monthSel.AddDate(0, 0, 1)
	case "up", "k":
		m.monthSel = m.monthSel.AddDate(0, 0, -7)
	case "down", "j":
		m.monthSel = m.monthSel.AddDate(0, 0, 7)
	case "[":
		m.monthSel = m.monthSel.AddDate(0, -1, 0)
	case "]":
		m.monthSel = m.monthSel.AddDate(0, 1, 0)

	case "enter":
		m.viewDate = m.monthSel
		m.mode = modeTimeline
	}
	return m, nil
}

// deleteSelectedEvent removes the active owner's event covering the
// selected slot, if any.
func (m *Model) deleteSelectedEvent() {
	zone := m.activeZone()
	slots := tz.HalfHourSlots(m.viewDate, zone)
	if m.cursor >= len(slots) {
		return
	}
	events := m.bridge.EventsFor(m.activeOwner)
	ev := schedule.EventInSlot(events, slots[m.cursor])
	if ev == nil {
		m.status = "no event in slot"
		return
	}
	m.bridge.DeleteEvent(ev.ID)
	m.status = "deleted " + ev.Title
}

func (m *Model) manualSyncCmd() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = engine.Push(ctx)
		result, err := engine.PullOnce(ctx)
		if err != nil {
			return pullMsg{}
		}
		return pullMsg{result: result}
	}
}

func (m *Model) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > tz.SlotCount-2 {
		m.cursor = tz.SlotCount - 2
	}
}

// currentSlotIndex is the slot row containing now on the zone-local day.
func currentSlotIndex(now time.Time, zone *time.Location) int {
	if zone == nil {
		return 0
	}
	local := now.In(zone)
	i := (local.Hour()*60 + local.Minute()) / 30
	if i > tz.SlotCount-2 {
		i = tz.SlotCount - 2
	}
	return i
}

func (m *Model) notifyPartnerFeelings(feelings []types.DailyFeeling) {
	for _, f := range feelings {
		if f.Owner != types.OwnerPartner {
			continue
		}
		notifyFeeling(m.bridge.Names().For(f.Owner), f)
	}
}
