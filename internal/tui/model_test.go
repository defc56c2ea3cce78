package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bridgecal/internal/core"
	"bridgecal/internal/schedule"
	"bridgecal/internal/state"
	"bridgecal/internal/types"
)

func newTestModel(t *testing.T) (*Model, *state.Bridge) {
	t.Helper()
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	bridge := state.New(nil)
	m := NewModel(Options{
		Bridge:      bridge,
		Clock:       core.FixedClock{At: time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)},
		MyZone:      seoul,
		PartnerZone: ny,
	})
	m.width = 100
	m.height = 40
	return m, bridge
}

func TestTimelineViewShowsEventAndClocks(t *testing.T) {
	m, bridge := newTestModel(t)

	seoul := m.myZone
	ev, err := schedule.NewEvent("Work", "09:00", "17:00", m.viewDate, seoul, types.EventWork, types.OwnerMe)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	bridge.AddEvent(ev)

	out := m.View()
	if !strings.Contains(out, "Work") {
		t.Errorf("view missing event title:\n%s", out)
	}
	// 03:00 UTC is 12:00 in Seoul and 22:00 the previous evening in NY.
	if !strings.Contains(out, "12:00") {
		t.Errorf("view missing local clock:\n%s", out)
	}
	if !strings.Contains(out, "22:00") {
		t.Errorf("view missing partner clock:\n%s", out)
	}
}

func TestTimelineViewShowsFeelingsAndHighlight(t *testing.T) {
	m, bridge := newTestModel(t)

	bridge.SetNames(types.Names{Me: "jun", Partner: "amy"})
	bridge.AddFeeling(types.DailyFeeling{
		ID:      "feel-1",
		Owner:   types.OwnerMe,
		Text:    "missing you",
		Emoji:   "💙",
		DateKey: "2024-01-15",
	})
	bridge.SetHighlight(types.DailyHighlight{
		DateKey: "2024-01-15",
		Title:   "call night",
		Color:   "#ff6b9d",
	})

	out := m.View()
	if !strings.Contains(out, "jun: missing you") {
		t.Errorf("view missing feeling:\n%s", out)
	}
	if !strings.Contains(out, "call night") {
		t.Errorf("view missing highlight:\n%s", out)
	}
}

func TestTabSwitchesPerspective(t *testing.T) {
	m, _ := newTestModel(t)

	if m.activeOwner != types.OwnerMe {
		t.Fatalf("initial owner = %s", m.activeOwner)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeOwner != types.OwnerPartner {
		t.Errorf("owner after tab = %s, want partner", m.activeOwner)
	}
}

func TestAddEventFormRoundTrip(t *testing.T) {
	m, bridge := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.mode != modeAddEvent {
		t.Fatalf("mode = %d, want add form", m.mode)
	}

	m.form.inputs[0].SetValue("Dinner")
	m.form.inputs[1].SetValue("19:00")
	m.form.inputs[2].SetValue("20:30")
	m.form.inputs[3].SetValue("date")
	m.form.focus = len(m.form.inputs) - 1
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeTimeline {
		t.Fatalf("form did not close, err = %q", m.form.err)
	}
	events := bridge.EventsFor(types.OwnerMe)
	if len(events) != 1 || events[0].Title != "Dinner" || events[0].DurationMinutes != 90 {
		t.Errorf("events = %+v", events)
	}
}

func TestHighlightFormRejectsBadColor(t *testing.T) {
	m, bridge := newTestModel(t)

	m.openHighlightForm()
	m.form.inputs[0].SetValue("picnic")
	m.form.inputs[1].SetValue("pinkish")
	m.form.focus = 1
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeHighlight {
		t.Fatal("form closed despite invalid color")
	}
	if m.form.err == "" {
		t.Error("expected a validation error")
	}
	if _, ok := bridge.Highlight("2024-01-15"); ok {
		t.Error("highlight stored despite invalid color")
	}
}

func TestMonthViewMarksSelection(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if m.mode != modeMonth {
		t.Fatalf("mode = %d, want month", m.mode)
	}
	out := m.View()
	if !strings.Contains(out, "January 2024") {
		t.Errorf("month header missing:\n%s", out)
	}
}

func TestDeleteSelectedEvent(t *testing.T) {
	m, bridge := newTestModel(t)

	ev, err := schedule.NewEvent("Nap", "12:00", "13:00", m.viewDate, m.myZone, types.EventSleep, types.OwnerMe)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	bridge.AddEvent(ev)

	m.cursor = 24 // 12:00 local
	m.deleteSelectedEvent()
	if got := bridge.EventsFor(types.OwnerMe); len(got) != 0 {
		t.Errorf("events after delete = %+v", got)
	}
}
