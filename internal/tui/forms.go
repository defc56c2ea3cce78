package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"

	"bridgecal/internal/core"
	"bridgecal/internal/schedule"
	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

type formState struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(title string, fields ...formField) formState {
	f := formState{title: title}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.SetValue(field.value)
		in.CharLimit = 120
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

type formField struct {
	label       string
	placeholder string
	value       string
}

func (m *Model) openAddEventForm() {
	zone := m.activeZone()
	slots := tz.HalfHourSlots(m.viewDate, zone)
	start := ""
	if m.cursor < len(slots) {
		start = tz.FormatInZone(slots[m.cursor], zone)
	}
	m.form = newForm("add event",
		formField{label: "title", placeholder: "what is it"},
		formField{label: "start", placeholder: "HH:MM", value: start},
		formField{label: "end", placeholder: "HH:MM"},
		formField{label: "type", placeholder: strings.Join(typeNames(), "/"), value: string(types.EventOther)},
	)
	m.mode = modeAddEvent
}

func (m *Model) openFeelingForm() {
	m.form = newForm("share a feeling",
		formField{label: "emoji", placeholder: "💙"},
		formField{label: "text", placeholder: "how today feels"},
	)
	m.mode = modeFeeling
}

func (m *Model) openHighlightForm() {
	key := tz.DateKey(m.viewDate, m.activeZone())
	existing, _ := m.bridge.Highlight(key)
	m.form = newForm("day highlight",
		formField{label: "title", placeholder: "anniversary dinner", value: existing.Title},
		formField{label: "color", placeholder: "#ff6b9d", value: existing.Color},
	)
	m.mode = modeHighlight
}

func (m *Model) openNamesForm() {
	names := m.bridge.Names()
	m.form = newForm("display names",
		formField{label: "me", value: names.Me},
		formField{label: "partner", value: names.Partner},
	)
	m.mode = modeNames
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTimeline
		return m, nil

	case "tab", "down":
		m.focusField((m.form.focus + 1) % len(m.form.inputs))
		return m, nil

	case "shift+tab", "up":
		m.focusField((m.form.focus - 1 + len(m.form.inputs)) % len(m.form.inputs))
		return m, nil

	case "enter":
		if m.form.focus < len(m.form.inputs)-1 {
			m.focusField(m.form.focus + 1)
			return m, nil
		}
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) {
	m.form.inputs[m.form.focus].Blur()
	m.form.focus = i
	m.form.inputs[i].Focus()
}

func (m *Model) submitForm() {
	values := make([]string, len(m.form.inputs))
	for i, in := range m.form.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}

	switch m.mode {
	case modeAddEvent:
		typ, err := types.ParseEventType(values[3])
		if err != nil {
			m.form.err = err.Error()
			return
		}
		ev, err := schedule.NewEvent(values[0], values[1], values[2], m.viewDate, m.activeZone(), typ, m.activeOwner)
		if err != nil {
			m.form.err = err.Error()
			return
		}
		m.bridge.AddEvent(ev)
		m.status = "added " + ev.Title

	case modeFeeling:
		if values[1] == "" {
			m.form.err = "feeling text is required"
			return
		}
		m.bridge.AddFeeling(types.DailyFeeling{
			ID:        core.NewID("feel"),
			Owner:     m.activeOwner,
			Emoji:     values[0],
			Text:      values[1],
			Timestamp: m.clock.Now().UTC(),
			DateKey:   tz.DateKey(m.viewDate, m.activeZone()),
		})
		m.status = "feeling shared"

	case modeHighlight:
		color := values[1]
		if color != "" {
			if _, err := colorful.Hex(color); err != nil {
				m.form.err = "color must be a hex value like #ff6b9d"
				return
			}
		}
		m.bridge.SetHighlight(types.DailyHighlight{
			DateKey: tz.DateKey(m.viewDate, m.activeZone()),
			Title:   values[0],
			Color:   color,
		})
		m.status = "highlight saved"

	case modeNames:
		m.bridge.SetNames(types.Names{Me: values[0], Partner: values[1]})
		m.status = "names updated"
	}

	m.mode = modeTimeline
}

func typeNames() []string {
	out := make([]string, len(types.EventTypes))
	for i, t := range types.EventTypes {
		out[i] = string(t)
	}
	return out
}
