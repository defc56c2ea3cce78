// Package schedule maps calendar events onto the half-hour slot timeline
// and builds new events from wall-clock input in a chosen zone.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bridgecal/internal/core"
	"bridgecal/internal/types"
	"bridgecal/internal/tz"
)

// EventInSlot returns the first event (stable input order) whose interval
// overlaps the half-open slot [slotStart, slotStart+30m). An event ending
// exactly at slotStart does not match. When several events overlap a slot
// the earliest-indexed one wins; no priority ordering is defined.
func EventInSlot(events []types.CalendarEvent, slotStart time.Time) *types.CalendarEvent {
	slotEnd := slotStart.Add(tz.SlotDuration)
	for i := range events {
		e := &events[i]
		if e.StartTime.Before(slotEnd) && slotStart.Before(e.End()) {
			return e
		}
	}
	return nil
}

// NewEvent interprets startHHMM/endHHMM as wall-clock times in zone on the
// calendar day containing viewDate (as observed in zone) and returns a new
// event with a fresh id. An end at or before the start rolls over to the
// next day, so "23:00"–"00:30" yields a 90-minute overnight event.
func NewEvent(title, startHHMM, endHHMM string, viewDate time.Time, zone *time.Location, typ types.EventType, owner types.Owner) (types.CalendarEvent, error) {
	sh, sm, err := parseClock(startHHMM)
	if err != nil {
		return types.CalendarEvent{}, fmt.Errorf("start time: %w", err)
	}
	eh, em, err := parseClock(endHHMM)
	if err != nil {
		return types.CalendarEvent{}, fmt.Errorf("end time: %w", err)
	}

	y, m, d := viewDate.In(zone).Date()
	start := time.Date(y, m, d, sh, sm, 0, 0, zone).UTC()
	end := time.Date(y, m, d, eh, em, 0, 0, zone).UTC()
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	duration := int(end.Sub(start).Minutes())
	if duration <= 0 {
		return types.CalendarEvent{}, fmt.Errorf("event duration must be positive")
	}

	return types.CalendarEvent{
		ID:              core.NewID("evt"),
		Title:           title,
		StartTime:       start,
		DurationMinutes: duration,
		Type:            typ,
		Owner:           owner,
	}, nil
}

// DeleteEvent returns events without the given id. Deleting an unknown id
// is a no-op.
func DeleteEvent(events []types.CalendarEvent, id string) []types.CalendarEvent {
	out := make([]types.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns the events belonging to owner, preserving input order.
func Filter(events []types.CalendarEvent, owner types.Owner) []types.CalendarEvent {
	out := make([]types.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out
}

// NowOffset converts now to slot units from local midnight in zone: the
// indicator position is NowOffset * slotWidth. Refresh at least once per
// minute.
func NowOffset(now time.Time, zone *time.Location) float64 {
	local := now.In(zone)
	return float64(local.Hour()*60+local.Minute()) / 30
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
