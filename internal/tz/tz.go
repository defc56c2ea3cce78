// Package tz holds the timezone arithmetic for the shared timeline: local
// day boundaries, half-hour slot sequences, and zone-local formatting. All
// functions are pure; callers supply the reference instant.
package tz

import (
	"time"
	_ "time/tzdata" // embed zone rules so offsets are exact without a system zoneinfo
)

const (
	// SlotCount is the number of boundaries covering one local day in
	// half-hour steps: 00:00 through 24:00 inclusive.
	SlotCount = 49
	// SlotDuration is the width of one timeline slot.
	SlotDuration = 30 * time.Minute

	layoutClock = "15:04"
	layoutKey   = "2006-01-02"
)

// CurrentLocalTime formats now as zone-local 24-hour "HH:MM".
func CurrentLocalTime(now time.Time, zone *time.Location) string {
	return now.In(zone).Format(layoutClock)
}

// OffsetMinutes is the zone's UTC offset, in minutes, at the given instant.
// The offset varies across DST transitions and must be recomputed per
// instant; never cache it.
func OffsetMinutes(at time.Time, zone *time.Location) int {
	_, secs := at.In(zone).Zone()
	return secs / 60
}

// LocalDayStartUTC returns the UTC instant of 00:00 local time, in zone, of
// the calendar day containing ref as observed in zone.
func LocalDayStartUTC(ref time.Time, zone *time.Location) time.Time {
	y, m, d := ref.In(zone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, zone).UTC()
}

// HalfHourSlots returns the 49 slot boundaries for the local day containing
// ref in zone: local midnight plus 30m increments through the closing 24:00
// boundary. The boundaries are absolute instants spaced exactly 30 minutes
// apart regardless of DST; labels are derived per instant via SlotLabel.
func HalfHourSlots(ref time.Time, zone *time.Location) []time.Time {
	start := LocalDayStartUTC(ref, zone)
	slots := make([]time.Time, SlotCount)
	for i := range slots {
		slots[i] = start.Add(time.Duration(i) * SlotDuration)
	}
	return slots
}

// SlotLabel renders the wall-clock label for slot i. The closing boundary is
// labeled "24:00" rather than the zone-formatted "00:00" of the next day; on
// a DST day every other label reflects the zone's true local time at that
// absolute instant.
func SlotLabel(i int, slot time.Time, zone *time.Location) string {
	if i == SlotCount-1 {
		return "24:00"
	}
	return slot.In(zone).Format(layoutClock)
}

// DateKey is the "YYYY-MM-DD" identifier of the calendar day containing t as
// observed in zone. Highlights and feelings are keyed by it.
func DateKey(t time.Time, zone *time.Location) string {
	return t.In(zone).Format(layoutKey)
}

// SameDay reports whether a and b fall on the same calendar day in zone.
func SameDay(a, b time.Time, zone *time.Location) bool {
	ay, am, ad := a.In(zone).Date()
	by, bm, bd := b.In(zone).Date()
	return ay == by && am == bm && ad == bd
}

// Abbreviation returns the zone's short name at the instant (KST, EST, EDT).
func Abbreviation(now time.Time, zone *time.Location) string {
	name, _ := now.In(zone).Zone()
	return name
}

// FormatInZone renders t as zone-local "HH:MM".
func FormatInZone(t time.Time, zone *time.Location) string {
	return t.In(zone).Format(layoutClock)
}

// FormatFullDate renders the full human date of t in zone.
func FormatFullDate(t time.Time, zone *time.Location) string {
	return t.In(zone).Format("Monday, January 2, 2006")
}

// DaysInMonth returns the day count of the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first of the month.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}
