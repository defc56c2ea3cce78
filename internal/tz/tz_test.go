package tz

import (
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	zone, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load zone %s: %v", name, err)
	}
	return zone
}

func TestHalfHourSlotsShape(t *testing.T) {
	zones := []string{"Asia/Seoul", "America/New_York", "UTC", "Australia/Adelaide"}
	refs := []time.Time{
		time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 23, 59, 0, 0, time.UTC),
	}
	for _, name := range zones {
		zone := mustZone(t, name)
		for _, ref := range refs {
			slots := HalfHourSlots(ref, zone)
			if len(slots) != SlotCount {
				t.Fatalf("%s: got %d slots, want %d", name, len(slots), SlotCount)
			}
			for i := 1; i < len(slots); i++ {
				if got := slots[i].Sub(slots[i-1]); got != SlotDuration {
					t.Fatalf("%s: slot %d spacing %v, want %v", name, i, got, SlotDuration)
				}
			}
			if !slots[0].Equal(LocalDayStartUTC(ref, zone)) {
				t.Fatalf("%s: slot 0 is not local midnight", name)
			}
			if !slots[48].Equal(slots[0].Add(24 * time.Hour)) {
				t.Fatalf("%s: slot 48 is not midnight +24h", name)
			}
		}
	}
}

func TestLocalDayStartUTC(t *testing.T) {
	seoul := mustZone(t, "Asia/Seoul")
	// 2024-01-15 03:00 UTC is already Jan 15 noon in Seoul; local midnight
	// was 15:00 UTC the previous day.
	ref := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	want := time.Date(2024, 1, 14, 15, 0, 0, 0, time.UTC)
	if got := LocalDayStartUTC(ref, seoul); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	ny := mustZone(t, "America/New_York")
	// 2024-01-15 03:00 UTC is still Jan 14 in New York (UTC-5).
	want = time.Date(2024, 1, 14, 5, 0, 0, 0, time.UTC)
	if got := LocalDayStartUTC(ref, ny); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOffsetMinutesAcrossDST(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	if got := OffsetMinutes(winter, ny); got != -5*60 {
		t.Fatalf("winter offset %d, want %d", got, -300)
	}
	if got := OffsetMinutes(summer, ny); got != -4*60 {
		t.Fatalf("summer offset %d, want %d", got, -240)
	}
	seoul := mustZone(t, "Asia/Seoul")
	if got := OffsetMinutes(winter, seoul); got != 9*60 {
		t.Fatalf("seoul offset %d, want %d", got, 540)
	}
}

func TestSlotLabelsOnSpringForwardDay(t *testing.T) {
	// New York springs forward on 2024-03-10: 02:00 local jumps to 03:00.
	// The local day is 23 hours long but still renders 49 boundaries spaced
	// 30 UTC-minutes apart; labels reflect true local time, so the 02:xx
	// hour never appears and 03:00 appears twice in sequence position terms.
	ny := mustZone(t, "America/New_York")
	ref := time.Date(2024, 3, 10, 12, 0, 0, 0, ny)
	slots := HalfHourSlots(ref, ny)

	if got := SlotLabel(0, slots[0], ny); got != "00:00" {
		t.Fatalf("slot 0 label %s, want 00:00", got)
	}
	// Slot 4 is midnight+2h of absolute time, which lands on 03:00 local.
	if got := SlotLabel(4, slots[4], ny); got != "03:00" {
		t.Fatalf("slot 4 label %s, want 03:00 (spring forward)", got)
	}
	for i, slot := range slots[:SlotCount-1] {
		label := SlotLabel(i, slot, ny)
		if label >= "02:00" && label < "03:00" {
			t.Fatalf("slot %d label %s falls in the skipped hour", i, label)
		}
	}
	if got := SlotLabel(48, slots[48], ny); got != "24:00" {
		t.Fatalf("closing label %s, want 24:00", got)
	}
	// The closing boundary is 23h of wall clock later, 24h of absolute time.
	if !slots[48].Equal(slots[0].Add(24 * time.Hour)) {
		t.Fatalf("closing boundary drifted")
	}
}

func TestClosingLabelIsFixed(t *testing.T) {
	seoul := mustZone(t, "Asia/Seoul")
	slots := HalfHourSlots(time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), seoul)
	if got := SlotLabel(SlotCount-1, slots[SlotCount-1], seoul); got != "24:00" {
		t.Fatalf("got %s, want 24:00", got)
	}
	// The same instant formatted normally would be the next day's 00:00.
	if got := FormatInZone(slots[SlotCount-1], seoul); got != "00:00" {
		t.Fatalf("zone formatter gave %s, want 00:00", got)
	}
}

func TestDateKey(t *testing.T) {
	seoul := mustZone(t, "Asia/Seoul")
	ny := mustZone(t, "America/New_York")
	// 2024-03-15 18:00 UTC is already Mar 16 in Seoul, still Mar 15 in NY.
	at := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	if got := DateKey(at, seoul); got != "2024-03-16" {
		t.Fatalf("seoul key %s", got)
	}
	if got := DateKey(at, ny); got != "2024-03-15" {
		t.Fatalf("ny key %s", got)
	}
}

func TestSameDay(t *testing.T) {
	seoul := mustZone(t, "Asia/Seoul")
	a := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC) // Mar 15 23:00 KST
	b := time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC) // Mar 16 01:00 KST
	if SameDay(a, b, seoul) {
		t.Fatalf("expected different local days in Seoul")
	}
	if !SameDay(a, b, time.UTC) {
		t.Fatalf("expected same day in UTC")
	}
}

func TestMonthHelpers(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Fatalf("feb 2024 days %d, want 29", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Fatalf("feb 2023 days %d, want 28", got)
	}
	if got := FirstWeekday(2024, time.March); got != time.Friday {
		t.Fatalf("march 2024 starts %v, want Friday", got)
	}
}

func TestCurrentLocalTimeAndAbbreviation(t *testing.T) {
	seoul := mustZone(t, "Asia/Seoul")
	now := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)
	if got := CurrentLocalTime(now, seoul); got != "12:30" {
		t.Fatalf("seoul local time %s, want 12:30", got)
	}
	if got := Abbreviation(now, seoul); got != "KST" {
		t.Fatalf("seoul abbreviation %s, want KST", got)
	}
	ny := mustZone(t, "America/New_York")
	if got := Abbreviation(now, ny); got != "EST" {
		t.Fatalf("ny abbreviation %s, want EST", got)
	}
}
