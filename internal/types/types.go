package types

import (
	"fmt"
	"time"
)

// Owner identifies which side of the bridge a record belongs to.
type Owner string

const (
	OwnerMe      Owner = "me"
	OwnerPartner Owner = "partner"
)

// Other returns the opposite side.
func (o Owner) Other() Owner {
	if o == OwnerMe {
		return OwnerPartner
	}
	return OwnerMe
}

// ParseOwner validates an owner string.
func ParseOwner(s string) (Owner, error) {
	switch Owner(s) {
	case OwnerMe, OwnerPartner:
		return Owner(s), nil
	}
	return "", fmt.Errorf("invalid owner %q (want me or partner)", s)
}

// EventType classifies a calendar event for rendering.
type EventType string

const (
	EventWork    EventType = "work"
	EventSleep   EventType = "sleep"
	EventLeisure EventType = "leisure"
	EventDate    EventType = "date"
	EventStudy   EventType = "study"
	EventOther   EventType = "other"
)

// EventTypes lists all valid event types in display order.
var EventTypes = []EventType{EventWork, EventSleep, EventLeisure, EventDate, EventStudy, EventOther}

// ParseEventType validates an event type string.
func ParseEventType(s string) (EventType, error) {
	for _, t := range EventTypes {
		if EventType(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", s)
}

// CalendarEvent is a timed block on one user's schedule. StartTime is an
// absolute UTC instant; events are never mutated after creation.
type CalendarEvent struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Type            EventType `json:"type"`
	Owner           Owner     `json:"userId"`
}

// End returns the UTC instant the event finishes.
func (e CalendarEvent) End() time.Time {
	return e.StartTime.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// DailyHighlight is the single shared label+color for a calendar day.
// Keyed by DateKey; edits replace the record wholesale.
type DailyHighlight struct {
	DateKey string `json:"dateKey"`
	Title   string `json:"title"`
	Color   string `json:"color"`
}

// DailyFeeling is a short owner-attributed note attached to a calendar day.
// Feelings are append-only; there is no edit or delete.
type DailyFeeling struct {
	ID        string    `json:"id"`
	Owner     Owner     `json:"userId"`
	Text      string    `json:"text"`
	Emoji     string    `json:"emoji"`
	Timestamp time.Time `json:"timestamp"`
	DateKey   string    `json:"dateKey"`
}

// Names holds the two display labels. Last write wins.
type Names struct {
	Me      string `json:"me"`
	Partner string `json:"partner"`
}

// DefaultNames returns the labels used before anyone customizes them.
func DefaultNames() Names {
	return Names{Me: "me", Partner: "partner"}
}

// IsZero reports whether the record carries no labels at all.
func (n Names) IsZero() bool {
	return n.Me == "" && n.Partner == ""
}

// For returns the display label for an owner.
func (n Names) For(o Owner) string {
	if o == OwnerPartner {
		return n.Partner
	}
	return n.Me
}

// SharedData is the replication envelope: the full bridge state as stored
// remotely and exchanged on every push and pull.
type SharedData struct {
	Events      []CalendarEvent           `json:"events"`
	Highlights  map[string]DailyHighlight `json:"highlights"`
	Feelings    []DailyFeeling            `json:"feelings"`
	Names       Names                     `json:"names"`
	LastUpdated time.Time                 `json:"lastUpdated"`
}
