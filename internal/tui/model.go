// Package tui is the interactive dual-timezone timeline. One screen shows
// both people's day side by side: the active user's half-hour slots on the
// left, the same instants rendered in the partner's zone on the right.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bridgecal/internal/core"
	"bridgecal/internal/state"
	"bridgecal/internal/store"
	"bridgecal/internal/sync"
	"bridgecal/internal/types"
)

// Options configure the timeline UI.
type Options struct {
	Bridge      *state.Bridge
	Engine      *sync.Engine
	Store       *store.Store
	Clock       core.Clock
	MyZone      *time.Location
	PartnerZone *time.Location
	// PullInterval is how often the engine polls while the UI runs.
	PullInterval time.Duration
}

type mode int

const (
	modeTimeline mode = iota
	modeMonth
	modeAddEvent
	modeFeeling
	modeHighlight
	modeNames
)

// Model implements the timeline UI.
type Model struct {
	bridge      *state.Bridge
	engine      *sync.Engine
	clock       core.Clock
	myZone      *time.Location
	partnerZone *time.Location

	mode        mode
	activeOwner types.Owner
	viewDate    time.Time // any instant inside the viewed local day
	cursor      int       // selected slot index on the active timeline
	scroll      int       // first visible slot row

	form     formState
	monthSel time.Time // selected day in the month picker

	status string
	width  int
	height int
	now    time.Time
}

// Run starts the UI and the background poll loop. It blocks until the
// user quits.
func Run(ctx context.Context, opts Options) error {
	m := NewModel(opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(m, tea.WithAltScreen())

	if opts.Engine != nil {
		go opts.Engine.Run(ctx, opts.PullInterval, func(result state.MergeResult) {
			program.Send(pullMsg{result: result})
		})
	}

	// A sync daemon on the same machine writes the cache directly; pick
	// those writes up without waiting for our own poll.
	if opts.Store != nil {
		if events, err := opts.Store.Watch(ctx); err == nil {
			go func() {
				for range events {
					program.Send(cacheChangedMsg{})
				}
			}()
		}
	}

	_, err := program.Run()
	return err
}

// NewModel builds a timeline model viewing today from the local user's
// perspective.
func NewModel(opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	now := clock.Now()
	return &Model{
		bridge:      opts.Bridge,
		engine:      opts.Engine,
		clock:       clock,
		myZone:      opts.MyZone,
		partnerZone: opts.PartnerZone,
		activeOwner: types.OwnerMe,
		viewDate:    now,
		now:         now,
		cursor:      currentSlotIndex(now, opts.MyZone),
	}
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// activeZone is the zone whose local day defines the visible timeline.
func (m *Model) activeZone() *time.Location {
	if m.activeOwner == types.OwnerPartner {
		return m.partnerZone
	}
	return m.myZone
}

func (m *Model) otherZone() *time.Location {
	if m.activeOwner == types.OwnerPartner {
		return m.myZone
	}
	return m.partnerZone
}

type tickMsg time.Time

type pullMsg struct {
	result state.MergeResult
}

type cacheChangedMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
