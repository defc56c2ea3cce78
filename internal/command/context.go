package command

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bridgecal/internal/core"
	"bridgecal/internal/state"
	"bridgecal/internal/store"
	"bridgecal/internal/sync"
	"bridgecal/internal/types"
)

// CommandContext provides shared command resources.
type CommandContext struct {
	Config      *core.Config
	Store       *store.Store
	Bridge      *state.Bridge
	Engine      *sync.Engine
	Clock       core.Clock
	MyZone      *time.Location
	PartnerZone *time.Location
	JSONMode    bool
}

// GetContext loads config, opens the local cache, and builds the bridge
// state and sync engine for a command.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	jsonMode, _ := cmd.Flags().GetBool("json")

	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, err
	}

	myZone, partnerZone, err := cfg.Zones()
	if err != nil {
		return nil, err
	}

	dir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dir)
	if err != nil {
		return nil, err
	}

	bridge := state.New(st)

	client, err := sync.NewClient(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	engine := sync.NewEngine(client, cfg.Bridge, bridge, core.SystemClock{}, logger)

	return &CommandContext{
		Config:      cfg,
		Store:       st,
		Bridge:      bridge,
		Engine:      engine,
		Clock:       core.SystemClock{},
		MyZone:      myZone,
		PartnerZone: partnerZone,
		JSONMode:    jsonMode,
	}, nil
}

// replicate pushes the local envelope after a mutation. Failures are not
// fatal: the change is already durable in the cache, and the next
// mutation or sync retries. The failure is surfaced on stderr so the
// offline case is visible.
func (ctx *CommandContext) replicate(cmd *cobra.Command) {
	bg, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if err := ctx.Engine.Push(bg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "push failed, change kept locally: %v\n", err)
	}
}

// ownerFromFlag resolves the --as flag, defaulting to me.
func ownerFromFlag(cmd *cobra.Command) (types.Owner, error) {
	raw, _ := cmd.Flags().GetString("as")
	if raw == "" {
		return types.OwnerMe, nil
	}
	return types.ParseOwner(raw)
}

// zoneFor returns the timeline zone for an owner.
func (ctx *CommandContext) zoneFor(owner types.Owner) *time.Location {
	if owner == types.OwnerPartner {
		return ctx.PartnerZone
	}
	return ctx.MyZone
}

// dateFromFlag resolves --on as a calendar day in the owner's zone,
// defaulting to today.
func (ctx *CommandContext) dateFromFlag(cmd *cobra.Command, owner types.Owner) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("on")
	zone := ctx.zoneFor(owner)
	if raw == "" {
		return ctx.Clock.Now().In(zone), nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return day, nil
}
