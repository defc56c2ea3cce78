package tui

import (
	"strings"

	"github.com/gen2brain/beeep"

	"bridgecal/internal/types"
)

// notifyFeeling raises a desktop notification for a feeling that arrived
// from the other side. Failures are ignored; notifications are best effort.
func notifyFeeling(name string, f types.DailyFeeling) {
	title := name + " shared a feeling"
	body := strings.TrimSpace(f.Emoji + " " + f.Text)
	_ = beeep.Notify(title, body, "")
}
