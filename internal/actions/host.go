package actions

import (
	"context"
	"encoding/json"
	"time"

	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	"github.com/asnowfix/shelly-deck/pkg/shelly/poller"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// Host renders buttons and stores their settings. A button is named by the
// opaque context string the application gives it.
type Host interface {
	SetTitle(ctx context.Context, button string, title string) error
	SetImage(ctx context.Context, button string, image string, state *int) error
	SetState(ctx context.Context, button string, state int) error
	ShowAlert(ctx context.Context, button string) error
	SetSettings(ctx context.Context, button string, settings json.RawMessage) error
}

// Controller is the device side, implemented by shelly.Client.
type Controller interface {
	GetStatus(ctx context.Context, ip string, kind types.ComponentKind, id uint, gen types.Generation) *types.Status
	SetSwitch(ctx context.Context, ip string, id uint, on bool, gen types.Generation) bool
	ToggleSwitch(ctx context.Context, ip string, id uint, gen types.Generation) bool
	SetLight(ctx context.Context, ip string, id uint, brightness int, on *bool) bool
	SetRGBW(ctx context.Context, ip string, id uint, color light.Color) bool
	ToggleLight(ctx context.Context, ip string, id uint) bool
}

// Poller is implemented by poller.Registry.
type Poller interface {
	Start(device types.Device, callback poller.Callback, interval time.Duration)
	Stop(device types.Device)
	StopAll()
}
