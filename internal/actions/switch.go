package actions

import (
	"context"

	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// switchAction turns every target on, or off. Lights go to full brightness
// when turned on and to zero when turned off.
type switchAction struct {
	base
	on bool
}

func (a *switchAction) text() string {
	if a.on {
		return "ON"
	}
	return "OFF"
}

func (a *switchAction) appear(ctx context.Context, b *Button) {
	if len(b.Targets) == 0 {
		a.title(ctx, b, "")
		return
	}
	a.title(ctx, b, a.text())
}

func (a *switchAction) keyDown(ctx context.Context, b *Button) {
	allFailed := fanOut(ctx, b.Targets, func(ctx context.Context, d types.Device) bool {
		if d.Kind() == types.Switch {
			return a.client.SetSwitch(ctx, d.Ip, d.ComponentId, a.on, d.Generation)
		}
		brightness := 0
		if a.on {
			brightness = light.MaxBrightness
		}
		on := a.on
		return a.client.SetLight(ctx, d.Ip, d.ComponentId, brightness, &on)
	})
	if allFailed {
		a.alert(ctx, b)
	}
	a.title(ctx, b, a.text())
}
