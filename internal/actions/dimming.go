package actions

import (
	"context"
	"fmt"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// dimmingAction applies the configured brightness to the light targets. The
// dial moves the brightness by 5% per tick and stores it in the settings.
type dimmingAction struct {
	base
}

func (a *dimmingAction) appear(ctx context.Context, b *Button) {
	if len(b.Targets) == 0 {
		a.title(ctx, b, "")
		return
	}
	a.title(ctx, b, fmt.Sprintf("%d%%", b.Settings.brightness()))
}

func (a *dimmingAction) keyDown(ctx context.Context, b *Button) {
	a.apply(ctx, b, b.Settings.brightness())
}

func (a *dimmingAction) dialRotate(ctx context.Context, b *Button, ticks int) {
	brightness := dial(b.Settings.brightness(), ticks)
	a.store(ctx, b, "brightness", brightness)
	b.Settings.Brightness = &brightness
	a.apply(ctx, b, brightness)
}

func (a *dimmingAction) apply(ctx context.Context, b *Button, brightness int) {
	on := true
	allFailed := fanOut(ctx, lights(b.Targets), func(ctx context.Context, d types.Device) bool {
		return a.client.SetLight(ctx, d.Ip, d.ComponentId, brightness, &on)
	})
	if allFailed {
		a.alert(ctx, b)
	}
	a.title(ctx, b, fmt.Sprintf("%d%%", brightness))
}
