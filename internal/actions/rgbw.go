package actions

import (
	"context"
	"fmt"

	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// rgbwAction applies the configured colour (white by default) to the light
// targets. The dial adjusts the colour brightness.
type rgbwAction struct {
	base
}

func (a *rgbwAction) appear(ctx context.Context, b *Button) {
	switch {
	case len(b.Targets) == 0:
		a.title(ctx, b, "")
	case b.Settings.RGBWColor == nil:
		a.title(ctx, b, "RGBW")
	default:
		a.title(ctx, b, fmt.Sprintf("%d%%", *b.Settings.color().Brightness))
	}
}

func (a *rgbwAction) keyDown(ctx context.Context, b *Button) {
	a.apply(ctx, b, b.Settings.color())
}

func (a *rgbwAction) dialRotate(ctx context.Context, b *Button, ticks int) {
	color := b.Settings.color()
	brightness := dial(*color.Brightness, ticks)
	color.Brightness = &brightness
	a.store(ctx, b, "rgbwColor", color)
	b.Settings.RGBWColor = &color
	a.apply(ctx, b, color)
}

func (a *rgbwAction) apply(ctx context.Context, b *Button, color light.Color) {
	allFailed := fanOut(ctx, lights(b.Targets), func(ctx context.Context, d types.Device) bool {
		return a.client.SetRGBW(ctx, d.Ip, d.ComponentId, color)
	})
	if allFailed {
		a.alert(ctx, b)
	}
	a.title(ctx, b, fmt.Sprintf("%d%%", *color.Brightness))
}
