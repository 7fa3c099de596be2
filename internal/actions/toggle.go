package actions

import (
	"context"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// toggleAction flips every target and shows the state of the first one,
// which it polls while the button is visible.
type toggleAction struct {
	base
}

func (a *toggleAction) appear(ctx context.Context, b *Button) {
	if len(b.Targets) == 0 {
		a.watch.remove(b.Context)
		a.state(ctx, b, 0)
		a.title(ctx, b, "")
		return
	}
	a.watch.add(b.Context, b.Targets[0], b.Settings.PollInterval(), func(status *types.Status) {
		a.render(ctx, b, status)
	})
}

func (a *toggleAction) keyDown(ctx context.Context, b *Button) {
	allFailed := fanOut(ctx, b.Targets, func(ctx context.Context, d types.Device) bool {
		if d.Kind() == types.Switch {
			return a.client.ToggleSwitch(ctx, d.Ip, d.ComponentId, d.Generation)
		}
		return a.client.ToggleLight(ctx, d.Ip, d.ComponentId)
	})
	if allFailed {
		a.alert(ctx, b)
	}

	d := b.Targets[0]
	a.render(ctx, b, a.client.GetStatus(ctx, d.Ip, d.Kind(), d.ComponentId, d.Generation))
}

func (a *toggleAction) render(ctx context.Context, b *Button, status *types.Status) {
	state, text := 0, "?"
	if status != nil {
		if status.Output {
			state, text = 1, "ON"
		} else {
			text = "OFF"
		}
	}
	a.state(ctx, b, state)
	a.title(ctx, b, statusTitle(b.Settings, text))
	a.stateImage(ctx, b, state)
}

// statusTitle is the custom title when one is set, nothing when the status
// is hidden, else text.
func statusTitle(s *Settings, text string) string {
	if s.ButtonTitle != "" {
		return s.ButtonTitle
	}
	if !s.showStatus() {
		return ""
	}
	return text
}
