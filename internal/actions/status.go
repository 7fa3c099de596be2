package actions

import (
	"context"
	"fmt"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// statusAction only displays the polled state of the first target.
type statusAction struct {
	base
}

func (a *statusAction) appear(ctx context.Context, b *Button) {
	if len(b.Targets) == 0 {
		a.watch.remove(b.Context)
		a.title(ctx, b, "")
		return
	}
	a.watch.add(b.Context, b.Targets[0], b.Settings.PollInterval(), func(status *types.Status) {
		a.title(ctx, b, statusText(status))
	})
}

func (a *statusAction) keyDown(ctx context.Context, b *Button) {
	d := b.Targets[0]
	a.title(ctx, b, statusText(a.client.GetStatus(ctx, d.Ip, d.Kind(), d.ComponentId, d.Generation)))
}

func statusText(status *types.Status) string {
	switch {
	case status == nil:
		return "?"
	case !status.Output:
		return "OFF"
	case status.HasColor():
		brightness := 0
		if status.Brightness != nil {
			brightness = *status.Brightness
		}
		return fmt.Sprintf("%d%%", brightness)
	}
	return "ON"
}
