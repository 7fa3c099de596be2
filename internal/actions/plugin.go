package actions

import (
	"context"
	"strings"

	"github.com/asnowfix/shelly-deck/hlog"
	"github.com/asnowfix/shelly-deck/internal/streamdeck"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// Action UUIDs, as declared in the plugin manifest
const (
	ToggleUUID  = "com.shelly.toggle"
	OnUUID      = "com.shelly.on"
	OffUUID     = "com.shelly.off"
	DimmingUUID = "com.shelly.dimming"
	RGBWUUID    = "com.shelly.rgbw"
	StatusUUID  = "com.shelly.status"
)

// Button is one event's view of a button.
type Button struct {
	Context  string
	Action   string
	Settings *Settings
	Targets  []types.Device
}

type action interface {
	appear(ctx context.Context, b *Button)
	keyDown(ctx context.Context, b *Button)
}

type dialer interface {
	dialRotate(ctx context.Context, b *Button, ticks int)
}

// Plugin routes the application events to the button actions.
type Plugin struct {
	base
	actions map[string]action
}

// base is what every action needs.
type base struct {
	client Controller
	host   Host
	watch  *watchers
}

func NewPlugin(client Controller, host Host, p Poller) *Plugin {
	b := base{client: client, host: host, watch: newWatchers(p)}
	return &Plugin{
		base: b,
		actions: map[string]action{
			ToggleUUID:  &toggleAction{b},
			OnUUID:      &switchAction{base: b, on: true},
			OffUUID:     &switchAction{base: b, on: false},
			DimmingUUID: &dimmingAction{b},
			RGBWUUID:    &rgbwAction{b},
			StatusUUID:  &statusAction{b},
		},
	}
}

// HandleEvent implements streamdeck.Handler.
func (p *Plugin) HandleEvent(ctx context.Context, ev streamdeck.Event) {
	log := logr.FromContextOrDiscard(ctx).WithName("actions").WithValues("action", ev.Action, "context", ev.Context)
	ctx = logr.NewContext(ctx, log)

	if ev.Event == streamdeck.WillDisappear {
		p.watch.remove(ev.Context)
		return
	}

	a, ok := p.actions[ev.Action]
	if !ok {
		if ev.Action != "" {
			log.Info("Unknown action", "event", ev.Event)
		}
		return
	}

	settings, err := ParseSettings(ev.Payload.Settings)
	if err != nil {
		log.Error(err, "Button settings partly unreadable, they will not be written back")
	}
	b := &Button{
		Context:  ev.Context,
		Action:   ev.Action,
		Settings: settings,
		Targets:  settings.Targets(),
	}

	switch ev.Event {
	case streamdeck.WillAppear, streamdeck.DidReceiveSettings:
		a.appear(ctx, b)
	case streamdeck.KeyDown, streamdeck.DialDown:
		if len(b.Targets) == 0 {
			p.alert(ctx, b)
			return
		}
		a.keyDown(ctx, b)
	case streamdeck.DialRotate:
		if d, ok := a.(dialer); ok && len(b.Targets) > 0 {
			d.dialRotate(ctx, b, ev.Payload.Ticks)
		}
	default:
		log.V(1).Info("Ignoring event", "event", ev.Event)
	}
}

// Close stops every device poll.
func (p *Plugin) Close() {
	p.watch.stopAll()
}

// fanOut runs do on every target concurrently, waits for all of them and
// reports whether every target failed. Outcomes are otherwise independent.
func fanOut(ctx context.Context, targets []types.Device, do func(ctx context.Context, d types.Device) bool) bool {
	results := make([]bool, len(targets))
	var g errgroup.Group
	for i, d := range targets {
		g.Go(func() error {
			results[i] = do(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, ok := range results {
		if !ok {
			failed++
		}
	}
	return len(targets) > 0 && failed == len(targets)
}

func lights(targets []types.Device) []types.Device {
	var out []types.Device
	for _, d := range targets {
		if d.Kind() == types.Light {
			out = append(out, d)
		}
	}
	return out
}

func (p *base) alert(ctx context.Context, b *Button) {
	p.check(ctx, p.host.ShowAlert(ctx, b.Context), "showAlert")
}

func (p *base) title(ctx context.Context, b *Button, title string) {
	p.check(ctx, p.host.SetTitle(ctx, b.Context, title), "setTitle")
}

func (p *base) state(ctx context.Context, b *Button, state int) {
	p.check(ctx, p.host.SetState(ctx, b.Context, state), "setState")
}

// stateImage applies the custom image configured for the state, if any.
func (p *base) stateImage(ctx context.Context, b *Button, state int) {
	image := b.Settings.OffStateImage
	if state == 1 {
		image = b.Settings.OnStateImage
	}
	if strings.TrimSpace(image) == "" {
		return
	}
	p.check(ctx, p.host.SetImage(ctx, b.Context, image, &state), "setImage")
}

// store persists key in the button settings, unless they were unreadable.
func (p *base) store(ctx context.Context, b *Button, key string, value any) {
	settings, err := b.Settings.With(key, value)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "Keeping stored settings")
		return
	}
	p.check(ctx, p.host.SetSettings(ctx, b.Context, settings), "setSettings")
}

func (p *base) check(ctx context.Context, err error, what string) {
	if err != nil {
		hlog.ErrorIfNotCanceled(logr.FromContextOrDiscard(ctx), err, "Host call failed", "call", what)
	}
}
