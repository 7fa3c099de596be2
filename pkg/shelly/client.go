package shelly

import (
	"context"
	"net/http"

	"github.com/asnowfix/shelly-deck/hlog"
	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	"github.com/asnowfix/shelly-deck/pkg/shelly/ratelimit"
	"github.com/asnowfix/shelly-deck/pkg/shelly/shelly"
	"github.com/asnowfix/shelly-deck/pkg/shelly/shttp"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/go-logr/logr"
)

// Client controls Shelly components over their local HTTP API. It keeps no
// device state: every call resolves what it needs and talks to the device.
//
// Failures never cross this boundary as errors. They are logged and reported
// as a nil status or a false result, which callers check.
type Client struct {
	ch           types.RpcChannel
	protocols    map[types.Generation]protocol
	nativeToggle bool
}

type Option func(*options)

type options struct {
	httpClient   shttp.Doer
	rateLimit    *ratelimit.Limiter
	nativeToggle bool
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c shttp.Doer) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRateLimiter spaces commands to the same device.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(o *options) { o.rateLimit = l }
}

// WithNativeToggle makes Gen2 ToggleSwitch use the device Switch.Toggle RPC
// instead of reading the status and writing the negated value.
func WithNativeToggle(native bool) Option {
	return func(o *options) { o.nativeToggle = native }
}

func NewClient(opts ...Option) *Client {
	o := options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}
	ch := shttp.NewChannel(o.httpClient, o.rateLimit)
	return &Client{
		ch: ch,
		protocols: map[types.Generation]protocol{
			types.Gen1: gen1Protocol{ch: ch},
			types.Gen2: gen2Protocol{ch: ch},
		},
		nativeToggle: o.nativeToggle,
	}
}

func logger(ctx context.Context, ip string) logr.Logger {
	return logr.FromContextOrDiscard(ctx).WithName("shelly").WithValues("ip", ip)
}

// DetectGeneration probes the Gen2 RPC endpoint first, then the Gen1 one.
// GenUnknown means no generation answered: the device is unreachable or is
// not a Shelly.
func (c *Client) DetectGeneration(ctx context.Context, ip string) types.Generation {
	log := logger(ctx, ip)
	if c.ch.Probe(ctx, ip, types.RpcPath(shelly.GetDeviceInfo.String())) {
		log.V(1).Info("Detected generation", "gen", types.Gen2)
		return types.Gen2
	}
	if c.ch.Probe(ctx, ip, gen1DeviceInfoPath) {
		log.V(1).Info("Detected generation", "gen", types.Gen1)
		return types.Gen1
	}
	log.Info("Unable to detect device generation")
	return types.GenUnknown
}

// GetDeviceInfo returns the Gen2 device information, nil on failure.
func (c *Client) GetDeviceInfo(ctx context.Context, ip string) *shelly.DeviceInfo {
	info, err := shelly.DoGetDeviceInfo(ctx, c.ch, ip)
	if err != nil {
		hlog.ErrorIfNotCanceled(logger(ctx, ip), err, "Error getting device info")
		return nil
	}
	return info
}

func (c *Client) resolve(ctx context.Context, ip string, gen types.Generation) (protocol, bool) {
	if gen == types.GenUnknown {
		gen = c.DetectGeneration(ctx, ip)
	}
	p, ok := c.protocols[gen]
	return p, ok
}

// GetStatus reads the status of one component. gen may be GenUnknown, in
// which case it is detected first. Returns nil when the status could not be
// read.
func (c *Client) GetStatus(ctx context.Context, ip string, kind types.ComponentKind, id uint, gen types.Generation) *types.Status {
	p, ok := c.resolve(ctx, ip, gen)
	if !ok {
		return nil
	}
	status, err := p.status(ctx, ip, kind, id)
	if err != nil {
		hlog.ErrorIfNotCanceled(logger(ctx, ip), err, "Error getting status", "kind", kind, "id", id)
		return nil
	}
	return status
}

// SetSwitch turns a relay on or off. On Gen2 the result is true only when
// the device confirmed the requested output.
func (c *Client) SetSwitch(ctx context.Context, ip string, id uint, on bool, gen types.Generation) bool {
	p, ok := c.resolve(ctx, ip, gen)
	if !ok {
		return false
	}
	done, err := p.setSwitch(ctx, ip, id, on)
	if err != nil {
		hlog.ErrorIfNotCanceled(logger(ctx, ip), err, "Error setting switch", "id", id, "on", on)
		return false
	}
	return done
}

// ToggleSwitch flips a relay. Gen1 toggles atomically on the device. Gen2
// reads the status then sets the negated output, unless the client was built
// WithNativeToggle.
func (c *Client) ToggleSwitch(ctx context.Context, ip string, id uint, gen types.Generation) bool {
	p, ok := c.resolve(ctx, ip, gen)
	if !ok {
		return false
	}
	log := logger(ctx, ip)

	if t, ok := p.(toggler); ok && (p.atomicToggle() || c.nativeToggle) {
		done, err := t.toggleSwitch(ctx, ip, id)
		if err != nil {
			hlog.ErrorIfNotCanceled(log, err, "Error toggling switch", "id", id)
			return false
		}
		return done
	}

	status, err := p.status(ctx, ip, types.Switch, id)
	if err != nil {
		hlog.ErrorIfNotCanceled(log, err, "Error toggling switch", "id", id)
		return false
	}
	done, err := p.setSwitch(ctx, ip, id, !status.Output)
	if err != nil {
		hlog.ErrorIfNotCanceled(log, err, "Error toggling switch", "id", id)
		return false
	}
	return done
}

// SetLight sets the brightness (clamped to 0..100) of a light. A nil on
// leaves the power state of the light untouched.
func (c *Client) SetLight(ctx context.Context, ip string, id uint, brightness int, on *bool) bool {
	b := light.ClampBrightness(brightness)
	err := light.DoSet(ctx, c.ch, ip, &light.SetRequest{
		Id:         id,
		On:         on,
		Brightness: &b,
	})
	if err != nil {
		hlog.ErrorIfNotCanceled(logger(ctx, ip), err, "Error setting light", "id", id, "brightness", b)
		return false
	}
	return true
}

// SetRGBW sets the colour of an RGBW light. Channels and brightness are
// clamped before the request is built.
func (c *Client) SetRGBW(ctx context.Context, ip string, id uint, color light.Color) bool {
	clamped := color.Clamped()
	if err := light.DoSet(ctx, c.ch, ip, clamped.SetRequest(id)); err != nil {
		hlog.ErrorIfNotCanceled(logger(ctx, ip), err, "Error setting RGBW", "id", id, "color", clamped)
		return false
	}
	return true
}

// ToggleLight flips a light, keeping its last known brightness (100 when the
// device reported none).
func (c *Client) ToggleLight(ctx context.Context, ip string, id uint) bool {
	// Lights only exist on Gen2 devices
	status := c.GetStatus(ctx, ip, types.Light, id, types.Gen2)
	if status == nil {
		return false
	}
	brightness := light.MaxBrightness
	if status.Brightness != nil && *status.Brightness != 0 {
		brightness = *status.Brightness
	}
	on := !status.Output
	return c.SetLight(ctx, ip, id, brightness, &on)
}
