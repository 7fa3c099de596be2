package poller

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/go-logr/logr"
)

const DefaultInterval = types.DefaultPollPeriod * time.Millisecond

// StatusGetter is the part of shelly.Client the registry needs.
type StatusGetter interface {
	GetStatus(ctx context.Context, ip string, kind types.ComponentKind, id uint, gen types.Generation) *types.Status
}

// Callback receives the status of every poll cycle. status is nil when the
// device could not be read; polling goes on regardless.
type Callback func(device types.Device, status *types.Status)

// Registry keeps at most one repeating status poll per device key.
type Registry struct {
	ctx     context.Context
	client  StatusGetter
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	device   types.Device
	callback Callback
	interval time.Duration
	cancel   context.CancelFunc

	// mu is held while the callback runs; stopped is only read and written
	// under it, so no callback starts once stop() has returned.
	mu      sync.Mutex
	stopped bool
}

// New returns a registry whose polls run under ctx (and its logger) until
// stopped or until ctx is done.
func New(ctx context.Context, client StatusGetter) *Registry {
	return &Registry{
		ctx:     ctx,
		client:  client,
		entries: make(map[string]*entry),
	}
}

// Start polls device every interval (DefaultInterval when <= 0), after one
// immediate poll. A poll already running for the same key is stopped first.
//
// The callback runs on the poll goroutine and must not stop its own entry.
func (r *Registry) Start(device types.Device, callback Callback, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	key := device.Key()
	ctx, cancel := context.WithCancel(r.ctx)
	e := &entry{
		device:   device,
		callback: callback,
		interval: interval,
		cancel:   cancel,
	}

	r.mu.Lock()
	old := r.entries[key]
	r.entries[key] = e
	r.mu.Unlock()

	if old != nil {
		old.stop()
	}

	log := logr.FromContextOrDiscard(r.ctx).WithName("poller")
	log.V(1).Info("Start polling", "key", key, "interval", interval, "replaced", old != nil)
	go r.run(ctx, e)
}

// Stop cancels the poll for the device key. No callback for it runs after
// Stop returns. No-op when the key is not polled.
func (r *Registry) Stop(device types.Device) {
	key := device.Key()
	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if ok {
		e.stop()
		logr.FromContextOrDiscard(r.ctx).WithName("poller").V(1).Info("Stop polling", "key", key)
	}
}

// StopAll cancels every poll and clears the registry.
func (r *Registry) StopAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.stop()
	}
}

// Active returns the polled device keys, sorted.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *entry) stop() {
	e.cancel()
	e.mu.Lock()
	e.stopped = true
	e.mu.Unlock()
}

func (r *Registry) run(ctx context.Context, e *entry) {
	r.poll(ctx, e)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.poll(ctx, e)
		}
	}
}

func (r *Registry) poll(ctx context.Context, e *entry) {
	d := e.device
	status := r.client.GetStatus(ctx, d.Ip, d.Kind(), d.ComponentId, d.Generation)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		// in-flight fetch of a stopped entry
		return
	}
	e.callback(d, status)
}
