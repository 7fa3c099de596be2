package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/google/go-cmp/cmp"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []string
	block chan struct{} // when set, GetStatus waits on it
	nilAt int32         // return nil status for this call number (1-based)
	count atomic.Int32
}

func (fc *fakeClient) GetStatus(ctx context.Context, ip string, kind types.ComponentKind, id uint, gen types.Generation) *types.Status {
	n := fc.count.Add(1)
	fc.mu.Lock()
	fc.calls = append(fc.calls, kind.String()+" "+types.Address{Ip: ip, ComponentId: id}.Key()+" "+gen.String())
	block := fc.block
	fc.mu.Unlock()
	if block != nil {
		<-block
	}
	if n == fc.nilAt {
		return nil
	}
	return &types.Status{Id: int(id), Output: true}
}

type counter struct {
	n       atomic.Int32
	nilSeen atomic.Int32
}

func (c *counter) callback(device types.Device, status *types.Status) {
	c.n.Add(1)
	if status == nil {
		c.nilSeen.Add(1)
	}
}

func waitFor(t *testing.T, cond func() bool, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", within)
}

func testRegistry(t *testing.T, fc *fakeClient) *Registry {
	r := New(logr.NewContext(context.Background(), testr.New(t)), fc)
	t.Cleanup(r.StopAll)
	return r
}

var deviceA = types.Device{Address: types.Address{Ip: "192.168.1.20", ComponentId: 0}, DeviceType: types.ShellyPlus1}

// TestStartPollsImmediately validates the first cycle does not wait for the interval
func TestStartPollsImmediately(t *testing.T) {
	fc := &fakeClient{}
	r := testRegistry(t, fc)
	var c counter

	r.Start(deviceA, c.callback, time.Hour)
	waitFor(t, func() bool { return c.n.Load() == 1 }, time.Second)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if diff := cmp.Diff([]string{"switch 192.168.1.20-0 auto"}, fc.calls); diff != "" {
		t.Errorf("unexpected calls (-want +got):\n%s", diff)
	}
}

// TestStartRepeats validates the repeating timer and tolerance of nil status
func TestStartRepeats(t *testing.T) {
	fc := &fakeClient{nilAt: 2}
	r := testRegistry(t, fc)
	var c counter

	r.Start(deviceA, c.callback, 20*time.Millisecond)
	waitFor(t, func() bool { return c.n.Load() >= 4 }, time.Second)
	if c.nilSeen.Load() != 1 {
		t.Errorf("expected one nil status, got %d", c.nilSeen.Load())
	}
}

// TestRestartReplacesEntry validates a single timer per key after a restart
func TestRestartReplacesEntry(t *testing.T) {
	fc := &fakeClient{}
	r := testRegistry(t, fc)
	var c1, c2 counter

	r.Start(deviceA, c1.callback, 10*time.Millisecond)
	r.Start(deviceA, c2.callback, 20*time.Millisecond)
	first := c1.n.Load()

	if diff := cmp.Diff([]string{deviceA.Key()}, r.Active()); diff != "" {
		t.Errorf("unexpected active keys (-want +got):\n%s", diff)
	}

	waitFor(t, func() bool { return c2.n.Load() >= 3 }, time.Second)
	if got := c1.n.Load(); got != first {
		t.Errorf("replaced callback invoked again: %d -> %d", first, got)
	}
}

// TestStopSilencesCallback validates no invocation after Stop, over several intervals
func TestStopSilencesCallback(t *testing.T) {
	fc := &fakeClient{}
	r := testRegistry(t, fc)
	var c counter
	interval := 20 * time.Millisecond

	r.Start(deviceA, c.callback, interval)
	waitFor(t, func() bool { return c.n.Load() >= 2 }, time.Second)
	r.Stop(deviceA)
	stopped := c.n.Load()

	time.Sleep(3 * interval)
	if got := c.n.Load(); got != stopped {
		t.Errorf("callback invoked after Stop: %d -> %d", stopped, got)
	}
	if len(r.Active()) != 0 {
		t.Errorf("expected no active entries, got %v", r.Active())
	}

	// no-op on absent key
	r.Stop(deviceA)
}

// TestStopDropsInFlightFetch validates that a fetch pending during Stop is not delivered
func TestStopDropsInFlightFetch(t *testing.T) {
	block := make(chan struct{})
	fc := &fakeClient{block: block}
	r := testRegistry(t, fc)
	var c counter

	r.Start(deviceA, c.callback, time.Hour)
	waitFor(t, func() bool { return fc.count.Load() == 1 }, time.Second)
	r.Stop(deviceA)
	close(block)

	time.Sleep(50 * time.Millisecond)
	if got := c.n.Load(); got != 0 {
		t.Errorf("in-flight fetch delivered after Stop: %d", got)
	}
}

// TestStopAll validates that every entry is cancelled
func TestStopAll(t *testing.T) {
	fc := &fakeClient{}
	r := testRegistry(t, fc)
	var ca, cb counter
	deviceB := types.Device{Address: types.Address{Ip: "192.168.1.21", ComponentId: 1}}

	r.Start(deviceA, ca.callback, 10*time.Millisecond)
	r.Start(deviceB, cb.callback, 10*time.Millisecond)
	if diff := cmp.Diff([]string{"192.168.1.20-0", "192.168.1.21-1"}, r.Active()); diff != "" {
		t.Errorf("unexpected active keys (-want +got):\n%s", diff)
	}
	waitFor(t, func() bool { return ca.n.Load() >= 1 && cb.n.Load() >= 1 }, time.Second)

	r.StopAll()
	a, b := ca.n.Load(), cb.n.Load()
	time.Sleep(50 * time.Millisecond)
	if ca.n.Load() != a || cb.n.Load() != b {
		t.Error("callbacks invoked after StopAll")
	}
	if len(r.Active()) != 0 {
		t.Errorf("expected empty registry, got %v", r.Active())
	}
}

// TestDefaultInterval validates the 5s default
func TestDefaultInterval(t *testing.T) {
	if DefaultInterval != 5*time.Second {
		t.Errorf("DefaultInterval = %v", DefaultInterval)
	}
}
