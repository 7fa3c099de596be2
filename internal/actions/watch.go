package actions

import (
	"sync"
	"time"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

type render func(status *types.Status)

// watchers shares one device poll between every visible button showing that
// device.
type watchers struct {
	poller Poller

	// ctl orders the poller calls; mu guards the maps and is the only lock
	// taken from poll callbacks.
	ctl    sync.Mutex
	mu     sync.Mutex
	byKey  map[string]map[string]render // device key -> button -> render
	device map[string]types.Device      // button -> watched device
}

func newWatchers(p Poller) *watchers {
	return &watchers{
		poller: p,
		byKey:  make(map[string]map[string]render),
		device: make(map[string]types.Device),
	}
}

// add makes button follow device, replacing what it followed before. The
// device poll is (re)started so the button gets a status right away; the
// kind and interval of the last button added apply to every button sharing
// the device key.
func (w *watchers) add(button string, device types.Device, interval time.Duration, r render) {
	w.ctl.Lock()
	defer w.ctl.Unlock()

	previous, hadPrevious := w.detach(button)

	w.mu.Lock()
	key := device.Key()
	if w.byKey[key] == nil {
		w.byKey[key] = make(map[string]render)
	}
	w.byKey[key][button] = r
	w.device[button] = device
	w.mu.Unlock()

	if hadPrevious && previous.Key() != key {
		w.release(previous)
	}
	w.poller.Start(device, w.fanOut, interval)
}

// remove stops button from following its device. The device poll stops with
// the last button.
func (w *watchers) remove(button string) {
	w.ctl.Lock()
	defer w.ctl.Unlock()

	if device, ok := w.detach(button); ok {
		w.release(device)
	}
}

func (w *watchers) detach(button string) (types.Device, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	device, ok := w.device[button]
	if !ok {
		return device, false
	}
	delete(w.device, button)
	delete(w.byKey[device.Key()], button)
	return device, true
}

func (w *watchers) release(device types.Device) {
	w.mu.Lock()
	key := device.Key()
	idle := len(w.byKey[key]) == 0
	if idle {
		delete(w.byKey, key)
	}
	w.mu.Unlock()

	if idle {
		w.poller.Stop(device)
	}
}

func (w *watchers) fanOut(device types.Device, status *types.Status) {
	w.mu.Lock()
	renders := make([]render, 0, len(w.byKey[device.Key()]))
	for _, r := range w.byKey[device.Key()] {
		renders = append(renders, r)
	}
	w.mu.Unlock()

	for _, r := range renders {
		r(status)
	}
}

func (w *watchers) stopAll() {
	w.ctl.Lock()
	defer w.ctl.Unlock()

	w.mu.Lock()
	w.byKey = make(map[string]map[string]render)
	w.device = make(map[string]types.Device)
	w.mu.Unlock()
	w.poller.StopAll()
}
