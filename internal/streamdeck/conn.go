package streamdeck

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	// pending events per button before the read loop blocks
	queueDepth = 16
)

// Handler receives the events of the application. Events for the same
// button context are delivered in order, one at a time; different buttons are
// handled concurrently.
type Handler interface {
	HandleEvent(ctx context.Context, ev Event)
}

// Conn is a registered plugin connection to the Stream Deck application.
type Conn struct {
	ws  *websocket.Conn
	log logr.Logger
	wmu sync.Mutex
}

// Connect dials the application on the local port it launched the plugin
// with and registers the plugin.
func Connect(ctx context.Context, port int, pluginUUID string, registerEvent string) (*Conn, error) {
	return dial(ctx, fmt.Sprintf("ws://127.0.0.1:%d", port), pluginUUID, registerEvent)
}

func dial(ctx context.Context, url string, pluginUUID string, registerEvent string) (*Conn, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("streamdeck")

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	c := &Conn{ws: ws, log: log}
	if err := c.send(registration{Event: registerEvent, UUID: pluginUUID}); err != nil {
		ws.Close()
		return nil, fmt.Errorf("registering plugin: %w", err)
	}
	log.Info("Registered plugin", "url", url, "event", registerEvent)
	return c, nil
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

func (c *Conn) send(v any) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// Run reads and dispatches events until ctx is done or the application
// closes the connection. Both are a clean return.
func (c *Conn) Run(ctx context.Context, h Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		c.ws.Close()
	}()

	d := newDispatcher(ctx, h)
	defer d.close()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Info("Connection closed")
				return nil
			}
			return fmt.Errorf("reading from Stream Deck: %w", err)
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.log.Error(err, "Ignoring invalid event", "data", string(data))
			continue
		}
		c.log.V(1).Info("Received event", "event", ev.Event, "action", ev.Action, "context", ev.Context)
		d.dispatch(ev)
	}
}

type queue struct {
	events chan Event
	done   chan struct{}
}

// dispatcher runs one worker per visible button. It is only used from the
// read loop.
type dispatcher struct {
	ctx    context.Context
	h      Handler
	queues map[string]*queue
	// retired queues still draining, so that a button appearing again waits
	// for its willDisappear to be handled
	retired map[string]*queue
	wg      sync.WaitGroup
}

func newDispatcher(ctx context.Context, h Handler) *dispatcher {
	return &dispatcher{
		ctx:     ctx,
		h:       h,
		queues:  make(map[string]*queue),
		retired: make(map[string]*queue),
	}
}

func (d *dispatcher) dispatch(ev Event) {
	q, ok := d.queues[ev.Context]
	if !ok {
		q = d.start(ev.Context)
	}
	q.events <- ev

	if ev.Event == WillDisappear {
		delete(d.queues, ev.Context)
		close(q.events)
		d.retire(ev.Context, q)
	}
}

func (d *dispatcher) start(button string) *queue {
	q := &queue{events: make(chan Event, queueDepth), done: make(chan struct{})}
	d.queues[button] = q
	previous := d.retired[button]
	delete(d.retired, button)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(q.done)
		if previous != nil {
			<-previous.done
		}
		for ev := range q.events {
			d.h.HandleEvent(d.ctx, ev)
		}
	}()
	return q
}

// retire keeps q until its worker is done, dropping the queues that already
// drained.
func (d *dispatcher) retire(button string, q *queue) {
	for b, r := range d.retired {
		select {
		case <-r.done:
			delete(d.retired, b)
		default:
		}
	}
	d.retired[button] = q
}

func (d *dispatcher) close() {
	for _, q := range d.queues {
		close(q.events)
	}
	d.wg.Wait()
}

func (c *Conn) SetTitle(ctx context.Context, button string, title string) error {
	return c.send(outbound{Event: "setTitle", Context: button, Payload: titlePayload{Title: title}})
}

// SetImage sets the button image, a file path relative to the plugin or a
// data URI. A nil state applies to every state of the button.
func (c *Conn) SetImage(ctx context.Context, button string, image string, state *int) error {
	return c.send(outbound{Event: "setImage", Context: button, Payload: imagePayload{Image: image, State: state}})
}

func (c *Conn) SetState(ctx context.Context, button string, state int) error {
	return c.send(outbound{Event: "setState", Context: button, Payload: statePayload{State: state}})
}

func (c *Conn) ShowAlert(ctx context.Context, button string) error {
	return c.send(outbound{Event: "showAlert", Context: button})
}

// SetSettings persists the button settings in the application, which sends
// them back with every later event of the button.
func (c *Conn) SetSettings(ctx context.Context, button string, settings json.RawMessage) error {
	return c.send(outbound{Event: "setSettings", Context: button, Payload: settings})
}
