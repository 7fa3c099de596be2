package streamdeck

import (
	"encoding/json"
	"fmt"
)

// Inbound event names
const (
	KeyDown            = "keyDown"
	WillAppear         = "willAppear"
	WillDisappear      = "willDisappear"
	DidReceiveSettings = "didReceiveSettings"
	DialDown           = "dialDown"
	DialRotate         = "dialRotate"
)

// Event is one message received from the Stream Deck application.
type Event struct {
	Event   string  `json:"event"`
	Action  string  `json:"action,omitempty"`
	Context string  `json:"context,omitempty"`
	Device  string  `json:"device,omitempty"`
	Payload Payload `json:"payload,omitempty"`
}

type Payload struct {
	Settings json.RawMessage `json:"settings,omitempty"`
	Ticks    int             `json:"ticks,omitempty"`
	State    *int            `json:"state,omitempty"`
}

type registration struct {
	Event string `json:"event"`
	UUID  string `json:"uuid"`
}

type outbound struct {
	Event   string `json:"event"`
	Context string `json:"context,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type titlePayload struct {
	Title  string `json:"title"`
	Target int    `json:"target"`
}

type imagePayload struct {
	Image  string `json:"image"`
	Target int    `json:"target"`
	State  *int   `json:"state,omitempty"`
}

type statePayload struct {
	State int `json:"state"`
}

// Info is the -info argument the application launches the plugin with.
type Info struct {
	Application struct {
		Language string `json:"language"`
		Platform string `json:"platform"`
		Version  string `json:"version"`
	} `json:"application"`
	Plugin struct {
		UUID    string `json:"uuid"`
		Version string `json:"version"`
	} `json:"plugin"`
	Devices []struct {
		Id   string `json:"id"`
		Name string `json:"name"`
		Type int    `json:"type"`
	} `json:"devices"`
}

func ParseInfo(s string) (*Info, error) {
	var info Info
	if s == "" {
		return &info, nil
	}
	if err := json.Unmarshal([]byte(s), &info); err != nil {
		return nil, fmt.Errorf("invalid -info argument: %w", err)
	}
	return &info, nil
}
