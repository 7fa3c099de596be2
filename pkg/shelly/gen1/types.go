package gen1

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

// https://shelly-api-docs.shelly.cloud/gen1/#shelly

// DeviceInfoPath is answered by every Gen1 device; used as a generation probe.
const DeviceInfoPath = "/shelly"

// https://shelly-api-docs.shelly.cloud/gen1/#shelly1-shelly1pm-relay-index
func RelayPath(id uint) string {
	return fmt.Sprintf("/relay/%d", id)
}

type Turn string

const (
	On     Turn = "on"
	Off    Turn = "off"
	Toggle Turn = "toggle"
)

func TurnFor(on bool) Turn {
	if on {
		return On
	}
	return Off
}

type RelayStatus struct {
	IsOn           bool    `json:"ison"`
	HasTimer       bool    `json:"has_timer"`
	TimerStartedAt int64   `json:"timer_started"`   // Unix timestamp of timer start; 0 if timer inactive or time not synced
	TimerDuration  float32 `json:"timer_duration"`  // Timer duration, s
	TimerRemaining float32 `json:"timer_remaining"` // experimental If there is an active timer, shows seconds until timer elapses; 0 otherwise
	Overpower      bool    `json:"overpower,omitempty"`
	Source         string  `json:"source"` // Source of the last relay command
}

// RelayCommand is sent as query parameters on GET /relay/{id}
type RelayCommand struct {
	Turn  Turn    `schema:"turn,omitempty"`
	Timer float32 `schema:"timer,omitempty"` // Flip-back timer, s
}

var encoder = schema.NewEncoder()

func (rc RelayCommand) Query() (url.Values, error) {
	values := url.Values{}
	if err := encoder.Encode(rc, values); err != nil {
		return nil, fmt.Errorf("encoding relay command: %w", err)
	}
	return values, nil
}
