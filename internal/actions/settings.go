package actions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

const (
	DefaultBrightness = 50
	MinPollInterval   = 1000 // milliseconds
	dialStep          = 5
)

// Settings are the per-button settings the application stores for the
// plugin. Keys this package does not know about are kept when the settings
// are written back.
type Settings struct {
	IpAddress        string           `json:"ipAddress,omitempty"`
	DeviceGeneration types.Generation `json:"deviceGeneration,omitempty"`
	DeviceType       string           `json:"deviceType,omitempty"`
	ComponentId      uint             `json:"componentId,omitempty"`
	PollingInterval  int              `json:"pollingInterval,omitempty"`
	ButtonTitle      string           `json:"buttonTitle,omitempty"`
	ShowStatus       *bool            `json:"showStatus,omitempty"`
	OnStateImage     string           `json:"onStateImage,omitempty"`
	OffStateImage    string           `json:"offStateImage,omitempty"`
	Brightness       *int             `json:"brightness,omitempty"`
	RGBWColor        *light.Color     `json:"rgbwColor,omitempty"`

	// Deprecated: multi-device buttons from older versions of the plugin.
	Devices []DeviceConfig `json:"devices,omitempty"`

	raw map[string]json.RawMessage
	err error
}

type DeviceConfig struct {
	Ip            string               `json:"ip"`
	DeviceType    string               `json:"deviceType,omitempty"`
	ComponentId   uint                 `json:"componentId,omitempty"`
	ComponentType *types.ComponentKind `json:"componentType,omitempty"`
}

// ParseSettings decodes the settings of an event. Empty input gives empty
// settings. On error the fields that could be decoded are still set, and
// the settings can no longer be written back with With.
func ParseSettings(data json.RawMessage) (*Settings, error) {
	s := &Settings{raw: make(map[string]json.RawMessage)}
	if len(data) == 0 || string(data) == "null" {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.raw); err != nil {
		s.err = fmt.Errorf("invalid button settings: %w", err)
		return s, s.err
	}
	if err := json.Unmarshal(data, s); err != nil {
		s.err = fmt.Errorf("invalid button settings: %w", err)
		return s, s.err
	}
	return s, nil
}

// With returns the settings as stored by the application, with key set to
// value. It fails when the settings were not readable, so that a write
// never drops keys the plugin could not decode.
func (s *Settings) With(key string, value any) (json.RawMessage, error) {
	if s.err != nil {
		return nil, fmt.Errorf("not storing %s: %w", key, s.err)
	}
	out := make(map[string]json.RawMessage, len(s.raw)+1)
	for k, v := range s.raw {
		out[k] = v
	}
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	out[key] = v
	return json.Marshal(out)
}

// Component is the resolved kind and id of a target.
type Component struct {
	Kind types.ComponentKind
	Id   uint
}

// DefaultComponent maps a device type tag to the component a button
// controls: a light on RGBW devices, a switch otherwise.
func DefaultComponent(deviceType string, id uint) Component {
	switch deviceType {
	case types.ShellyPlusRGBWPM:
		return Component{Kind: types.Light, Id: id}
	case types.ShellyPlus1:
		return Component{Kind: types.Switch, Id: id}
	}
	return Component{Kind: types.Switch, Id: id}
}

// Targets returns the devices a button controls: the legacy device list when
// present, else the single configured address, else nothing. The component
// type of every target is resolved.
func (s *Settings) Targets() []types.Device {
	if len(s.Devices) > 0 {
		targets := make([]types.Device, 0, len(s.Devices))
		for _, d := range s.Devices {
			targets = append(targets, target(d.Ip, d.DeviceType, d.ComponentId, d.ComponentType, s.DeviceGeneration))
		}
		return targets
	}
	if s.IpAddress == "" {
		return nil
	}
	return []types.Device{target(s.IpAddress, s.DeviceType, s.ComponentId, nil, s.DeviceGeneration)}
}

func target(ip string, deviceType string, id uint, kind *types.ComponentKind, gen types.Generation) types.Device {
	if kind == nil {
		k := DefaultComponent(deviceType, id).Kind
		kind = &k
	}
	return types.Device{
		Address:       types.Address{Ip: ip, ComponentId: id},
		DeviceType:    deviceType,
		ComponentType: kind,
		Generation:    gen,
	}
}

func (s *Settings) showStatus() bool {
	return s.ShowStatus == nil || *s.ShowStatus
}

// PollInterval is the configured interval, 5s by default and never below 1s.
func (s *Settings) PollInterval() time.Duration {
	ms := s.PollingInterval
	if ms <= 0 {
		ms = types.DefaultPollPeriod
	}
	if ms < MinPollInterval {
		ms = MinPollInterval
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Settings) brightness() int {
	if s.Brightness == nil {
		return DefaultBrightness
	}
	return light.ClampBrightness(*s.Brightness)
}

func (s *Settings) color() light.Color {
	if s.RGBWColor == nil {
		b := light.MaxBrightness
		return light.Color{
			Red:        light.MaxChannel,
			Green:      light.MaxChannel,
			Blue:       light.MaxChannel,
			White:      light.MaxChannel,
			Brightness: &b,
		}
	}
	c := *s.RGBWColor
	if c.Brightness == nil {
		b := light.MaxBrightness
		c.Brightness = &b
	}
	return c
}

// dial returns v moved by ticks dial steps, within 0..100.
func dial(v int, ticks int) int {
	return light.ClampBrightness(v + ticks*dialStep)
}
