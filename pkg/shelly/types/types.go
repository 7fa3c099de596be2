package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Generation of the device firmware API. The zero value means the generation
// has not been resolved yet and must be probed.
type Generation uint

const (
	GenUnknown Generation = iota
	Gen1
	Gen2
)

func (g Generation) String() string {
	return [...]string{"auto", "gen1", "gen2"}[g]
}

// ParseGeneration maps the host setting value onto a Generation. "auto" and
// the empty string both mean GenUnknown.
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return GenUnknown, nil
	case "gen1", "1":
		return Gen1, nil
	case "gen2", "2":
		return Gen2, nil
	}
	return GenUnknown, fmt.Errorf("unknown device generation: %q", s)
}

func (g Generation) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Generation) UnmarshalText(text []byte) error {
	v, err := ParseGeneration(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ComponentKind is the kind of addressable component on a device.
type ComponentKind uint

const (
	Switch ComponentKind = iota
	Light
)

func (k ComponentKind) String() string {
	return [...]string{"switch", "light"}[k]
}

// Api returns the Gen2 RPC component name, as used in "<Api>.GetStatus".
func (k ComponentKind) Api() string {
	return [...]string{"Switch", "Light"}[k]
}

func ParseComponentKind(s string) (ComponentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "switch", "relay":
		return Switch, nil
	case "light":
		return Light, nil
	}
	return Switch, fmt.Errorf("unknown component kind: %q", s)
}

func (k ComponentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ComponentKind) UnmarshalText(text []byte) error {
	v, err := ParseComponentKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Known device type tags
const (
	ShellyPlus1       = "shelly-plus-1"
	ShellyPlusRGBWPM  = "shelly-plus-rgbw-pm"
	DefaultPollPeriod = 5000 // milliseconds
)

// Address identifies one component on one physical device.
type Address struct {
	Ip          string `json:"ip"`
	ComponentId uint   `json:"componentId"`
}

// Key is the registry lookup key: "<ip>-<componentId>".
func (a Address) Key() string {
	return fmt.Sprintf("%s-%d", a.Ip, a.ComponentId)
}

func (a Address) String() string {
	return a.Key()
}

// Device is a poll target: an address plus the hints needed to pick the
// component kind and the wire generation.
type Device struct {
	Address
	DeviceType    string         `json:"deviceType,omitempty"`
	ComponentType *ComponentKind `json:"componentType,omitempty"`
	Generation    Generation     `json:"generation,omitempty"`
}

// Kind returns the explicit component type when set, otherwise switch for a
// Plus 1 relay and light for anything else.
func (d Device) Kind() ComponentKind {
	if d.ComponentType != nil {
		return *d.ComponentType
	}
	if d.DeviceType == ShellyPlus1 {
		return Switch
	}
	return Light
}

// Status is the last observed state of a component. Optional fields are nil
// when the device did not report them (Gen1 relays, Gen2 switches).
type Status struct {
	Id         int    `json:"id"`
	Source     string `json:"source"`
	Output     bool   `json:"output"`
	Brightness *int   `json:"brightness,omitempty"`
	Red        *int   `json:"red,omitempty"`
	Green      *int   `json:"green,omitempty"`
	Blue       *int   `json:"blue,omitempty"`
	White      *int   `json:"white,omitempty"`

	// Every other field reported by a Gen2 device (apower, voltage, temperature...)
	Extra map[string]json.RawMessage `json:"-"`
}

// HasColor reports whether the device reported at least one colour channel.
func (s *Status) HasColor() bool {
	return s.Red != nil || s.Green != nil || s.Blue != nil
}

var statusFields = map[string]struct{}{
	"id": {}, "source": {}, "output": {}, "brightness": {},
	"red": {}, "green": {}, "blue": {}, "white": {},
}

func (s *Status) UnmarshalJSON(data []byte) error {
	type noMethod Status
	var ns noMethod
	if err := json.Unmarshal(data, &ns); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k := range statusFields {
		delete(all, k)
	}
	if len(all) > 0 {
		ns.Extra = all
	}
	*s = Status(ns)
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	type noMethod Status
	known, err := json.Marshal(noMethod(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return known, nil
	}
	merged := make(map[string]json.RawMessage, len(s.Extra)+len(statusFields))
	for k, v := range s.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}
