package types

import (
	"encoding/json"
	"testing"
)

func TestAddressKey(t *testing.T) {
	a := Address{Ip: "192.168.1.10", ComponentId: 2}
	if k := a.Key(); k != "192.168.1.10-2" {
		t.Errorf("Key() = %q", k)
	}
	if a != (Address{Ip: "192.168.1.10", ComponentId: 2}) {
		t.Error("addresses with the same ip and id are not equal")
	}
}

func TestParseGeneration(t *testing.T) {
	for in, want := range map[string]Generation{"": GenUnknown, "auto": GenUnknown, "gen1": Gen1, "GEN2": Gen2, "2": Gen2} {
		got, err := ParseGeneration(in)
		if err != nil {
			t.Errorf("ParseGeneration(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseGeneration(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseGeneration("gen3"); err == nil {
		t.Error("expected error for gen3")
	}
}

// TestDeviceKind validates the explicit type first, then the device type tag
func TestDeviceKind(t *testing.T) {
	light := Light
	sw := Switch
	for _, tc := range []struct {
		d    Device
		want ComponentKind
	}{
		{Device{DeviceType: ShellyPlus1}, Switch},
		{Device{DeviceType: ShellyPlusRGBWPM}, Light},
		{Device{}, Light},
		{Device{DeviceType: ShellyPlus1, ComponentType: &light}, Light},
		{Device{DeviceType: ShellyPlusRGBWPM, ComponentType: &sw}, Switch},
	} {
		if got := tc.d.Kind(); got != tc.want {
			t.Errorf("%+v.Kind() = %v, want %v", tc.d, got, tc.want)
		}
	}
}

// TestStatusExtraRoundTrip validates that unknown Gen2 fields survive decoding
func TestStatusExtraRoundTrip(t *testing.T) {
	in := `{"id":0,"source":"http","output":true,"brightness":40,"apower":12.5}`
	var s Status
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.Brightness == nil || *s.Brightness != 40 || s.Red != nil {
		t.Errorf("unexpected light fields %+v", s)
	}
	if string(s.Extra["apower"]) != "12.5" {
		t.Errorf("apower not kept: %v", s.Extra)
	}
	if s.HasColor() {
		t.Error("HasColor() true without colour channels")
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back["apower"] != 12.5 || back["output"] != true {
		t.Errorf("unexpected marshalled status %s", out)
	}
}

func TestComponentKindText(t *testing.T) {
	var k ComponentKind
	if err := k.UnmarshalText([]byte("light")); err != nil || k != Light {
		t.Errorf("UnmarshalText(light) = %v, %v", k, err)
	}
	if Light.Api() != "Light" || Switch.Api() != "Switch" {
		t.Error("unexpected Api() names")
	}
}
