package sswitch

// https://shelly-api-docs.shelly.cloud/gen2/ComponentsAndServices/Switch

type ToggleRequest struct {
	Id uint `json:"id"`
}

type SetRequest struct {
	Id          uint `json:"id"`                     // Id of the Switch component instance. Required
	On          bool `json:"on"`                     // true for switch on, false otherwise. Required
	ToggleAfter int  `json:"toggle_after,omitempty"` // Optional flip-back timer in seconds. Optional
}

// SetResponse is what the device echoes after Switch.Set. Firmware versions
// differ on which of the two fields they report.
type SetResponse struct {
	WasOn  *bool `json:"was_on,omitempty"`
	Output *bool `json:"output,omitempty"`
}

// Confirms reports whether the device echoed the requested output state.
func (sr *SetResponse) Confirms(on bool) bool {
	return sr != nil && sr.Output != nil && *sr.Output == on
}

type ToggleResponse struct {
	WasOn bool `json:"was_on"`
}
