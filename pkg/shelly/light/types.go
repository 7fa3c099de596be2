package light

// https://shelly-api-docs.shelly.cloud/gen2/ComponentsAndServices/Light
// https://shelly-api-docs.shelly.cloud/gen2/ComponentsAndServices/RGBW

const (
	MaxBrightness = 100
	MaxChannel    = 255
)

// SetRequest only carries the fields that are set: an omitted On leaves the
// power state of the device untouched.
type SetRequest struct {
	Id         uint  `json:"id"`                   // Id of the Light component instance. Required
	On         *bool `json:"on,omitempty"`         // True for light output on, false otherwise. Optional
	Brightness *int  `json:"brightness,omitempty"` // Brightness level, 0..100. Optional
	Red        *int  `json:"red,omitempty"`        // Red channel, 0..255. Optional
	Green      *int  `json:"green,omitempty"`      // Green channel, 0..255. Optional
	Blue       *int  `json:"blue,omitempty"`       // Blue channel, 0..255. Optional
	White      *int  `json:"white,omitempty"`      // White channel, 0..255. Optional
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampBrightness bounds a brightness to 0..100.
func ClampBrightness(b int) int {
	return clamp(b, 0, MaxBrightness)
}

// ClampChannel bounds a colour channel to 0..255.
func ClampChannel(c int) int {
	return clamp(c, 0, MaxChannel)
}

// Color is an RGBW colour plus an optional brightness.
type Color struct {
	Red        int  `json:"red"`
	Green      int  `json:"green"`
	Blue       int  `json:"blue"`
	White      int  `json:"white"`
	Brightness *int `json:"brightness,omitempty"`
}

// Clamped returns a copy with every channel and the brightness in range.
func (c Color) Clamped() Color {
	out := Color{
		Red:   ClampChannel(c.Red),
		Green: ClampChannel(c.Green),
		Blue:  ClampChannel(c.Blue),
		White: ClampChannel(c.White),
	}
	if c.Brightness != nil {
		b := ClampBrightness(*c.Brightness)
		out.Brightness = &b
	}
	return out
}

// SetRequest builds a Light.Set request for the (already clamped) colour.
func (c Color) SetRequest(id uint) *SetRequest {
	return &SetRequest{
		Id:         id,
		Red:        &c.Red,
		Green:      &c.Green,
		Blue:       &c.Blue,
		White:      &c.White,
		Brightness: c.Brightness,
	}
}
