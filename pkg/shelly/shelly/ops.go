package shelly

import (
	"context"
	"strings"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"
)

// <https://shelly-api-docs.shelly.cloud/gen2/ComponentsAndServices/Shelly>

type Verb string

func (v Verb) String() string {
	return string(v)
}

const GetDeviceInfo Verb = "Shelly.GetDeviceInfo"

func DoGetDeviceInfo(ctx context.Context, ch types.RpcChannel, host string) (*DeviceInfo, error) {
	var out DeviceInfo
	if err := ch.Get(ctx, host, types.RpcPath(GetDeviceInfo.String()), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModelDeviceType maps a Gen2 model identifier onto a known device type tag,
// or "" when the model is not one the plugin knows about.
func ModelDeviceType(model string) string {
	switch {
	case strings.Contains(model, "PlusRGBWPM"):
		return types.ShellyPlusRGBWPM
	case strings.Contains(model, "Plus1"):
		return types.ShellyPlus1
	}
	return ""
}
