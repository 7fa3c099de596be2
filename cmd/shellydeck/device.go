package main

import (
	"fmt"
	"net"

	"github.com/asnowfix/shelly-deck/internal/actions"
	"github.com/asnowfix/shelly-deck/internal/options"
	"github.com/asnowfix/shelly-deck/internal/tools"
	"github.com/asnowfix/shelly-deck/pkg/shelly"
	"github.com/asnowfix/shelly-deck/pkg/shelly/light"
	shellyapi "github.com/asnowfix/shelly-deck/pkg/shelly/shelly"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/spf13/cobra"
)

func init() {
	for _, cmd := range []*cobra.Command{statusCmd, onCmd, offCmd, toggleCmd, watchCmd} {
		addTargetFlags(cmd, false)
	}
}

// addTargetFlags adds --id, --kind and --gen to cmd, or to cmd and its
// subcommands when persistent.
func addTargetFlags(cmd *cobra.Command, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	fs.UintVarP(&options.Flags.ComponentId, "id", "i", 0, "component (relay or light channel) id")
	fs.StringVarP(&options.Flags.Kind, "kind", "k", "", "component kind: switch or light (default from the device type)")
	fs.StringVarP(&options.Flags.Generation, "gen", "g", "", "device generation: gen1, gen2 or auto")
}

// resolveTarget turns a configured device name or an IP address (or
// host:port) into a device, applying the target flags given on the command
// line.
func resolveTarget(cmd *cobra.Command, arg string) (types.Device, error) {
	var d types.Device
	if e, ok := cfg.Lookup(arg); ok {
		var err error
		if d, err = e.Device(); err != nil {
			return d, err
		}
	} else {
		host := arg
		if h, _, err := net.SplitHostPort(arg); err == nil {
			host = h
		}
		if host == "" {
			return d, fmt.Errorf("not a device name or address: %q", arg)
		}
		d.Ip = arg
	}

	flags := cmd.Flags()
	if flags.Changed("id") {
		d.ComponentId = options.Flags.ComponentId
	}
	if flags.Changed("gen") {
		gen, err := types.ParseGeneration(options.Flags.Generation)
		if err != nil {
			return d, err
		}
		d.Generation = gen
	}
	if flags.Changed("kind") {
		kind, err := types.ParseComponentKind(options.Flags.Kind)
		if err != nil {
			return d, err
		}
		d.ComponentType = &kind
	}
	if d.ComponentType == nil {
		kind := actions.DefaultComponent(d.DeviceType, d.ComponentId).Kind
		d.ComponentType = &kind
	}
	return d, nil
}

type detectResult struct {
	Ip         string           `json:"ip"`
	Generation types.Generation `json:"generation"`
	Model      string           `json:"model,omitempty"`
	DeviceType string           `json:"device_type,omitempty"`
	Id         string           `json:"id,omitempty"`
	Mac        string           `json:"mac,omitempty"`
	Firmware   string           `json:"firmware,omitempty"`
}

var detectCmd = &cobra.Command{
	Use:   "detect <ip>",
	Short: "Detect the device generation and model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := newClient()
		ip := args[0]
		if e, ok := cfg.Lookup(ip); ok {
			ip = e.Ip
		}

		gen := client.DetectGeneration(ctx, ip)
		if gen == types.GenUnknown {
			return fmt.Errorf("no Shelly device answered at %s", ip)
		}
		out := detectResult{Ip: ip, Generation: gen}
		if gen == types.Gen2 {
			if info := client.GetDeviceInfo(ctx, ip); info != nil {
				out.Model = info.Model
				out.DeviceType = shellyapi.ModelDeviceType(info.Model)
				out.Id = info.Id
				out.Mac = tools.NormalizeMac(info.MacAddress)
				out.Firmware = info.Version
			}
		}
		return options.PrintResult(out)
	},
}

type statusResult struct {
	Device string        `json:"device"`
	Kind   string        `json:"kind"`
	Status *types.Status `json:"status"`
}

func printStatus(cmd *cobra.Command, client *shelly.Client, d types.Device) error {
	status := client.GetStatus(cmd.Context(), d.Ip, d.Kind(), d.ComponentId, d.Generation)
	if status == nil {
		return fmt.Errorf("unable to read the %s status of %s", d.Kind(), d.Key())
	}
	return options.PrintResult(statusResult{Device: d.Key(), Kind: d.Kind().String(), Status: status})
}

var statusCmd = &cobra.Command{
	Use:   "status <device>",
	Short: "Display the status of a switch or light",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := resolveTarget(cmd, args[0])
		if err != nil {
			return err
		}
		return printStatus(cmd, newClient(), d)
	},
}

var onCmd = &cobra.Command{
	Use:   "on <device>",
	Short: "Turn a switch on, or a light on at full brightness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd, args[0], true)
	},
}

var offCmd = &cobra.Command{
	Use:   "off <device>",
	Short: "Turn a switch or light off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSwitch(cmd, args[0], false)
	},
}

func runSwitch(cmd *cobra.Command, arg string, on bool) error {
	ctx := cmd.Context()
	d, err := resolveTarget(cmd, arg)
	if err != nil {
		return err
	}
	client := newClient()

	var done bool
	if d.Kind() == types.Switch {
		done = client.SetSwitch(ctx, d.Ip, d.ComponentId, on, d.Generation)
	} else {
		brightness := 0
		if on {
			brightness = light.MaxBrightness
		}
		done = client.SetLight(ctx, d.Ip, d.ComponentId, brightness, &on)
	}
	if !done {
		return fmt.Errorf("unable to turn %s %s", d.Key(), onOff(on))
	}
	return printStatus(cmd, client, d)
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <device>",
	Short: "Toggle a switch or light",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := resolveTarget(cmd, args[0])
		if err != nil {
			return err
		}
		client := newClient()

		var done bool
		if d.Kind() == types.Switch {
			done = client.ToggleSwitch(ctx, d.Ip, d.ComponentId, d.Generation)
		} else {
			done = client.ToggleLight(ctx, d.Ip, d.ComponentId)
		}
		if !done {
			return fmt.Errorf("unable to toggle %s", d.Key())
		}
		return printStatus(cmd, client, d)
	},
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
