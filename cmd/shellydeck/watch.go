package main

import (
	"sync"
	"time"

	"github.com/asnowfix/shelly-deck/internal/options"
	"github.com/asnowfix/shelly-deck/pkg/shelly/poller"
	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

type watchResult struct {
	Time   time.Time     `json:"time"`
	Device string        `json:"device"`
	Kind   string        `json:"kind"`
	Status *types.Status `json:"status"`
}

var watchCmd = &cobra.Command{
	Use:   "watch <device>...",
	Short: "Poll devices and print every status until interrupted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logr.FromContextOrDiscard(ctx)

		interval := cfg.PollInterval
		if cmd.Flags().Changed("interval") {
			interval = watchInterval
		}

		var mu sync.Mutex
		show := func(d types.Device, status *types.Status) {
			mu.Lock()
			defer mu.Unlock()
			if err := options.PrintResult(watchResult{Time: time.Now(), Device: d.Key(), Kind: d.Kind().String(), Status: status}); err != nil {
				log.Error(err, "Unable to print status")
			}
		}

		registry := poller.New(ctx, newClient())
		defer registry.StopAll()
		for _, arg := range args {
			d, err := resolveTarget(cmd, arg)
			if err != nil {
				return err
			}
			registry.Start(d, show, interval)
		}
		log.Info("Watching", "devices", registry.Active(), "interval", interval)

		<-ctx.Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "polling interval (default from the configuration, 5s)")
}
