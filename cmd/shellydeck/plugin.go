package main

import (
	"github.com/asnowfix/shelly-deck/internal/actions"
	"github.com/asnowfix/shelly-deck/internal/global"
	"github.com/asnowfix/shelly-deck/internal/streamdeck"
	"github.com/asnowfix/shelly-deck/pkg/shelly/poller"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var pluginFlags struct {
	port          int
	pluginUUID    string
	registerEvent string
	info          string
}

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Run as a Stream Deck plugin (started by the Stream Deck application)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logr.FromContextOrDiscard(ctx)

		info, err := streamdeck.ParseInfo(pluginFlags.info)
		if err != nil {
			log.Error(err, "Ignoring launch information")
		} else {
			log.Info("Starting plugin", "version", global.Version(ctx), "application", info.Application.Version, "platform", info.Application.Platform, "devices", len(info.Devices))
		}

		conn, err := streamdeck.Connect(ctx, pluginFlags.port, pluginFlags.pluginUUID, pluginFlags.registerEvent)
		if err != nil {
			log.Error(err, "Unable to connect to the Stream Deck application")
			return err
		}
		defer conn.Close()

		client := newClient()
		plugin := actions.NewPlugin(client, conn, poller.New(global.ProcessContext(ctx), client))
		defer plugin.Close()

		return conn.Run(ctx, plugin)
	},
}

func init() {
	pluginCmd.Flags().IntVar(&pluginFlags.port, "port", 0, "Stream Deck application WebSocket port")
	pluginCmd.Flags().StringVar(&pluginFlags.pluginUUID, "pluginUUID", "", "plugin registration UUID")
	pluginCmd.Flags().StringVar(&pluginFlags.registerEvent, "registerEvent", "registerPlugin", "registration event name")
	pluginCmd.Flags().StringVar(&pluginFlags.info, "info", "", "application and device information (JSON)")
	pluginCmd.MarkFlagRequired("port")
	pluginCmd.MarkFlagRequired("pluginUUID")
}
