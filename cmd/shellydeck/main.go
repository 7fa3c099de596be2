package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/asnowfix/shelly-deck/hlog"
	"github.com/asnowfix/shelly-deck/internal/config"
	"github.com/asnowfix/shelly-deck/internal/debug"
	"github.com/asnowfix/shelly-deck/internal/global"
	"github.com/asnowfix/shelly-deck/internal/options"
	"github.com/asnowfix/shelly-deck/pkg/shelly"
	"github.com/asnowfix/shelly-deck/pkg/shelly/ratelimit"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var Version = "dev"

var cfg *config.Config

var Cmd = &cobra.Command{
	Use:           "shellydeck",
	Short:         "Control Shelly devices from a Stream Deck, or from the command line",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == pluginCmd {
			hlog.InitForPlugin(options.Flags.Verbose, options.Flags.Debug)
		} else {
			hlog.Init(options.Flags.Verbose, options.Flags.Debug)
		}
		log := hlog.Logger
		ctx := logr.NewContext(cmd.Context(), log)

		var err error
		cfg, err = config.Load(options.Flags.Config)
		if err != nil {
			log.Error(err, "Failed to load configuration")
			return err
		}
		if cmd.Flags().Changed("rate-limit") {
			cfg.RateLimit = options.Flags.RateLimit
		}
		if cmd.Flags().Changed("http-timeout") && options.Flags.HttpTimeout > 0 {
			cfg.HttpTimeout = options.Flags.HttpTimeout
		}

		timeout := options.Flags.CommandTimeout
		if cmd == pluginCmd || cmd == watchCmd {
			// long-running until interrupted
			timeout = 0
		}
		if debug.IsDebuggerAttached() {
			log.Info("Running under debugger (will wait forever)")
			timeout = 0
		}
		cmd.SetContext(options.CommandLineContext(ctx, timeout, Version))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		global.Cancel(cmd.Context())
		return nil
	},
}

func init() {
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Verbose, "verbose", "v", false, "verbose output (info level, mutually exclusive with --debug)")
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Debug, "debug", "d", false, "debug output (debug level, shows V(1) logs, mutually exclusive with --verbose)")
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Json, "json", "j", false, "output in json format")
	Cmd.PersistentFlags().StringVar(&options.Flags.Config, "config", "", "configuration `file` (default "+config.Dir()+"/config.yaml)")
	Cmd.PersistentFlags().DurationVar(&options.Flags.RateLimit, "rate-limit", options.SHELLY_DEFAULT_RATE_LIMIT, "Minimum interval between commands to the same device (0 = no limit)")
	Cmd.PersistentFlags().DurationVar(&options.Flags.HttpTimeout, "http-timeout", options.HTTP_DEFAULT_TIMEOUT, "Timeout of one HTTP request to a device")
	Cmd.PersistentFlags().DurationVarP(&options.Flags.CommandTimeout, "command-timeout", "C", options.COMMAND_DEFAULT_TIMEOUT, "Maximum time to wait for command to finish (0 = wait indefinitely)")
	Cmd.PersistentFlags().BoolVar(&options.Flags.NativeToggle, "native-toggle", false, "toggle Gen2 switches with Switch.Toggle instead of reading then setting the output")

	Cmd.MarkFlagsMutuallyExclusive("verbose", "debug")

	Cmd.AddCommand(pluginCmd)
	Cmd.AddCommand(detectCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(onCmd)
	Cmd.AddCommand(offCmd)
	Cmd.AddCommand(toggleCmd)
	Cmd.AddCommand(lightCmd)
	Cmd.AddCommand(watchCmd)
	Cmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(global.Version(cmd.Context()))
		return nil
	},
}

func newClient() *shelly.Client {
	return shelly.NewClient(
		shelly.WithHTTPClient(&http.Client{Timeout: cfg.HttpTimeout}),
		shelly.WithRateLimiter(ratelimit.New(cfg.RateLimit)),
		shelly.WithNativeToggle(options.Flags.NativeToggle),
	)
}

func main() {
	cobra.EnableTraverseRunHooks = true
	Cmd.SetArgs(normalizeArgs(os.Args[1:]))
	err := Cmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
