package options

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asnowfix/shelly-deck/internal/global"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"
)

const COMMAND_DEFAULT_TIMEOUT time.Duration = 0 // No timeout by default (wait indefinitely)

const SHELLY_DEFAULT_RATE_LIMIT time.Duration = 0 // No spacing between commands by default

const HTTP_DEFAULT_TIMEOUT time.Duration = 5 * time.Second

var Flags struct {
	Verbose        bool
	Debug          bool
	Json           bool
	Config         string
	CommandTimeout time.Duration // the value taken by --command-timeout / -C
	HttpTimeout    time.Duration // the value taken by --http-timeout
	RateLimit      time.Duration // the value taken by --rate-limit
	NativeToggle   bool
	ComponentId    uint
	Kind           string
	Generation     string
}

// CommandLineContext returns the context of one command: cancelled on
// SIGINT/SIGTERM or after timeout (0 means no timeout). The process-wide
// context it derives from is stored in it for background work.
func CommandLineContext(ctx context.Context, timeout time.Duration, version string) context.Context {
	var cancel context.CancelFunc

	processCtx, processCancel := context.WithCancel(ctx)

	if timeout > 0 {
		ctx, cancel = context.WithTimeout(processCtx, timeout)
	} else {
		ctx, cancel = context.WithCancel(processCtx)
	}
	ctx = context.WithValue(ctx, global.CancelKey, cancel)
	ctx = context.WithValue(ctx, global.ProcessContextKey, processCtx)
	ctx = context.WithValue(ctx, global.VersionKey, version)

	go func() {
		log := logr.FromContextOrDiscard(ctx)
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		select {
		case <-signals:
			log.Info("Received signal")
		case <-processCtx.Done():
		}
		cancel()
		processCancel()
	}()
	return ctx
}

func PrintResult(out any) error {
	return WriteResult(os.Stdout, out)
}

// WriteResult writes out as JSON with --json, as YAML otherwise. YAML is
// rendered from the JSON form so both use the same field names.
func WriteResult(w io.Writer, out any) error {
	s, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if Flags.Json {
		_, err = fmt.Fprintln(w, string(s))
		return err
	}
	var generic any
	if err := json.Unmarshal(s, &generic); err != nil {
		return err
	}
	y, err := yaml.Marshal(generic)
	if err != nil {
		return err
	}
	_, err = w.Write(y)
	return err
}
