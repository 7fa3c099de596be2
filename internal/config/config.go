package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/asnowfix/shelly-deck/pkg/shelly/types"

	"github.com/spf13/viper"
)

const (
	EnvPrefix           = "SHELLYDECK"
	DefaultPollInterval = types.DefaultPollPeriod * time.Millisecond
	DefaultHttpTimeout  = 5 * time.Second
)

// Config is the CLI configuration. The plugin itself is configured by the
// per-button settings of the Stream Deck application.
type Config struct {
	PollInterval time.Duration
	RateLimit    time.Duration
	HttpTimeout  time.Duration
	Devices      map[string]DeviceEntry
}

// DeviceEntry names a component so that commands can take the name instead
// of an IP address.
type DeviceEntry struct {
	Ip          string `yaml:"ip"`
	ComponentId uint   `yaml:"id"`
	Type        string `yaml:"type"`
	Kind        string `yaml:"kind"`
	Generation  string `yaml:"gen"`
}

// Dir is $XDG_CONFIG_HOME/shellydeck, or the platform equivalent.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "shellydeck")
}

// NewViper returns a viper reading file, or config.yaml in Dir() when file
// is empty, overridden by SHELLYDECK_* environment variables.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("rate_limit", time.Duration(0))
	v.SetDefault("http_timeout", DefaultHttpTimeout)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}
	return v
}

// Load reads the configuration. A missing default file is not an error; a
// missing explicit file is.
func Load(file string) (*Config, error) {
	v := NewViper(file)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}
	return LoadConfigFromViper(v)
}

func LoadConfigFromViper(v *viper.Viper) (*Config, error) {
	cfg := Config{
		PollInterval: v.GetDuration("poll_interval"),
		RateLimit:    v.GetDuration("rate_limit"),
		HttpTimeout:  v.GetDuration("http_timeout"),
		Devices:      make(map[string]DeviceEntry),
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.HttpTimeout <= 0 {
		cfg.HttpTimeout = DefaultHttpTimeout
	}

	for name := range v.GetStringMap("devices") {
		key := "devices." + name
		entry := DeviceEntry{
			Ip:          v.GetString(key + ".ip"),
			ComponentId: v.GetUint(key + ".id"),
			Type:        v.GetString(key + ".type"),
			Kind:        v.GetString(key + ".kind"),
			Generation:  v.GetString(key + ".gen"),
		}
		if entry.Ip == "" {
			return nil, fmt.Errorf("device %s has no ip", name)
		}
		if _, err := entry.Device(); err != nil {
			return nil, fmt.Errorf("device %s: %w", name, err)
		}
		cfg.Devices[name] = entry
	}
	return &cfg, nil
}

// Device converts the entry, checking its kind and generation.
func (e DeviceEntry) Device() (types.Device, error) {
	d := types.Device{
		Address:    types.Address{Ip: e.Ip, ComponentId: e.ComponentId},
		DeviceType: e.Type,
	}
	gen, err := types.ParseGeneration(e.Generation)
	if err != nil {
		return d, err
	}
	d.Generation = gen
	if e.Kind != "" {
		kind, err := types.ParseComponentKind(e.Kind)
		if err != nil {
			return d, err
		}
		d.ComponentType = &kind
	}
	return d, nil
}

// Lookup returns the named device, if configured.
func (c *Config) Lookup(name string) (DeviceEntry, bool) {
	// viper lower-cases keys
	e, ok := c.Devices[strings.ToLower(name)]
	return e, ok
}

// Names returns the configured device names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Devices))
	for name := range c.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
