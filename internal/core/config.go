package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the sync engine, store, and UI need. It is
// loaded once and passed explicitly; nothing reads viper after load.
type Config struct {
	// Endpoint is the base URL of the remote bridge store. The bridge
	// record lives at Endpoint/Bridge.
	Endpoint string `mapstructure:"endpoint"`
	// Bridge is the fixed shared record identifier. One per deployment.
	Bridge string `mapstructure:"bridge"`
	// Path is the local data directory for the durable cache.
	Path string `mapstructure:"path"`
	// MyZone and PartnerZone are IANA time zone names.
	MyZone      string `mapstructure:"my_zone"`
	PartnerZone string `mapstructure:"partner_zone"`
	// AnalysisEndpoint is the optional schedule-analysis service. Empty
	// disables analysis (the CLI falls back to the static payload).
	AnalysisEndpoint string `mapstructure:"analysis_endpoint"`
	// PullInterval is how often the engine polls the remote store.
	PullInterval time.Duration `mapstructure:"pull_interval"`
}

const configName = ".bridgecal"

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", "https://jsonblob.com/api/jsonBlob")
	v.SetDefault("bridge", "shared-bridge-v1")
	v.SetDefault("path", "~/.bridgecal")
	v.SetDefault("my_zone", "Asia/Seoul")
	v.SetDefault("partner_zone", "America/New_York")
	v.SetDefault("analysis_endpoint", "")
	v.SetDefault("pull_interval", 15*time.Second)
}

// LoadConfig reads .bridgecal.yaml from the working directory or home,
// with BRIDGECAL_* environment overrides. A missing config file is fine;
// defaults cover every key.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configName) // .yaml is implicit
	v.SetEnvPrefix("BRIDGECAL")
	v.AutomaticEnv()

	v.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PullInterval <= 0 {
		cfg.PullInterval = 15 * time.Second
	}
	return cfg, nil
}

// DataDir resolves the cache directory, expanding a leading ~.
func (c *Config) DataDir() (string, error) {
	path := c.Path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// Zones loads both IANA zones. Errors here are configuration errors; the
// rest of the program assumes valid *time.Location values.
func (c *Config) Zones() (my, partner *time.Location, err error) {
	my, err = time.LoadLocation(c.MyZone)
	if err != nil {
		return nil, nil, fmt.Errorf("load my_zone %q: %w", c.MyZone, err)
	}
	partner, err = time.LoadLocation(c.PartnerZone)
	if err != nil {
		return nil, nil, fmt.Errorf("load partner_zone %q: %w", c.PartnerZone, err)
	}
	return my, partner, nil
}

// ZoneFor returns the zone the given owner lives in.
func (c *Config) ZoneFor(owner string) string {
	if owner == "partner" {
		return c.PartnerZone
	}
	return c.MyZone
}

// WriteConfig persists the config as YAML at the given path (used by init).
func (c *Config) WriteConfig(path string) error {
	v := viper.New()
	setDefaults(v)
	v.Set("endpoint", c.Endpoint)
	v.Set("bridge", c.Bridge)
	v.Set("path", c.Path)
	v.Set("my_zone", c.MyZone)
	v.Set("partner_zone", c.PartnerZone)
	if c.AnalysisEndpoint != "" {
		v.Set("analysis_endpoint", c.AnalysisEndpoint)
	}
	return v.WriteConfigAs(path)
}
