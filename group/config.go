// SPDX-License-Identifier: MIT

package group

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlinalg/internal/transport"
)

// Transport kinds accepted by Config.Transport.
const (
	TransportLocal = "local" // single process, no network
	TransportWS    = "ws"    // websocket links between processes
)

// flagPrefix marks the launch flags Init consumes from args.
const flagPrefix = "group-"

// Config is the launch configuration of one rank.
type Config struct {
	Transport   string   `toml:"transport" yaml:"transport"`
	Rank        int      `toml:"rank" yaml:"rank"`
	Peers       []string `toml:"peers" yaml:"peers"`
	Path        string   `toml:"path" yaml:"path"`
	DialTimeout string   `toml:"dial_timeout" yaml:"dial_timeout"`
	LogLevel    string   `toml:"log_level" yaml:"log_level"`
	LogFormat   string   `toml:"log_format" yaml:"log_format"`
}

// DefaultConfig runs a single local rank with text logs at info level.
func DefaultConfig() Config {
	return Config{
		Transport:   TransportLocal,
		Path:        transport.DefaultPath,
		DialTimeout: transport.DefaultDialTimeout.String(),
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, groupErrorf("group.LoadConfig", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = fmt.Errorf("%w: unsupported config file %q", ErrBadConfig, path)
	}
	if err != nil {
		return cfg, groupErrorf("group.LoadConfig", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the fields Init depends on.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportLocal:
		if c.Rank != 0 {
			return fmt.Errorf("%w: local transport runs rank 0 only, got %d", ErrBadConfig, c.Rank)
		}
	case TransportWS:
		if len(c.Peers) == 0 {
			return fmt.Errorf("%w: ws transport needs peers", ErrBadConfig)
		}
		if c.Rank < 0 || c.Rank >= len(c.Peers) {
			return fmt.Errorf("%w: rank %d outside %d peers", ErrBadConfig, c.Rank, len(c.Peers))
		}
	default:
		return fmt.Errorf("%w: transport %q", ErrBadConfig, c.Transport)
	}
	if _, err := c.dialTimeout(); err != nil {
		return err
	}

	return nil
}

func (c Config) dialTimeout() (time.Duration, error) {
	if c.DialTimeout == "" {
		return transport.DefaultDialTimeout, nil
	}
	d, err := time.ParseDuration(c.DialTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: dial_timeout: %v", ErrBadConfig, err)
	}

	return d, nil
}

// splitArgs separates the -group-* launch flags from the caller's own
// arguments. Both "-group-x=v" and "-group-x v" forms are accepted.
func splitArgs(args []string) (launch, rest []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		name := strings.TrimLeft(a, "-")
		if !strings.HasPrefix(a, "-") || !strings.HasPrefix(name, flagPrefix) {
			rest = append(rest, a)
			continue
		}
		launch = append(launch, a)
		if !strings.Contains(name, "=") && i+1 < len(args) {
			i++
			launch = append(launch, args[i])
		}
	}

	return launch, rest
}

// applyFlags parses launch flags over cfg. -group-config is read first so
// explicit flags override the file.
func applyFlags(cfg Config, launch []string) (Config, error) {
	fs := flag.NewFlagSet("group", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String(flagPrefix+"config", "", "TOML or YAML launch configuration file")
	rank := fs.Int(flagPrefix+"rank", -1, "rank of this process")
	peers := fs.String(flagPrefix+"peers", "", "comma-separated host:port of every rank")
	kind := fs.String(flagPrefix+"transport", "", "transport: local or ws")
	level := fs.String(flagPrefix+"log-level", "", "debug, info, warn or error")
	if err := fs.Parse(launch); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if *file != "" {
		loaded, err := LoadConfig(*file)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if *peers != "" {
		cfg.Peers = strings.Split(*peers, ",")
		if *kind == "" {
			cfg.Transport = TransportWS
		}
	}
	if *rank >= 0 {
		cfg.Rank = *rank
	}
	if *kind != "" {
		cfg.Transport = *kind
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	return cfg, cfg.Validate()
}
