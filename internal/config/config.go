// Package config loads tsdist's runtime configuration from flags,
// TSDIST_-prefixed environment variables, and a config file, in that
// precedence order, via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Device   DeviceConfig  `mapstructure:"device"`
	Server   ServerConfig  `mapstructure:"server"`
	Compute  ComputeConfig `mapstructure:"compute"`
	LogLevel string        `mapstructure:"log_level"`
}

// DeviceConfig controls which execution backend an Engine binds to and the
// resource budgets it schedules within.
type DeviceConfig struct {
	Backend        string `mapstructure:"backend"`
	WarpWidth      int    `mapstructure:"warp_width"`
	MaxBufferBytes int64  `mapstructure:"max_buffer_bytes"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_secs"`
	MaxSeriesLen    int    `mapstructure:"max_series_len"`
	RequestTimeout  int    `mapstructure:"request_timeout_secs"`
}

// ComputeConfig carries measure parameters that aren't passed per-request
// on the CLI, matching the defaults tsdistances_gpu ships.
type ComputeConfig struct {
	GapPenalty float64 `mapstructure:"gap_penalty"`
	Epsilon    float64 `mapstructure:"epsilon"`
	Stiffness  float64 `mapstructure:"stiffness"`
	Penalty    float64 `mapstructure:"penalty"`
	ADTWWeight float64 `mapstructure:"adtw_weight"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Device: DeviceConfig{
			Backend:        "software",
			WarpWidth:      32,
			MaxBufferBytes: 256 << 20,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			ShutdownTimeout: 30,
			MaxSeriesLen:    1 << 16,
			RequestTimeout:  60,
		},
		Compute: ComputeConfig{
			GapPenalty: 0,
			Epsilon:    1,
			Stiffness:  0.001,
			Penalty:    1,
			ADTWWeight: 0.1,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("backend", defaults.Device.Backend, "Execution backend (software|vulkan)")
	fs.Int("warp-width", defaults.Device.WarpWidth, "Diamond warp width (lanes per diagonal step)")
	fs.Int64("max-buffer-bytes", defaults.Device.MaxBufferBytes, "Device diagonal buffer budget in bytes")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent distance requests for serve command")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain timeout in seconds")
	fs.Int("max-series-len", defaults.Server.MaxSeriesLen, "Maximum accepted series length per request")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request compute timeout in seconds")
	fs.Float64("gap-penalty", defaults.Compute.GapPenalty, "ERP gap penalty")
	fs.Float64("epsilon", defaults.Compute.Epsilon, "LCSS match threshold")
	fs.Float64("stiffness", defaults.Compute.Stiffness, "TWE stiffness")
	fs.Float64("penalty", defaults.Compute.Penalty, "TWE delete penalty")
	fs.Float64("adtw-weight", defaults.Compute.ADTWWeight, "ADTW additive penalty")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("TSDIST")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tsdist")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	normalized, err := NormalizeBackend(cfg.Device.Backend)
	if err != nil {
		return Config{}, err
	}
	cfg.Device.Backend = normalized

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("device.backend", c.Device.Backend)
	v.SetDefault("device.warp_width", c.Device.WarpWidth)
	v.SetDefault("device.max_buffer_bytes", c.Device.MaxBufferBytes)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.shutdown_timeout_secs", c.Server.ShutdownTimeout)
	v.SetDefault("server.max_series_len", c.Server.MaxSeriesLen)
	v.SetDefault("server.request_timeout_secs", c.Server.RequestTimeout)
	v.SetDefault("compute.gap_penalty", c.Compute.GapPenalty)
	v.SetDefault("compute.epsilon", c.Compute.Epsilon)
	v.SetDefault("compute.stiffness", c.Compute.Stiffness)
	v.SetDefault("compute.penalty", c.Compute.Penalty)
	v.SetDefault("compute.adtw_weight", c.Compute.ADTWWeight)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("device.backend", "backend")
	v.RegisterAlias("device.warp_width", "warp-width")
	v.RegisterAlias("device.max_buffer_bytes", "max-buffer-bytes")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.workers", "workers")
	v.RegisterAlias("server.shutdown_timeout_secs", "shutdown-timeout")
	v.RegisterAlias("server.max_series_len", "max-series-len")
	v.RegisterAlias("server.request_timeout_secs", "request-timeout")
	v.RegisterAlias("compute.gap_penalty", "gap-penalty")
	v.RegisterAlias("compute.epsilon", "epsilon")
	v.RegisterAlias("compute.stiffness", "stiffness")
	v.RegisterAlias("compute.penalty", "penalty")
	v.RegisterAlias("compute.adtw_weight", "adtw-weight")
	v.RegisterAlias("log_level", "log-level")
}
