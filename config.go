package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by every command.
type Config struct {
	LogLevel  string
	NoColor   bool
	Precision int
	Threshold float64
}

func NewConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Precision: 4,
		Threshold: -1,
	}
}

// Flag names double as viper keys; QSIM_LOG_LEVEL sets "log-level".
const (
	keyLogLevel  = "log-level"
	keyNoColor   = "no-color"
	keyPrecision = "precision"
	keyThreshold = "threshold"
)

func registerFlags(flags *pflag.FlagSet) {
	def := NewConfig()
	flags.String(keyLogLevel, def.LogLevel, "log level (debug, info, warn, error)")
	flags.Bool(keyNoColor, def.NoColor, "disable colored output")
	flags.Int(keyPrecision, def.Precision, "decimals printed per amplitude")
	flags.Float64(keyThreshold, def.Threshold, "hide basis states at or below this probability (negative shows all)")
}

// newViper binds flags and QSIM_* environment variables. Flags win.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("QSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		LogLevel:  v.GetString(keyLogLevel),
		NoColor:   v.GetBool(keyNoColor),
		Precision: v.GetInt(keyPrecision),
		Threshold: v.GetFloat64(keyThreshold),
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Precision < 0 || cfg.Precision > 12 {
		return nil, fmt.Errorf("config: precision %d not in [0, 12]", cfg.Precision)
	}
	return cfg, nil
}
