// Package config loads CLI settings from an optional YAML file, QWIIC_*
// environment variables and bound command-line flags, in viper's usual
// precedence (flag > env > file > default).
package config

import (
	"strings"

	"qwiic-go/errcode"
	"qwiic-go/i2cbus"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Keys as they appear in the file, and (upper-cased, '.' -> '_', QWIIC_
// prefixed) in the environment.
const (
	KeyBusName      = "bus.name"
	KeyBusFrequency = "bus.frequency_hz"
	KeyLogLevel     = "log_level"
	KeyOutput       = "output"
)

// Output formats understood by internal/render.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type Bus struct {
	Name        string `mapstructure:"name"`
	FrequencyHz uint32 `mapstructure:"frequency_hz"`
}

type Config struct {
	Bus      Bus    `mapstructure:"bus"`
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBusName, "")
	v.SetDefault(KeyBusFrequency, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOutput, OutputTable)

	v.SetEnvPrefix("QWIIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (if non-empty) into v, then decodes and validates the
// merged settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.load", Msg: file, Err: err}
		}
		log.WithField("file", v.ConfigFileUsed()).Debug("using config file")
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.decode", Err: err}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: KeyLogLevel, Err: err}
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: KeyOutput + " " + c.Output}
	}
	return nil
}

// Level is the parsed log level; Validate has already accepted it.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Transport maps the bus section onto the transport config.
func (c Config) Transport() i2cbus.Config {
	return i2cbus.Config{Name: c.Bus.Name, FrequencyHz: c.Bus.FrequencyHz}
}
