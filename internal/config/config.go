// Package config loads algotrace settings from file, environment and
// defaults.
package config

import (
	"errors"
	"slices"

	"github.com/Sumatoshi-tech/algotrace/internal/catalog"
	"github.com/Sumatoshi-tech/algotrace/internal/report"
)

// Color mode constants.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults applied by LoadConfig before file and environment overrides.
const (
	DefaultStructure       = catalog.RBTree
	DefaultCapacity        = 64
	DefaultFormat          = report.FormatText
	DefaultColor           = ColorAuto
	DefaultDiagnosticsAddr = ""
	DefaultMCPLogJSON      = true
)

// Config is the top-level configuration struct for algotrace.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Structure   string            `mapstructure:"structure"`
	Capacity    int               `mapstructure:"capacity"`
	Format      string            `mapstructure:"format"`
	Color       string            `mapstructure:"color"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	MCP         MCPConfig         `mapstructure:"mcp"`
}

// DiagnosticsConfig holds the optional diagnostics server settings. An
// empty Addr leaves the server off.
type DiagnosticsConfig struct {
	Addr string `mapstructure:"addr"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	LogJSON bool `mapstructure:"log_json"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidStructure indicates the structure is not a registered name.
	ErrInvalidStructure = errors.New("structure must be a registered structure name")
	// ErrInvalidCapacity indicates the capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be positive")
	// ErrInvalidFormat indicates the format is not a known output format.
	ErrInvalidFormat = errors.New("format must be one of text, json, yaml")
	// ErrInvalidColor indicates the color mode is unknown.
	ErrInvalidColor = errors.New("color must be one of auto, always, never")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if !catalog.Known(c.Structure) {
		return ErrInvalidStructure
	}

	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}

	if !slices.Contains(report.Formats(), c.Format) {
		return ErrInvalidFormat
	}

	if c.Color != ColorAuto && c.Color != ColorAlways && c.Color != ColorNever {
		return ErrInvalidColor
	}

	return nil
}
