// Package config defines the data structures related to configuration and
// includes functions for loading and checking the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/iwvelando/staffing-planner/pkg/constants"
	"github.com/iwvelando/staffing-planner/pkg/mathutil"
	"github.com/iwvelando/staffing-planner/pkg/solver"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables that override config keys,
// e.g. STAFFING_TARGET or STAFFING_OUTPUT_FORMAT.
const EnvPrefix = "STAFFING"

// Configuration holds all configuration for staffing-planner.
type Configuration struct {
	Roles      []solver.Role `yaml:"roles"`
	Target     int           `yaml:"target"`
	TargetUnit int           `yaml:"targetUnit,omitempty"`
	Solver     SolverConfig  `yaml:"solver,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// SolverConfig bounds the search.
type SolverConfig struct {
	Limit int `yaml:"limit,omitempty"` // maximum raw solution vectors, 0 for unlimited
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, json
	PageSize int    `yaml:"pageSize,omitempty"` // results per page
	Page     int    `yaml:"page,omitempty"`     // 1-based page to print
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys present in the file can be overridden through
// EnvPrefix environment variables.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// The document is taken as is; environment overrides do not apply, since r is
// typically a document submitted by a client.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ScaledTarget returns the target in base currency units.
func (c *Configuration) ScaledTarget() int {
	unit := c.TargetUnit
	if unit == 0 {
		unit = constants.DefaultTargetUnit
	}
	return c.Target * unit
}

// SolverRoles returns a copy of the configured roles in order.
func (c *Configuration) SolverRoles() []solver.Role {
	return append([]solver.Role(nil), c.Roles...)
}

// PageIndex returns the configured 0-based page.
func (c *Configuration) PageIndex() int {
	if c.Output.Page <= 1 {
		return 0
	}
	return c.Output.Page - 1
}

// Validate rejects settings that cannot be used, including a target whose
// scaled value does not fit in an int. Role and target checks are left to the
// planner.
func (c *Configuration) Validate() error {
	var errs []error
	if c.TargetUnit < 0 {
		errs = append(errs, fmt.Errorf("targetUnit must not be negative, got %d", c.TargetUnit))
	}
	if c.TargetUnit > 0 && (c.Target > math.MaxInt/c.TargetUnit || c.Target < math.MinInt/c.TargetUnit) {
		errs = append(errs, fmt.Errorf("target %d times targetUnit %d is out of range", c.Target, c.TargetUnit))
	}
	if c.Solver.Limit < 0 {
		errs = append(errs, fmt.Errorf("solver.limit must not be negative, got %d", c.Solver.Limit))
	}
	if c.Output.PageSize < 0 {
		errs = append(errs, fmt.Errorf("output.pageSize must not be negative, got %d", c.Output.PageSize))
	}
	if c.Output.Page < 0 {
		errs = append(errs, fmt.Errorf("output.page must not be negative, got %d", c.Output.Page))
	}
	return errors.Join(errs...)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Roles) == 0 {
		return append(warnings, "No roles configured - the result list will be empty")
	}

	costs := solver.Costs(c.Roles)
	for _, cost := range costs {
		if cost < 1 {
			// Rejected by role validation before solving.
			return warnings
		}
	}

	if g := mathutil.GCD(costs); g > 1 && c.ScaledTarget()%g != 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Target %d is not a multiple of %d, the greatest common divisor of the daily costs - no schedule can exist",
			c.ScaledTarget(), g))
	}

	return warnings
}
