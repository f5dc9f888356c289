package kalman

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMinNoiseFloor is the default noise floor
	DefaultMinNoiseFloor = 1e-12
	// DefaultCondThreshold is the default innovation covariance condition number threshold
	DefaultCondThreshold = 1e12
)

// Config contains Kalman filter numerical configuration.
// The zero value is usable: zero thresholds resolve to their defaults
// and covariance symmetrization stays enabled.
type Config struct {
	// MinNoiseFloor replaces an exactly zero innovation variance
	MinNoiseFloor float64 `yaml:"min_noise_floor"`
	// CondThreshold is the largest accepted innovation covariance condition number
	CondThreshold float64 `yaml:"cond_threshold"`
	// SkipSymmetrize disables averaging the covariance with its transpose after every update
	SkipSymmetrize bool `yaml:"skip_symmetrize"`
	// JosephForm enables Joseph form covariance update
	JosephForm bool `yaml:"joseph_form"`
}

// DefaultConfig returns default filter configuration.
func DefaultConfig() *Config {
	return &Config{
		MinNoiseFloor: DefaultMinNoiseFloor,
		CondThreshold: DefaultCondThreshold,
	}
}

// ParseConfig decodes YAML encoded configuration from data.
// Options missing from data keep their default values.
// It returns error if data can not be decoded or the decoded configuration is invalid.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate returns error if the noise floor or the condition number threshold
// is either negative or not a finite number.
func (c *Config) Validate() error {
	if c.MinNoiseFloor < 0 || math.IsNaN(c.MinNoiseFloor) || math.IsInf(c.MinNoiseFloor, 0) {
		return fmt.Errorf("invalid noise floor: %v", c.MinNoiseFloor)
	}

	if c.CondThreshold < 0 || math.IsNaN(c.CondThreshold) || math.IsInf(c.CondThreshold, 0) {
		return fmt.Errorf("invalid condition number threshold: %v", c.CondThreshold)
	}

	return nil
}

// Resolve returns a validated copy of c with zero thresholds replaced by their defaults.
// nil c resolves to DefaultConfig.
func Resolve(c *Config) (*Config, error) {
	if c == nil {
		return DefaultConfig(), nil
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	rc := *c
	if rc.MinNoiseFloor == 0 {
		rc.MinNoiseFloor = DefaultMinNoiseFloor
	}
	if rc.CondThreshold == 0 {
		rc.CondThreshold = DefaultCondThreshold
	}

	return &rc, nil
}
