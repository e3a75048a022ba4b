package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/goldensearch/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.StatePath == "" {
		errs = append(errs, errors.New("state_path is required"))
	}
	if !(c.Tolerance > 0) {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %g", c.Tolerance))
	}
	if !(c.HuntTolerance > 0) {
		errs = append(errs, fmt.Errorf("hunt_tolerance must be positive, got %g", c.HuntTolerance))
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Scan.Steps < 2 {
		errs = append(errs, fmt.Errorf("scan.steps must be at least 2, got %d", c.Scan.Steps))
	}
	if c.Scan.Workers < 0 {
		errs = append(errs, fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers))
	}
	if !(c.Scan.Min > 0) || !(c.Scan.Max > c.Scan.Min) {
		errs = append(errs, fmt.Errorf("scan range must satisfy 0 < min < max, got [%g, %g]", c.Scan.Min, c.Scan.Max))
	}

	return errors.Join(errs...)
}
