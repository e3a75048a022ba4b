// Package config provides configuration management for the goldensearch CLI.
//
// Values are layered from defaults, a goldensearch.yaml file, GOLDENSEARCH_
// environment variables and explicitly set command-line flags, in that
// order of increasing precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	StatePath     string     `koanf:"state_path"`
	Verbose       bool       `koanf:"verbose"`
	OutputFormat  string     `koanf:"output"`
	Tolerance     float64    `koanf:"tolerance"`
	HuntTolerance float64    `koanf:"hunt_tolerance"`
	CatalogFile   string     `koanf:"catalog_file"`
	Scan          ScanConfig `koanf:"scan"`

	// ConfigDir is the directory of the config file in use, or empty.
	ConfigDir string `koanf:"-"`
}

// ScanConfig holds defaults for the parametric height scan.
type ScanConfig struct {
	Min     float64 `koanf:"min"`
	Max     float64 `koanf:"max"`
	Steps   int     `koanf:"steps"`
	Workers int     `koanf:"workers"` // 0 means one per CPU
}

// Default configuration values.
const (
	DefaultStateFile     = ".goldensearch/state.db"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultTolerance     = 1e-9
	DefaultHuntTolerance = 0.01
	DefaultScanMin       = 0.05
	DefaultScanMax       = 3.0
	DefaultScanSteps     = 200
)

// Default returns a Config populated with default values only.
func Default() *Config {
	return &Config{
		StatePath:     DefaultStateFile,
		OutputFormat:  DefaultOutput,
		Tolerance:     DefaultTolerance,
		HuntTolerance: DefaultHuntTolerance,
		Scan: ScanConfig{
			Min:   DefaultScanMin,
			Max:   DefaultScanMax,
			Steps: DefaultScanSteps,
		},
	}
}
