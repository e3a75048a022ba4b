package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/goldensearch/internal/cli/config"
	"github.com/leapstack-labs/goldensearch/internal/cli/output"
	"github.com/leapstack-labs/goldensearch/internal/state"
	"github.com/leapstack-labs/goldensearch/pkg/catalog"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with logger and renderer.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// OpenStore opens and migrates the run history database.
// Returns the store and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenStore() (*state.SQLiteStore, func(), error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate state database: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("failed to close state store", "error", err)
		}
	}
	return store, cleanup, nil
}

// LoadCatalog returns the default catalog merged with the configured
// formula file, or with path when it is not empty.
func (c *CommandContext) LoadCatalog(path string) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if path == "" {
		path = c.Cfg.CatalogFile
	}
	if path == "" {
		return cat, nil
	}

	user, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cat.Merge(user); err != nil {
		return nil, fmt.Errorf("failed to merge %s: %w", path, err)
	}
	c.Logger.Debug("loaded formula file", "path", path, "constants", user.Len())
	return cat, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	cfg := config.Default()
	cfg.StatePath = getEnvOrDefault(config.EnvPrefix+"STATE_PATH", cfg.StatePath)
	cfg.OutputFormat = getEnvOrDefault(config.EnvPrefix+"OUTPUT", cfg.OutputFormat)
	cfg.CatalogFile = os.Getenv(config.EnvPrefix + "CATALOG_FILE")
	cfg.Verbose = os.Getenv(config.EnvPrefix+"VERBOSE") == "true"
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// formatFloat prints v with 12 significant digits.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// formatPPM prints an error in parts per million.
func formatPPM(ppm float64) string {
	return strconv.FormatFloat(ppm, 'f', 4, 64) + " ppm"
}

// formatPercent prints an error in percent.
func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 4, 64) + "%"
}

// titleCase renders a sector name for headings.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// checkMark renders a boolean as yes/no.
func checkMark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
