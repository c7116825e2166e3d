// Package cli implements the carousel command-line interface.
//
// The commands drive the carousel control against scene files:
//   - layout: print the targets of one layout pass
//   - render: write an SVG or JSON snapshot, optionally mid-transition
//   - tap: replay taps and print the resulting active item
//   - play: interactive terminal carousel with animated transitions
//   - serve: HTTP API over a live carousel
//   - cache: manage the artifact cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/buildinfo"
	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/pipeline"
)

const (
	appName = "carousel"
	// sharedKeyPrefix namespaces entries in a shared Redis or MongoDB cache.
	sharedKeyPrefix = appName + ":"
)

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the state shared by every command.
type CLI struct {
	Logger *log.Logger

	// RedisURL selects a shared Redis cache instead of the local file cache.
	RedisURL string

	// MongoURL selects a shared MongoDB cache. It is ignored when RedisURL
	// is set.
	MongoURL string
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the carousel command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Carousel lays out items on a 3D-style wheel",
		Long:         `Carousel computes the position, scale, rotation and stacking order of items arranged as a carousel around an active item, and animates transitions between them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.RedisURL, "redis", os.Getenv("CAROUSEL_REDIS_URL"), "redis URL for a shared artifact cache (default: local file cache)")
	root.PersistentFlags().StringVar(&c.MongoURL, "mongo", os.Getenv("CAROUSEL_MONGO_URL"), "mongodb URI for a shared artifact cache")

	root.AddCommand(
		c.layoutCommand(),
		c.renderCommand(),
		c.tapCommand(),
		c.playCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if c.shared() {
		keyer = cache.NewScopedKeyer(keyer, buildinfo.Version+":")
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// shared reports whether a cache shared between processes is configured.
func (c *CLI) shared() bool {
	return c.RedisURL != "" || c.MongoURL != ""
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.RedisURL != "" {
		return cache.NewRedisCache(ctx, c.RedisURL, sharedKeyPrefix)
	}
	if c.MongoURL != "" {
		return cache.NewMongoCache(ctx, c.MongoURL, sharedKeyPrefix)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/carousel/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
