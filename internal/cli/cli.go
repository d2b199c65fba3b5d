package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autofeyn/pkg/buildinfo"
	"github.com/matzehuels/autofeyn/pkg/cache"
	"github.com/matzehuels/autofeyn/pkg/pager"
	"github.com/matzehuels/autofeyn/pkg/session"
)

const appName = "autofeyn"

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries what every command shares: for now only the logger, which
// commands reach through their context.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand assembles the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Autofeyn enumerates Feynman diagrams of toy QED",
		Long: `Autofeyn completes partial QED diagrams. Given named external electrons,
positrons and photons and a set of electromagnetic vertices, it lists every
connected way of wiring them together, lazily and in a stable order.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(
		c.enumerateCommand(),
		c.countCommand(),
		c.browseCommand(),
		c.serveCommand(),
		c.particlesCommand(),
		c.sessionsCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// newRunner creates a pager runner for CLI use. Sessions live in memory for
// the lifetime of the command.
func (c *CLI) newRunner(noCache bool) (*pager.Runner, error) {
	cch, err := newCache(noCache, "")
	if err != nil {
		return nil, err
	}
	return pager.NewRunner(session.NewMemoryStore(), cch, newKeyer(), c.Logger), nil
}

// newCache opens the count cache in dir, or in the default cache directory
// when dir is empty. A missing home directory disables caching.
func newCache(noCache bool, dir string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
}

// cacheDir is $XDG_CACHE_HOME/autofeyn, falling back to ~/.cache/autofeyn.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
