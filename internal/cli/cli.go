// Package cli implements the phpgen command-line interface.
//
// Commands browse the framework catalog, preview and "generate" projects,
// run the interactive terminal form and serve the web UI. The CLI is built
// on cobra; output is styled with lipgloss and logs go through
// charmbracelet/log. All commands accept --verbose (-v) for debug logging
// and --config to point at a phpgen.yaml.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/phpgen/internal/config"
	"github.com/matzehuels/phpgen/pkg/buildinfo"
	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/catalog"
	"github.com/matzehuels/phpgen/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "phpgen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	viper      *viper.Viper
	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		viper:  config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "phpgen bootstraps PHP framework projects",
		Long:          `phpgen helps you configure a new PHP project: pick a framework (Laravel, Symfony, CodeIgniter, Slim or Lumen), a PHP version and Composer dependencies, and preview the resulting project.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetCatalogHooks(logHooks{c.Logger})
			observability.SetGenerateHooks(logHooks{c.Logger})
			observability.SetCacheHooks(logHooks{c.Logger})
			observability.SetHTTPHooks(logHooks{c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./phpgen.yaml or $XDG_CONFIG_HOME/phpgen/phpgen.yaml)")

	root.AddCommand(c.frameworksCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads phpgen.yaml, the environment and bound flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.viper, c.configFile)
	if err != nil {
		return nil, err
	}
	if used := config.ConfigFileUsed(c.viper); used != "" {
		c.Logger.Debug("loaded config", "file", used)
	}
	return cfg, nil
}

// newCache opens the on-disk cache, or a no-op cache when disabled or when
// no cache directory is available.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory (~/.cache/phpgen on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// completeFrameworks offers framework IDs for shell completion.
func completeFrameworks(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return catalog.IDs(), cobra.ShellCompDirectiveNoFileComp
}
