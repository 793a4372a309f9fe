package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lantern/pkg/browser"
	"lantern/pkg/config"
	"lantern/pkg/css"
	"lantern/pkg/observability"
	"lantern/pkg/resource"
	"lantern/pkg/text"
)

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
	fonts  *text.FontCache
}

// NewRootCommand builds the lantern command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "lantern",
		Short:         "Lantern fetches, lays out and renders web pages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.Int("width", 800, "viewport width in pixels")
	flags.Int("height", 600, "viewport height in pixels")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRenderCommand(a), newDumpCommand(a))
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (a *app) initialize(cmd *cobra.Command) error {
	v, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{"viewport.width": "width", "viewport.height": "height"} {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			v.Set(key, flag.Value.String())
		}
	}
	if a.verbose {
		v.Set("logger.level", "debug")
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg.Logger, zapcore.AddSync(cmd.ErrOrStderr()))
	a.fonts = text.NewFontCache()
	a.logger.Debug("configuration loaded",
		zap.Int("width", cfg.Viewport.Width),
		zap.Int("height", cfg.Viewport.Height),
		zap.String("config", a.cfgFile),
	)
	return nil
}

func (a *app) newBrowser(painter browser.Painter) (*browser.Browser, error) {
	uaRules, err := css.LoadStylesheet(a.cfg.Style.UserAgentSheet)
	if err != nil {
		return nil, err
	}
	fetcher := resource.NewHTTPFetcher(a.cfg.Network.Timeout, a.cfg.Network.UserAgent, a.logger)
	return browser.New(fetcher, a.fonts, painter, a.logger, browser.Options{
		Width:          float64(a.cfg.Viewport.Width),
		Height:         float64(a.cfg.Viewport.Height),
		ScrollStep:     a.cfg.Scroll.Step,
		UserAgentRules: uaRules,
	}), nil
}

// parseTarget accepts a URL or a path to a local file.
func parseTarget(arg string) (resource.URL, error) {
	if strings.Contains(arg, "://") {
		return resource.ParseURL(arg)
	}
	path, err := filepath.Abs(arg)
	if err != nil {
		return resource.URL{}, fmt.Errorf("resolving %s: %w", arg, err)
	}
	return resource.ParseURL("file://" + filepath.ToSlash(path))
}
