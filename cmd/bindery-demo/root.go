package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/emilford/bindery/internal/config"
	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/internal/paths"
	"github.com/emilford/bindery/internal/pubsub"
	"github.com/emilford/bindery/internal/watcher"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/tui"
)

func init() {
	// Trigger lipgloss's background detection before any styles are built.
	// The OSC 11 query races with bubbletea's terminal setup if it happens
	// after the program starts.
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"

	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bindery-demo",
	Short: "Terminal playground for the bindery editing binding",
	Long: `bindery-demo mounts the bindery binding layer over an in-memory
surface and presents it as a terminal editor. Type, paste, click and
scroll; switch capability profiles with --platform to exercise the
fallback input paths.`,
	RunE: runApp,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .bindery/config.yaml, then ~/.config/bindery/config.yaml)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write debug logs to bindery-debug.log")
	rootCmd.Flags().Bool("read-only", false, "start with every mutation path disabled")
	rootCmd.Flags().String("platform", "", "capability profile: modern, legacy, mac-term")
	rootCmd.Flags().String("placeholder", "", "text shown while the document is empty")
	rootCmd.Flags().Bool("trace", false, "emit one span per canonical command on stdout")

	_ = viper.BindPFlag("read_only", rootCmd.Flags().Lookup("read-only"))
	_ = viper.BindPFlag("platform", rootCmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("placeholder", rootCmd.Flags().Lookup("placeholder"))
	_ = viper.BindPFlag("tracing.enabled", rootCmd.Flags().Lookup("trace"))

	rootCmd.Version = version
}

// initConfig loads configuration with this precedence: flags, then the
// config file, then defaults. The file is searched in .bindery/ first so a
// project-local config wins over the user-level one.
func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("platform", defaults.Platform)
	viper.SetDefault("read_only", defaults.ReadOnly)
	viper.SetDefault("placeholder", defaults.Placeholder)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("clipboard.mirror_to_system", defaults.Clipboard.MirrorToSystem)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(paths.ResolveConfigDir(os.Getenv("BINDERY_CONFIG_DIR")))
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bindery"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			seedDefaultConfig()
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid config: %v\n", err)
		cfg = defaults
	}
}

// seedDefaultConfig writes the commented default config to the user-level
// location and points viper at it.
func seedDefaultConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	path := filepath.Join(home, ".config", "bindery", "config.yaml")
	if err := config.WriteDefaultConfig(path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write default config: %v\n", err)
		return
	}
	viper.SetConfigFile(path)
	_ = viper.ReadInConfig()
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := tui.ApplyTheme(themeFor(cfg)); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	if debug || os.Getenv("BINDERY_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog("bindery-debug.log", "bindery")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	engine := model.NewEngine(starterDocument())
	if err := engine.Execute(model.Select{
		Range: model.Collapsed(model.Point{Path: model.Path{0, 0}, Offset: 0}),
	}); err != nil {
		return fmt.Errorf("placing initial selection: %w", err)
	}

	opts := tui.Options{
		Platform:    cfg.Platform,
		Placeholder: cfg.Placeholder,
		ReadOnly:    cfg.ReadOnly,
	}

	if cfg.Tracing.Enabled {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("creating trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.Tracing.SampleRate)),
		)
		otel.SetTracerProvider(tp)
		defer func() { _ = tp.Shutdown(context.Background()) }()
		opts.Executor = model.Traced(engine, tp.Tracer("bindery"))
	}

	zone.NewGlobal()
	defer zone.Close()

	m := tui.New(engine, opts)
	defer m.Editor().Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Clipboard.MirrorToSystem {
		go mirrorClipboard(ctx, m.Editor().Subscribe(ctx))
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if cfg.AutoReload {
		if path := viper.ConfigFileUsed(); path != "" {
			stop, err := watchConfig(path, p)
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Config watch failed", err, "path", path)
			} else {
				defer stop()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// themeFor converts the config's theme section into the adapter's theme,
// flattening nested color maps to dot-notation tokens.
func themeFor(c config.Config) tui.Theme {
	return tui.Theme{
		Mode:   c.Theme.Mode,
		Colors: c.Theme.FlattenedColors(),
	}
}

// starterDocument is the document the demo opens with: one empty paragraph,
// so the placeholder shows until the first keystroke.
func starterDocument() *model.Element {
	return model.NewElement("root",
		model.NewElement("paragraph", model.NewText("")),
	)
}

// mirrorClipboard copies the plain-text payload of every clipboard write to
// the OS clipboard, so copy and cut inside the demo reach other programs.
func mirrorClipboard(ctx context.Context, events <-chan pubsub.Event[string]) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type != pubsub.ClipboardWrittenEvent {
				continue
			}
			if err := clipboard.WriteAll(ev.Payload); err != nil {
				log.ErrorErr(log.CatClipboard, "System clipboard write failed", err)
			}
		}
	}
}

// watchConfig re-reads the config file whenever it changes on disk and sends
// the reloadable values into the running program. Returns a stop function.
func watchConfig(path string, p *tea.Program) (func(), error) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	onChange, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, err
	}

	go func() {
		for range onChange {
			if err := viper.ReadInConfig(); err != nil {
				log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", path)
				continue
			}
			var next config.Config
			if err := viper.Unmarshal(&next); err != nil {
				log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", path)
				continue
			}
			if err := config.Validate(next); err != nil {
				log.ErrorErr(log.CatConfig, "Reloaded config invalid", err, "path", path)
				continue
			}
			log.Info(log.CatWatcher, "Config reloaded", "path", path)
			p.Send(tui.ConfigReloadedMsg{
				ReadOnly:    next.ReadOnly,
				Placeholder: next.Placeholder,
				Theme:       themeFor(next),
			})
		}
	}()

	return func() { _ = w.Stop() }, nil
}
