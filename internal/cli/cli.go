package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/bg-waves/internal/config"
	"github.com/iburimskiy/bg-waves/internal/game"
)

// CLI holds the logger shared by all commands.
type CLI struct {
	logger *log.Logger

	// run and pickColor are swapped out in tests.
	run       func(context.Context, game.Options) error
	pickColor func(title, initial string) (string, error)
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		logger:    newLogger(w, level),
		run:       runWindow,
		pickColor: game.PickColor,
	}
}

// SetLogLevel changes the log level for subsequent output.
func (c *CLI) SetLogLevel(level log.Level) {
	c.logger.SetLevel(level)
}

func runWindow(ctx context.Context, opts game.Options) error {
	g, err := game.New(opts)
	if err != nil {
		return err
	}
	return game.Run(ctx, g)
}

type runFlags struct {
	preset     string
	configPath string
	teal       string
	blue       string
	pickColors bool
	audio      string
	width      int
	height     int
	debug      bool
}

// RootCommand builds the command tree. Running the root command with no
// subcommand is the same as "run".
func (c *CLI) RootCommand() *cobra.Command {
	var f runFlags
	root := &cobra.Command{
		Use:   "bg-waves",
		Short: "Animated wave-line background that ripples under the pointer",
		Long: `bg-waves draws horizontal sine-wave lines across a window and distorts
them with a ripple wherever the pointer or a finger is.

Keys: D toggles the debug overlay, O opens an audio file, Space pauses audio,
Esc or Q quits. The mouse wheel scrolls the infinite pattern.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         c.runE(&f),
	}
	addRunFlags(root, &f)

	root.AddCommand(c.runCommand(), c.presetsCommand())
	return root
}

func (c *CLI) runCommand() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the wave background in a window",
		Args:  cobra.NoArgs,
		RunE:  c.runE(&f),
	}
	addRunFlags(cmd, &f)
	return cmd
}

func (c *CLI) runE(f *runFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		opts, err := c.options(*f)
		if err != nil {
			return err
		}
		return c.run(cmd.Context(), opts)
	}
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	fl := cmd.Flags()
	fl.StringVarP(&f.preset, "preset", "p", config.DefaultPreset, "built-in parameter set (see 'presets')")
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML config file; overrides --preset")
	fl.StringVar(&f.teal, "teal", "", "left gradient colour (hex)")
	fl.StringVar(&f.blue, "blue", "", "right gradient colour (hex)")
	fl.BoolVar(&f.pickColors, "pick-colors", false, "choose both gradient colours in a dialog before starting")
	fl.StringVar(&f.audio, "audio", "", "audio file whose loudness drives the wave amplitude")
	fl.IntVar(&f.width, "width", config.WindowWidth, "initial window width")
	fl.IntVar(&f.height, "height", config.WindowHeight, "initial window height")
	fl.BoolVar(&f.debug, "debug", false, "show the FPS and pointer overlay")
}

func (c *CLI) options(f runFlags) (game.Options, error) {
	var (
		cfg config.Wave
		err error
	)
	if f.configPath != "" {
		var unknown []string
		cfg, unknown, err = config.Load(f.configPath)
		if err != nil {
			return game.Options{}, err
		}
		for _, k := range unknown {
			c.logger.Warn("unknown config key", "key", k, "file", f.configPath)
		}
		c.logger.Debug("loaded config", "file", f.configPath, "layout", cfg.Layout)
	} else {
		cfg, err = config.Preset(f.preset)
		if err != nil {
			return game.Options{}, err
		}
		c.logger.Debug("using preset", "name", f.preset)
	}

	theme := map[string]string{}
	teal, blue := cfg.Theme.TealFallback, cfg.Theme.BlueFallback
	if f.teal != "" {
		teal = f.teal
		theme[cfg.Theme.TealVar] = f.teal
	}
	if f.blue != "" {
		blue = f.blue
		theme[cfg.Theme.BlueVar] = f.blue
	}
	if f.pickColors {
		if teal, err = c.pickColor("Left wave colour", teal); err != nil {
			return game.Options{}, errors.Wrap(err, "pick colours")
		}
		if blue, err = c.pickColor("Right wave colour", blue); err != nil {
			return game.Options{}, errors.Wrap(err, "pick colours")
		}
		theme[cfg.Theme.TealVar] = teal
		theme[cfg.Theme.BlueVar] = blue
		c.logger.Info("colours picked", "teal", teal, "blue", blue)
	}

	return game.Options{
		Config: cfg,
		Theme:  theme,
		Audio:  f.audio,
		Width:  f.width,
		Height: f.height,
		Title:  "bg-waves (" + string(cfg.Layout) + ")",
		Debug:  f.debug,
		Logger: c.logger,
	}, nil
}

func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable("NAME", "LAYOUT", "LINES", "SPACING", "AMPLITUDE", "OPACITY", "COLOURS")
			for _, name := range config.PresetNames() {
				w, err := config.Preset(name)
				if err != nil {
					return err
				}
				lines := "auto"
				if w.Layout != config.LayoutScroll {
					lines = fmt.Sprint(w.Lines)
				}
				t.Row(name, string(w.Layout), lines,
					fmt.Sprint(w.Spacing), fmt.Sprint(w.Amplitude), fmt.Sprint(w.Opacity),
					swatch(w.Theme.TealFallback)+swatch(w.Theme.BlueFallback))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), t)
			return err
		},
	}
}
