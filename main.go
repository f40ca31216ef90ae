package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"flowcanvas/config"
	"flowcanvas/graph"
	"flowcanvas/host"
	"flowcanvas/internal/log"
	"flowcanvas/script"
	"flowcanvas/viewport"
)

var version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	run := newRunCommand(&configPath)

	root := &cobra.Command{
		Use:   "flowcanvas",
		Short: "Pan and zoom a diagram canvas",
		Long: `flowcanvas opens an infinite canvas with a node graph that can be dragged,
wheel-zoomed and pinched. It can also drive the viewport headlessly from
Starlark scripts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	root.Flags().AddFlagSet(run.Flags())

	root.AddCommand(run)
	root.AddCommand(newScriptCommand(&configPath))
	root.AddCommand(newCheckCommand(&configPath))
	return root
}

// loadConfig resolves, loads, overrides and validates the config, then
// initializes logging from it.
func loadConfig(path string) (config.AppConfig, string, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Defaults(), "", err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}
	config.ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("%s: %w", path, err)
	}
	log.Init(cfg.Logging)
	return cfg, path, nil
}

func newRunCommand(configPath *string) *cobra.Command {
	var statePath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the canvas window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()
			logger := log.WithComponent("cli")

			opts := GameOptions{
				Config: cfg,
				Face:   LoadUIFont(logger, uiFontPath, 14),
				Log:    log.L(),
				Debug:  debug,
			}
			if statePath != "" {
				state, err := LoadViewState(statePath)
				switch {
				case err == nil:
					opts.State = &state
				case errors.Is(err, fs.ErrNotExist):
					logger.Info("no saved view state, starting fresh", "path", statePath)
				default:
					return err
				}
			}

			g, err := NewGame(opts)
			if err != nil {
				return err
			}
			defer g.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if w, err := config.NewWatcher(path, 0); err != nil {
				logger.Warn("config hot reload disabled", "err", err)
			} else {
				go w.Run(ctx, func(c config.AppConfig, err error) {
					if err != nil {
						g.ReportError(err)
						return
					}
					g.Reload(c)
				})
			}

			ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
			ebiten.SetWindowTitle(cfg.Window.Title)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			if err := ebiten.RunGame(g); err != nil {
				return fmt.Errorf("run game: %w", err)
			}

			if statePath != "" {
				t, gr, selected := g.View()
				if err := SaveViewState(statePath, t, gr, selected); err != nil {
					return fmt.Errorf("save view state: %w", err)
				}
				logger.Info("view state saved", "path", statePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&statePath, "state", "", "view state file to restore on start and save on exit")
	cmd.Flags().BoolVar(&debug, "debug", false, "show the debug panel (toggle with F3)")
	return cmd
}

func newScriptCommand(configPath *string) *cobra.Command {
	var statePath string
	var width, height int

	cmd := &cobra.Command{
		Use:   "script <file.star>",
		Short: "Run a viewport script headlessly and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			vc, err := cfg.Viewport.ToViewport()
			if err != nil {
				return err
			}
			vc.Logger = log.L()
			e, err := viewport.New(vc)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.Window.Width
			}
			if height <= 0 {
				height = cfg.Window.Height
			}
			defer e.SetContainer(host.NewBox("surface", 0, 0, float64(width), float64(height)))()

			gr := demoGraph()
			if err := graph.Layered(gr, LayoutColumnGap, LayoutRowGap); err != nil {
				return err
			}
			if statePath != "" {
				state, err := LoadViewState(statePath)
				if err != nil {
					return err
				}
				gr = &state.Graph
				e.SetTransform(state.ViewportTransform())
			}

			r := &script.Runner{View: e, Content: gr.Bounds, Log: log.WithComponent("script")}
			out, err := r.Run(args[0], string(src), map[string]interface{}{
				"width":  width,
				"height": height,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			t := e.Transform()
			fmt.Fprintf(w, "transform: x=%g y=%g zoom=%g\n", t.X, t.Y, t.Zoom)
			fmt.Fprintf(w, "style: %s\n", e.TransformStyle())
			keys := make([]string, 0, len(out))
			for k := range out {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "%s = %v\n", k, out[k])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&statePath, "state", "", "view state file providing the graph and starting transform")
	cmd.Flags().IntVar(&width, "width", 0, "surface width (default: window width)")
	cmd.Flags().IntVar(&height, "height", 0, "surface height (default: window height)")
	return cmd
}

func newCheckCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check [state.yaml...]",
		Short: "Validate the config file and view state files",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "config %s: ok\n", path)
			var failed []error
			for _, p := range args {
				if _, err := LoadViewState(p); err != nil {
					failed = append(failed, err)
					fmt.Fprintf(w, "state %s: %v\n", p, err)
					continue
				}
				fmt.Fprintf(w, "state %s: ok\n", p)
			}
			return errors.Join(failed...)
		},
	}
}
