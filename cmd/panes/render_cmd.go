package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Gaurav-Gosain/panes/internal/app"
	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/observability"
	"github.com/Gaurav-Gosain/panes/internal/render"
	"github.com/Gaurav-Gosain/panes/internal/tape"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// colorWriter downsamples styled output to what stdout supports, and strips
// it entirely when stdout is not a terminal.
func colorWriter() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

// terminalSize returns the size of stdout, or a fallback when it is not a
// terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd())) // #nosec G115 - file descriptors fit in int
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func newRenderCmd() *cobra.Command {
	var (
		width, height int
		tapeFile      string
		plain         bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the panel group once",
		Long: `Lay out the configured panel group at the terminal size and print it

With --tape, the group built by the script is printed instead, scaled from
its pixel size to the output size. The saved layout is used when
persistence is enabled.`,
		Example: `  # Render the configured group
  panes render

  # Render at a fixed size without colors
  panes render --width 100 --height 20 --plain

  # Render the result of a script
  panes render --tape testdata/dynamic.tape`,
		RunE: func(_ *cobra.Command, _ []string) error {
			tw, th := terminalSize()
			if width <= 0 {
				width = tw
			}
			if height <= 0 {
				// leave room for the prompt
				height = max(th-1, 1)
			}

			var (
				g   render.Geometry
				err error
			)
			if tapeFile != "" {
				g, err = renderTape(tapeFile, width, height)
			} else {
				g, err = renderConfigured(width, height)
			}
			if err != nil {
				return err
			}

			opts := render.Options{ShowSizes: true}
			if plain {
				fmt.Println(render.Plain(g, opts))
				return nil
			}
			_, err = fmt.Fprintln(colorWriter(), render.Render(g, opts))
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Output width in cells (default: terminal width)")
	cmd.Flags().IntVar(&height, "height", 0, "Output height in cells (default: terminal height)")
	cmd.Flags().StringVarP(&tapeFile, "tape", "t", "", "Play a tape script and render its result")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print without colors")
	return cmd
}

func renderConfigured(width, height int) (render.Geometry, error) {
	userConfig, err := loadConfig()
	if err != nil {
		return render.Geometry{}, err
	}
	logger, err := setupLogging(userConfig)
	if err != nil {
		return render.Geometry{}, err
	}
	defer observability.Sync()

	opts := app.Options{Config: userConfig, Logger: logger}
	store, err := openStore(userConfig, logger)
	if err != nil {
		return render.Geometry{}, err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		opts.Store = store
	}

	m, err := app.New(opts)
	if err != nil {
		return render.Geometry{}, err
	}
	// the model keeps the last row for its status line
	m.Resize(width, height+1)
	return measureEngine(m.Engine, width, height), nil
}

func renderTape(path string, width, height int) (render.Geometry, error) {
	f, err := os.Open(path) // #nosec G304 - path is given by the user
	if err != nil {
		return render.Geometry{}, err
	}
	defer func() { _ = f.Close() }()

	p := tape.NewPlayer(observability.GetLogger().Named("tape"))
	if err := p.Play(f); err != nil {
		return render.Geometry{}, fmt.Errorf("%s: %w", path, err)
	}
	return measureEngine(p.Engine, width, height), nil
}

// measureEngine scales the engine's pixel sizes to the output cells.
func measureEngine(e *engine.Engine, width, height int) render.Geometry {
	c := e.Context()
	pixels := e.PixelSizes()
	sizes := pixels

	extent, cells := c.Size.Width, width
	if c.Orientation == layout.Vertical {
		extent, cells = c.Size.Height, height
	}
	if extent > 0 && extent != float64(cells) {
		scale := float64(cells) / extent
		scaled := make([]float64, len(pixels))
		for i, s := range pixels {
			scaled[i] = s * scale
		}
		sizes = scaled
	}
	g := render.Measure(c.Items, sizes, c.Orientation, width, height)
	// labels show the engine's pixels, not the scaled cells
	for i := range g.Spans {
		if i < len(pixels) {
			g.Spans[i].Pixels = pixels[i]
		}
	}
	return g
}
