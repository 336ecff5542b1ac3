// Command lsysrender renders an L-system project file to PNG.
//
//	lsysrender -project koch.yaml -o koch.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/gogpu/gg"
	"github.com/mattn/go-isatty"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/grammar"
	"github.com/gogpu/lsys/internal/config"
	"github.com/gogpu/lsys/render"
	"github.com/gogpu/lsys/surface"
)

// errDeclined reports a render refused at the confirmation prompt.
var errDeclined = errors.New("render declined")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lsysrender:", err)
		if errors.Is(err, errDeclined) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	var (
		project   = flag.String("project", "", "project file (YAML or JSON)")
		output    = flag.String("o", "", "output PNG (default: project name with .png)")
		width     = flag.Int("width", cfg.Width, "image width")
		height    = flag.Int("height", cfg.Height, "image height")
		backend   = flag.String("surface", "raster", "surface backend: "+strings.Join(surface.Names(true), ", "))
		threshold = flag.Int64("threshold", cfg.ConfirmThreshold, "shape estimate above which to ask for confirmation")
		maxInstr  = flag.Int("max-instructions", cfg.MaxInstructions, "largest expansion in bytes, 0 for no limit")
		yes       = flag.Bool("yes", false, "render without asking for confirmation")
		export    = flag.Bool("export", false, "export at twice the fitted zoom")
		thumb     = flag.Int("thumb", 0, "downsize so the longer side is at most this many pixels")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()
	if *project == "" {
		flag.Usage()
		return errors.New("-project is required")
	}
	if *output == "" {
		*output = strings.TrimSuffix(*project, filepath.Ext(*project)) + ".png"
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	lsys.SetLogger(logger)
	gg.SetLogger(logger)

	p, err := lsys.Load(*project)
	if err != nil {
		return err
	}
	for _, w := range p.Warnings() {
		logger.Warn("project", "warning", w)
	}
	if unknown := grammar.FromProject(p).Unknown(p.Axiom); len(unknown) > 0 {
		logger.Warn("axiom characters without a rule are dropped", "chars", string(unknown))
	}

	surf, err := surface.Open(*backend, surface.Options{
		Width:      *width,
		Height:     *height,
		Background: p.Background,
	})
	if err != nil {
		return err
	}
	defer surf.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := render.New(surf,
		render.WithConfirmThreshold(*threshold),
		render.WithMaxInstructions(*maxInstr),
		render.WithConfirm(confirm(*yes)),
		render.WithTimingSink(func(d time.Duration) {
			fmt.Fprintf(os.Stderr, "rendered in %s\n", d.Round(time.Millisecond))
		}),
	)
	res, err := r.Render(ctx, p)
	if err != nil {
		return err
	}
	if res.Declined {
		return fmt.Errorf("%w: estimate %s", errDeclined, render.FormatCount(res.Estimate))
	}

	var img image.Image
	if *export {
		img, err = r.Export()
	} else {
		img, err = r.Capture()
	}
	if err != nil {
		return err
	}
	if *thumb > 0 {
		img = surface.Thumbnail(img, *thumb)
	}
	if err := surface.SavePNG(*output, img); err != nil {
		return err
	}

	b := img.Bounds()
	fmt.Printf("%s: %s shapes, %dx%d\n", *output, render.FormatCount(int64(res.Primitives)), b.Dx(), b.Dy())
	return nil
}

// confirm asks on the terminal before a large render. Without a terminal
// the render is declined.
func confirm(yes bool) render.ConfirmFunc {
	return func(ctx context.Context, estimate int64) bool {
		if yes {
			return true
		}
		if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			lsys.Logger().Warn("confirmation needed but stdin is not a terminal; use -yes",
				"estimate", render.FormatCount(estimate))
			return false
		}
		if ctx.Err() != nil {
			return false
		}

		var ok bool
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("This will draw up to %s shapes. Continue?", render.FormatCount(estimate)),
			Help:    "Large renders can take a long time and use a lot of memory.",
		}
		if err := survey.AskOne(prompt, &ok); err != nil {
			if !errors.Is(err, terminal.InterruptErr) {
				lsys.Logger().Warn("confirmation prompt", "err", err)
			}
			return false
		}
		return ok
	}
}
