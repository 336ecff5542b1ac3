// Command lsysview shows an L-system project in a window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/internal/config"
	"github.com/gogpu/lsys/internal/viewer"
)

func main() {
	cfg := config.Load()
	var (
		project = flag.String("project", "", "project file (YAML or JSON)")
		width   = flag.Int("width", cfg.Width, "window width")
		height  = flag.Int("height", cfg.Height, "window height")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()
	if *project == "" {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	lsys.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	v, err := viewer.New(viewer.Config{
		Path:             *project,
		Width:            *width,
		Height:           *height,
		ConfirmThreshold: cfg.ConfirmThreshold,
		MaxInstructions:  cfg.MaxInstructions,
	})
	if err == nil {
		err = v.Run()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lsysview:", err)
		os.Exit(1)
	}
}
