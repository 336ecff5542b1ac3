// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package viewer shows a project in a desktop window.
//
//	drag    pan
//	wheel   zoom about the cursor
//	F       reframe (animated)
//	E       export PNG next to the project file
//	R       reload the project file
//	Q, Esc  quit
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/draw"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/grammar"
	"github.com/gogpu/lsys/render"
	"github.com/gogpu/lsys/surface"
	"github.com/gogpu/lsys/viewport"
)

// zoomStep is the zoom factor of one wheel notch.
const zoomStep = 1.1

const help = "drag: pan  wheel: zoom  F: frame  E: export  R: reload  Q: quit"

// Config configures a Viewer.
type Config struct {
	// Path is the project file.
	Path string

	// Width and Height are the initial window size.
	Width, Height int

	ConfirmThreshold int64
	MaxInstructions  int
}

type prompt struct {
	estimate int64
	answer   chan bool
}

// Viewer is an ebiten game displaying one project.
type Viewer struct {
	cfg  Config
	surf *surface.Animated
	r    *render.Renderer

	img     *ebiten.Image
	scratch *image.RGBA

	w, h         int
	dragging     bool
	lastX, lastY int
	shownTitle   string

	mu     sync.Mutex // guards status, title and prompt
	status string
	title  string
	prompt *prompt

	resize chan image.Point
	done   chan struct{}
}

// New creates a Viewer. The project is loaded by Run.
func New(cfg Config) (*Viewer, error) {
	raster, err := surface.NewRaster(surface.Options{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		cfg:    cfg,
		surf:   surface.NewAnimated(raster),
		w:      cfg.Width,
		h:      cfg.Height,
		resize: make(chan image.Point, 1),
		done:   make(chan struct{}),
	}
	v.r = render.New(v.surf,
		render.WithConfirmThreshold(cfg.ConfirmThreshold),
		render.WithMaxInstructions(cfg.MaxInstructions),
		render.WithConfirm(v.confirm),
		render.WithStartHook(func() { v.setStatus("rendering...") }),
		render.WithTimingSink(func(d time.Duration) {
			v.setStatus(fmt.Sprintf("rendered in %s", d.Round(time.Millisecond)))
		}),
	)
	return v, nil
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() error {
	defer v.surf.Close()
	defer v.r.Cancel()
	defer close(v.done)

	ebiten.SetWindowTitle("lsys")
	ebiten.SetWindowSize(v.cfg.Width, v.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	go v.resizeLoop()
	go v.reload()

	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (v *Viewer) setStatus(s string) {
	v.mu.Lock()
	v.status = s
	v.mu.Unlock()
}

func (v *Viewer) pending() *prompt {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.prompt
}

// confirm shows a y/n overlay and waits for the answer.
func (v *Viewer) confirm(ctx context.Context, estimate int64) bool {
	p := &prompt{estimate: estimate, answer: make(chan bool, 1)}
	v.mu.Lock()
	v.prompt = p
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		if v.prompt == p {
			v.prompt = nil
		}
		v.mu.Unlock()
	}()

	select {
	case ok := <-p.answer:
		return ok
	case <-ctx.Done():
		return false
	case <-v.done:
		return false
	}
}

// reload reads the project file and renders it.
func (v *Viewer) reload() {
	log := lsys.Logger().With("path", v.cfg.Path)
	p, err := lsys.Load(v.cfg.Path)
	if err != nil {
		log.Error("viewer: load failed", "err", err)
		v.setStatus(err.Error())
		return
	}
	for _, w := range p.Warnings() {
		log.Warn("viewer: project", "warning", w)
	}
	if unknown := grammar.FromProject(p).Unknown(p.Axiom); len(unknown) > 0 {
		log.Warn("viewer: axiom characters without a rule are dropped", "chars", string(unknown))
	}

	v.mu.Lock()
	v.title = p.Title
	v.mu.Unlock()

	res, err := v.r.Render(context.Background(), p)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		log.Error("viewer: render failed", "err", err)
		v.setStatus(err.Error())
	case res.Declined:
		v.setStatus(fmt.Sprintf("declined %s shapes; press R to try again", render.FormatCount(res.Estimate)))
	}
}

func (v *Viewer) export() {
	img, err := v.r.Export()
	if err == nil {
		err = surface.SavePNG(ExportPath(v.cfg.Path), img)
	}
	if err != nil {
		lsys.Logger().Error("viewer: export failed", "err", err)
		v.setStatus(err.Error())
		return
	}
	v.setStatus("exported " + ExportPath(v.cfg.Path))
}

func (v *Viewer) resizeLoop() {
	for {
		select {
		case sz := <-v.resize:
			if err := v.r.Resize(sz.X, sz.Y); err != nil {
				lsys.Logger().Warn("viewer: resize", "err", err)
			}
		case <-v.done:
			return
		}
	}
}

// ExportPath returns the PNG path written next to a project file.
func ExportPath(project string) string {
	return strings.TrimSuffix(project, filepath.Ext(project)) + ".png"
}

// Update handles input.
func (v *Viewer) Update() error {
	v.mu.Lock()
	title := v.title
	v.mu.Unlock()
	if title != v.shownTitle {
		v.shownTitle = title
		ebiten.SetWindowTitle("lsys - " + title)
	}

	if p := v.pending(); p != nil {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			p.answer <- true
		case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			p.answer <- false
		}
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		go v.r.Reframe(viewport.Animated)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		go v.export()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		go v.reload()
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if v.dragging {
			v.surf.Pan(float64(x-v.lastX), float64(y-v.lastY))
		}
		v.dragging = true
		v.lastX, v.lastY = x, y
	} else {
		v.dragging = false
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		v.surf.ZoomAt(lsys.V2(float64(x), float64(y)), math.Pow(zoomStep, dy))
	}
	return nil
}

// Draw paints the surface and the status overlay.
func (v *Viewer) Draw(screen *ebiten.Image) {
	img, changed, err := v.surf.Frame()
	if err != nil {
		lsys.Logger().Error("viewer: frame", "err", err)
	} else if changed {
		v.upload(img)
	}
	if v.img != nil {
		screen.DrawImage(v.img, nil)
	}

	v.mu.Lock()
	text := help + "\n" + v.status
	if v.prompt != nil {
		text = fmt.Sprintf("About to draw up to %s shapes. Continue? [y/n]",
			render.FormatCount(v.prompt.estimate))
	}
	v.mu.Unlock()
	ebitenutil.DebugPrint(screen, text)
}

func (v *Viewer) upload(img image.Image) {
	b := img.Bounds()
	if v.img == nil || v.img.Bounds().Dx() != b.Dx() || v.img.Bounds().Dy() != b.Dy() {
		if v.img != nil {
			v.img.Deallocate()
		}
		v.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		if v.scratch == nil || v.scratch.Bounds().Size() != b.Size() {
			v.scratch = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		}
		draw.Draw(v.scratch, v.scratch.Bounds(), img, b.Min, draw.Src)
		rgba = v.scratch
	}
	v.img.WritePixels(rgba.Pix)
}

// Layout follows the window size; a change reframes the content.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.w || outsideHeight != v.h {
		v.w, v.h = outsideWidth, outsideHeight
		select {
		case <-v.resize:
		default:
		}
		v.resize <- image.Pt(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
