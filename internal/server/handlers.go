// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/grammar"
	"github.com/gogpu/lsys/render"
	"github.com/gogpu/lsys/surface"
)

// estimateResponse reports the blowup estimate for a project.
type estimateResponse struct {
	Estimate          int64  `json:"estimate"`
	Formatted         string `json:"formatted"`
	Threshold         int64  `json:"threshold"`
	NeedsConfirmation bool   `json:"needs_confirmation"`
}

func (s *Server) estimateFor(p *lsys.Project) estimateResponse {
	est := grammar.EstimateProject(p)
	return estimateResponse{
		Estimate:          est,
		Formatted:         render.FormatCount(est),
		Threshold:         s.cfg.ConfirmThreshold,
		NeedsConfirmation: grammar.NeedsConfirmation(est, s.cfg.ConfirmThreshold),
	}
}

func parseProject(c fiber.Ctx) (*lsys.Project, error) {
	if len(c.Body()) == 0 {
		return nil, errors.New("body required")
	}
	return lsys.Parse(c.Body())
}

func (s *Server) estimate(c fiber.Ctx) error {
	p, err := parseProject(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(s.estimateFor(p))
}

// renderParams are the query parameters of a render request.
type renderParams struct {
	width, height int
	confirm       bool
	export        bool
	thumb         int
}

func (s *Server) parseRenderParams(c fiber.Ctx) (renderParams, error) {
	rp := renderParams{
		width:   s.cfg.Width,
		height:  s.cfg.Height,
		confirm: c.Query("confirm") == "true",
		export:  c.Query("export") == "true",
	}
	var err error
	if rp.width, err = queryInt(c, "width", rp.width, MaxDimension); err != nil {
		return rp, err
	}
	if rp.height, err = queryInt(c, "height", rp.height, MaxDimension); err != nil {
		return rp, err
	}
	if rp.thumb, err = queryInt(c, "thumb", 0, MaxDimension); err != nil {
		return rp, err
	}
	return rp, nil
}

func queryInt(c fiber.Ctx, key string, def, limit int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > limit {
		return 0, fmt.Errorf("%s must be an integer in [1, %d]", key, limit)
	}
	return n, nil
}

func (s *Server) render(c fiber.Ctx) error {
	p, err := parseProject(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	rp, err := s.parseRenderParams(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	id := uuid.NewString()
	log := lsys.Logger().With("render_id", id)

	surf, err := surface.Open(s.backend, surface.Options{
		Width:      rp.width,
		Height:     rp.height,
		Background: p.Background,
	})
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	defer surf.Close()

	r := render.New(surf,
		render.WithConfirmThreshold(s.cfg.ConfirmThreshold),
		render.WithMaxInstructions(s.cfg.MaxInstructions),
		render.WithConfirm(func(context.Context, int64) bool { return rp.confirm }),
	)
	res, err := r.Render(c.Context(), p)
	if err != nil {
		log.Warn("server: render failed", "err", err)
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, lsys.ErrInvalidProject):
			status = fiber.StatusBadRequest
		case errors.Is(err, grammar.ErrTooLong):
			status = fiber.StatusUnprocessableEntity
		}
		return errorJSON(c, status, err)
	}
	if res.Declined {
		log.Info("server: confirmation required", "estimate", res.Estimate)
		return c.Status(fiber.StatusConflict).JSON(s.estimateFor(p))
	}

	var img image.Image
	if rp.export {
		img, err = r.Export()
	} else {
		img, err = r.Capture()
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	if rp.thumb > 0 {
		img = surface.Thumbnail(img, rp.thumb)
	}

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf, img); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	log.Info("server: rendered",
		"title", p.Title,
		"primitives", res.Primitives,
		"elapsed", res.Elapsed,
	)
	c.Set("X-Render-Id", id)
	c.Set("X-Render-Elapsed-Ms", strconv.FormatInt(res.Elapsed.Milliseconds(), 10))
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}
