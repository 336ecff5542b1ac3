// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/gogpu/lsys/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Environment:      "production",
		Width:            320,
		Height:           240,
		ConfirmThreshold: 2_000_000,
		MaxInstructions:  1 << 20,
		MaxBody:          1 << 20,
	}
}

func readFile(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("../../testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func do(t *testing.T, s *Server, method, target string, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, r io.Reader, v any) {
	t.Helper()
	if err := json.NewDecoder(r).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestLive(t *testing.T) {
	resp := do(t, New(testConfig()), http.MethodGet, "/health/live", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got map[string]string
	decodeJSON(t, resp.Body, &got)
	if got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestEstimate(t *testing.T) {
	s := New(testConfig())
	tests := []struct {
		file string
		want estimateResponse
	}{
		{"koch.yaml", estimateResponse{Estimate: 128, Formatted: "128", Threshold: 2_000_000}},
		{"huge.yaml", estimateResponse{Estimate: 19_531_250, Formatted: "19,531,250", Threshold: 2_000_000, NeedsConfirmation: true}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			resp := do(t, s, http.MethodPost, "/api/v1/estimate", readFile(t, tt.file))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			var got estimateResponse
			decodeJSON(t, resp.Body, &got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("estimate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	s := New(testConfig())
	tests := []struct {
		name, target string
		body         []byte
	}{
		{"empty body", "/api/v1/estimate", nil},
		{"unknown field", "/api/v1/estimate", []byte("axiom: A\ncolour: 1\n")},
		{"negative iterations", "/api/v1/render", []byte("axiom: A\niterations: -2\n")},
		{"bad width", "/api/v1/render?width=abc", []byte("axiom: A\n")},
		{"huge height", "/api/v1/render?height=100000", []byte("axiom: A\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, s, http.MethodPost, tt.target, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var got map[string]string
			decodeJSON(t, resp.Body, &got)
			if got["error"] == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestRenderNeedsConfirmation(t *testing.T) {
	resp := do(t, New(testConfig()), http.MethodPost, "/api/v1/render", readFile(t, "huge.yaml"))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	var got estimateResponse
	decodeJSON(t, resp.Body, &got)
	if !got.NeedsConfirmation || got.Estimate != 19_531_250 {
		t.Errorf("body = %+v", got)
	}
}

func TestRenderPNG(t *testing.T) {
	s := New(testConfig())
	tests := []struct {
		name, query string
		w, h        int
	}{
		{"default size", "", 320, 240},
		{"explicit size", "?width=200&height=100", 200, 100},
		{"export", "?export=true&width=64&height=64", 64, 64},
		{"thumbnail", "?thumb=80", 80, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, s, http.MethodPost, "/api/v1/render"+tt.query, readFile(t, "koch.yaml"))
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q", ct)
			}
			if _, err := uuid.Parse(resp.Header.Get("X-Render-Id")); err != nil {
				t.Errorf("X-Render-Id: %v", err)
			}
			if _, err := strconv.Atoi(resp.Header.Get("X-Render-Elapsed-Ms")); err != nil {
				t.Errorf("X-Render-Elapsed-Ms: %v", err)
			}
			img, err := png.Decode(resp.Body)
			if err != nil {
				t.Fatalf("png.Decode() = %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderConfirmed(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmThreshold = 10
	s := New(cfg)

	resp := do(t, s, http.MethodPost, "/api/v1/render", readFile(t, "koch.yaml"))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("unconfirmed status = %d, want 409", resp.StatusCode)
	}
	resp = do(t, s, http.MethodPost, "/api/v1/render?confirm=true", readFile(t, "koch.yaml"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirmed status = %d, want 200", resp.StatusCode)
	}
}

func TestRenderInstructionLimit(t *testing.T) {
	// No pattern draws anything, so the estimate is zero and only the
	// instruction cap stops the expansion.
	body := []byte("axiom: A\niterations: 12\nsymbols:\n  - {name: A, replacement_rule: AAAAAAAAAA}\n")

	est := do(t, New(testConfig()), http.MethodPost, "/api/v1/estimate", body)
	var got estimateResponse
	decodeJSON(t, est.Body, &got)
	if got.Estimate != 0 || got.NeedsConfirmation {
		t.Errorf("estimate = %+v, want 0 without confirmation", got)
	}

	for _, query := range []string{"", "?confirm=true"} {
		t.Run("query="+query, func(t *testing.T) {
			resp := do(t, New(testConfig()), http.MethodPost, "/api/v1/render"+query, body)
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", resp.StatusCode)
			}
			var e map[string]string
			decodeJSON(t, resp.Body, &e)
			if e["error"] == "" {
				t.Error("error message missing")
			}
		})
	}
}
