// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"LSYS_PORT", "LSYS_ENV", "LSYS_WIDTH", "LSYS_HEIGHT",
		"LSYS_CONFIRM_THRESHOLD", "LSYS_MAX_INSTRUCTIONS", "LSYS_READ_TIMEOUT", "LSYS_WRITE_TIMEOUT", "LSYS_MAX_BODY",
	} {
		t.Setenv(k, "")
	}

	want := &Config{
		Port:             "3000",
		Environment:      "development",
		Width:            1280,
		Height:           720,
		ConfirmThreshold: 2_000_000,
		MaxInstructions:  256 << 20,
		ReadTimeout:      10 * time.Second,
		WriteTimeout:     60 * time.Second,
		MaxBody:          1 << 20,
	}
	if diff := cmp.Diff(want, Load()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LSYS_PORT", "8080")
	t.Setenv("LSYS_ENV", "production")
	t.Setenv("LSYS_WIDTH", "640")
	t.Setenv("LSYS_HEIGHT", "480")
	t.Setenv("LSYS_CONFIRM_THRESHOLD", "5000000000")
	t.Setenv("LSYS_MAX_INSTRUCTIONS", "1000000")
	t.Setenv("LSYS_READ_TIMEOUT", "3")
	t.Setenv("LSYS_WRITE_TIMEOUT", "4")
	t.Setenv("LSYS_MAX_BODY", "4096")

	cfg := Load()
	want := &Config{
		Port:             "8080",
		Environment:      "production",
		Width:            640,
		Height:           480,
		ConfirmThreshold: 5_000_000_000,
		MaxInstructions:  1_000_000,
		ReadTimeout:      3 * time.Second,
		WriteTimeout:     4 * time.Second,
		MaxBody:          4096,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Production() {
		t.Error("Production() = false, want true")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("LSYS_WIDTH", "wide")
	t.Setenv("LSYS_HEIGHT", "-5")
	t.Setenv("LSYS_CONFIRM_THRESHOLD", "0")

	cfg := Load()
	if cfg.Width != 1280 || cfg.Height != 720 || cfg.ConfirmThreshold != 2_000_000 {
		t.Errorf("Load() = %+v, want defaults for malformed values", cfg)
	}
}
