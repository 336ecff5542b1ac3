// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads settings shared by the lsys binaries from the
// environment. Command line flags take their defaults from here.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/gogpu/lsys/grammar"
)

// DefaultMaxInstructions is the default expansion cap, 256 MiB.
const DefaultMaxInstructions = 256 << 20

// Config holds environment-derived settings.
type Config struct {
	Port        string
	Environment string

	// Width and Height are the default surface size in pixels.
	Width, Height int

	// ConfirmThreshold is the estimate above which a render must be
	// confirmed.
	ConfirmThreshold int64

	// MaxInstructions caps the expanded instruction string in bytes.
	// Estimates only count shapes, so this is what stops grammars that
	// grow without drawing.
	MaxInstructions int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxBody is the largest accepted project document in bytes.
	MaxBody int
}

// Load reads the configuration from LSYS_* environment variables.
// Missing or malformed values fall back to defaults.
func Load() *Config {
	return &Config{
		Port:             getEnv("LSYS_PORT", "3000"),
		Environment:      getEnv("LSYS_ENV", "development"),
		Width:            getEnvAsInt("LSYS_WIDTH", 1280),
		Height:           getEnvAsInt("LSYS_HEIGHT", 720),
		ConfirmThreshold: getEnvAsInt64("LSYS_CONFIRM_THRESHOLD", grammar.DefaultConfirmThreshold),
		MaxInstructions:  getEnvAsInt("LSYS_MAX_INSTRUCTIONS", DefaultMaxInstructions),
		ReadTimeout:      time.Duration(getEnvAsInt("LSYS_READ_TIMEOUT", 10)) * time.Second,
		WriteTimeout:     time.Duration(getEnvAsInt("LSYS_WRITE_TIMEOUT", 60)) * time.Second,
		MaxBody:          getEnvAsInt("LSYS_MAX_BODY", 1<<20),
	}
}

// Production reports whether the service runs in production.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}
