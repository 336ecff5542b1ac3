//go:build gpu

package main

// Build with -tags gpu to rasterize through the GPU accelerator when one
// is available.
import _ "github.com/gogpu/gg/gpu"
