// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package setup implements triangle setup: homogeneous clipping,
// viewport transform, small/large classification, edge-equation and
// reciprocal-area computation, and tile binning, handing finished
// per-tile draw commands to the framebuffer package's command rings.
package setup

import (
	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
	"github.com/pinedaraster/raster/perf"
)

// Vertex is a triangle corner in clip space (x, y, z, w), all in
// Fixed1616.
type Vertex struct {
	X, Y, Z, W fixed.Fixed1616
}

// Triangle rasterizes one triangle: near/far clipping, viewport
// transform, classification, and emission of per-tile draw commands.
// Mirrors the reference implementation's rasterize_triangle, including
// its recursive handling of triangles that split into two pieces
// during clipping.
func Triangle(fb *framebuffer.Framebuffer, tri [3]Vertex) {
	end := fb.StartGlobalCounter(perf.Clipping)

	tri, ok := clipNearPlane(fb, tri)
	if !ok {
		end()
		return
	}
	tri, ok = clipFarPlane(fb, tri)
	end()
	if !ok {
		return
	}

	commonSetupAndDispatch(fb, tri)
}
