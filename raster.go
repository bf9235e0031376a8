// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package raster is a tiled, triangle-at-a-time CPU software
// rasterizer: homogeneous clipping, fixed-point triangle setup, and a
// hierarchical tile/coarse-block/pixel rasterization core writing into
// a Morton-swizzled framebuffer.
package raster

import (
	"fmt"

	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
	"github.com/pinedaraster/raster/gfx"
	"github.com/pinedaraster/raster/setup"
	honnefcolor "honnef.co/go/color"
)

// Framebuffer owns the rasterizer's color and depth planes and is the
// target of Draw/DrawIndexed.
type Framebuffer = framebuffer.Framebuffer

// NewFramebuffer creates a Framebuffer of the given size, padded up to
// a whole number of 128x128 tiles.
func NewFramebuffer(width, height int32) *Framebuffer {
	return framebuffer.New(width, height)
}

// Attachment and PixelFormat select what PackRowMajor reads and how it
// encodes it.
type (
	Attachment  = framebuffer.Attachment
	PixelFormat = framebuffer.PixelFormat
)

const (
	AttachmentColor0 = framebuffer.AttachmentColor0
	AttachmentDepth  = framebuffer.AttachmentDepth

	PixelFormatR8G8B8A8Unorm = framebuffer.PixelFormatR8G8B8A8Unorm
	PixelFormatB8G8R8A8Unorm = framebuffer.PixelFormatB8G8R8A8Unorm
	PixelFormatR32Unorm      = framebuffer.PixelFormatR32Unorm
)

// componentsPerVertex is the number of int32 (Fixed1616) lanes the
// vertices slice carries per vertex: clip-space x, y, z, w.
const componentsPerVertex = 4

// Draw rasterizes numVertices/3 triangles from a flat vertex buffer:
// numVertices consecutive Fixed1616 (x, y, z, w) quads, every three
// forming one triangle's clip-space corners.
func Draw(fb *Framebuffer, vertices []int32, numVertices uint32) {
	if numVertices%3 != 0 {
		panic(fmt.Sprintf("numVertices %d is not a multiple of 3", numVertices))
	}
	if uint64(numVertices)*componentsPerVertex > uint64(len(vertices)) {
		panic("vertices slice is shorter than numVertices implies")
	}

	for i := uint32(0); i < numVertices; i += 3 {
		setup.Triangle(fb, [3]setup.Vertex{
			readVertex(vertices, i),
			readVertex(vertices, i+1),
			readVertex(vertices, i+2),
		})
	}
}

// DrawIndexed rasterizes numIndices/3 triangles from vertices indexed
// by indices, the same convention as Draw but with shared vertices
// deduplicated through an index buffer.
func DrawIndexed(fb *Framebuffer, vertices []int32, indices []uint32, numIndices uint32) {
	if numIndices%3 != 0 {
		panic(fmt.Sprintf("numIndices %d is not a multiple of 3", numIndices))
	}
	if uint64(numIndices) > uint64(len(indices)) {
		panic("indices slice is shorter than numIndices implies")
	}

	for i := uint32(0); i < numIndices; i += 3 {
		setup.Triangle(fb, [3]setup.Vertex{
			readVertex(vertices, indices[i]),
			readVertex(vertices, indices[i+1]),
			readVertex(vertices, indices[i+2]),
		})
	}
}

func readVertex(vertices []int32, index uint32) setup.Vertex {
	base := index * componentsPerVertex
	return setup.Vertex{
		X: fixed.Fixed1616(vertices[base]),
		Y: fixed.Fixed1616(vertices[base+1]),
		Z: fixed.Fixed1616(vertices[base+2]),
		W: fixed.Fixed1616(vertices[base+3]),
	}
}

// Clear enqueues a clear of the whole framebuffer to color (packed
// ARGB8) on every tile's command ring.
func Clear(fb *Framebuffer, color uint32) {
	fb.Clear(color)
}

// ClearColor is Clear taking a color in any of honnef.co/go/color's
// color spaces, converted to sRGB and quantized to the framebuffer's
// packed ARGB8 format.
func ClearColor(fb *Framebuffer, c *honnefcolor.Color) {
	fb.Clear(gfx.PackARGB8(c))
}

// Resolve drains every tile's command ring, guaranteeing the
// framebuffer reflects all draws issued so far.
func Resolve(fb *Framebuffer) {
	fb.Resolve()
}

// PackRowMajor reads back a sub-rectangle of attachment in row-major
// order, converting from the tiled/swizzled internal layout.
func PackRowMajor(fb *Framebuffer, attachment Attachment, x, y, w, h int32, format PixelFormat, out []byte) {
	fb.PackRowMajor(attachment, x, y, w, h, format, out)
}
