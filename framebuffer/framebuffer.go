// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package framebuffer implements the rasterizer's tiled, swizzled
// framebuffer: storage for the color and depth planes, the per-tile
// command ring buffers that triangle setup writes into, and the
// per-tile rasterization interpreter that drains those rings.
package framebuffer

import (
	"fmt"

	"github.com/pinedaraster/raster/mem"
	"github.com/pinedaraster/raster/perf"
	"golang.org/x/exp/constraints"
)

// Framebuffer owns a padded color/depth plane and one command ring
// per tile. There is no explicit Delete: once unreachable, Go's
// garbage collector reclaims the backing arena.
type Framebuffer struct {
	arena *mem.Arena

	backbuffer []uint32
	depthbuffer []uint32

	tileCmdPool []uint32
	tileCmdBufs []tileRing

	widthInPixels, heightInPixels int32
	widthInTiles, heightInTiles   int32
	totalNumTiles                 int32

	global *perf.Global
	tiles  []*perf.Tile
}

// tileRing tracks one tile's command ring as indices into the shared
// tileCmdPool slice: start/end bound the tile's slab, read/write mark
// the live range.
type tileRing struct {
	start, end   int32
	read, write  int32
}

func nextMultipleOf[T constraints.Integer](x, y T) T {
	r := x % y
	if r == 0 {
		return x
	}
	return x + y - r
}

// New creates a Framebuffer of the given size, padded up to a whole
// number of tiles. width and height must each be less than 16384,
// the precision limit of the fixed16.8 edge equations.
func New(width, height int32) *Framebuffer {
	if width >= 16384 || height >= 16384 {
		panic(fmt.Sprintf("framebuffer dimensions %dx%d exceed the 16384 pixel precision limit", width, height))
	}
	if width <= 0 || height <= 0 {
		panic("framebuffer dimensions must be positive")
	}

	paddedWidth := nextMultipleOf(width, TileWidthInPixels)
	paddedHeight := nextMultipleOf(height, TileWidthInPixels)

	fb := &Framebuffer{
		arena:          mem.NewArena(),
		widthInPixels:  width,
		heightInPixels: height,
	}

	fb.widthInTiles = paddedWidth / TileWidthInPixels
	fb.heightInTiles = paddedHeight / TileWidthInPixels
	fb.totalNumTiles = fb.widthInTiles * fb.heightInTiles

	pixelsPerSlice := fb.totalNumTiles * PixelsPerTile

	fb.backbuffer = mem.NewSlice[uint32](fb.arena, int(pixelsPerSlice), int(pixelsPerSlice))
	fb.depthbuffer = mem.NewSlice[uint32](fb.arena, int(pixelsPerSlice), int(pixelsPerSlice))
	for i := range fb.depthbuffer {
		fb.depthbuffer[i] = 0xFFFFFFFF
	}

	fb.tileCmdPool = mem.NewSlice[uint32](fb.arena, int(fb.totalNumTiles*tileCommandBufferSizeInDwords), int(fb.totalNumTiles*tileCommandBufferSizeInDwords))
	fb.tileCmdBufs = make([]tileRing, fb.totalNumTiles)
	for i := range fb.tileCmdBufs {
		start := int32(i) * tileCommandBufferSizeInDwords
		end := start + tileCommandBufferSizeInDwords
		fb.tileCmdBufs[i] = tileRing{start: start, end: end, read: start, write: start}
	}

	fb.global = perf.NewGlobal(nil)
	fb.tiles = make([]*perf.Tile, fb.totalNumTiles)
	for i := range fb.tiles {
		fb.tiles[i] = perf.NewTile(nil)
	}

	return fb
}

// TotalNumTiles returns the number of tiles backing the framebuffer.
func (fb *Framebuffer) TotalNumTiles() int32 {
	return fb.totalNumTiles
}

// WidthInPixels returns the framebuffer's unpadded width.
func (fb *Framebuffer) WidthInPixels() int32 { return fb.widthInPixels }

// HeightInPixels returns the framebuffer's unpadded height.
func (fb *Framebuffer) HeightInPixels() int32 { return fb.heightInPixels }

// WidthInTiles returns the number of tile columns.
func (fb *Framebuffer) WidthInTiles() int32 { return fb.widthInTiles }

// HeightInTiles returns the number of tile rows.
func (fb *Framebuffer) HeightInTiles() int32 { return fb.heightInTiles }

// Clear enqueues a tilecmdClearTile command on every tile, setting the
// color plane to color and the depth plane back to 0xFFFFFFFF once
// resolved.
func (fb *Framebuffer) Clear(color uint32) {
	cmd := clearTile{TilecmdID: uint32(tilecmdClearTile), Color: color}
	for tile := int32(0); tile < fb.totalNumTiles; tile++ {
		fb.pushClearTile(tile, cmd)
	}
}

// Resolve drains every tile's command ring, guaranteeing that all
// previously enqueued draws are reflected in the backbuffer/depth
// buffer.
func (fb *Framebuffer) Resolve() {
	for tile := int32(0); tile < fb.totalNumTiles; tile++ {
		fb.resolveTile(tile)
	}
}

// GlobalPerfCounters returns the names and current values of the
// framebuffer-wide performance counters.
func (fb *Framebuffer) GlobalPerfCounters() ([]string, []int64) {
	return perf.GlobalNames, fb.global.Values()
}

// StartGlobalCounter starts timing the named framebuffer-wide
// performance counter, for use by the triangle-setup stage which lives
// outside this package. The returned func stops and accumulates it.
func (fb *Framebuffer) StartGlobalCounter(slot int) func() {
	return fb.global.Start(slot)
}

// TilePerfCounterNames returns the names of the per-tile performance
// counters, in the order TilePerfCounters reports them.
func (fb *Framebuffer) TilePerfCounterNames() []string {
	return perf.TileNames
}

// TilePerfCounters returns a copy of every tile's per-tile performance
// counter values, indexed the same way tiles are (row-major).
func (fb *Framebuffer) TilePerfCounters() [][]int64 {
	out := make([][]int64, len(fb.tiles))
	for i, t := range fb.tiles {
		out[i] = t.Values()
	}
	return out
}

// ResetPerfCounters zeroes every performance counter, global and
// per-tile.
func (fb *Framebuffer) ResetPerfCounters() {
	fb.global.Reset()
	for _, t := range fb.tiles {
		t.Reset()
	}
}

// PerfCounterFrequency returns the number of ticks per second the
// performance counters use.
func (fb *Framebuffer) PerfCounterFrequency() int64 {
	return perf.Frequency
}
