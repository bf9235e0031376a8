// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package framebuffer

import (
	"fmt"

	"github.com/pinedaraster/raster/perf"
	"honnef.co/go/safeish"
)

// pushTileCommand appends words to the command ring for tile, resolving
// (draining) the tile first if there isn't room. Mirrors
// framebuffer_push_tilecmd: the ring is single-producer/single-consumer
// but driven from the same goroutine, so "resolving to make room" never
// races with "appending more commands."
func (fb *Framebuffer) pushTileCommand(tile int32, words []uint32) {
	end := fb.tiles[tile].Start(perf.CmdbufPushcmd)
	defer end()

	r := &fb.tileCmdBufs[tile]
	cap := r.end - r.start

	if int32(len(words)) > cap {
		panic(fmt.Sprintf("tile command of %d words does not fit in a %d word ring", len(words), cap))
	}

	// Step 1: if the write cursor would lap the read cursor, or run off
	// the end of the ring, resolve what's pending first. A reset_buf
	// sentinel is pushed when the remaining tail is too small for the
	// command but the ring itself has room from the start.
	remaining := r.end - r.write
	if remaining < int32(len(words)) {
		// Not enough room before the physical end: if there's a reader
		// lagging behind, drain it; otherwise wrap immediately since a
		// resolve alone won't free space at the tail.
		if r.read != r.write {
			fb.resolveTile(tile)
		}
		r = &fb.tileCmdBufs[tile]
		remaining = r.end - r.write
		if remaining < int32(len(words)) {
			fb.pushResetBuf(tile)
			r = &fb.tileCmdBufs[tile]
		}
	}

	// Step 2: after any wrap, re-check that the write cursor hasn't
	// caught up with a read cursor that still has unresolved commands
	// ahead of it; if so, drain before writing over them.
	if r.write < r.read && r.write+int32(len(words)) >= r.read {
		fb.resolveTile(tile)
		r = &fb.tileCmdBufs[tile]
	}

	// Step 3: copy the payload and advance the write cursor.
	copy(fb.tileCmdPool[r.write:r.write+int32(len(words))], words)
	r.write += int32(len(words))
	if r.write == r.end {
		// The write cursor never rests at end: drain the tile, which
		// leaves read == write == end, and restart both cursors at start.
		fb.resolveTile(tile)
		r = &fb.tileCmdBufs[tile]
		r.read, r.write = r.start, r.start
	}
}

func (fb *Framebuffer) pushResetBuf(tile int32) {
	r := &fb.tileCmdBufs[tile]
	fb.tileCmdPool[r.write] = uint32(tilecmdResetBuf)
	r.write = r.start
}

func (fb *Framebuffer) pushClearTile(tile int32, cmd clearTile) {
	words := safeish.SliceCast[[]uint32]([]clearTile{cmd})
	fb.pushTileCommand(tile, words[:clearTileWords])
}

// pushDrawSmallTri enqueues a small-triangle draw for tile.
func (fb *Framebuffer) pushDrawSmallTri(tile int32, cmd drawSmallTri) {
	words := safeish.SliceCast[[]uint32]([]drawSmallTri{cmd})
	fb.pushTileCommand(tile, words[:drawSmallTriWords])
}

// pushDrawTile enqueues a large-triangle draw for tile, rotated to test
// numTestEdges edges per pixel (0..3, selecting the opcode).
func (fb *Framebuffer) pushDrawTile(tile int32, numTestEdges int, cmd drawTile) {
	id := tilecmdDrawTile0Edge + tilecmdID(numTestEdges)
	cmd.TilecmdID = uint32(id)
	words := safeish.SliceCast[[]uint32]([]drawTile{cmd})
	fb.pushTileCommand(tile, words[:drawTileWords])
}

// resolveTile drains all pending commands for tile, executing each
// against the backbuffer/depthbuffer in FIFO order.
func (fb *Framebuffer) resolveTile(tile int32) {
	perfTile := fb.tiles[tile]
	end := perfTile.Start(perf.CmdbufResolve)
	defer end()

	r := &fb.tileCmdBufs[tile]

	for r.read != r.write {
		id := tilecmdID(fb.tileCmdPool[r.read])

		switch id {
		case tilecmdResetBuf:
			r.read = r.start

		case tilecmdClearTile:
			raw := fb.tileCmdPool[r.read : r.read+clearTileWords]
			cmd := safeish.SliceCast[[]clearTile](raw)[0]
			fb.execClearTile(tile, cmd)
			r.read += clearTileWords

		case tilecmdDrawSmallTri:
			raw := fb.tileCmdPool[r.read : r.read+drawSmallTriWords]
			cmd := safeish.SliceCast[[]drawSmallTri](raw)[0]
			fb.execDrawSmallTri(tile, perfTile, cmd)
			r.read += drawSmallTriWords

		case tilecmdDrawTile0Edge, tilecmdDrawTile1Edge, tilecmdDrawTile2Edge, tilecmdDrawTile3Edge:
			raw := fb.tileCmdPool[r.read : r.read+drawTileWords]
			cmd := safeish.SliceCast[[]drawTile](raw)[0]
			numTestEdges := int(id - tilecmdDrawTile0Edge)
			fb.execDrawTile(tile, perfTile, numTestEdges, cmd)
			r.read += drawTileWords

		default:
			panic(fmt.Sprintf("unknown tile command id %d", id))
		}
	}
}
