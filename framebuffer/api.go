// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package framebuffer

import "fmt"

// SmallTriCommand is the triangle-setup stage's handoff for a triangle
// known to fit within a 2x2 tile neighborhood. Edges/EdgeDxs/EdgeDys are
// relative to the destination tile's top-left corner; the coarse-block
// range is already clipped to that tile.
type SmallTriCommand struct {
	Edges, EdgeDxs, EdgeDys, VertZs [3]int32
	MinZ, MaxZ                      uint32
	RcpTriarea2                     uint32
	FirstCoarseX, LastCoarseX       int32
	FirstCoarseY, LastCoarseY       int32
}

// TileCommand is the triangle-setup stage's handoff for a triangle
// larger than a single tile. Only the first numTestEdges edges (passed
// separately to PushTile) need per-pixel testing in this tile; the
// remainder were trivially accepted for the whole tile already.
type TileCommand struct {
	Edges, EdgeDxs, EdgeDys, VertZs [3]int32
	MinZ, MaxZ                      uint32
	RcpTriarea2                     uint32
}

func (fb *Framebuffer) tileIndex(tileX, tileY int32) int32 {
	if tileX < 0 || tileY < 0 || tileX >= fb.widthInTiles || tileY >= fb.heightInTiles {
		panic(fmt.Sprintf("tile (%d,%d) outside %dx%d tile grid", tileX, tileY, fb.widthInTiles, fb.heightInTiles))
	}
	return tileY*fb.widthInTiles + tileX
}

// PushSmallTri enqueues a small-triangle draw to tile (tileX,tileY).
func (fb *Framebuffer) PushSmallTri(tileX, tileY int32, cmd SmallTriCommand) {
	fb.pushDrawSmallTri(fb.tileIndex(tileX, tileY), drawSmallTri{
		TilecmdID:    uint32(tilecmdDrawSmallTri),
		Edges:        cmd.Edges,
		EdgeDxs:      cmd.EdgeDxs,
		EdgeDys:      cmd.EdgeDys,
		VertZs:       cmd.VertZs,
		MinZ:         cmd.MinZ,
		MaxZ:         cmd.MaxZ,
		RcpTriarea2:  cmd.RcpTriarea2,
		FirstCoarseX: cmd.FirstCoarseX,
		LastCoarseX:  cmd.LastCoarseX,
		FirstCoarseY: cmd.FirstCoarseY,
		LastCoarseY:  cmd.LastCoarseY,
	})
}

// PushTile enqueues a large-triangle draw to tile (tileX,tileY), testing
// only the first numTestEdges edges per pixel.
func (fb *Framebuffer) PushTile(tileX, tileY int32, numTestEdges int, cmd TileCommand) {
	fb.pushDrawTile(fb.tileIndex(tileX, tileY), numTestEdges, drawTile{
		Edges:       cmd.Edges,
		EdgeDxs:     cmd.EdgeDxs,
		EdgeDys:     cmd.EdgeDys,
		VertZs:      cmd.VertZs,
		MinZ:        cmd.MinZ,
		MaxZ:        cmd.MaxZ,
		RcpTriarea2: cmd.RcpTriarea2,
	})
}
