// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package framebuffer

import (
	"fmt"

	"github.com/pinedaraster/raster/bitutil"
	"github.com/pinedaraster/raster/perf"
)

// coveredFraction is the fixed-point scale (0x7FFF = 1.0) that u, v and
// w are computed in.
const coveredFraction = 0x7FFF

func tileXY(fb *Framebuffer, tile int32) (tx, ty int32) {
	return tile % fb.widthInTiles, tile / fb.widthInTiles
}

func swizzle(localX, localY int32) int32 {
	return int32(bitutil.Pdep32Accel(uint32(localX), TileXSwizzleMask) |
		bitutil.Pdep32Accel(uint32(localY), TileYSwizzleMask))
}

func (fb *Framebuffer) pixelAddr(tile, localX, localY int32) int32 {
	return tile*PixelsPerTile + swizzle(localX, localY)
}

func (fb *Framebuffer) execClearTile(tile int32, cmd clearTile) {
	end := fb.tiles[tile].Start(perf.Clear)
	defer end()

	base := tile * PixelsPerTile
	color := fb.backbuffer[base : base+PixelsPerTile]
	depth := fb.depthbuffer[base : base+PixelsPerTile]
	for i := range color {
		color[i] = cmd.Color
	}
	for i := range depth {
		depth[i] = 0xFFFFFFFF
	}
}

// execDrawSmallTri rasterizes a triangle known to fit in at most a 2x2
// tile neighborhood, walking only the pre-clipped coarse-block range.
func (fb *Framebuffer) execDrawSmallTri(tile int32, perfTile *perf.Tile, cmd drawSmallTri) {
	endTile := perfTile.Start(perf.SmallTriTileRaster)
	defer endTile()

	for cbY := cmd.FirstCoarseY; cbY <= cmd.LastCoarseY; cbY++ {
		for cbX := cmd.FirstCoarseX; cbX <= cmd.LastCoarseX; cbX++ {
			endBlock := perfTile.Start(perf.SmallTriCoarseRaster)
			fb.rasterCoarseBlock(tile, cbX, cbY, cmd.Edges, cmd.EdgeDxs, cmd.EdgeDys, cmd.VertZs, cmd.MinZ, cmd.MaxZ, cmd.RcpTriarea2, SmallTriRcpMantissaBits, SmallTriRcpExtraShift, 3)
			endBlock()
		}
	}
}

// execDrawTile rasterizes a triangle larger than one tile: only the
// first numTestEdges edges need per-pixel testing, the remaining edges
// having been trivially accepted for the whole tile during setup.
func (fb *Framebuffer) execDrawTile(tile int32, perfTile *perf.Tile, numTestEdges int, cmd drawTile) {
	endTile := perfTile.Start(perf.LargeTriTileRaster)
	defer endTile()

	for cbY := int32(0); cbY < TileWidthInCoarseBlocks; cbY++ {
		for cbX := int32(0); cbX < TileWidthInCoarseBlocks; cbX++ {
			endBlock := perfTile.Start(perf.LargeTriCoarseRaster)
			fb.rasterCoarseBlock(tile, cbX, cbY, cmd.Edges, cmd.EdgeDxs, cmd.EdgeDys, cmd.VertZs, cmd.MinZ, cmd.MaxZ, cmd.RcpTriarea2, LargeTriRcpMantissaBits, LargeTriRcpExtraShift, numTestEdges)
			endBlock()
		}
	}
}

// rasterCoarseBlock tests the numTestEdges leading edges of edges/dx/dy
// across every pixel of one 16x16 coarse block at (cbX,cbY), interpolating
// depth and a debug barycentric color on coverage.
//
// u and v (the barycentric weights for vertices 1 and 2) are recovered
// from the packed reciprocal-area pseudo-float without ever
// reconstructing a float: rcpArea2's mantissa and exponent are pulled
// out directly, the edge value is shifted left or right by the
// exponent's bias-127 offset, and the result multiplied by the integer
// mantissa. This is the entire point of the pseudo-float encoding: it
// turns the one division a per-triangle area reciprocal would need
// into a per-pixel shift and multiply. Edge slots beyond the
// numTestEdges tested this tile are not read (the tile-level tests in
// setup already accepted those edges), so the corresponding weight is
// forced to zero.
func (fb *Framebuffer) rasterCoarseBlock(tile int32, cbX, cbY int32, edges, dx, dy, vertZ [3]int32, minZ, maxZ uint32, rcpArea2 uint32, mantissaBits, extraShift uint, numTestEdges int) {
	blockBaseX := cbX * CoarseBlockWidthInPixels
	blockBaseY := cbY * CoarseBlockWidthInPixels

	blockE := [3]int32{}
	for i := 0; i < 3; i++ {
		blockE[i] = edges[i] + dx[i]*blockBaseX + dy[i]*blockBaseY
	}

	mantissaMask := int32(1)<<mantissaBits - 1
	mantissa := int32(rcpArea2) & mantissaMask
	exponent := int32(rcpArea2) >> mantissaBits
	rshift := exponent - 127

	minZClamp := int64(minZ) << 15
	maxZClamp := int64(maxZ) << 15

	for py := int32(0); py < CoarseBlockWidthInPixels; py++ {
		rowE := [3]int32{}
		for i := 0; i < 3; i++ {
			rowE[i] = blockE[i] + dy[i]*py
		}
		for px := int32(0); px < CoarseBlockWidthInPixels; px++ {
			covered := true
			for i := 0; i < numTestEdges; i++ {
				e := rowE[i] + dx[i]*px
				if e >= 0 {
					covered = false
					break
				}
			}
			if !covered {
				continue
			}

			var shiftedE2, shiftedE0 int32
			if numTestEdges == 3 {
				shiftedE2 = -(rowE[2] + dx[2]*px)
			}
			if numTestEdges >= 1 {
				shiftedE0 = -(rowE[0] + dx[0]*px)
			}
			if rshift < 0 {
				shiftedE2 <<= -rshift
				shiftedE0 <<= -rshift
			} else {
				shiftedE2 >>= rshift
				shiftedE0 >>= rshift
			}

			u := int32((int64(shiftedE2) * int64(mantissa)) >> extraShift >> 1)
			v := int32((int64(shiftedE0) * int64(mantissa)) >> extraShift >> 1)
			if u >= 0x8000 || v >= 0x8000 {
				panic(fmt.Sprintf("rasterCoarseBlock: barycentric weight out of range (u=%#x v=%#x)", u, v))
			}
			w := coveredFraction - u - v

			z0, z1, z2 := int64(vertZ[0]), int64(vertZ[1]), int64(vertZ[2])
			zFixed := z0<<15 + int64(u)*(z1-z0) + int64(v)*(z2-z0)
			if zFixed < minZClamp {
				zFixed = minZClamp
			}
			if zFixed > maxZClamp {
				zFixed = maxZClamp
			}

			localX := blockBaseX + px
			localY := blockBaseY + py
			addr := fb.pixelAddr(tile, localX, localY)

			depth := uint32(zFixed)
			if depth < fb.depthbuffer[addr] {
				fb.depthbuffer[addr] = depth
				fb.backbuffer[addr] = 0xFF000000 |
					uint32(byte(w/0x80))<<16 |
					uint32(byte(u/0x80))<<8 |
					uint32(byte(v/0x80))
			}
		}
	}
}
