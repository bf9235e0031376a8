// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package setup

import (
	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
	"github.com/pinedaraster/raster/perf"
)

// setupLargeTriangle handles a triangle whose bounding box spans more
// than one tile. Edge equations are computed once relative to the
// top-left tile of the (scissor-clamped) bounding box, then walked
// tile by tile with trivial accept/reject tests so most tiles never
// see a per-pixel test for every edge.
func setupLargeTriangle(fb *framebuffer.Framebuffer, verts [3]windowVertex, minZ, maxZ uint32, bboxMinX, bboxMinY, bboxMaxX, bboxMaxY, clampedMinX, clampedMinY, clampedMaxX, clampedMaxY fixed.Fixed168) {
	end := fb.StartGlobalCounter(perf.LargeTriSetup)
	defer end()

	const tile = framebuffer.TileWidthInPixels

	// clampedMin/Max are already scissor-clamped to [0, dimension), so
	// this never sees a negative value, but >>15 (dividing the Fixed168
	// pixel*256 value by 256*tile in one arithmetic shift) is used for
	// consistency with the small-triangle path.
	firstTileX := int32(clampedMinX) >> 15
	firstTileY := int32(clampedMinY) >> 15
	lastTileX := int32(clampedMaxX) >> 15
	lastTileY := int32(clampedMaxY) >> 15

	firstTilePxX := int64(firstTileX) * tile * 256
	firstTilePxY := int64(firstTileY) * tile * 256

	var x, y [3]int64
	var z [3]int32
	for i, v := range verts {
		x[i] = int64(v.X) - firstTilePxX
		y[i] = int64(v.Y) - firstTilePxY
		z[i] = v.Z
	}

	triarea2 := ((x[1]-x[0])*(y[2]-y[0]) - (y[1]-y[0])*(x[2]-x[0])) >> 8
	if triarea2 == 0 {
		return
	}
	if triarea2 < 0 {
		x[1], x[2] = x[2], x[1]
		y[1], y[2] = y[2], y[1]
		z[1], z[2] = z[2], z[1]
		triarea2 = -triarea2
	}

	rcpArea2 := framebuffer.PackRcpArea2(float64(triarea2), framebuffer.LargeTriRcpMantissaBits, framebuffer.LargeTriRcpExtraShift)

	var edges, edgeDxs, edgeDys [3]int64
	for v := 0; v < 3; v++ {
		v1 := (v + 1) % 3
		edgeDxs[v] = y[v1] - y[v]
		edgeDys[v] = x[v] - x[v1]
		edges[v] = (s168ZeroPtFive-x[v])*edgeDxs[v] - (s168ZeroPtFive-y[v])*-edgeDys[v]
		if (y[v] == y[v1] && x[v] < x[v1]) || y[v] > y[v1] {
			edges[v]--
		}
		edges[v] >>= 8
	}

	// Across one tile, an edge's value varies by edgeDxs[v]*tile in x
	// and edgeDys[v]*tile in y; the four tile corners are the 0/x/y/xy
	// combinations of those two deltas.
	var trivReject, trivAccept [3]int64
	for v := 0; v < 3; v++ {
		dx := edgeDxs[v] * tile
		dy := edgeDys[v] * tile
		corners := [4]int64{0, dx, dy, dx + dy}
		lo, hi := corners[0], corners[0]
		for _, c := range corners[1:] {
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		trivReject[v] = lo
		trivAccept[v] = hi
	}

	for tileY := firstTileY; tileY <= lastTileY; tileY++ {
		for tileX := firstTileX; tileX <= lastTileX; tileX++ {
			var tileEdges [3]int64
			for v := 0; v < 3; v++ {
				tileEdges[v] = edges[v] + (edgeDxs[v]*int64(tileX-firstTileX)+edgeDys[v]*int64(tileY-firstTileY))*tile
			}

			rejected := false
			var needsTest [3]bool
			numTestEdges := 0
			for v := 0; v < 3; v++ {
				if tileEdges[v]+trivReject[v] >= 0 {
					rejected = true
					break
				}
				if tileEdges[v]+trivAccept[v] >= 0 {
					needsTest[v] = true
					numTestEdges++
				}
			}
			if rejected {
				continue
			}

			var outEdges, outDxs, outDys [3]int32
			for v := 0; v < 3; v++ {
				outEdges[v] = int32(tileEdges[v])
				outDxs[v] = int32(edgeDxs[v])
				outDys[v] = int32(edgeDys[v])
			}
			outZ := z

			switch numTestEdges {
			case 1:
				switch {
				case needsTest[1]:
					rotateLeft64(&outEdges, &outDxs, &outDys, &outZ)
				case needsTest[2]:
					rotateRight64(&outEdges, &outDxs, &outDys, &outZ)
				}
			case 2:
				switch {
				case !needsTest[0]:
					rotateLeft64(&outEdges, &outDxs, &outDys, &outZ)
				case !needsTest[1]:
					rotateRight64(&outEdges, &outDxs, &outDys, &outZ)
				}
			}

			fb.PushTile(tileX, tileY, numTestEdges, framebuffer.TileCommand{
				Edges:       outEdges,
				EdgeDxs:     outDxs,
				EdgeDys:     outDys,
				VertZs:      outZ,
				MinZ:        minZ,
				MaxZ:        maxZ,
				RcpTriarea2: rcpArea2,
			})
		}
	}
}

func rotateLeft64(edges, dxs, dys *[3]int32, z *[3]int32) {
	rotateLeft(edges)
	rotateLeft(dxs)
	rotateLeft(dys)
	rotateLeft(z)
}

func rotateRight64(edges, dxs, dys *[3]int32, z *[3]int32) {
	rotateRight(edges)
	rotateRight(dxs)
	rotateRight(dys)
	rotateRight(z)
}
