// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package setup

import (
	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
	"github.com/pinedaraster/raster/perf"
)

const s168ZeroPtFive = 0x80

// setupSmallTriangle handles a triangle whose bounding box is no wider
// than one tile, so it can overlap at most a 2x2 neighborhood of
// tiles. bboxMin/MaxX/Y are the RAW (unclamped) window-space bounding
// box; the small-triangle path never needs the scissor-clamped one
// since it only ever touches tiles the bbox itself reaches.
func setupSmallTriangle(fb *framebuffer.Framebuffer, verts [3]windowVertex, minZ, maxZ uint32, bboxMinX, bboxMinY, bboxMaxX, bboxMaxY fixed.Fixed168) {
	end := fb.StartGlobalCounter(perf.SmallTriSetup)
	defer end()

	const tile = framebuffer.TileWidthInPixels
	const coarseBlocks = framebuffer.TileWidthInCoarseBlocks

	// >>15 divides a Fixed168 value (pixel*256) by 256*tile in one
	// arithmetic shift, which floors correctly for negative bboxes;
	// a plain >>8 then /tile would truncate toward zero instead.
	firstTileX := int32(bboxMinX) >> 15
	firstTileY := int32(bboxMinY) >> 15
	lastTileX := int32(bboxMaxX) >> 15
	lastTileY := int32(bboxMaxY) >> 15

	lastTilePxX := lastTileX * tile * 256
	lastTilePxY := lastTileY * tile * 256

	var x, y, z [3]int32
	for i, v := range verts {
		x[i] = int32(v.X) - lastTilePxX
		y[i] = int32(v.Y) - lastTilePxY
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

	rcpArea2 := framebuffer.PackRcpArea2(float64(triarea2), framebuffer.SmallTriRcpMantissaBits, framebuffer.SmallTriRcpExtraShift)

	var edges, edgeDxs, edgeDys [3]int32
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

	rotateSmallTriForInterpolation(&edges, &edgeDxs, &edgeDys, &x, &y, &z)

	for tileY := firstTileY; tileY <= lastTileY; tileY++ {
		for tileX := firstTileX; tileX <= lastTileX; tileX++ {
			if tileX < 0 || tileY < 0 || tileX >= fb.WidthInTiles() || tileY >= fb.HeightInTiles() {
				continue
			}

			var tileEdges [3]int32
			for v := 0; v < 3; v++ {
				tileEdges[v] = edges[v] + (edgeDxs[v]*(tileX-lastTileX)+edgeDys[v]*(tileY-lastTileY))*tile
			}

			firstCBX := clampCoarse(pixelToCoarse(tileX*tile, int32(bboxMinX)>>8), coarseBlocks)
			lastCBX := clampCoarse(pixelToCoarse(tileX*tile, int32(bboxMaxX)>>8), coarseBlocks)
			firstCBY := clampCoarse(pixelToCoarse(tileY*tile, int32(bboxMinY)>>8), coarseBlocks)
			lastCBY := clampCoarse(pixelToCoarse(tileY*tile, int32(bboxMaxY)>>8), coarseBlocks)
			if firstCBX > lastCBX || firstCBY > lastCBY {
				continue
			}

			fb.PushSmallTri(tileX, tileY, framebuffer.SmallTriCommand{
				Edges:        tileEdges,
				EdgeDxs:      edgeDxs,
				EdgeDys:      edgeDys,
				VertZs:       z,
				MinZ:         minZ,
				MaxZ:         maxZ,
				RcpTriarea2:  rcpArea2,
				FirstCoarseX: firstCBX,
				LastCoarseX:  lastCBX,
				FirstCoarseY: firstCBY,
				LastCoarseY:  lastCBY,
			})
		}
	}
}

// pixelToCoarse converts an absolute pixel coordinate to a coarse-block
// index relative to a tile starting at tileOriginPixels.
func pixelToCoarse(tileOriginPixels, absolutePixel int32) int32 {
	return (absolutePixel - tileOriginPixels) / framebuffer.CoarseBlockWidthInPixels
}

func clampCoarse(v, limit int32) int32 {
	if v < 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}

// rotateSmallTriForInterpolation rotates into slot 0 the vertex whose
// opposite edge has the largest slope magnitude, so that edge lands in
// slot 1 and is not one of the two edges (0 and 2) the barycentric
// weights are computed from.
func rotateSmallTriForInterpolation(edges, edgeDxs, edgeDys, x, y, z *[3]int32) {
	maxSlopeVertex := -1
	maxSlope := int64(0)
	for i := 0; i < 3; i++ {
		v1 := (i + 1) % 3
		slope := int64(edgeDxs[v1])*int64(edgeDxs[v1]) + int64(edgeDys[v1])*int64(edgeDys[v1])
		if slope > maxSlope {
			maxSlopeVertex = i
			maxSlope = slope
		}
	}

	switch maxSlopeVertex {
	case 1:
		rotateLeft(edges)
		rotateLeft(edgeDxs)
		rotateLeft(edgeDys)
		rotateLeft(x)
		rotateLeft(y)
		rotateLeft(z)
	case 2:
		rotateRight(edges)
		rotateRight(edgeDxs)
		rotateRight(edgeDys)
		rotateRight(x)
		rotateRight(y)
		rotateRight(z)
	}
}

func rotateLeft(a *[3]int32) {
	a[0], a[1], a[2] = a[1], a[2], a[0]
}

func rotateRight(a *[3]int32) {
	a[0], a[1], a[2] = a[2], a[0], a[1]
}
