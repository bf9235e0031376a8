// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package setup

import (
	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
	"github.com/pinedaraster/raster/perf"
)

// windowVertex is a triangle corner after the viewport transform: x, y
// in Fixed168 pixel coordinates, z already divided by w.
type windowVertex struct {
	X, Y fixed.Fixed168
	Z    int32 // Fixed1616 z/w, stored as a raw int32 for direct use as vert_z
}

// commonSetupAndDispatch performs the viewport transform, bounding
// box/scissor test, and small/large classification, then hands off to
// the matching setup path.
func commonSetupAndDispatch(fb *framebuffer.Framebuffer, clip [3]Vertex) {
	end := fb.StartGlobalCounter(perf.CommonSetup)
	defer end()

	var verts [3]windowVertex
	for i, v := range clip {
		oneOverW := fixed.FromInt(1).Div(v.W)
		x := v.X.Mul(oneOverW)
		y := (-v.Y).Mul(oneOverW)
		x = (x + fixed.FromInt(1)).Div(fixed.FromInt(2)).Mul(fixed.FromInt(fb.WidthInPixels()))
		y = (y + fixed.FromInt(1)).Div(fixed.FromInt(2)).Mul(fixed.FromInt(fb.HeightInPixels()))
		verts[i] = windowVertex{
			X: x.ToFixed168(),
			Y: y.ToFixed168(),
			Z: int32(v.Z.Mul(oneOverW)),
		}
	}

	minZ, maxZ := uint32(verts[0].Z), uint32(verts[0].Z)
	for _, v := range verts[1:] {
		if uint32(v.Z) < minZ {
			minZ = uint32(v.Z)
		}
		if uint32(v.Z) > maxZ {
			maxZ = uint32(v.Z)
		}
	}

	bboxMinX, bboxMaxX := verts[0].X, verts[0].X
	bboxMinY, bboxMaxY := verts[0].Y, verts[0].Y
	for _, v := range verts[1:] {
		if v.X < bboxMinX {
			bboxMinX = v.X
		}
		if v.X > bboxMaxX {
			bboxMaxX = v.X
		}
		if v.Y < bboxMinY {
			bboxMinY = v.Y
		}
		if v.Y > bboxMaxY {
			bboxMaxY = v.Y
		}
	}

	widthFx := fixed.FromIntFx168(fb.WidthInPixels())
	heightFx := fixed.FromIntFx168(fb.HeightInPixels())

	if bboxMaxX < 0 || bboxMaxY < 0 || bboxMinX >= widthFx || bboxMinY >= heightFx {
		return
	}

	clampedMinX, clampedMaxX := bboxMinX, bboxMaxX
	clampedMinY, clampedMaxY := bboxMinY, bboxMaxY
	if clampedMinX < 0 {
		clampedMinX = 0
	}
	if clampedMinY < 0 {
		clampedMinY = 0
	}
	if clampedMaxX >= widthFx {
		clampedMaxX = widthFx - 1
	}
	if clampedMaxY >= heightFx {
		clampedMaxY = heightFx - 1
	}

	isLarge := (bboxMaxX-bboxMinX) >= fixed.FromIntFx168(framebuffer.TileWidthInPixels) ||
		(bboxMaxY-bboxMinY) >= fixed.FromIntFx168(framebuffer.TileWidthInPixels)

	if isLarge {
		setupLargeTriangle(fb, verts, minZ, maxZ, bboxMinX, bboxMinY, bboxMaxX, bboxMaxY, clampedMinX, clampedMinY, clampedMaxX, clampedMaxY)
	} else {
		setupSmallTriangle(fb, verts, minZ, maxZ, bboxMinX, bboxMinY, bboxMaxX, bboxMaxY)
	}
}
