// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package setup

import (
	"testing"

	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
)

func vtx(x, y, z, w float32) Vertex {
	return Vertex{
		X: fixed.FromFloat32(x),
		Y: fixed.FromFloat32(y),
		Z: fixed.FromFloat32(z),
		W: fixed.FromFloat32(w),
	}
}

func TestClipNearPlaneAllInFront(t *testing.T) {
	tri := [3]Vertex{vtx(-0.5, -0.5, 0.5, 1), vtx(0.5, -0.5, 0.5, 1), vtx(0, 0.5, 0.5, 1)}
	out, ok := clipNearPlane(nil, tri)
	if !ok {
		t.Fatal("expected triangle entirely in front of the near plane to survive")
	}
	if out != tri {
		t.Fatalf("expected unmodified triangle, got %+v", out)
	}
}

func TestClipNearPlaneAllBehind(t *testing.T) {
	tri := [3]Vertex{vtx(-0.5, -0.5, -1, 1), vtx(0.5, -0.5, -1, 1), vtx(0, 0.5, -1, 1)}
	_, ok := clipNearPlane(nil, tri)
	if ok {
		t.Fatal("expected triangle entirely behind the near plane to be rejected")
	}
}

func TestClipNearPlaneTwoBehind(t *testing.T) {
	tri := [3]Vertex{vtx(-0.5, -0.5, 1, 1), vtx(0.5, -0.5, -1, 1), vtx(0, 0.5, -1, 1)}
	out, ok := clipNearPlane(nil, tri)
	if !ok {
		t.Fatal("expected a clipped triangle to survive")
	}
	if out[0].Z < 0 || out[1].Z != 0 || out[2].Z != 0 {
		t.Fatalf("expected the two behind-plane vertices to land exactly on z=0, got %+v", out)
	}
}

func TestClipToNearMidpoint(t *testing.T) {
	in := vtx(0, 0, 1, 1)
	out := vtx(0, 0, -1, 1)
	clipped := clipToNear(in, out)
	if clipped.Z != 0 {
		t.Fatalf("expected z=0 exactly at the clip plane, got %v", clipped.Z)
	}
	wantX := fixed.FromFloat32(0)
	if clipped.X != wantX {
		t.Fatalf("expected interpolated x=0, got %v", clipped.X)
	}
}

func TestClipFarPlaneTwoBehind(t *testing.T) {
	tri := [3]Vertex{vtx(-0.5, -0.5, 0.5, 1), vtx(0.5, -0.5, 3, 1), vtx(0, 0.5, 3, 1)}
	out, ok := clipFarPlane(nil, tri)
	if !ok {
		t.Fatal("expected a clipped triangle to survive")
	}
	if out[1].Z >= out[1].W || out[2].Z >= out[2].W {
		t.Fatalf("expected clipped vertices to land just short of z=w, got %+v", out)
	}
}

func TestTriangleEndToEndSmall(t *testing.T) {
	fb := framebuffer.New(256, 256)
	fb.Clear(0)
	fb.Resolve()

	tri := [3]Vertex{
		vtx(-0.2, -0.2, 0.5, 1),
		vtx(0.2, -0.2, 0.5, 1),
		vtx(0, 0.2, 0.5, 1),
	}
	Triangle(fb, tri)
	fb.Resolve()

	out := make([]byte, 256*256*4)
	fb.PackRowMajor(framebuffer.AttachmentColor0, 0, 0, 256, 256, framebuffer.PixelFormatR8G8B8A8Unorm, out)

	covered := false
	for i := 0; i < len(out); i += 4 {
		if out[i+3] != 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Fatal("expected at least one covered pixel after rasterizing a triangle spanning the viewport center")
	}
}

func TestTriangleEndToEndLarge(t *testing.T) {
	fb := framebuffer.New(512, 512)
	fb.Clear(0)
	fb.Resolve()

	tri := [3]Vertex{
		vtx(-0.9, -0.9, 0.5, 1),
		vtx(0.9, -0.9, 0.5, 1),
		vtx(0, 0.9, 0.5, 1),
	}
	Triangle(fb, tri)
	fb.Resolve()

	out := make([]byte, 512*512*4)
	fb.PackRowMajor(framebuffer.AttachmentColor0, 0, 0, 512, 512, framebuffer.PixelFormatR8G8B8A8Unorm, out)

	covered := 0
	for i := 0; i < len(out); i += 4 {
		if out[i+3] != 0 {
			covered++
		}
	}
	if covered < 1000 {
		t.Fatalf("expected a large covering triangle to light up many pixels, got %d", covered)
	}
}

// TestTriangleSharedEdgeExclusiveCoverage exercises the top-left fill
// rule end to end: two triangles sharing a diagonal edge must tile
// their union rectangle with no gap and no double coverage.
func TestTriangleSharedEdgeExclusiveCoverage(t *testing.T) {
	const w, h = int32(64), int32(64)

	triA := [3]Vertex{vtx(0, 1, 0, 1), vtx(1, 1, 0, 1), vtx(0, 0, 0, 1)}
	triB := [3]Vertex{vtx(1, 1, 0, 1), vtx(1, 0, 0, 1), vtx(0, 0, 0, 1)}

	coverage := func(tri [3]Vertex) []bool {
		fb := framebuffer.New(w, h)
		fb.Clear(0)
		fb.Resolve()
		Triangle(fb, tri)
		fb.Resolve()

		out := make([]byte, int(w*h*4))
		fb.PackRowMajor(framebuffer.AttachmentColor0, 0, 0, w, h, framebuffer.PixelFormatR8G8B8A8Unorm, out)

		covered := make([]bool, w*h)
		for i := range covered {
			covered[i] = out[i*4+3] != 0
		}
		return covered
	}

	coveredA := coverage(triA)
	coveredB := coverage(triB)

	// triA and triB, drawn through the viewport transform in
	// setupSmallTriangle/commonSetupAndDispatch, together tile the
	// window-space square [w/2, w) x [0, h/2) exactly, sharing the
	// diagonal edge from (w, 0) to (w/2, h/2). Every pixel in that
	// square must land in exactly one of the two coverage sets.
	for y := int32(0); y < h/2; y++ {
		for x := w / 2; x < w; x++ {
			idx := y*w + x
			switch {
			case coveredA[idx] && coveredB[idx]:
				t.Fatalf("pixel (%d,%d) covered by both triangles sharing the edge", x, y)
			case !coveredA[idx] && !coveredB[idx]:
				t.Fatalf("pixel (%d,%d) covered by neither triangle sharing the edge", x, y)
			}
		}
	}
}

// TestTriangleDepthTestIsOrderIndependent exercises the depth-test
// invariant that the nearer triangle wins a pixel regardless of which
// one is drawn first.
func TestTriangleDepthTestIsOrderIndependent(t *testing.T) {
	const w, h = int32(64), int32(64)

	near := [3]Vertex{vtx(-0.5, -0.5, 0.2, 1), vtx(0.5, -0.5, 0.2, 1), vtx(0, 0.5, 0.2, 1)}
	far := [3]Vertex{vtx(-0.5, -0.5, 0.8, 1), vtx(0.5, -0.5, 0.8, 1), vtx(0, 0.5, 0.8, 1)}

	depthAt := func(fb *framebuffer.Framebuffer, x, y int32) uint32 {
		out := make([]byte, 4)
		fb.PackRowMajor(framebuffer.AttachmentDepth, x, y, 1, 1, framebuffer.PixelFormatR32Unorm, out)
		return uint32(out[0]) | uint32(out[1])<<8 | uint32(out[2])<<16 | uint32(out[3])<<24
	}

	fbBase := framebuffer.New(w, h)
	fbBase.Clear(0)
	fbBase.Resolve()
	Triangle(fbBase, near)
	fbBase.Resolve()
	wantDepth := depthAt(fbBase, w/2, h/2)
	if wantDepth == 0xFFFFFFFF {
		t.Fatal("expected the near triangle to cover the sample pixel")
	}

	fbNearFirst := framebuffer.New(w, h)
	fbNearFirst.Clear(0)
	fbNearFirst.Resolve()
	Triangle(fbNearFirst, near)
	Triangle(fbNearFirst, far)
	fbNearFirst.Resolve()
	if got := depthAt(fbNearFirst, w/2, h/2); got != wantDepth {
		t.Fatalf("near-then-far draw order: depth = %d, want %d (near triangle should win)", got, wantDepth)
	}

	fbFarFirst := framebuffer.New(w, h)
	fbFarFirst.Clear(0)
	fbFarFirst.Resolve()
	Triangle(fbFarFirst, far)
	Triangle(fbFarFirst, near)
	fbFarFirst.Resolve()
	if got := depthAt(fbFarFirst, w/2, h/2); got != wantDepth {
		t.Fatalf("far-then-near draw order: depth = %d, want %d (near triangle should still win)", got, wantDepth)
	}
}

func TestTriangleDegenerateIsDropped(t *testing.T) {
	fb := framebuffer.New(64, 64)
	fb.Clear(0)
	fb.Resolve()

	tri := [3]Vertex{vtx(0, 0, 0.5, 1), vtx(0, 0, 0.5, 1), vtx(0, 0, 0.5, 1)}
	Triangle(fb, tri)
	fb.Resolve()

	out := make([]byte, 64*64*4)
	fb.PackRowMajor(framebuffer.AttachmentColor0, 0, 0, 64, 64, framebuffer.PixelFormatR8G8B8A8Unorm, out)
	for i := 0; i < len(out); i += 4 {
		if out[i+3] != 0 {
			t.Fatal("expected a zero-area triangle to contribute no pixels")
		}
	}
}
