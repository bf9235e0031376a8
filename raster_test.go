// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package raster

import (
	"testing"

	"github.com/pinedaraster/raster/fixed"
)

func q(f float32) int32 {
	return int32(fixed.FromFloat32(f))
}

func TestDrawRasterizesATriangle(t *testing.T) {
	fb := NewFramebuffer(128, 128)
	Clear(fb, 0)
	Resolve(fb)

	vertices := []int32{
		q(-0.5), q(-0.5), q(0.5), q(1),
		q(0.5), q(-0.5), q(0.5), q(1),
		q(0), q(0.5), q(0.5), q(1),
	}
	Draw(fb, vertices, 3)
	Resolve(fb)

	out := make([]byte, 128*128*4)
	PackRowMajor(fb, AttachmentColor0, 0, 0, 128, 128, PixelFormatR8G8B8A8Unorm, out)

	covered := false
	for i := 0; i < len(out); i += 4 {
		if out[i+3] != 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Fatal("expected Draw to rasterize a visible triangle")
	}
}

func TestDrawIndexedSharesVertices(t *testing.T) {
	fb := NewFramebuffer(128, 128)
	Clear(fb, 0)
	Resolve(fb)

	vertices := []int32{
		q(-0.5), q(-0.5), q(0.5), q(1),
		q(0.5), q(-0.5), q(0.5), q(1),
		q(0), q(0.5), q(0.5), q(1),
		q(-0.5), q(0.5), q(0.5), q(1),
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	DrawIndexed(fb, vertices, indices, 6)
	Resolve(fb)

	out := make([]byte, 128*128*4)
	PackRowMajor(fb, AttachmentColor0, 0, 0, 128, 128, PixelFormatR8G8B8A8Unorm, out)

	covered := 0
	for i := 0; i < len(out); i += 4 {
		if out[i+3] != 0 {
			covered++
		}
	}
	if covered < 100 {
		t.Fatalf("expected a quad built from two shared-vertex triangles to cover a sizeable area, got %d pixels", covered)
	}
}

func TestDrawPanicsOnBadVertexCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Draw to panic when numVertices is not a multiple of 3")
		}
	}()
	Draw(NewFramebuffer(64, 64), make([]int32, 16), 4)
}
