package bitutil

import "testing"

const (
	tilePixels  = 128 * 128
	xSwizzleMask = 0x55555555 & (tilePixels - 1)
	ySwizzleMask = 0xAAAAAAAA & (tilePixels - 1)
)

func TestPdepParity(t *testing.T) {
	masks := []uint32{xSwizzleMask, ySwizzleMask, 0, 0xFFFFFFFF, 0xF0F0F0F0, 1}
	for _, mask := range masks {
		for source := uint32(0); source < 256; source++ {
			want := Pdep32(source, mask)
			got := Pdep32Accel(source, mask)
			if got != want {
				t.Fatalf("Pdep32Accel(%d,%#x)=%#x, Pdep32=%#x", source, mask, got, want)
			}
		}
	}
}

func TestSwizzleBijection(t *testing.T) {
	seen := make([]bool, tilePixels)
	for y := uint32(0); y < 128; y++ {
		for x := uint32(0); x < 128; x++ {
			idx := Pdep32(x, xSwizzleMask) | Pdep32(y, ySwizzleMask)
			if idx >= tilePixels {
				t.Fatalf("index %d out of range for (%d,%d)", idx, x, y)
			}
			if seen[idx] {
				t.Fatalf("duplicate index %d for (%d,%d)", idx, x, y)
			}
			seen[idx] = true
		}
	}
	for i, s := range seen {
		if !s {
			t.Fatalf("index %d never produced", i)
		}
	}
}

func TestLzcnt(t *testing.T) {
	if Lzcnt32(0) != 32 {
		t.Fatalf("Lzcnt32(0) = %d, want 32", Lzcnt32(0))
	}
	if Lzcnt32(1) != 31 {
		t.Fatalf("Lzcnt32(1) = %d, want 31", Lzcnt32(1))
	}
	if Lzcnt64(0) != 64 {
		t.Fatalf("Lzcnt64(0) = %d, want 64", Lzcnt64(0))
	}
}
