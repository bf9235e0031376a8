package perf

import "testing"

func fakeClock() Clock {
	var t int64
	return func() int64 {
		t += 10
		return t
	}
}

func TestGlobalStartEnd(t *testing.T) {
	g := NewGlobal(fakeClock())
	end := g.Start(Clipping)
	end()
	vals := g.Values()
	if vals[Clipping] != 10 {
		t.Fatalf("clipping = %d, want 10", vals[Clipping])
	}
	for i, v := range vals {
		if i != Clipping && v != 0 {
			t.Fatalf("counter %d should be 0, got %d", i, v)
		}
	}
}

func TestReset(t *testing.T) {
	g := NewGlobal(fakeClock())
	g.Add(CommonSetup, 42)
	g.Reset()
	for _, v := range g.Values() {
		if v != 0 {
			t.Fatalf("expected zeroed counters after Reset")
		}
	}
}

func TestTileCounters(t *testing.T) {
	tile := NewTile(fakeClock())
	end := tile.Start(SmallTriTileRaster)
	end()
	if tile.Values()[SmallTriTileRaster] == 0 {
		t.Fatalf("expected nonzero tile counter")
	}
	if len(TileNames) != len(tile.Values()) {
		t.Fatalf("names/values length mismatch")
	}
}
