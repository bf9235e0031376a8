// Package perf implements the rasterizer's performance counters: a
// small set of named, monotonically-accumulated tick counters, split
// into a framebuffer-global group and a per-tile group. It plays the
// role the teacher's profiler.ProfilerGroup interface plays for the
// GPU pipeline, specialized to flat integer counters instead of
// nested trace spans.
package perf

import "time"

// Clock returns the current time in ticks. It is injectable so tests
// can drive counters deterministically.
type Clock func() int64

// WallClock is the default Clock, using nanosecond-resolution wall
// time.
func WallClock() int64 {
	return time.Now().UnixNano()
}

// Frequency is the number of ticks per second WallClock reports.
const Frequency = int64(time.Second)

// GlobalNames lists the framebuffer-wide counters in the fixed order
// reported by Global.Values.
var GlobalNames = []string{
	"clipping",
	"common_setup",
	"smalltri_setup",
	"largetri_setup",
}

// TileNames lists the per-tile counters in the fixed order reported
// by Tile.Values.
var TileNames = []string{
	"smalltri_tile_raster",
	"smalltri_coarse_raster",
	"largetri_tile_raster",
	"largetri_coarse_raster",
	"cmdbuf_pushcmd",
	"cmdbuf_resolve",
	"clear",
}

// numGlobalCounters is the number of entries in GlobalNames.
const numGlobalCounters = 4

// numTileCounters is the number of entries in TileNames.
const numTileCounters = 7

// Global accumulates the framebuffer-wide counters.
type Global struct {
	clock  Clock
	values [numGlobalCounters]int64
}

// Tile accumulates the per-tile counters.
type Tile struct {
	clock  Clock
	values [numTileCounters]int64
}

const (
	gClipping = iota
	gCommonSetup
	gSmallTriSetup
	gLargeTriSetup
)

const (
	tSmallTriTileRaster = iota
	tSmallTriCoarseRaster
	tLargeTriTileRaster
	tLargeTriCoarseRaster
	tCmdbufPushcmd
	tCmdbufResolve
	tClear
)

// NewGlobal creates a Global counter set using clock as its time
// source; a nil clock defaults to WallClock.
func NewGlobal(clock Clock) *Global {
	if clock == nil {
		clock = WallClock
	}
	return &Global{clock: clock}
}

// NewTile creates a Tile counter set using clock as its time source; a
// nil clock defaults to WallClock.
func NewTile(clock Clock) *Tile {
	if clock == nil {
		clock = WallClock
	}
	return &Tile{clock: clock}
}

// Start begins a timed region and returns an End func that accumulates
// the elapsed ticks into the named counter's slot, mirroring the
// teacher's Start/End span pairing.
func (g *Global) Start(slot int) func() {
	begin := g.clock()
	return func() {
		g.values[slot] += g.clock() - begin
	}
}

// Start begins timing a per-tile counter, returning an End func.
func (t *Tile) Start(slot int) func() {
	begin := t.clock()
	return func() {
		t.values[slot] += t.clock() - begin
	}
}

// Reset zeroes every counter.
func (g *Global) Reset() {
	g.values = [numGlobalCounters]int64{}
}

// Reset zeroes every counter.
func (t *Tile) Reset() {
	t.values = [numTileCounters]int64{}
}

// Values returns a copy of the counter values in GlobalNames order.
func (g *Global) Values() []int64 {
	out := make([]int64, len(g.values))
	copy(out, g.values[:])
	return out
}

// Values returns a copy of the counter values in TileNames order.
func (t *Tile) Values() []int64 {
	out := make([]int64, len(t.values))
	copy(out, t.values[:])
	return out
}

// Add adds delta ticks directly to the named global counter, for
// call sites that measure elapsed time themselves rather than using
// Start.
func (g *Global) Add(slot int, delta int64) {
	g.values[slot] += delta
}

// Add adds delta ticks directly to the named per-tile counter.
func (t *Tile) Add(slot int, delta int64) {
	t.values[slot] += delta
}

// Exported slot identifiers for callers outside this package.
const (
	Clipping       = gClipping
	CommonSetup    = gCommonSetup
	SmallTriSetup  = gSmallTriSetup
	LargeTriSetup  = gLargeTriSetup

	SmallTriTileRaster   = tSmallTriTileRaster
	SmallTriCoarseRaster = tSmallTriCoarseRaster
	LargeTriTileRaster   = tLargeTriTileRaster
	LargeTriCoarseRaster = tLargeTriCoarseRaster
	CmdbufPushcmd        = tCmdbufPushcmd
	CmdbufResolve        = tCmdbufResolve
	Clear                = tClear
)
