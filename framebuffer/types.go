// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package framebuffer

// Attachment selects which plane of the framebuffer PackRowMajor reads
// from.
type Attachment int

const (
	AttachmentColor0 Attachment = iota
	AttachmentDepth
)

// PixelFormat selects the byte layout PackRowMajor writes.
type PixelFormat int

const (
	PixelFormatR8G8B8A8Unorm PixelFormat = iota
	PixelFormatB8G8R8A8Unorm
	PixelFormatR32Unorm
)

// tile geometry constants, sized per the Larrabee-style rasterizer
// this core is modeled on: any edge equation that isn't trivially
// accepted or rejected must still fit in 32 bits within a single
// 128x128 tile.
const (
	TileWidthInPixels        = 128
	CoarseBlockWidthInPixels = 16
	FineBlockWidthInPixels   = 4

	PixelsPerTile        = TileWidthInPixels * TileWidthInPixels
	PixelsPerCoarseBlock = CoarseBlockWidthInPixels * CoarseBlockWidthInPixels

	TileWidthInCoarseBlocks = TileWidthInPixels / CoarseBlockWidthInPixels

	tileCommandBufferSizeInDwords = 128
)

// Alternating yx swizzle masks for Morton-ordering pixels within a
// tile. Tiles themselves are stored row-major.
const (
	TileXSwizzleMask = uint32(0x55555555) & (PixelsPerTile - 1)
	TileYSwizzleMask = uint32(0xAAAAAAAA) & (PixelsPerTile - 1)
)

type tilecmdID uint32

const (
	tilecmdResetBuf tilecmdID = iota
	tilecmdDrawSmallTri
	tilecmdDrawTile0Edge
	tilecmdDrawTile1Edge
	tilecmdDrawTile2Edge
	tilecmdDrawTile3Edge
	tilecmdClearTile
)

// drawSmallTri is the payload of a tilecmdDrawSmallTri command: a
// triangle that fits in at most a 2x2 tile neighborhood, with its
// coarse-block range already clipped to the destination tile.
type drawSmallTri struct {
	TilecmdID                             uint32
	Edges                                 [3]int32
	EdgeDxs                               [3]int32
	EdgeDys                               [3]int32
	VertZs                                [3]int32
	MaxZ, MinZ                            uint32
	RcpTriarea2                           uint32
	FirstCoarseX, LastCoarseX             int32
	FirstCoarseY, LastCoarseY             int32
}

const drawSmallTriWords = 20

// drawTile is the payload of a tilecmdDrawTileNEdge command: a
// triangle larger than a tile, rotated so the first N edges (N coded
// by the opcode) are the ones this tile still needs to test
// per-pixel.
type drawTile struct {
	TilecmdID    uint32
	Edges        [3]int32
	EdgeDxs      [3]int32
	EdgeDys      [3]int32
	VertZs       [3]int32
	MaxZ, MinZ   uint32
	RcpTriarea2  uint32
}

const drawTileWords = 16

// clearTile is the payload of a tilecmdClearTile command.
type clearTile struct {
	TilecmdID uint32
	Color     uint32
}

const clearTileWords = 2
