// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package framebuffer

import "fmt"

// PackRowMajor reads the rectangle [x,x+w) x [y,y+h) out of attachment,
// converting from swizzled tile-local addressing to a row-major byte
// buffer in the requested pixel format. out must have room for
// w*h*bytesPerPixel(format) bytes.
func (fb *Framebuffer) PackRowMajor(attachment Attachment, x, y, w, h int32, format PixelFormat, out []byte) {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > fb.widthInPixels || y+h > fb.heightInPixels {
		panic(fmt.Sprintf("PackRowMajor rectangle (%d,%d,%d,%d) escapes framebuffer bounds %dx%d", x, y, w, h, fb.widthInPixels, fb.heightInPixels))
	}

	bpp := bytesPerPixel(format)
	if int32(len(out)) < w*h*bpp {
		panic(fmt.Sprintf("PackRowMajor output buffer too small: need %d bytes, got %d", w*h*bpp, len(out)))
	}

	var plane []uint32
	switch attachment {
	case AttachmentColor0:
		plane = fb.backbuffer
	case AttachmentDepth:
		plane = fb.depthbuffer
	default:
		panic(fmt.Sprintf("unknown attachment %d", attachment))
	}

	for row := int32(0); row < h; row++ {
		absY := y + row
		tileY := absY / TileWidthInPixels
		localY := absY % TileWidthInPixels
		for col := int32(0); col < w; col++ {
			absX := x + col
			tileX := absX / TileWidthInPixels
			localX := absX % TileWidthInPixels

			tile := tileY*fb.widthInTiles + tileX
			addr := tile*PixelsPerTile + swizzle(localX, localY)
			value := plane[addr]

			dst := out[(row*w+col)*bpp:]
			packPixel(value, attachment, format, dst)
		}
	}
}

func bytesPerPixel(format PixelFormat) int32 {
	switch format {
	case PixelFormatR8G8B8A8Unorm, PixelFormatB8G8R8A8Unorm, PixelFormatR32Unorm:
		return 4
	default:
		panic(fmt.Sprintf("unknown pixel format %d", format))
	}
}

func packPixel(value uint32, attachment Attachment, format PixelFormat, dst []byte) {
	if attachment == AttachmentDepth {
		dst[0] = byte(value)
		dst[1] = byte(value >> 8)
		dst[2] = byte(value >> 16)
		dst[3] = byte(value >> 24)
		return
	}

	a := byte(value >> 24)
	r := byte(value >> 16)
	g := byte(value >> 8)
	b := byte(value)

	switch format {
	case PixelFormatR8G8B8A8Unorm:
		dst[0], dst[1], dst[2], dst[3] = r, g, b, a
	case PixelFormatB8G8R8A8Unorm:
		dst[0], dst[1], dst[2], dst[3] = b, g, r, a
	default:
		panic(fmt.Sprintf("unsupported color pixel format %d", format))
	}
}
