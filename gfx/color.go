// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"math"

	"honnef.co/go/color"
)

// PackARGB8 quantizes c into the packed ARGB32 pixel format the
// framebuffer's backbuffer and Clear operate on: alpha in the high
// byte, followed by red, green, blue.
func PackARGB8(c *color.Color) uint32 {
	cc := c.Convert(color.LinearSRGB)
	r := srgbEncode(float32(cc.Values[0]))
	g := srgbEncode(float32(cc.Values[1]))
	b := srgbEncode(float32(cc.Values[2]))
	a := quantize(float32(cc.Values[3]))

	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// srgbEncode applies the sRGB opto-electronic transfer function to a
// linear-light component and quantizes it to a byte.
func srgbEncode(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	var enc float32
	if v <= 0.0031308 {
		enc = 12.92 * v
	} else {
		enc = 1.055*float32(math.Pow(float64(v), 1/2.4)) - 0.055
	}
	return quantize(enc)
}

func quantize(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
