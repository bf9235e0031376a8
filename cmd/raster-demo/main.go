// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Command raster-demo rasterizes a handful of hardcoded triangles and
// writes the result to a PNG, exercising the public raster API end to
// end without any windowing or GPU dependency.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pinedaraster/raster"
	"github.com/pinedaraster/raster/fixed"
)

func main() {
	var (
		width  int
		height int
		out    string
	)
	flag.IntVar(&width, "width", 512, "framebuffer width in pixels")
	flag.IntVar(&height, "height", 512, "framebuffer height in pixels")
	flag.StringVar(&out, "out", "out.png", "path to write the rendered PNG to")
	flag.Parse()

	fb := raster.NewFramebuffer(int32(width), int32(height))
	raster.Clear(fb, 0)

	vertices := []int32{
		q(-0.8), q(-0.8), q(0.5), q(1),
		q(0.8), q(-0.8), q(0.5), q(1),
		q(0), q(0.8), q(0.5), q(1),

		q(-0.9), q(0.2), q(0.2), q(1),
		q(-0.1), q(-0.9), q(0.2), q(1),
		q(0.5), q(0.9), q(0.9), q(1),
	}
	raster.Draw(fb, vertices, uint32(len(vertices)/4))
	raster.Resolve(fb)

	buf := make([]byte, width*height*4)
	raster.PackRowMajor(fb, raster.AttachmentColor0, 0, 0, int32(width), int32(height), raster.PixelFormatR8G8B8A8Unorm, buf)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.Set(x, y, color.RGBA{buf[i], buf[i+1], buf[i+2], buf[i+3]})
		}
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func q(f float32) int32 {
	return int32(fixed.FromFloat32(f))
}
