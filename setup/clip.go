// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package setup

import (
	"github.com/pinedaraster/raster/fixed"
	"github.com/pinedaraster/raster/framebuffer"
)

// clipNearPlane clips tri against z >= 0. ok is false when the whole
// triangle is behind the plane. A triangle with exactly one vertex
// behind the plane splits into two triangles; the first is emitted via
// a recursive call to Triangle, mirroring the reference implementation.
func clipNearPlane(fb *framebuffer.Framebuffer, tri [3]Vertex) (out [3]Vertex, ok bool) {
	var behind [3]bool
	numBehind := 0
	for i := 0; i < 3; i++ {
		behind[i] = tri[i].Z < 0
		if behind[i] {
			numBehind++
		}
	}

	if numBehind == 3 {
		return tri, false
	}

	if numBehind == 2 {
		unclipped := indexOfFalse(behind)
		v1, v2 := (unclipped+1)%3, (unclipped+2)%3
		tri[v1] = clipToNear(tri[unclipped], tri[v1])
		tri[v2] = clipToNear(tri[unclipped], tri[v2])
		return tri, true
	}

	if numBehind == 1 {
		clippedVert := indexOfTrue(behind)
		v1, v2 := (clippedVert+1)%3, (clippedVert+2)%3

		clipped1 := clipToNear(tri[clippedVert], tri[v1])
		clipped2 := clipToNear(tri[clippedVert], tri[v2])

		tri1 := tri
		tri1[clippedVert] = clipped1
		Triangle(fb, tri1)

		tri[clippedVert] = clipped2
		tri[v1] = clipped1
		return tri, true
	}

	return tri, true
}

// clipFarPlane clips tri against z >= w, symmetric to clipNearPlane.
func clipFarPlane(fb *framebuffer.Framebuffer, tri [3]Vertex) (out [3]Vertex, ok bool) {
	var behind [3]bool
	numBehind := 0
	for i := 0; i < 3; i++ {
		behind[i] = tri[i].Z >= tri[i].W
		if behind[i] {
			numBehind++
		}
	}

	if numBehind == 3 {
		return tri, false
	}

	if numBehind == 2 {
		unclipped := indexOfFalse(behind)
		v1, v2 := (unclipped+1)%3, (unclipped+2)%3
		tri[v1] = clipToFar(tri[unclipped], tri[v1])
		tri[v2] = clipToFar(tri[unclipped], tri[v2])
		return tri, true
	}

	if numBehind == 1 {
		clippedVert := indexOfTrue(behind)
		v1, v2 := (clippedVert+1)%3, (clippedVert+2)%3

		clipped1 := clipToFar(tri[clippedVert], tri[v1])
		clipped2 := clipToFar(tri[clippedVert], tri[v2])

		tri1 := tri
		tri1[clippedVert] = clipped1
		Triangle(fb, tri1)

		tri[clippedVert] = clipped2
		tri[v1] = clipped1
		return tri, true
	}

	return tri, true
}

// clipToNear cuts the edge from in (in front of the near plane) to out
// (behind it), returning the point where the edge crosses z=0.
func clipToNear(in, out Vertex) Vertex {
	a := in.Z.Div(in.Z - out.Z)
	oneMinusA := fixed.FromInt(1) - a
	return Vertex{
		X: oneMinusA.Mul(in.X) + a.Mul(out.X),
		Y: oneMinusA.Mul(in.Y) + a.Mul(out.Y),
		Z: 0,
		W: oneMinusA.Mul(in.W) + a.Mul(out.W),
	}
}

// clipToFar cuts the edge from in (in front of the far plane) to out
// (behind it), returning the point where the edge crosses z=w. The
// resulting z is set to w-1 (one fixed-point unit short of the plane,
// not a whole integer) so a subsequent far-plane test on the clipped
// vertex never re-triggers on the boundary it was just placed on.
func clipToFar(in, out Vertex) Vertex {
	inDist := in.Z - in.W
	outDist := out.Z - out.W
	a := inDist.Div(inDist - outDist)
	oneMinusA := fixed.FromInt(1) - a
	w := oneMinusA.Mul(in.W) + a.Mul(out.W)
	return Vertex{
		X: oneMinusA.Mul(in.X) + a.Mul(out.X),
		Y: oneMinusA.Mul(in.Y) + a.Mul(out.Y),
		Z: w - 1,
		W: w,
	}
}

func indexOfTrue(b [3]bool) int {
	for i, v := range b {
		if v {
			return i
		}
	}
	return -1
}

func indexOfFalse(b [3]bool) int {
	for i, v := range b {
		if !v {
			return i
		}
	}
	return -1
}
