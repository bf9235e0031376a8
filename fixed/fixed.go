// Package fixed implements the two signed fixed-point formats the
// rasterizer pipeline uses in place of floating point: Fixed1616 (16
// fractional bits, clip-space and matrix precision) and Fixed168 (8
// fractional bits, window-space precision after the viewport
// transform).
package fixed

// Fixed1616 is a signed value interpreted as n / 65536.
type Fixed1616 int32

// Fixed168 is a signed value interpreted as n / 256.
type Fixed168 int32

// FromInt converts an integer to Fixed1616.
func FromInt(i int32) Fixed1616 {
	return Fixed1616(i << 16)
}

// FromFloat32 converts a float32 to Fixed1616 by truncation, matching
// the reference fixed-point header's flt conversion exactly.
func FromFloat32(f float32) Fixed1616 {
	return Fixed1616(int32(f * 0xffff))
}

// Add returns a+b without overflow checking.
func (a Fixed1616) Add(b Fixed1616) Fixed1616 {
	return a + b
}

// AddSat returns a+b saturated to the int32 range.
func (a Fixed1616) AddSat(b Fixed1616) Fixed1616 {
	sum := int64(a) + int64(b)
	return Fixed1616(sat32(sum))
}

// Mul returns a*b rounded to nearest and saturated to the int32 range.
func (a Fixed1616) Mul(b Fixed1616) Fixed1616 {
	t := int64(a) * int64(b)
	t += 1 << 15
	return Fixed1616(sat32(t >> 16))
}

// Div returns a/b rounded to nearest, sign-aware, saturated to the
// int32 range.
func (a Fixed1616) Div(b Fixed1616) Fixed1616 {
	t := int64(a) << 16
	if (t >= 0) == (b >= 0) {
		t += int64(b) / 2
	} else {
		t -= int64(b) / 2
	}
	return Fixed1616(sat32(t / int64(b)))
}

// FMA returns a*b+c rounded to nearest and saturated to the int32
// range, computed with a single 64-bit accumulator as the reference
// implementation does (so the rounding matches Mul followed by Add
// only incidentally, not by construction).
func FMA(a, b, c Fixed1616) Fixed1616 {
	t := int64(a)*int64(b) + int64(c)<<16
	t += 1 << 15
	return Fixed1616(sat32(t >> 16))
}

// ToFixed168 narrows to the window-space fixed format by dividing by
// 256 in fixed point.
func (a Fixed1616) ToFixed168() Fixed168 {
	return Fixed168(a.Div(FromInt(256)))
}

// Int rounds towards negative infinity (an arithmetic shift) to a
// plain integer.
func (a Fixed1616) Int() int32 {
	return int32(a) >> 16
}

func sat32(x int64) int32 {
	if x > 0x7FFFFFFF {
		return 0x7FFFFFFF
	}
	if x < -0x80000000 {
		return -0x80000000
	}
	return int32(x)
}

// Add returns a+b without overflow checking.
func (a Fixed168) Add(b Fixed168) Fixed168 {
	return a + b
}

// Sub returns a-b without overflow checking.
func (a Fixed168) Sub(b Fixed168) Fixed168 {
	return a - b
}

// FromIntFx168 converts an integer to Fixed168.
func FromIntFx168(i int32) Fixed168 {
	return Fixed168(i << 8)
}

// Int rounds towards negative infinity (an arithmetic shift) to a
// plain integer.
func (a Fixed168) Int() int32 {
	return int32(a) >> 8
}
