package fixed

import "testing"

func TestMulRounding(t *testing.T) {
	half := Fixed1616(1 << 15) // 0.5
	one := FromInt(1)
	if got := half.Mul(one); got != half {
		t.Fatalf("0.5*1 = %v, want %v", got, half)
	}
}

func TestMulSaturates(t *testing.T) {
	max := Fixed1616(0x7FFFFFFF)
	got := max.Mul(FromInt(2))
	if got != 0x7FFFFFFF {
		t.Fatalf("expected saturation, got %v", got)
	}
}

func TestAddSatSaturates(t *testing.T) {
	max := Fixed1616(0x7FFFFFFF)
	if got := max.AddSat(1); got != 0x7FFFFFFF {
		t.Fatalf("expected saturation, got %v", got)
	}
	min := Fixed1616(-0x80000000)
	if got := min.AddSat(-1); got != -0x80000000 {
		t.Fatalf("expected saturation, got %v", got)
	}
}

func TestDivRoundTrip(t *testing.T) {
	a := FromInt(10)
	b := FromInt(4)
	got := a.Div(b)
	want := Fixed1616(5 << 15) // 2.5, exactly representable in fx16_16
	if got != want {
		t.Fatalf("10/4 = %v, want %v", got, want)
	}
}

func TestDivNegativeRounding(t *testing.T) {
	a := FromInt(-10)
	b := FromInt(4)
	got := a.Div(b)
	if got.Int() != -2 && got.Int() != -3 {
		t.Fatalf("unexpected -10/4 = %v", got)
	}
}

func TestFMA(t *testing.T) {
	got := FMA(FromInt(2), FromInt(3), FromInt(1))
	if got != FromInt(7) {
		t.Fatalf("2*3+1 = %v, want %v", got, FromInt(7))
	}
}

func TestToFixed168(t *testing.T) {
	x := FromInt(256) // 256.0 in fx16_16
	got := x.ToFixed168()
	if got != FromIntFx168(256) {
		t.Fatalf("256.0 in fx16_16 should narrow to 256.0 in fx16_8, got %v", got)
	}
}

func TestFromIntRoundTrip(t *testing.T) {
	if FromInt(5).Int() != 5 {
		t.Fatalf("int round trip broken")
	}
	if FromIntFx168(5).Int() != 5 {
		t.Fatalf("int round trip broken for fx16_8")
	}
}
