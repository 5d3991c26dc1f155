package bigint

import "testing"

func TestRoundTripBytes(t *testing.T) {
	b := make([]byte, 32)
	b[31] = 1
	v := FromBytes(b)
	if v.LowestLimb() != 1 {
		t.Fatalf("expected lowest limb 1, got %d", v.LowestLimb())
	}
	out := v.Bytes()
	for i, want := range b {
		if out[i] != want {
			t.Fatalf("byte %d mismatch: got %x want %x", i, out[i], want)
		}
	}
}

func TestHighestSetBit(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, -1},
		{1, 0},
		{2, 1},
		{0xFF, 7},
		{1 << 63, 63},
	}
	for _, c := range cases {
		v := FromUint64(Width256, c.v)
		if got := v.HighestSetBit(); got != c.want {
			t.Errorf("HighestSetBit(%x) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestUsedBitsZero(t *testing.T) {
	v := New(Width256)
	if v.UsedBits() != 0 {
		t.Errorf("UsedBits() of zero value = %d, want 0", v.UsedBits())
	}
}

func TestGetBitsWindow(t *testing.T) {
	v := FromUint64(Width256, 0b1011_0110)
	if got := v.GetBitsWindow(0, 4); got != 0b0110 {
		t.Errorf("window(0,4) = %b, want 0110", got)
	}
	if got := v.GetBitsWindow(4, 4); got != 0b1011 {
		t.Errorf("window(4,4) = %b, want 1011", got)
	}
}

func TestShiftRight1(t *testing.T) {
	v := FromUint64(Width256, 0b1010)
	v.ShiftRight1()
	if v.LowestLimb() != 0b0101 {
		t.Errorf("shift right = %b, want 0101", v.LowestLimb())
	}
}

func TestBitSetBit(t *testing.T) {
	v := New(Width256)
	v.SetBit(70, 1)
	if v.Bit(70) != 1 {
		t.Error("expected bit 70 to be set")
	}
	if v.Bit(69) != 0 || v.Bit(71) != 0 {
		t.Error("neighboring bits should remain unset")
	}
	v.SetBit(70, 0)
	if v.Bit(70) != 0 {
		t.Error("expected bit 70 to be cleared")
	}
}

func TestIsOddIsZero(t *testing.T) {
	zero := New(Width256)
	if !zero.IsZero() {
		t.Error("New() should be zero")
	}
	if zero.IsOdd() {
		t.Error("zero should not be odd")
	}
	one := FromUint64(Width256, 1)
	if one.IsZero() {
		t.Error("one should not be zero")
	}
	if !one.IsOdd() {
		t.Error("one should be odd")
	}
}
