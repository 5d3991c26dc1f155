package field

import (
	"crypto/rand"
	"testing"
)

func TestFpBasics(t *testing.T) {
	zero := Zero()
	if !zero.IsZero() {
		t.Error("zero element should be zero")
	}

	one := One()
	if one.IsZero() {
		t.Error("one element should not be zero")
	}
	if !one.IsOdd() {
		t.Error("one should be odd")
	}

	var one2 Fp
	one2.SetUint64(1)
	if !one.Equal(&one2) {
		t.Error("two normalized ones should be equal")
	}
}

func TestFpSetBytesRoundTrip(t *testing.T) {
	cases := [][32]byte{
		{},
		{0: 0, 31: 1},
		{0: 0xFF, 31: 0xFF},
	}
	for _, b := range cases {
		var fe Fp
		if err := fe.SetBytes(b[:]); err != nil {
			t.Fatalf("SetBytes: %v", err)
		}
		fe.Normalize()
		out := fe.Bytes()
		var fe2 Fp
		if err := fe2.SetBytes(out[:]); err != nil {
			t.Fatalf("SetBytes(roundtrip): %v", err)
		}
		fe2.Normalize()
		if !fe.Equal(&fe2) {
			t.Errorf("round trip mismatch for %x", b)
		}
	}
}

func TestFpSetBytesWrongLength(t *testing.T) {
	var fe Fp
	if err := fe.SetBytes(make([]byte, 31)); err == nil {
		t.Error("expected error for short byte slice")
	}
}

func TestFpMaxValueReducesModP(t *testing.T) {
	max := [32]byte{}
	for i := range max {
		max[i] = 0xFF
	}
	var fe Fp
	if err := fe.SetBytes(max[:]); err != nil {
		t.Fatal(err)
	}
	fe.Normalize()
	// 2^256 - 1 = p + (2^32 + 977 - 1), so this must not reduce to zero.
	if fe.IsZero() {
		t.Error("2^256-1 should not reduce to zero mod p")
	}
}

func TestFpAddSubInverse(t *testing.T) {
	var a, b, sum, diff Fp
	a.SetUint64(12345)
	b.SetUint64(6789)

	sum = a
	sum.Add(&b)
	sum.Normalize()

	diff = sum
	diff.Sub(&b)
	diff.Normalize()

	aN := a
	aN.Normalize()
	if !diff.Equal(&aN) {
		t.Error("(a+b)-b should equal a")
	}
}

func TestFpMulSquareConsistency(t *testing.T) {
	var a, viaMul, viaSquare Fp
	a.SetUint64(999)
	viaMul.Mul(&a, &a)
	viaSquare.Square(&a)
	viaMul.Normalize()
	viaSquare.Normalize()
	if !viaMul.Equal(&viaSquare) {
		t.Error("Square(a) should equal Mul(a, a)")
	}
}

func TestFpMulRandomAgainstDistributivity(t *testing.T) {
	for i := 0; i < 64; i++ {
		a := randomFp(t)
		b := randomFp(t)
		c := randomFp(t)

		var bc, abc1 Fp
		bc = b
		bc.Add(&c)
		bc.Normalize()
		abc1.Mul(&a, &bc)
		abc1.Normalize()

		var ab, ac, abc2 Fp
		ab.Mul(&a, &b)
		ac.Mul(&a, &c)
		abc2 = ab
		abc2.Add(&ac)
		abc2.Normalize()

		if !abc1.Equal(&abc2) {
			t.Fatalf("a*(b+c) != a*b+a*c for a=%x b=%x c=%x", a.Bytes(), b.Bytes(), c.Bytes())
		}
	}
}

func TestFpInvert(t *testing.T) {
	one := One()
	for i := 0; i < 32; i++ {
		a := randomFp(t)
		if a.IsZero() {
			continue
		}
		var inv, prod Fp
		inv.Invert(&a)
		prod.Mul(&a, &inv)
		prod.Normalize()
		if !prod.Equal(&one) {
			t.Fatalf("a * a^-1 != 1 for a=%x", a.Bytes())
		}
	}
}

func TestFpSqrt(t *testing.T) {
	for i := 0; i < 32; i++ {
		a := randomFp(t)
		var sq Fp
		sq.Square(&a)
		sq.Normalize()

		var root Fp
		ok := root.Sqrt(&sq)
		if !ok {
			t.Fatalf("expected a square for sq=%x", sq.Bytes())
		}
		var check Fp
		check.Square(&root)
		check.Normalize()
		if !check.Equal(&sq) {
			t.Fatalf("sqrt(a^2)^2 != a^2 for a=%x", a.Bytes())
		}
	}
}

func TestFpHalf(t *testing.T) {
	for i := 0; i < 32; i++ {
		a := randomFp(t)
		var half, doubled Fp
		half.Half(&a)
		doubled = half
		doubled.Add(&doubled)
		doubled.Normalize()
		aN := a
		aN.Normalize()
		if !doubled.Equal(&aN) {
			t.Fatalf("2*(a/2) != a for a=%x", a.Bytes())
		}
	}
}

func TestFpBatchInvert(t *testing.T) {
	elems := make([]Fp, 8)
	for i := range elems {
		elems[i] = randomFp(t)
	}
	out := make([]Fp, len(elems))
	BatchInvert(out, elems)

	one := One()
	for i := range elems {
		var prod Fp
		prod.Mul(&elems[i], &out[i])
		prod.Normalize()
		if !prod.Equal(&one) {
			t.Fatalf("batch invert mismatch at index %d", i)
		}
	}
}

func randomFp(t *testing.T) Fp {
	t.Helper()
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatal(err)
	}
	var fe Fp
	if err := fe.SetBytes(b[:]); err != nil {
		t.Fatal(err)
	}
	fe.Normalize()
	return fe
}
