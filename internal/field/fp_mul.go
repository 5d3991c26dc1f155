package field

import "math/bits"

// Mul sets r = a * b mod p.
func (r *Fp) Mul(a, b *Fp) {
	aN, bN := *a, *b
	if aN.magnitude > 8 {
		aN.normalizeWeak()
	}
	if bN.magnitude > 8 {
		bN.normalizeWeak()
	}

	var t [10]uint64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			hi, lo := bits.Mul64(aN.n[i], bN.n[j])
			k := i + j
			var carry uint64
			t[k], carry = bits.Add64(t[k], lo, 0)
			if k+1 < 10 {
				t[k+1], carry = bits.Add64(t[k+1], hi, carry)
				for l := k + 2; l < 10 && carry != 0; l++ {
					t[l], carry = bits.Add64(t[l], 0, carry)
				}
			}
		}
	}
	r.reduceWide(t)
}

// Square sets r = a^2 mod p.
func (r *Fp) Square(a *Fp) {
	r.Mul(a, a)
}

// reduceWide folds a 10-limb (520-bit) product down to a field element,
// using 2^256 ≡ 2^32 + 977 (mod p) to eliminate limbs 5..9.
func (r *Fp) reduceWide(t [10]uint64) {
	const m = uint64(fpReductionConst)

	for i := 9; i >= 5; i-- {
		if t[i] == 0 {
			continue
		}
		// limb i sits at bit 52*i; 2^(52*5) = 2^260 = 2^4 * 2^256 ≡ 16*m (mod p)
		shift := uint(52*(i-5) + 4)
		hi, lo := bits.Mul64(t[i], m)
		if shift < 64 {
			var hi2, lo2 uint64
			lo2 = lo << shift
			if shift == 0 {
				hi2 = hi
			} else {
				hi2 = (lo >> (64 - shift)) | (hi << shift)
			}
			var carry uint64
			t[0], carry = bits.Add64(t[0], lo2, 0)
			if carry != 0 || hi2 != 0 {
				t[1], carry = bits.Add64(t[1], hi2, carry)
				for j := 2; j < 10 && carry != 0; j++ {
					t[j], carry = bits.Add64(t[j], 0, carry)
				}
			}
		} else {
			limbShift := shift / 64
			bitShift := shift % 64
			var loShifted, hiShifted uint64
			if bitShift == 0 {
				loShifted, hiShifted = lo, hi
			} else {
				loShifted = lo << bitShift
				hiShifted = (lo >> (64 - bitShift)) | (hi << bitShift)
			}
			var carry uint64
			if limbShift < 10 {
				t[limbShift], carry = bits.Add64(t[limbShift], loShifted, 0)
			}
			if limbShift+1 < 10 {
				t[limbShift+1], carry = bits.Add64(t[limbShift+1], hiShifted, carry)
			}
			for j := limbShift + 2; j < 10 && carry != 0; j++ {
				t[j], carry = bits.Add64(t[j], 0, carry)
			}
		}
		t[i] = 0
	}

	r.n[0] = t[0] & limbMax
	r.n[1] = ((t[0] >> 52) | (t[1] << 12)) & limbMax
	r.n[2] = ((t[1] >> 40) | (t[2] << 24)) & limbMax
	r.n[3] = ((t[2] >> 28) | (t[3] << 36)) & limbMax
	r.n[4] = ((t[3] >> 16) | (t[4] << 48)) & top4Max
	r.magnitude = 1
	r.normalized = false
	r.Normalize()
}

// Invert sets r = a^-1 mod p via Fermat's little theorem, a^(p-2),
// computed by plain MSB-first square-and-multiply over the bits of p-2
// (no addition chain). The scalar-mul core calls it per affine conversion
// or per batch (BatchInvert), not once per digit.
func (r *Fp) Invert(a *Fp) {
	aN := *a
	aN.Normalize()

	// exponent = p - 2, MSB-first square-and-multiply.
	exp := pMinusTwo()
	var acc Fp
	acc = One()
	started := false
	for i := 255; i >= 0; i-- {
		if started {
			acc.Square(&acc)
		}
		if exp[i/64]&(1<<uint(i%64)) != 0 {
			if !started {
				acc = aN
				started = true
			} else {
				acc.Mul(&acc, &aN)
			}
		}
	}
	*r = acc
	r.Normalize()
}

// pMinusTwo returns p-2 as four 64-bit limbs in little-endian order (index 3
// is most significant), where p = 2^256 - 2^32 - 977.
func pMinusTwo() [4]uint64 {
	// p = 0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F
	// p-2 = ...FFFFFC2D
	return [4]uint64{
		0xFFFFFFFEFFFFFC2D,
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFFFFF,
	}
}

// Sqrt sets r to a square root of a and reports whether one exists.
// p ≡ 3 (mod 4) for the secp256k1 prime, so a square root (if a is a
// quadratic residue) is a^((p+1)/4).
func (r *Fp) Sqrt(a *Fp) bool {
	aN := *a
	aN.Normalize()
	if aN.IsZero() {
		r.SetUint64(0)
		return true
	}

	exp := pPlusOneOverFour()
	var acc Fp
	started := false
	for i := 254; i >= 0; i-- {
		if started {
			acc.Square(&acc)
		}
		if exp[i/64]&(1<<uint(i%64)) != 0 {
			if !started {
				acc = aN
				started = true
			} else {
				acc.Mul(&acc, &aN)
			}
		}
	}
	acc.Normalize()

	var check Fp
	check.Square(&acc)
	check.Normalize()
	if check.Equal(&aN) {
		*r = acc
		return true
	}
	acc.Negate(&acc, 1)
	acc.Normalize()
	check.Square(&acc)
	check.Normalize()
	if !check.Equal(&aN) {
		return false
	}
	*r = acc
	return true
}

// pPlusOneOverFour returns (p+1)/4 for the secp256k1 prime.
func pPlusOneOverFour() [4]uint64 {
	// (p+1)/4 = 0x3FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFBFFFFF0C
	return [4]uint64{
		0xFFFFFFFFBFFFFF0C,
		0xFFFFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFFFFF,
		0x3FFFFFFFFFFFFFFF,
	}
}

// Half sets r = a/2 mod p.
func (r *Fp) Half(a *Fp) {
	t := *a
	t.Normalize()

	if t.n[0]&1 == 0 {
		t.n[0] = (t.n[0] >> 1) | ((t.n[1] & 1) << 51)
		t.n[1] = (t.n[1] >> 1) | ((t.n[2] & 1) << 51)
		t.n[2] = (t.n[2] >> 1) | ((t.n[3] & 1) << 51)
		t.n[3] = (t.n[3] >> 1) | ((t.n[4] & 1) << 51)
		t.n[4] = t.n[4] >> 1
	} else {
		// a is odd, p is odd, so a+p is even: (a+p)/2.
		var carry uint64
		t.n[0], carry = addLimb(t.n[0], pLimb0, 0)
		t.n[1], carry = addLimb(t.n[1], pLimb1, carry)
		t.n[2], carry = addLimb(t.n[2], pLimb2, carry)
		t.n[3], carry = addLimb(t.n[3], pLimb3, carry)
		t.n[4] = t.n[4] + pLimb4 + carry

		t.n[0] = (t.n[0] >> 1) | ((t.n[1] & 1) << 51)
		t.n[1] = (t.n[1] >> 1) | ((t.n[2] & 1) << 51)
		t.n[2] = (t.n[2] >> 1) | ((t.n[3] & 1) << 51)
		t.n[3] = (t.n[3] >> 1) | ((t.n[4] & 1) << 51)
		t.n[4] = t.n[4] >> 1
	}

	r.n = t.n
	r.magnitude = 1
	r.normalized = true
}

// addLimb adds two 52-bit limbs plus a carry-in, returning the masked
// 52-bit sum and the carry-out.
func addLimb(a, b, carryIn uint64) (sum, carryOut uint64) {
	s := a + b + carryIn
	return s & limbMax, s >> 52
}
