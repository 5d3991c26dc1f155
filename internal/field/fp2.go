package field

// Fp2 is an element of the quadratic extension Fp2 = Fp[u]/(u^2+1),
// represented as a0 + a1*u. This extension backs the G2 curve the same way
// a pairing library's fp2 package backs its twisted curve: every G2 field
// operation here is built out of the already-verified Fp primitives above,
// rather than a second from-scratch modular reduction.
type Fp2 struct {
	A0, A1 Fp
}

// Fp2Zero is the zero element of Fp2.
func Fp2Zero() Fp2 { return Fp2{A0: Zero(), A1: Zero()} }

// Fp2One is the multiplicative identity of Fp2.
func Fp2One() Fp2 { return Fp2{A0: One(), A1: Zero()} }

// Add sets r = a + b.
func (r *Fp2) Add(a, b *Fp2) {
	r.A0 = a.A0
	r.A0.Add(&b.A0)
	r.A1 = a.A1
	r.A1.Add(&b.A1)
	r.A0.Normalize()
	r.A1.Normalize()
}

// Sub sets r = a - b.
func (r *Fp2) Sub(a, b *Fp2) {
	r.A0 = a.A0
	r.A0.Sub(&b.A0)
	r.A1 = a.A1
	r.A1.Sub(&b.A1)
	r.A0.Normalize()
	r.A1.Normalize()
}

// Mul sets r = a * b, using (a0+a1 u)(b0+b1 u) = (a0 b0 - a1 b1) + (a0 b1 + a1 b0) u,
// since u^2 = -1.
func (r *Fp2) Mul(a, b *Fp2) {
	var a0b0, a1b1, a0b1, a1b0 Fp
	a0b0.Mul(&a.A0, &b.A0)
	a1b1.Mul(&a.A1, &b.A1)
	a0b1.Mul(&a.A0, &b.A1)
	a1b0.Mul(&a.A1, &b.A0)

	var re, im Fp
	re = a0b0
	re.Sub(&a1b1)
	re.Normalize()
	im = a0b1
	im.Add(&a1b0)
	im.Normalize()

	r.A0, r.A1 = re, im
}

// Square sets r = a^2.
func (r *Fp2) Square(a *Fp2) {
	r.Mul(a, a)
}

// Conjugate sets r = conj(a) = a0 - a1*u, the nontrivial automorphism of
// Fp2 over Fp (the restriction of Frobenius to this quadratic extension).
func (r *Fp2) Conjugate(a *Fp2) {
	var negA1 Fp
	negA1.Negate(&a.A1, a.A1.magnitude)
	negA1.Normalize()
	r.A0 = a.A0
	r.A1 = negA1
}

// Negate sets r = -a.
func (r *Fp2) Negate(a *Fp2) {
	r.A0.Negate(&a.A0, a.A0.magnitude)
	r.A0.Normalize()
	r.A1.Negate(&a.A1, a.A1.magnitude)
	r.A1.Normalize()
}

// IsZero reports whether a is the zero element.
func (r *Fp2) IsZero() bool {
	return r.A0.IsZero() && r.A1.IsZero()
}

// Equal reports whether r and a denote the same element.
func (r *Fp2) Equal(a *Fp2) bool {
	return r.A0.Equal(&a.A0) && r.A1.Equal(&a.A1)
}

// Invert sets r = a^-1, using conj(a)/(a0^2+a1^2) since Norm(a) = a*conj(a)
// lands back in Fp.
func (r *Fp2) Invert(a *Fp2) {
	var a0sq, a1sq, norm Fp
	a0sq.Square(&a.A0)
	a1sq.Square(&a.A1)
	norm = a0sq
	norm.Add(&a1sq)
	norm.Normalize()

	var normInv Fp
	normInv.Invert(&norm)

	var conj Fp2
	conj.Conjugate(a)
	r.A0.Mul(&conj.A0, &normInv)
	r.A0.Normalize()
	r.A1.Mul(&conj.A1, &normInv)
	r.A1.Normalize()
}

// Sqrt sets r to a square root of a and reports whether one exists, using
// the "complex method" for quadratic extensions: reduce to a base-field
// square root of the norm, then to two candidate base-field square roots,
// exactly as gnark-crypto's generated fp2 Sqrt does for p = 3 (mod 4)
// extensions.
func (r *Fp2) Sqrt(a *Fp2) bool {
	if a.IsZero() {
		*r = Fp2Zero()
		return true
	}

	var a0sq, a1sq, norm Fp
	a0sq.Square(&a.A0)
	a1sq.Square(&a.A1)
	norm = a0sq
	norm.Add(&a1sq)
	norm.Normalize()

	var normSqrt Fp
	if !normSqrt.Sqrt(&norm) {
		return false
	}

	var negNormSqrt Fp
	negNormSqrt.Negate(&normSqrt, normSqrt.Magnitude())
	negNormSqrt.Normalize()

	var delta1, delta2 Fp
	delta1 = a.A0
	delta1.Add(&normSqrt)
	delta1.Normalize()
	delta1.Half(&delta1)

	delta2 = a.A0
	delta2.Add(&negNormSqrt)
	delta2.Normalize()
	delta2.Half(&delta2)

	var x0 Fp
	found := x0.Sqrt(&delta1)
	if !found {
		found = x0.Sqrt(&delta2)
	}
	if !found {
		return false
	}

	var twoX0, twoX0Inv, x1 Fp
	if x0.IsZero() {
		// Only when a1 = 0 and a0 is not a square in Fp: the root is then
		// purely imaginary, x1 = sqrt(-a0).
		var negA0 Fp
		negA0.Negate(&a.A0, a.A0.magnitude)
		if !x1.Sqrt(&negA0) {
			return false
		}
	} else {
		twoX0 = x0
		twoX0.Add(&x0)
		twoX0.Normalize()
		twoX0Inv.Invert(&twoX0)
		x1.Mul(&a.A1, &twoX0Inv)
		x1.Normalize()
	}

	cand := Fp2{A0: x0, A1: x1}
	var check Fp2
	check.Square(&cand)
	if !check.Equal(a) {
		return false
	}
	*r = cand
	return true
}
