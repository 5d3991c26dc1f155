// Package g1 implements the secp256k1 short Weierstrass curve y^2 = x^3 + 7
// over Fp: point representation, curve parameters, and the variable-time
// scalar-multiplication algorithms that consume it, built around public
// scalar multiplication rather than hardwired to ECDSA/Schnorr use.
package g1

import "shortw.mleku.dev/internal/field"

// Affine is a point in affine coordinates (x, y); infinity is encoded as
// (0, 0) with the infinity flag set.
type Affine struct {
	X, Y     field.Fp
	Infinity bool
}

// Jacobian is a point in Jacobian coordinates, (X/Z^2, Y/Z^3) in affine
// terms. Infinity is its own dedicated representation (Z = 0).
type Jacobian struct {
	X, Y, Z  field.Fp
	Infinity bool
}

// curveB returns the secp256k1 curve coefficient B: y^2 = x^3 + B.
func curveB() field.Fp {
	var b field.Fp
	b.SetUint64(7)
	return b
}

// SetInfinity sets r to the point at infinity.
func (r *Affine) SetInfinity() {
	r.X = field.Zero()
	r.Y = field.Zero()
	r.Infinity = true
}

// IsInfinity reports whether r is the point at infinity.
func (r *Affine) IsInfinity() bool { return r.Infinity }

// SetXY sets r to the affine point (x, y) without validating it lies on
// the curve.
func (r *Affine) SetXY(x, y *field.Fp) {
	r.X, r.Y = *x, *y
	r.Infinity = false
}

// IsOnCurve reports whether r satisfies y^2 = x^3 + 7.
func (r *Affine) IsOnCurve() bool {
	if r.Infinity {
		return true
	}
	xN, yN := r.X, r.Y
	xN.Normalize()
	yN.Normalize()

	var lhs, x2, x3, rhs, b field.Fp
	lhs.Square(&yN)
	lhs.Normalize()

	x2.Square(&xN)
	x3.Mul(&x2, &xN)
	b = curveB()
	rhs = x3
	rhs.Add(&b)
	rhs.Normalize()

	return lhs.Equal(&rhs)
}

// Neg sets r to the negation of a (mirror about the x axis).
func (r *Affine) Neg(a *Affine) {
	if a.Infinity {
		r.SetInfinity()
		return
	}
	r.X = a.X
	r.Y.Negate(&a.Y, a.Y.Magnitude())
	r.Y.Normalize()
	r.Infinity = false
}

// Equal reports whether r and a denote the same affine point.
func (r *Affine) Equal(a *Affine) bool {
	if r.Infinity && a.Infinity {
		return true
	}
	if r.Infinity || a.Infinity {
		return false
	}
	rN, aN := *r, *a
	rN.X.Normalize()
	rN.Y.Normalize()
	aN.X.Normalize()
	aN.Y.Normalize()
	return rN.X.Equal(&aN.X) && rN.Y.Equal(&aN.Y)
}

// SetInfinity sets r to the point at infinity (Jacobian representation).
func (r *Jacobian) SetInfinity() {
	r.X = field.Zero()
	r.Y = field.One()
	r.Z = field.Zero()
	r.Infinity = true
}

// IsInfinity reports whether r is the point at infinity.
func (r *Jacobian) IsInfinity() bool { return r.Infinity }

// FromAffine sets r from an affine point.
func (r *Jacobian) FromAffine(a *Affine) {
	if a.Infinity {
		r.SetInfinity()
		return
	}
	r.X, r.Y = a.X, a.Y
	r.Z = field.One()
	r.Infinity = false
}

// ToAffine converts r to affine coordinates, dividing out Z.
func (r *Jacobian) ToAffine(out *Affine) {
	if r.Infinity {
		out.SetInfinity()
		return
	}
	var z, z2, z3 field.Fp
	z = r.Z
	z.Invert(&z)
	z2.Square(&z)
	z3.Mul(&z, &z2)

	var x, y field.Fp
	x.Mul(&r.X, &z2)
	y.Mul(&r.Y, &z3)
	x.Normalize()
	y.Normalize()

	out.X, out.Y = x, y
	out.Infinity = false
}

// BatchAffine converts many Jacobian points to affine in one shared
// inversion pass via field.BatchInvert (Montgomery's trick), used to
// batch-convert a wNAF precomputation table to affine in one pass.
func BatchAffine(out []Affine, in []Jacobian) {
	n := len(in)
	zs := make([]field.Fp, n)
	for i := range in {
		if in[i].Infinity {
			zs[i] = field.One()
		} else {
			zs[i] = in[i].Z
		}
	}
	zInvs := make([]field.Fp, n)
	field.BatchInvert(zInvs, zs)

	for i := range in {
		if in[i].Infinity {
			out[i].SetInfinity()
			continue
		}
		var z2, z3, x, y field.Fp
		z2.Square(&zInvs[i])
		z3.Mul(&zInvs[i], &z2)
		x.Mul(&in[i].X, &z2)
		y.Mul(&in[i].Y, &z3)
		x.Normalize()
		y.Normalize()
		out[i].X, out[i].Y = x, y
		out[i].Infinity = false
	}
}

// Neg sets r to the negation of a.
func (r *Jacobian) Neg(a *Jacobian) {
	if a.Infinity {
		r.SetInfinity()
		return
	}
	r.X, r.Z = a.X, a.Z
	r.Y.Negate(&a.Y, a.Y.Magnitude())
	r.Infinity = false
}

// Double sets r = 2*a, the standard a=0 Jacobian doubling formula
// (4 squarings, 3 multiplications, no field inversion).
func (r *Jacobian) Double(a *Jacobian) {
	var l, s, t field.Fp

	r.Infinity = a.Infinity

	r.Z.Mul(&a.Z, &a.Y)

	s.Square(&a.Y)

	l.Square(&a.X)
	l.MulSmall(3)
	l.Half(&l)

	t.Negate(&s, s.Magnitude())
	t.Mul(&t, &a.X)

	r.X.Square(&l)
	r.X.Add(&t)
	r.X.Add(&t)

	s.Square(&s)
	t.Add(&r.X)

	r.Y.Mul(&t, &l)
	r.Y.Add(&s)
	r.Y.Negate(&r.Y, r.Y.Magnitude())

	r.X.Normalize()
	r.Y.Normalize()
	r.Z.Normalize()
}

// SumVartime sets r = a + b (Jacobian + Jacobian), variable time.
func (r *Jacobian) SumVartime(a, b *Jacobian) {
	if a.Infinity {
		*r = *b
		return
	}
	if b.Infinity {
		*r = *a
		return
	}

	var z22, z12, u1, u2, s1, s2, h, i, h2, h3, t field.Fp

	z22.Square(&b.Z)
	z12.Square(&a.Z)
	u1.Mul(&a.X, &z22)
	u2.Mul(&b.X, &z12)
	s1.Mul(&a.Y, &z22)
	s1.Mul(&s1, &b.Z)
	s2.Mul(&b.Y, &z12)
	s2.Mul(&s2, &a.Z)

	h.Negate(&u1, u1.Magnitude())
	h.Add(&u2)
	i.Negate(&s2, s2.Magnitude())
	i.Add(&s1)

	if h.NormalizesToZero() {
		if i.NormalizesToZero() {
			r.Double(a)
			return
		}
		r.SetInfinity()
		return
	}

	r.Infinity = false

	t.Mul(&h, &b.Z)
	r.Z.Mul(&a.Z, &t)

	h2.Square(&h)
	h2.Negate(&h2, h2.Magnitude())
	h3.Mul(&h2, &h)
	t.Mul(&u1, &h2)

	r.X.Square(&i)
	r.X.Add(&h3)
	r.X.Add(&t)
	r.X.Add(&t)

	t.Add(&r.X)
	r.Y.Mul(&t, &i)
	h3.Mul(&h3, &s1)
	r.Y.Add(&h3)

	r.X.Normalize()
	r.Y.Normalize()
	r.Z.Normalize()
}

// DiffVartime sets r = a - b.
func (r *Jacobian) DiffVartime(a, b *Jacobian) {
	var negB Jacobian
	negB.Neg(b)
	r.SumVartime(a, &negB)
}

// MaddVartime sets r = a + b where b is affine (mixed addition), variable
// time. b must not be the point at infinity.
func (r *Jacobian) MaddVartime(a *Jacobian, b *Affine) {
	if b.Infinity {
		panic("g1: mixed add operand must not be infinity")
	}
	if a.Infinity {
		r.FromAffine(b)
		return
	}

	var z12, u1, u2, s1, s2, h, i, h2, h3, t field.Fp

	z12.Square(&a.Z)
	u1 = a.X
	u2.Mul(&b.X, &z12)
	s1 = a.Y
	s2.Mul(&b.Y, &z12)
	s2.Mul(&s2, &a.Z)

	h.Negate(&u1, a.X.Magnitude())
	h.Add(&u2)
	i.Negate(&s2, s2.Magnitude())
	i.Add(&s1)

	if h.NormalizesToZero() {
		if i.NormalizesToZero() {
			r.Double(a)
			return
		}
		r.SetInfinity()
		return
	}

	r.Infinity = false

	r.Z.Mul(&a.Z, &h)

	h2.Square(&h)
	h2.Negate(&h2, h2.Magnitude())
	h3.Mul(&h2, &h)
	t.Mul(&u1, &h2)

	r.X.Square(&i)
	r.X.Add(&h3)
	r.X.Add(&t)
	r.X.Add(&t)

	t.Add(&r.X)
	r.Y.Mul(&t, &i)
	h3.Mul(&h3, &s1)
	r.Y.Add(&h3)

	r.X.Normalize()
	r.Y.Normalize()
	r.Z.Normalize()
}

// MsubVartime sets r = a - b where b is affine.
func (r *Jacobian) MsubVartime(a *Jacobian, b *Affine) {
	var negB Affine
	negB.Neg(b)
	r.MaddVartime(a, &negB)
}
