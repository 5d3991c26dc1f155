// Package g2 implements the quadratic-twist curve y^2 = x^3 + 1 over Fp2,
// the second curve this module ships so the generic scalar-multiplication
// core has a second, structurally different instantiation to run against
// (an M=4 radix-split multi-table path instead of G1's M=2 GLV; see
// HasEndomorphismAcceleration in params_g2.go). Point
// representation and arithmetic mirror g1's own Affine/Jacobian types,
// generalized from Fp to Fp2.
package g2

import "shortw.mleku.dev/internal/field"

// Affine is a point in affine coordinates (x, y) over Fp2.
type Affine struct {
	X, Y     field.Fp2
	Infinity bool
}

// Jacobian is a point in Jacobian coordinates over Fp2.
type Jacobian struct {
	X, Y, Z  field.Fp2
	Infinity bool
}

// curveB2 is the twist curve coefficient: y^2 = x^3 + 1.
func curveB2() field.Fp2 { return field.Fp2One() }

// SetInfinity sets r to the point at infinity.
func (r *Affine) SetInfinity() {
	r.X = field.Fp2Zero()
	r.Y = field.Fp2Zero()
	r.Infinity = true
}

// IsInfinity reports whether r is the point at infinity.
func (r *Affine) IsInfinity() bool { return r.Infinity }

// SetXY sets r to the affine point (x, y) without validating it lies on
// the curve.
func (r *Affine) SetXY(x, y *field.Fp2) {
	r.X, r.Y = *x, *y
	r.Infinity = false
}

// IsOnCurve reports whether r satisfies y^2 = x^3 + 1.
func (r *Affine) IsOnCurve() bool {
	if r.Infinity {
		return true
	}
	var lhs, x2, x3, rhs, b field.Fp2
	lhs.Square(&r.Y)
	x2.Square(&r.X)
	x3.Mul(&x2, &r.X)
	b = curveB2()
	rhs.Add(&x3, &b)
	return lhs.Equal(&rhs)
}

// Neg sets r to the negation of a.
func (r *Affine) Neg(a *Affine) {
	if a.Infinity {
		r.SetInfinity()
		return
	}
	r.X = a.X
	r.Y.Negate(&a.Y)
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
	return r.X.Equal(&a.X) && r.Y.Equal(&a.Y)
}

// SetInfinity sets r to the point at infinity (Jacobian representation).
func (r *Jacobian) SetInfinity() {
	r.X = field.Fp2Zero()
	r.Y = field.Fp2One()
	r.Z = field.Fp2Zero()
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
	r.Z = field.Fp2One()
	r.Infinity = false
}

// ToAffine converts r to affine coordinates, dividing out Z.
func (r *Jacobian) ToAffine(out *Affine) {
	if r.Infinity {
		out.SetInfinity()
		return
	}
	var z, z2, z3 field.Fp2
	z = r.Z
	z.Invert(&z)
	z2.Square(&z)
	z3.Mul(&z, &z2)

	var x, y field.Fp2
	x.Mul(&r.X, &z2)
	y.Mul(&r.Y, &z3)

	out.X, out.Y = x, y
	out.Infinity = false
}

// BatchAffine converts many Jacobian points to affine, matching g1's
// BatchAffine helper. Unlike g1's, this does not share a single Fp
// inversion across all points (Fp2 inversion is itself already a single Fp
// inversion via the norm map, see field.Fp2.Invert) since Montgomery's
// trick over Fp2 would need an Fp2 batch-invert helper this module does
// not otherwise require. Each point therefore costs one inversion; the
// tables built here hold 2^(w-2) points (2 at w=3, 8 at the dispatcher's
// w=5).
func BatchAffine(out []Affine, in []Jacobian) {
	for i := range in {
		in[i].ToAffine(&out[i])
	}
}

// Neg sets r to the negation of a.
func (r *Jacobian) Neg(a *Jacobian) {
	if a.Infinity {
		r.SetInfinity()
		return
	}
	r.X, r.Z = a.X, a.Z
	r.Y.Negate(&a.Y)
	r.Infinity = false
}

// Double sets r = 2*a for the a=0 short Weierstrass curve (y^2=x^3+b),
// the standard a=0 Jacobian doubling formula generalized from g1.Double's
// Fp version to Fp2.
func (r *Jacobian) Double(a *Jacobian) {
	var l, s, t, three field.Fp2

	r.Infinity = a.Infinity

	r.Z.Mul(&a.Z, &a.Y)

	s.Square(&a.Y)

	l.Square(&a.X)
	one := field.Fp2One()
	three = one
	three.Add(&three, &one)
	three.Add(&three, &one)
	l.Mul(&l, &three)
	var half field.Fp2
	halveFp2(&half, &l)
	l = half

	t.Negate(&s)
	t.Mul(&t, &a.X)

	r.X.Square(&l)
	r.X.Add(&r.X, &t)
	r.X.Add(&r.X, &t)

	s.Square(&s)
	t.Add(&t, &r.X)

	r.Y.Mul(&t, &l)
	r.Y.Add(&r.Y, &s)
	r.Y.Negate(&r.Y)
}

// halveFp2 divides an Fp2 element by 2 by halving each coordinate
// independently (dividing by 2 in the base field).
func halveFp2(r, a *field.Fp2) {
	r.A0.Half(&a.A0)
	r.A1.Half(&a.A1)
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

	var z22, z12, u1, u2, s1, s2, h, i, h2, h3, t field.Fp2

	z22.Square(&b.Z)
	z12.Square(&a.Z)
	u1.Mul(&a.X, &z22)
	u2.Mul(&b.X, &z12)
	s1.Mul(&a.Y, &z22)
	s1.Mul(&s1, &b.Z)
	s2.Mul(&b.Y, &z12)
	s2.Mul(&s2, &a.Z)

	h.Negate(&u1)
	h.Add(&h, &u2)
	i.Negate(&s2)
	i.Add(&i, &s1)

	if h.IsZero() {
		if i.IsZero() {
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
	h2.Negate(&h2)
	h3.Mul(&h2, &h)
	t.Mul(&u1, &h2)

	r.X.Square(&i)
	r.X.Add(&r.X, &h3)
	r.X.Add(&r.X, &t)
	r.X.Add(&r.X, &t)

	t.Add(&t, &r.X)
	r.Y.Mul(&t, &i)
	h3.Mul(&h3, &s1)
	r.Y.Add(&r.Y, &h3)
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
		panic("g2: mixed add operand must not be infinity")
	}
	if a.Infinity {
		r.FromAffine(b)
		return
	}

	var z12, u1, u2, s1, s2, h, i, h2, h3, t field.Fp2

	z12.Square(&a.Z)
	u1 = a.X
	u2.Mul(&b.X, &z12)
	s1 = a.Y
	s2.Mul(&b.Y, &z12)
	s2.Mul(&s2, &a.Z)

	h.Negate(&u1)
	h.Add(&h, &u2)
	i.Negate(&s2)
	i.Add(&i, &s1)

	if h.IsZero() {
		if i.IsZero() {
			r.Double(a)
			return
		}
		r.SetInfinity()
		return
	}

	r.Infinity = false

	r.Z.Mul(&a.Z, &h)

	h2.Square(&h)
	h2.Negate(&h2)
	h3.Mul(&h2, &h)
	t.Mul(&u1, &h2)

	r.X.Square(&i)
	r.X.Add(&r.X, &h3)
	r.X.Add(&r.X, &t)
	r.X.Add(&r.X, &t)

	t.Add(&t, &r.X)
	r.Y.Mul(&t, &i)
	h3.Mul(&h3, &s1)
	r.Y.Add(&r.Y, &h3)
}

// MsubVartime sets r = a - b where b is affine.
func (r *Jacobian) MsubVartime(a *Jacobian, b *Affine) {
	var negB Affine
	negB.Neg(b)
	r.MaddVartime(a, &negB)
}
