package g1

import (
	"math/bits"

	"shortw.mleku.dev/internal/bigint"
	"shortw.mleku.dev/internal/field"
)

// betaConstant is a primitive cube root of unity mod p: beta^3 = 1 (mod p).
// lambda*(x,y) = (beta*x, y) is the GLV endomorphism on G1.
var betaConstant = mustFpFromHex("7ae96a2b657c07106e64479eac3434e99cf0497512f58995c1396c28719501ee")

// lambdaConstant is a primitive cube root of unity mod n, the curve order.
var lambdaConstant = scalarN{d: [4]uint64{
	(uint64(0xDF02967C) << 32) | uint64(0x1B23BD72),
	(uint64(0x122E22EA) << 32) | uint64(0x20816678),
	(uint64(0xA5261C02) << 32) | uint64(0x8812645A),
	(uint64(0x5363AD4C) << 32) | uint64(0xC05C30E0),
}}

// Lattice-reduction basis vectors for the GLV decomposition, the same
// constants libsecp256k1 derives from the curve's endomorphism lattice.
var (
	minusB1 = scalarN{d: [4]uint64{
		(uint64(0x6F547FA9) << 32) | uint64(0x0ABFE4C3),
		(uint64(0xE4437ED6) << 32) | uint64(0x010E8828),
		0, 0,
	}}
	minusB2 = scalarN{d: [4]uint64{
		(uint64(0xD765CDA8) << 32) | uint64(0x3DB1562C),
		(uint64(0x8A280AC5) << 32) | uint64(0x0774346D),
		(uint64(0xFFFFFFFF) << 32) | uint64(0xFFFFFFFE),
		(uint64(0xFFFFFFFF) << 32) | uint64(0xFFFFFFFF),
	}}
	latticeG1 = scalarN{d: [4]uint64{
		(uint64(0xE893209A) << 32) | uint64(0x45DBB031),
		(uint64(0x3DAA8A14) << 32) | uint64(0x71E8CA7F),
		(uint64(0xE86C90E4) << 32) | uint64(0x9284EB15),
		(uint64(0x3086D221) << 32) | uint64(0xA7D46BCD),
	}}
	latticeG2 = scalarN{d: [4]uint64{
		(uint64(0x1571B4AE) << 32) | uint64(0x8AC47F71),
		(uint64(0x221208AC) << 32) | uint64(0x9DF506C6),
		(uint64(0x6F547FA9) << 32) | uint64(0x0ABFE4C4),
		(uint64(0xE4437ED6) << 32) | uint64(0x010E8828),
	}}
)

func mustFpFromHex(hex string) field.Fp {
	b, err := decodeHex32(hex)
	if err != nil {
		panic(err)
	}
	var fe field.Fp
	if err := fe.SetBytes(b[:]); err != nil {
		panic(err)
	}
	fe.Normalize()
	return fe
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	for i := 0; i < 32; i++ {
		hi := hexNibble(s[2*i])
		lo := hexNibble(s[2*i+1])
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("g1: invalid hex digit")
	}
}

// mulWideRaw computes the raw (unreduced) 512-bit product a*b.
func mulWideRaw(a, b *scalarN) [8]uint64 {
	var c [8]uint64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a.d[i], b.d[j])
			k := i + j
			var carry uint64
			c[k], carry = bits.Add64(c[k], lo, 0)
			if k+1 < 8 {
				c[k+1], carry = bits.Add64(c[k+1], hi, carry)
				for l := k + 2; l < 8 && carry != 0; l++ {
					c[l], carry = bits.Add64(c[l], 0, carry)
				}
			}
		}
	}
	return c
}

// mulShiftVar returns round(k*g / 2^shift), matching libsecp256k1's
// secp256k1_scalar_mul_shift_var used to project k onto the GLV lattice
// basis before rounding to the nearest lattice point.
func mulShiftVar(k, g *scalarN, shift uint) scalarN {
	l := mulWideRaw(k, g)

	var result scalarN
	shiftLimbs := shift / 64
	shiftLow := shift % 64
	shiftHigh := 64 - shiftLow

	if shift < 512 {
		result.d[0] = l[shiftLimbs] >> shiftLow
		if shift < 448 && shiftLow != 0 {
			result.d[0] |= l[shiftLimbs+1] << shiftHigh
		}
	}
	if shift < 448 {
		result.d[1] = l[shiftLimbs+1] >> shiftLow
		if shift < 384 && shiftLow != 0 {
			result.d[1] |= l[shiftLimbs+2] << shiftHigh
		}
	}
	if shift < 384 {
		result.d[2] = l[shiftLimbs+2] >> shiftLow
		if shift < 320 && shiftLow != 0 {
			result.d[2] |= l[shiftLimbs+3] << shiftHigh
		}
	}
	if shift < 320 {
		result.d[3] = l[shiftLimbs+3] >> shiftLow
	}

	if shift > 0 {
		bitPos := (shift - 1) & 0x3f
		limbIdx := (shift - 1) >> 6
		if limbIdx < 8 && (l[limbIdx]>>bitPos)&1 != 0 {
			one := scalarNOne
			result.add(&result, &one)
		}
	}
	return result
}

// scalarSplitLambda splits k into r1, r2 with r1 + lambda*r2 == k (mod n),
// r1 and r2 each fitting in roughly 128 bits.
func scalarSplitLambda(k *scalarN) (r1, r2 scalarN) {
	c1 := mulShiftVar(k, &latticeG1, 384)
	c2 := mulShiftVar(k, &latticeG2, 384)

	c1.mul(&c1, &minusB1)
	c2.mul(&c2, &minusB2)

	r2.add(&c1, &c2)
	r1.mul(&r2, &lambdaConstant)
	r1.negate(&r1)
	r1.add(&r1, k)
	return r1, r2
}

// EndoLambda applies the G1 GLV endomorphism to an affine point:
// lambda*(x,y) = (beta*x, y).
func EndoLambda(r, a *Affine) {
	*r = *a
	r.X.Mul(&r.X, &betaConstant)
	r.X.Normalize()
}

// DecomposeEndo splits k into two mini-scalars k0, k1 (each at most lBits
// bits, both non-negative) plus sign flags such that
// k ≡ (±k0) + (±k1)*lambda (mod n), the GLV decomposition contract for
// M=2 (G1). lBits is the caller's expected mini-scalar width (the lattice
// reduction guarantees r1, r2 fit in roughly 128 bits for a 256-bit k); it
// is checked against the actual decomposition rather than merely recorded,
// so a caller passing too tight a bound panics instead of silently
// truncating a mini-scalar in the wNAF recoding that follows.
func DecomposeEndo(k bigint.Int, lBits int) (k0, k1 bigint.Int, neg0, neg1 bool) {
	kn := scalarNFromBytes(k.Bytes())
	r1, r2 := scalarSplitLambda(&kn)

	neg0 = r1.isHigh()
	if neg0 {
		r1.negate(&r1)
	}
	neg1 = r2.isHigh()
	if neg1 {
		r2.negate(&r2)
	}

	r1Bytes := r1.bytes()
	r2Bytes := r2.bytes()
	k0 = bigint.FromBytes(r1Bytes[:])
	k1 = bigint.FromBytes(r2Bytes[:])
	if k0.UsedBits() > lBits || k1.UsedBits() > lBits {
		panic("g1: GLV mini-scalar exceeds caller's declared lBits width")
	}
	return k0, k1, neg0, neg1
}
