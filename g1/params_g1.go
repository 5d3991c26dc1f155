package g1

// CurveOrderBitwidth is the bit width of the secp256k1 curve order n.
const CurveOrderBitwidth = 256

// HasEndomorphismAcceleration reports that G1 supports the GLV
// (M=2) endomorphism-accelerated wNAF path.
const HasEndomorphismAcceleration = true

// EndoDimension is M in decomposeEndo's contract: the number of
// mini-scalars G1's endomorphism splits a scalar into.
const EndoDimension = 2

var generator = mustGenerator()

// Generator returns the standard secp256k1 base point.
func Generator() Affine { return generator }

func mustGenerator() Affine {
	gx := mustFpFromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	gy := mustFpFromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	var g Affine
	g.SetXY(&gx, &gy)
	return g
}
