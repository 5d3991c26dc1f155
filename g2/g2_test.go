package g2

import (
	"crypto/rand"
	"testing"

	"shortw.mleku.dev/internal/bigint"
)

func randomScalarBigInt(t *testing.T) bigint.Int {
	t.Helper()
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return bigint.FromBytes(buf[:])
}

func randomScalarNBits(t *testing.T, bitLen int) bigint.Int {
	t.Helper()
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	k := bigint.FromBytes(buf)
	for i := bitLen; i < 256; i++ {
		k.SetBit(i, 0)
	}
	return k
}

func genJacobian() Jacobian {
	var j Jacobian
	g := Generator()
	j.FromAffine(&g)
	return j
}

func referenceMulVartime(k bigint.Int) Jacobian {
	var acc Jacobian
	acc.SetInfinity()
	base := genJacobian()
	usedBits := k.UsedBits()
	for i := usedBits - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k.Bit(i) == 1 {
			acc.SumVartime(&acc, &base)
		}
	}
	return acc
}

func affineEqual(t *testing.T, got, want Jacobian, msg string) {
	t.Helper()
	var gotA, wantA Affine
	got.ToAffine(&gotA)
	want.ToAffine(&wantA)
	if !gotA.Equal(&wantA) {
		t.Fatalf("%s: mismatch, inf got=%v want=%v", msg, gotA.IsInfinity(), wantA.IsInfinity())
	}
}

func TestGeneratorIsOnCurveAndNonDegenerate(t *testing.T) {
	g := Generator()
	if !g.IsOnCurve() {
		t.Fatal("generator must lie on the curve")
	}
	if g.X.IsZero() {
		t.Fatal("generator must not be the x=0 3-torsion point")
	}

	var gj, twice, thrice Jacobian
	gj.FromAffine(&g)
	twice.Double(&gj)
	thrice.SumVartime(&twice, &gj)
	if thrice.IsInfinity() {
		t.Fatal("generator must not have order dividing 3")
	}
}

func TestDoubleAddAgreesWithReference(t *testing.T) {
	for trial := 0; trial < 15; trial++ {
		k := randomScalarBigInt(t)
		want := referenceMulVartime(k)

		base := genJacobian()
		ScalarMulDoubleAddVartime(&base, k)
		affineEqual(t, base, want, "doubleAdd")
	}
}

func TestMinHammingWeightAgreesWithReference(t *testing.T) {
	for trial := 0; trial < 15; trial++ {
		k := randomScalarBigInt(t)
		want := referenceMulVartime(k)

		base := genJacobian()
		ScalarMulMinHammingWeightVartime(&base, k)
		affineEqual(t, base, want, "minHammingWeight")
	}
}

func TestWindowedWNAFAgreesWithReference(t *testing.T) {
	for _, w := range []uint{3, 4, 5} {
		for trial := 0; trial < 8; trial++ {
			k := randomScalarBigInt(t)
			want := referenceMulVartime(k)

			base := genJacobian()
			ScalarMulMinHammingWeightWindowedVartime(&base, k, w)
			affineEqual(t, base, want, "windowedWNAF")
		}
	}
}

func TestRadixSplitWNAFAgreesWithReference(t *testing.T) {
	for trial := 0; trial < 15; trial++ {
		k := randomScalarBigInt(t)
		want := referenceMulVartime(k)

		base := genJacobian()
		ScalarMulRadixSplitWindowedVartime4(&base, k, 3)
		affineEqual(t, base, want, "radixSplitWNAF")
	}
}

func TestDispatcherAgreesWithReference(t *testing.T) {
	for _, bitLen := range []int{1, 4, 5, 16, 17, 64, 65, 255, 256} {
		for trial := 0; trial < 4; trial++ {
			k := randomScalarNBits(t, bitLen)
			want := referenceMulVartime(k)

			base := genJacobian()
			ScalarMulVartime(&base, k)
			affineEqual(t, base, want, "dispatcher")
		}
	}
}

func TestSelectAlgorithmThresholds(t *testing.T) {
	cases := []struct {
		usedBits int
		want     Algorithm
	}{
		{0, AlgoAddChain4Bit},
		{4, AlgoAddChain4Bit},
		{5, AlgoDoubleAdd},
		{16, AlgoDoubleAdd},
		{17, AlgoWNAF3},
		{64, AlgoWNAF3},
		{65, AlgoWNAF5},
		{endoMiniScalarBits - 1, AlgoWNAF3},
		// HasEndomorphismAcceleration is false for G2 (see params_g2.go),
		// so even at the widths a genuine accelerated path would claim,
		// the dispatcher keeps choosing plain wNAF5.
		{endoMiniScalarBits, AlgoWNAF5},
		{256, AlgoWNAF5},
	}
	for _, c := range cases {
		got := SelectAlgorithm(CurveOrderBitwidth, c.usedBits)
		if got != c.want {
			t.Errorf("SelectAlgorithm(%d, %d) = %v, want %v", CurveOrderBitwidth, c.usedBits, got, c.want)
		}
	}
}

// TestDispatcherNeverSelectsRadixSplitWNAF asserts the negative property
// the review called out: since AlgoRadixSplitWNAF4 costs more doublings
// than AlgoWNAF5 rather than fewer, the dispatcher must never pick it for
// any scalar width, not just the ones TestSelectAlgorithmThresholds
// happens to enumerate.
func TestDispatcherNeverSelectsRadixSplitWNAF(t *testing.T) {
	for usedBits := 0; usedBits <= CurveOrderBitwidth; usedBits++ {
		if got := SelectAlgorithm(CurveOrderBitwidth, usedBits); got == AlgoRadixSplitWNAF4 {
			t.Fatalf("SelectAlgorithm(%d, %d) = %v, want anything but the unaccelerated radix-split path",
				CurveOrderBitwidth, usedBits, got)
		}
	}
}

func TestScalarMulZeroIsInfinity(t *testing.T) {
	zero := bigint.New(bigint.Width256)
	base := genJacobian()
	ScalarMulVartime(&base, zero)
	if !base.IsInfinity() {
		t.Error("[0]P should be infinity")
	}
}

func TestScalarMulOneIsIdentity(t *testing.T) {
	one := bigint.FromUint64(bigint.Width256, 1)
	base := genJacobian()
	want := genJacobian()
	ScalarMulVartime(&base, one)
	affineEqual(t, base, want, "[1]P")
}

func TestScalarMulOfInfinityIsInfinity(t *testing.T) {
	var inf Jacobian
	inf.SetInfinity()
	k := randomScalarBigInt(t)
	ScalarMulVartime(&inf, k)
	if !inf.IsInfinity() {
		t.Error("[k]infinity should remain infinity")
	}
}

func TestScalarMulNegation(t *testing.T) {
	for trial := 0; trial < 8; trial++ {
		k := randomScalarBigInt(t)

		pos := genJacobian()
		ScalarMulVartime(&pos, k)

		var negBase Jacobian
		g := genJacobian()
		negBase.Neg(&g)
		ScalarMulVartime(&negBase, k)

		var wantNeg Jacobian
		wantNeg.Neg(&pos)

		affineEqual(t, negBase, wantNeg, "[k](-P)")
	}
}

func TestScalarMulAdditivity(t *testing.T) {
	for a := uint64(0); a < 12; a++ {
		for b := uint64(0); b < 12; b++ {
			ka := bigint.FromUint64(bigint.Width256, a)
			kb := bigint.FromUint64(bigint.Width256, b)
			kab := bigint.FromUint64(bigint.Width256, a+b)

			pa := genJacobian()
			ScalarMulVartime(&pa, ka)
			pb := genJacobian()
			ScalarMulVartime(&pb, kb)
			var sum Jacobian
			sum.SumVartime(&pa, &pb)

			pab := genJacobian()
			ScalarMulVartime(&pab, kab)

			affineEqual(t, pab, sum, "[a+b]P vs [a]P+[b]P")
		}
	}
}

func TestRadixSplitWNAFMatchesPlainWNAF(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		k := randomScalarNBits(t, 256)

		plain := genJacobian()
		ScalarMulMinHammingWeightWindowedVartime(&plain, k, 5)

		radixSplit := genJacobian()
		ScalarMulRadixSplitWindowedVartime4(&radixSplit, k, 3)

		affineEqual(t, radixSplit, plain, "radix-split vs plain wNAF")
	}
}

func TestAddChain4BitAllDigits(t *testing.T) {
	for s := 0; s < 16; s++ {
		k := bigint.FromUint64(bigint.Width256, uint64(s))
		want := referenceMulVartime(k)

		base := genJacobian()
		ScalarMulAddChain4BitVartime(&base, uint8(s))
		affineEqual(t, base, want, "addchain4bit")
	}
}

func TestDecomposeEndoRadixRecombines(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		k := randomScalarBigInt(t)
		k0, k1, k2, k3 := DecomposeEndo(k)

		L := endoMiniScalarBits
		for i := 0; i < 256; i++ {
			var want int
			switch {
			case i < L:
				want = k0.Bit(i)
			case i < 2*L:
				want = k1.Bit(i - L)
			case i < 3*L:
				want = k2.Bit(i - 2*L)
			case i < 4*L:
				want = k3.Bit(i - 3*L)
			default:
				want = 0
			}
			if k.Bit(i) != want {
				t.Fatalf("trial %d bit %d: k=%d want=%d", trial, i, k.Bit(i), want)
			}
		}
	}
}

// TestFrobeniusPsiOrderSix confirms psi^6 = identity, the structural fact
// that makes psi a genuine order-dividing-6 curve endomorphism (beta's
// order-3 automorphism composed with the order-2 Frobenius conjugation).
func TestFrobeniusPsiOrderSix(t *testing.T) {
	g := Generator()
	var p1, p2, p3, cur Affine
	FrobeniusPsi(&p1, &g, 1)
	FrobeniusPsi(&p2, &p1, 1)
	FrobeniusPsi(&p3, &p2, 1)
	cur = p3
	for i := 0; i < 3; i++ {
		var next Affine
		FrobeniusPsi(&next, &cur, 1)
		cur = next
	}
	if !cur.Equal(&g) {
		t.Fatal("psi^6 should be the identity map")
	}
}

// TestFrobeniusPsiPowersComposeIteratively confirms psi^2 and psi^3 built
// via the power argument agree with iterating the single-step map.
func TestFrobeniusPsiPowersComposeIteratively(t *testing.T) {
	g := Generator()
	var viaPower2, viaIter1, viaIter2 Affine
	FrobeniusPsi(&viaPower2, &g, 2)
	FrobeniusPsi(&viaIter1, &g, 1)
	FrobeniusPsi(&viaIter2, &viaIter1, 1)
	if !viaPower2.Equal(&viaIter2) {
		t.Fatal("psi^2(P) should equal psi(psi(P))")
	}
}
