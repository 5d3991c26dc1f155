// Scalar multiplication dispatcher and algorithms for G1: a small
// dispatcher plus a handful of named algorithms, each exported so it can
// be called on its own, built around variable-time public-scalar multiplication
// rather than constant-time execution.
package g1

import (
	"shortw.mleku.dev/internal/bigint"
	"shortw.mleku.dev/internal/recoding"
)

// Algorithm identifies which of the four scalar-multiplication strategies
// the dispatcher picked; exported so callers (and tests) can assert on the
// dispatcher's behavior without re-deriving the threshold table.
type Algorithm int

const (
	AlgoAddChain4Bit Algorithm = iota
	AlgoDoubleAdd
	AlgoWNAF3
	AlgoWNAF5
	AlgoEndoWNAF
)

func (a Algorithm) String() string {
	switch a {
	case AlgoAddChain4Bit:
		return "addchain4bit"
	case AlgoDoubleAdd:
		return "doubleAdd"
	case AlgoWNAF3:
		return "wnaf3"
	case AlgoWNAF5:
		return "wnaf5"
	case AlgoEndoWNAF:
		return "endoWnaf4"
	default:
		panic("g1: unreachable algorithm tag")
	}
}

// endoMiniScalarBits is L = ceil(scalBits/M) + 1, with
// scalBits = CurveOrderBitwidth and M = EndoDimension.
const endoMiniScalarBits = (CurveOrderBitwidth+EndoDimension-1)/EndoDimension + 1

// SelectAlgorithm exposes the dispatcher's selection table as a pure
// function of usedBits, so the table itself is an independently testable
// unit without needing to intercept the dispatcher's internal call sites.
func SelectAlgorithm(scalBits, usedBits int) Algorithm {
	if scalBits == CurveOrderBitwidth && HasEndomorphismAcceleration && usedBits >= endoMiniScalarBits {
		return AlgoEndoWNAF
	}
	if usedBits > 64 {
		return AlgoWNAF5
	}
	if usedBits > 16 {
		return AlgoWNAF3
	}
	if usedBits > 4 {
		return AlgoDoubleAdd
	}
	return AlgoAddChain4Bit
}

// ScalarMulVartime computes P <- [k]P, dispatching to one of the four
// algorithms by scalar magnitude per SelectAlgorithm. k is consumed by
// value (the caller's bigint.Int is not mutated); P is overwritten in
// place with the result.
func ScalarMulVartime(P *Jacobian, k bigint.Int) {
	usedBits := k.UsedBits()
	switch SelectAlgorithm(CurveOrderBitwidth, usedBits) {
	case AlgoEndoWNAF:
		ScalarMulEndoMinHammingWeightWindowedVartime(P, k, 4)
	case AlgoWNAF5:
		ScalarMulMinHammingWeightWindowedVartime(P, k, 5)
	case AlgoWNAF3:
		ScalarMulMinHammingWeightWindowedVartime(P, k, 3)
	case AlgoDoubleAdd:
		ScalarMulDoubleAddVartime(P, k)
	default:
		ScalarMulAddChain4BitVartime(P, uint8(k.LowestLimb()&0xF))
	}
}

// ScalarMulAddChain4BitVartime implements the hardcoded straight-line
// programs for s in 0..15. The caller guarantees s < 16;
// any other value is a contract violation.
func ScalarMulAddChain4BitVartime(P *Jacobian, s uint8) {
	var t, t1, t2 Jacobian
	switch s {
	case 0:
		P.SetInfinity()
	case 1:
		// no-op
	case 2:
		P.Double(P)
	case 3:
		t.Double(P)
		P.SumVartime(P, &t)
	case 4:
		P.Double(P)
		P.Double(P)
	case 5:
		t.Double(P)
		t.Double(&t)
		P.SumVartime(P, &t)
	case 6:
		t.Double(P)
		P.SumVartime(P, &t)
		P.Double(P)
	case 7:
		t.Double(P)
		t.Double(&t)
		t.Double(&t)
		P.DiffVartime(&t, P)
	case 8:
		P.Double(P)
		P.Double(P)
		P.Double(P)
	case 9:
		t.Double(P)
		t.Double(&t)
		t.Double(&t)
		P.SumVartime(P, &t)
	case 10:
		t.Double(P)
		t.Double(&t)
		P.SumVartime(P, &t)
		P.Double(P)
	case 11:
		t1.Double(P)
		t2.Double(&t1)
		t2.Double(&t2)
		t1.SumVartime(&t1, &t2)
		P.SumVartime(P, &t1)
	case 12:
		t1.Double(P)
		t1.Double(&t1)
		t2.Double(&t1)
		P.SumVartime(&t1, &t2)
	case 13:
		t1.Double(P)
		t1.Double(&t1)
		t2.Double(&t1)
		t1.SumVartime(&t1, &t2)
		P.SumVartime(P, &t1)
	case 14:
		t.Double(P)
		t.Double(&t)
		t.Double(&t)
		t.DiffVartime(&t, P)
		P.Double(&t)
	case 15:
		t.Double(P)
		t.Double(&t)
		t.Double(&t)
		t.Double(&t)
		P.DiffVartime(&t, P)
	default:
		panic("g1: addchain digit out of range 0..15")
	}
}

// ScalarMulDoubleAddVartime implements MSB-to-LSB binary double-and-add
// over k's bits from the highest set bit down, skipping leading zero bits so
// the first doubling only happens once a 1 bit has been seen.
func ScalarMulDoubleAddVartime(P *Jacobian, k bigint.Int) {
	var Paff Affine
	P.ToAffine(&Paff)
	if Paff.IsInfinity() {
		P.SetInfinity()
		return
	}

	P.SetInfinity()
	isInf := true

	usedBits := k.UsedBits()
	for i := usedBits - 1; i >= 0; i-- {
		if !isInf {
			P.Double(P)
		}
		if k.Bit(i) == 1 {
			if isInf {
				P.FromAffine(&Paff)
				isInf = false
			} else {
				P.MaddVartime(P, &Paff)
			}
		}
	}
}

// ScalarMulMinHammingWeightVartime implements the non-windowed
// left-to-right signed digit recoding, doubling on every digit and adding
// or subtracting the snapshot affine base point per digit sign. The
// recoder (recoding.L2RSignedVartime) never emits a leading zero digit, so
// the first iteration doubles the point at infinity (leaving it infinity)
// and then adds Paff, which MaddVartime handles by assigning Paff to P.
func ScalarMulMinHammingWeightVartime(P *Jacobian, k bigint.Int) {
	var Paff Affine
	P.ToAffine(&Paff)
	if Paff.IsInfinity() {
		P.SetInfinity()
		return
	}

	digits := recoding.L2RSignedVartime(k)
	P.SetInfinity()
	for _, d := range digits {
		P.Double(P)
		switch {
		case d > 0:
			P.MaddVartime(P, &Paff)
		case d < 0:
			P.MsubVartime(P, &Paff)
		}
	}
}

// precompSizeForWindow returns 2^(w-2), the odd-multiples table size for
// window w.
func precompSizeForWindow(w uint) int { return 1 << (w - 2) }

// buildOddMultiplesTable builds tab[i] = affine((2i+1)*P) for
// i = 0..precompSize-1, batch-converting to affine in one shared inversion
// pass.
func buildOddMultiplesTable(base *Jacobian, w uint) []Affine {
	precompSize := precompSizeForWindow(w)
	tabJac := make([]Jacobian, precompSize)
	tabJac[0] = *base

	var twice Jacobian
	twice.Double(base)
	for i := 1; i < precompSize; i++ {
		tabJac[i].SumVartime(&tabJac[i-1], &twice)
	}

	tab := make([]Affine, precompSize)
	BatchAffine(tab, tabJac)
	return tab
}

// initNAF handles the first nonzero digit of a wNAF scan: for d > 0 it
// assigns P <- table[d>>1]; for d < 0 it assigns P <- -table[-d>>1]; for
// d == 0 it sets P to infinity and reports that initialization has not yet
// happened. This fuses three concerns: skipping leading-zero doublings,
// bootstrapping from infinity (madd cannot), and switching
// assign-vs-accumulate semantics.
func initNAF(P *Jacobian, tab []Affine, d int8) (initialized bool) {
	switch {
	case d > 0:
		P.FromAffine(&tab[d>>1])
		return true
	case d < 0:
		var neg Affine
		neg.Neg(&tab[(-d)>>1])
		P.FromAffine(&neg)
		return true
	default:
		P.SetInfinity()
		return false
	}
}

// accumNAF folds one more signed digit into an already-initialized P.
func accumNAF(P *Jacobian, tab []Affine, d int8) {
	switch {
	case d > 0:
		P.MaddVartime(P, &tab[d>>1])
	case d < 0:
		P.MsubVartime(P, &tab[(-d)>>1])
	}
}

// ScalarMulMinHammingWeightWindowedVartime builds the odd-multiples table,
// recodes k right-to-left into width-w wNAF digits, then scans
// most-significant-first, doubling once per digit position and folding in
// the table lookup via initNAF/accumNAF.
func ScalarMulMinHammingWeightWindowedVartime(P *Jacobian, k bigint.Int, w uint) {
	if w < 2 || w >= 8 {
		panic("g1: wNAF window must be in [2, 8)")
	}

	if P.IsInfinity() {
		return
	}
	tab := buildOddMultiplesTable(P, w)

	naf := make([]int8, k.UsedBits()+2)
	nafLen := recoding.RecodeR2LSignedWindowVartime(naf, k, w)
	if nafLen == 0 {
		P.SetInfinity()
		return
	}

	isInit := false
	for i := nafLen - 1; i >= 0; i-- {
		d := naf[i]
		if !isInit {
			isInit = initNAF(P, tab, d)
			continue
		}
		P.Double(P)
		accumNAF(P, tab, d)
	}
	if !isInit {
		P.SetInfinity()
	}
}

// ScalarMulEndoMinHammingWeightWindowedVartime implements G1's M=2 GLV
// decomposition: split k into k0, k1 with
// k = (+/-k0) + (+/-k1)*lambda (mod n), build one odd-multiples table per
// mini-scalar, recode both to the same-length wNAF, and evaluate them
// interleaved so only one doubling happens per shared digit position.
func ScalarMulEndoMinHammingWeightWindowedVartime(P *Jacobian, k bigint.Int, w uint) {
	if w < 2 || w >= 8 {
		panic("g1: endo wNAF window must be in [2, 8)")
	}
	if P.IsInfinity() {
		return
	}

	k0, k1, neg0, neg1 := DecomposeEndo(k, endoMiniScalarBits)

	var baseAff Affine
	P.ToAffine(&baseAff)

	base0 := *P
	if neg0 {
		base0.Neg(&base0)
	}

	// lambda*P's sign is independent of P's own neg0 sign, so it is
	// derived from the original (unnegated) affine point.
	var endo1Aff Affine
	EndoLambda(&endo1Aff, &baseAff)
	if neg1 {
		endo1Aff.Neg(&endo1Aff)
	}
	var base1 Jacobian
	base1.FromAffine(&endo1Aff)

	tab0 := buildOddMultiplesTable(&base0, w)
	tab1 := buildOddMultiplesTable(&base1, w)

	nafLen := k0.UsedBits()
	if n1 := k1.UsedBits(); n1 > nafLen {
		nafLen = n1
	}
	nafLen += 2

	naf0 := make([]int8, nafLen)
	naf1 := make([]int8, nafLen)
	len0 := recoding.RecodeR2LSignedWindowVartime(naf0, k0, w)
	len1 := recoding.RecodeR2LSignedWindowVartime(naf1, k1, w)
	unified := len0
	if len1 > unified {
		unified = len1
	}
	if unified == 0 {
		P.SetInfinity()
		return
	}

	isInit := false
	for i := unified - 1; i >= 0; i-- {
		if isInit {
			P.Double(P)
		}
		var d0, d1 int8
		if i < len0 {
			d0 = naf0[i]
		}
		if i < len1 {
			d1 = naf1[i]
		}

		if isInit {
			accumNAF(P, tab0, d0)
			accumNAF(P, tab1, d1)
			continue
		}
		isInit = initNAF(P, tab0, d0)
		if isInit {
			accumNAF(P, tab1, d1)
		} else {
			isInit = initNAF(P, tab1, d1)
		}
	}
	if !isInit {
		P.SetInfinity()
	}
}
