// Scalar multiplication dispatcher and algorithms for G2, the Fp2 twin of
// g1/scalarmul_g1.go: same five-algorithm structure, generalized to M=4
// for the radix-split multi-table path and a tuned window of 3 (G1 uses
// window 4, G2 uses window 3). Unlike G1's M=2 path, G2's M=4 path is not
// endomorphism-accelerated (see HasEndomorphismAcceleration in
// params_g2.go).
package g2

import (
	"shortw.mleku.dev/internal/bigint"
	"shortw.mleku.dev/internal/recoding"
)

// Algorithm identifies which scalar-multiplication strategy the dispatcher
// picked, mirroring g1.Algorithm.
type Algorithm int

const (
	AlgoAddChain4Bit Algorithm = iota
	AlgoDoubleAdd
	AlgoWNAF3
	AlgoWNAF5
	// AlgoRadixSplitWNAF4 is the M=4 multi-table path built on
	// DecomposeEndo's bit-radix split. It is NOT an endomorphism-accelerated
	// algorithm (see HasEndomorphismAcceleration) and the dispatcher never
	// selects it; it exists as an independently tested alternative
	// implementation of the same interleaved-evaluation shape.
	AlgoRadixSplitWNAF4
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
	case AlgoRadixSplitWNAF4:
		return "radixSplitWnaf3"
	default:
		panic("g2: unreachable algorithm tag")
	}
}

// SelectAlgorithm mirrors g1.SelectAlgorithm's dispatcher table.
// HasEndomorphismAcceleration is false for G2, so AlgoRadixSplitWNAF4 is
// never returned here; it is reachable only by calling
// ScalarMulRadixSplitWindowedVartime4 directly.
func SelectAlgorithm(scalBits, usedBits int) Algorithm {
	if scalBits == CurveOrderBitwidth && HasEndomorphismAcceleration && usedBits >= endoMiniScalarBits {
		return AlgoRadixSplitWNAF4
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

// ScalarMulVartime computes P <- [k]P, dispatching by scalar magnitude.
func ScalarMulVartime(P *Jacobian, k bigint.Int) {
	usedBits := k.UsedBits()
	switch SelectAlgorithm(CurveOrderBitwidth, usedBits) {
	case AlgoRadixSplitWNAF4:
		ScalarMulRadixSplitWindowedVartime4(P, k, 3)
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
// programs for s in 0..15, identical in shape to g1's (the addition chain
// only uses curve-group operations, not field-specific ones).
func ScalarMulAddChain4BitVartime(P *Jacobian, s uint8) {
	var t, t1, t2 Jacobian
	switch s {
	case 0:
		P.SetInfinity()
	case 1:
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
		panic("g2: addchain digit out of range 0..15")
	}
}

// ScalarMulDoubleAddVartime implements MSB-to-LSB binary double-and-add.
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

// ScalarMulMinHammingWeightVartime implements the non-windowed left-to-right
// signed digit recoding.
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

func precompSizeForWindow(w uint) int { return 1 << (w - 2) }

// buildOddMultiplesTable builds tab[i] = affine((2i+1)*P).
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

func accumNAF(P *Jacobian, tab []Affine, d int8) {
	switch {
	case d > 0:
		P.MaddVartime(P, &tab[d>>1])
	case d < 0:
		P.MsubVartime(P, &tab[(-d)>>1])
	}
}

// ScalarMulMinHammingWeightWindowedVartime implements the windowed wNAF
// algorithm: precompute odd multiples, recode right-to-left, evaluate
// most-significant-digit first.
func ScalarMulMinHammingWeightWindowedVartime(P *Jacobian, k bigint.Int, w uint) {
	if w < 2 || w >= 8 {
		panic("g2: wNAF window must be in [2, 8)")
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

// doubleRepeated sets r = [2^count]*a via repeated doubling.
func doubleRepeated(r *Jacobian, a *Jacobian, count int) {
	*r = *a
	for i := 0; i < count; i++ {
		r.Double(r)
	}
}

// ScalarMulRadixSplitWindowedVartime4 implements G2's M=4 multi-table path:
// four mini-scalars from DecomposeEndo's radix split, four precomputation
// tables (base_m = [2^(mL)]*P for m=0..3, each built by L, 2L, 3L repeated
// doublings since no verified Frobenius eigenvalue lets FrobeniusPsi stand
// in for that step), four interleaved wNAF recodings evaluated together so
// only one doubling happens per shared digit position in the main loop.
// Building the four bases costs L+2L+3L extra doublings on top of that
// loop, which for a 256-bit scalar makes this path strictly more expensive
// than ScalarMulMinHammingWeightWindowedVartime(w=5); it is not a
// performance win and the dispatcher never selects it (see
// HasEndomorphismAcceleration).
func ScalarMulRadixSplitWindowedVartime4(P *Jacobian, k bigint.Int, w uint) {
	if w < 2 || w >= 8 {
		panic("g2: radix-split wNAF window must be in [2, 8)")
	}
	if P.IsInfinity() {
		return
	}

	k0, k1, k2, k3 := DecomposeEndo(k)
	mini := [4]bigint.Int{k0, k1, k2, k3}

	L := endoMiniScalarBits
	var bases [4]Jacobian
	doubleRepeated(&bases[0], P, 0)
	doubleRepeated(&bases[1], P, L)
	doubleRepeated(&bases[2], P, 2*L)
	doubleRepeated(&bases[3], P, 3*L)

	var tabs [4][]Affine
	for m := 0; m < 4; m++ {
		tabs[m] = buildOddMultiplesTable(&bases[m], w)
	}

	nafLen := 0
	for m := 0; m < 4; m++ {
		if n := mini[m].UsedBits(); n > nafLen {
			nafLen = n
		}
	}
	nafLen += 2

	var nafs [4][]int8
	var lens [4]int
	for m := 0; m < 4; m++ {
		nafs[m] = make([]int8, nafLen)
		lens[m] = recoding.RecodeR2LSignedWindowVartime(nafs[m], mini[m], w)
	}

	unified := 0
	for m := 0; m < 4; m++ {
		if lens[m] > unified {
			unified = lens[m]
		}
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
		for m := 0; m < 4; m++ {
			var d int8
			if i < lens[m] {
				d = nafs[m][i]
			}
			if !isInit {
				isInit = initNAF(P, tabs[m], d)
				continue
			}
			accumNAF(P, tabs[m], d)
		}
	}
	if !isInit {
		P.SetInfinity()
	}
}
