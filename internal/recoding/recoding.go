// Package recoding implements the signed-digit recoders the scalar
// multiplication algorithms consume: a non-windowed left-to-right minimal
// Hamming-weight recoder and a windowed right-to-left non-adjacent-form
// (wNAF) recoder. Both are variable-time and intended only for public
// scalars, generalized to an arbitrary window width and to the bigint.Int
// scalar type instead of a fixed-size byte buffer.
package recoding

import (
	"math/bits"

	"shortw.mleku.dev/internal/bigint"
)

// L2RSignedVartime produces the left-to-right minimal Hamming-weight signed
// digit recoding of k: a sequence of digits in {-1, 0, +1}, scanned from the
// most significant bit, whose weighted sum equals k and which never starts
// with a leading zero digit (the leading digit is always +1, so
// scalarMul_minHammingWeight_vartime's first iteration is a doubling of
// infinity followed by an add). digits[0] is the most significant digit; the returned slice
// length is the number of digits actually used.
//
// Grounded on the carry-propagation shape of the classical NAF algorithm
// (GECC 3.30): a run of consecutive 1 bits is replaced by a borrow from the
// next-higher bit plus a trailing -1, which is exactly a minimal-weight
// signed digit recoding when windowed to width 1.
func L2RSignedVartime(k bigint.Int) []int8 {
	usedBits := k.UsedBits()
	if usedBits == 0 {
		return nil
	}

	// Work one bit beyond the top of k so a carry out of the MSB has
	// somewhere to land.
	digits := make([]int8, usedBits+1)
	carry := 0
	for i := 0; i <= usedBits; i++ {
		bit := 0
		if i < usedBits {
			bit = k.Bit(i)
		}
		v := bit + carry
		if v&1 == 1 {
			// The next bit decides between +1 (remainder 1 mod 4) and -1
			// (remainder 3 mod 4).
			next := 0
			if i+1 < usedBits {
				next = k.Bit(i + 1)
			}
			digits[i] = int8(2 - ((v + 2*next) & 3))
			carry = (v - int(digits[i])) / 2
		} else {
			digits[i] = 0
			carry = v / 2
		}
	}

	// digits is little-endian (index 0 = LSB); strip leading (high-order)
	// zero digits and reverse to most-significant-first order.
	top := len(digits) - 1
	for top > 0 && digits[top] == 0 {
		top--
	}
	out := make([]int8, top+1)
	for i := range out {
		out[i] = digits[top-i]
	}
	return out
}

// RecodeR2LSignedWindowVartime fills out with the right-to-left windowed
// signed digit (wNAF) recoding of k for window width w (2 <= w < 8),
// returning the number of digits written. out must have room for at least
// k.UsedBits()+1 entries. out[0] is the least significant digit; digits are
// odd (in {-(2^(w-1)-1), ..., -1, 1, ..., 2^(w-1)-1}) or zero.
func RecodeR2LSignedWindowVartime(out []int8, k bigint.Int, w uint) int {
	if w < 2 || w >= 8 {
		panic("recoding: window width must be in [2, 8)")
	}
	width := 1 << w
	halfWidth := 1 << (w - 1)

	// One spare limb holds the carry when a negative digit is subtracted
	// from a value whose upper bits are all ones.
	work := bigint.New(k.Limbs() + 1)
	for i := 0; i < k.Limbs(); i++ {
		work.SetLimbAt(i, k.LimbAt(i))
	}
	pos := 0
	for !work.IsZero() {
		if pos >= len(out) {
			panic("recoding: output buffer too small for wNAF digits")
		}
		if work.IsOdd() {
			window := int(work.GetBitsWindow(0, w))
			var digit int
			if window >= halfWidth {
				digit = window - width
			} else {
				digit = window
			}
			out[pos] = int8(digit)
			subtractSigned(&work, digit)
		} else {
			out[pos] = 0
		}
		pos++
		work.ShiftRight1()
	}
	return pos
}

// subtractSigned subtracts a small signed digit (|digit| < 256) from work
// in place: work -= digit, propagating borrow/carry across limbs.
func subtractSigned(work *bigint.Int, digit int) {
	if digit >= 0 {
		borrow := uint64(digit)
		for i := 0; i < work.Limbs() && borrow != 0; i++ {
			lim := work.LimbAt(i)
			diff, b := bits.Sub64(lim, borrow, 0)
			work.SetLimbAt(i, diff)
			borrow = b
		}
		return
	}
	add := uint64(-digit)
	carry := uint64(0)
	for i := 0; i < work.Limbs() && (add != 0 || carry != 0); i++ {
		lim := work.LimbAt(i)
		sum, c := bits.Add64(lim, add, carry)
		work.SetLimbAt(i, sum)
		carry = c
		add = 0
	}
}
