package hdc

import "github.com/bits-and-blooms/bitset"

// HV is a bipolar hypervector of fixed dimensionality D, packed one bit per
// component: a set bit represents +1, an unset bit represents -1. Packing
// bipolar vectors this way cuts the memory an item memory or a class store's
// worth of prototypes needs by roughly 32x over a []float64 representation,
// and lets HV-to-HV comparisons run as a popcount over machine words instead
// of a componentwise float loop.
type HV struct {
	bits *bitset.BitSet
	dim  uint
}

// NewHV allocates a zero-valued HV of the given dimensionality. Every
// component starts at -1 (unset bit) until Set is called.
func NewHV(dim int) *HV {
	return &HV{bits: bitset.New(uint(dim)), dim: uint(dim)}
}

// Dim returns the hypervector's dimensionality.
func (h *HV) Dim() int {
	return int(h.dim)
}

// Set assigns component i to +1 (val > 0) or -1 (val <= 0).
func (h *HV) Set(i int, val int8) {
	if val > 0 {
		h.bits.Set(uint(i))
	} else {
		h.bits.Clear(uint(i))
	}
}

// At returns the bipolar value of component i: +1 or -1.
func (h *HV) At(i int) int8 {
	if h.bits.Test(uint(i)) {
		return 1
	}
	return -1
}

// FromBipolar builds an HV from a slice of already-computed +1/-1 values.
func FromBipolar(values []int8) *HV {
	hv := NewHV(len(values))
	for i, v := range values {
		hv.Set(i, v)
	}
	return hv
}

// HammingDistance returns the number of components at which h and other
// differ. Both must have the same dimensionality.
func (h *HV) HammingDistance(other *HV) int {
	xored := h.bits.SymmetricDifference(other.bits)
	return int(xored.Count())
}

// BipolarDot returns the exact dot product of two bipolar hypervectors of
// equal dimensionality, computed from their Hamming distance: agreeing
// components each contribute +1, disagreeing components each contribute -1,
// so dot = D - 2*hammingDistance.
func (h *HV) BipolarDot(other *HV) int {
	return int(h.dim) - 2*h.HammingDistance(other)
}

// DotFloat returns the dot product of this bipolar hypervector against a
// dense float prototype of the same length, without ever materializing h as
// []float64.
func (h *HV) DotFloat(prototype []float64) float64 {
	var sum float64
	for i, p := range prototype {
		if h.bits.Test(uint(i)) {
			sum += p
		} else {
			sum -= p
		}
	}
	return sum
}

// AddTo accumulates this hypervector's bipolar values into a running sum,
// used to bundle class prototypes.
func (h *HV) AddTo(sum []int32) {
	for i := range sum {
		if h.bits.Test(uint(i)) {
			sum[i]++
		} else {
			sum[i]--
		}
	}
}

// ToBipolarSlice materializes the hypervector as a []int8 of +1/-1 values.
func (h *HV) ToBipolarSlice() []int8 {
	out := make([]int8, h.dim)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}
