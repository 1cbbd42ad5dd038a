package hdc

// Encode maps a set of quantized (feature, bin) pairs to a single bipolar
// hypervector by bundling: summing the corresponding item-memory
// hypervectors componentwise and binarizing the sum. Ties (a zero sum at
// some component) resolve to +1, matching the tie rule used everywhere else
// bipolar sign decisions are made in this package.
func Encode(bins [NumFeatures]int, memory *ItemMemory) *HV {
	dim := memory.dim
	sum := make([]int32, dim)
	for feature, bin := range bins {
		memory.Get(feature, bin).AddTo(sum)
	}
	return binarize(sum)
}

// binarize converts a componentwise integer sum into a bipolar hypervector,
// mapping non-negative sums to +1 and negative sums to -1.
func binarize(sum []int32) *HV {
	hv := NewHV(len(sum))
	for i, s := range sum {
		if s >= 0 {
			hv.Set(i, 1)
		} else {
			hv.Set(i, -1)
		}
	}
	return hv
}
