package hdc

// featureRange is the (lo, hi) interval a feature's continuous value is
// clamped into before being mapped onto one of NumBins discrete bins.
type featureRange struct {
	Low, High float64
}

// Feature-index block boundaries from ExtractFeatures' layout (features.go):
// fingertip distances (0-9), signed height/spread (10-19), curl angles
// (20-24), pairwise/thumb distances (25-38), relative depth (39-43),
// adjacent-MCP distances (44-47).
const (
	blockDistancesEnd    = 9  // 0-9: fingertip-to-wrist, fingertip-to-palm
	blockHeightSpreadEnd = 19 // 10-14 height, 15-19 spread
	blockAngleEnd        = 24 // 20-24: curl angles, already divided by pi
	blockPairwiseEnd     = 38 // 25-34 pairwise, 35-38 thumb-to-fingertip
	depthFeatureStart    = 39
	depthFeatureEnd      = 43 // 39-43: signed relative depth
	// 44-47: adjacent-MCP distances, falls through to the default range.
)

// featureRangeFor returns the quantization range for feature index i.
//
// The distilled range table is ambiguous about where the signed
// relative-depth block starts: a table cell reads "43-47" for a range that,
// read against the feature layout, actually belongs to indices 39-43. This
// implementation resolves the ambiguity by deriving the boundary from
// ExtractFeatures' own layout rather than guessing at the transcription:
// relative depth (tip.z - wrist.z) is written at indices 39-43 inclusive,
// and it is the only feature block whose natural range is signed and
// centered on zero, so it alone gets (-1, 1). This is a recorded decision,
// not a silent fix — see DESIGN.md.
func featureRangeFor(i int) featureRange {
	switch {
	case i >= depthFeatureStart && i <= depthFeatureEnd:
		return featureRange{Low: -1, High: 1}
	case i <= blockDistancesEnd:
		return featureRange{Low: 0, High: 3}
	case i <= blockHeightSpreadEnd:
		return featureRange{Low: -2, High: 2}
	case i <= blockAngleEnd:
		return featureRange{Low: 0, High: 1}
	default:
		// 25-38 (pairwise/thumb distances) and 44-47 (adjacent-MCP
		// distances) share the wide default distance range.
		return featureRange{Low: 0, High: 3}
	}
}

// quantizeEpsilon matches the reference formula's denominator epsilon,
// keeping quantize well-defined even for a degenerate zero-width range.
const quantizeEpsilon = 1e-8

// quantizeOne maps a single value into [0, numBins-1] given its range.
func quantizeOne(v float64, r featureRange, numBins int) int {
	t := (v - r.Low) / (r.High - r.Low + quantizeEpsilon)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	bin := int(t * float64(numBins))
	if bin >= numBins {
		bin = numBins - 1
	}
	return bin
}

// Quantize maps a continuous feature vector onto a discrete bin vector, one
// bin index per feature, using each feature's own range from featureRangeFor.
func Quantize(features [NumFeatures]float64, numBins int) [NumFeatures]int {
	var bins [NumFeatures]int
	for i, v := range features {
		bins[i] = quantizeOne(v, featureRangeFor(i), numBins)
	}
	return bins
}
