package hdc

import "testing"

func TestHVSetAt(t *testing.T) {
	hv := NewHV(8)
	hv.Set(0, 1)
	hv.Set(1, -1)
	if hv.At(0) != 1 {
		t.Errorf("At(0) = %d, want 1", hv.At(0))
	}
	if hv.At(1) != -1 {
		t.Errorf("At(1) = %d, want -1", hv.At(1))
	}
	// Untouched components default to -1.
	if hv.At(2) != -1 {
		t.Errorf("At(2) = %d, want -1 (default)", hv.At(2))
	}
}

func TestHVBipolarDotIdenticalVectors(t *testing.T) {
	values := []int8{1, -1, 1, 1, -1, -1, 1, -1}
	a := FromBipolar(values)
	b := FromBipolar(values)
	got := a.BipolarDot(b)
	if got != len(values) {
		t.Errorf("BipolarDot(identical) = %d, want %d", got, len(values))
	}
}

func TestHVBipolarDotOppositeVectors(t *testing.T) {
	values := []int8{1, -1, 1, 1, -1, -1, 1, -1}
	opposite := make([]int8, len(values))
	for i, v := range values {
		opposite[i] = -v
	}
	a := FromBipolar(values)
	b := FromBipolar(opposite)
	got := a.BipolarDot(b)
	if got != -len(values) {
		t.Errorf("BipolarDot(opposite) = %d, want %d", got, -len(values))
	}
}

func TestHVDotFloatMatchesManualSum(t *testing.T) {
	values := []int8{1, -1, 1, -1}
	hv := FromBipolar(values)
	prototype := []float64{2, 3, 4, 5}

	want := 1*2.0 + -1*3.0 + 1*4.0 + -1*5.0
	got := hv.DotFloat(prototype)
	if got != want {
		t.Errorf("DotFloat = %v, want %v", got, want)
	}
}

func TestHVAddToAccumulates(t *testing.T) {
	sum := make([]int32, 4)
	FromBipolar([]int8{1, -1, 1, -1}).AddTo(sum)
	FromBipolar([]int8{1, 1, -1, -1}).AddTo(sum)
	want := []int32{2, 0, 0, -2}
	for i := range sum {
		if sum[i] != want[i] {
			t.Errorf("sum[%d] = %d, want %d", i, sum[i], want[i])
		}
	}
}

func TestHVToBipolarSliceRoundTrips(t *testing.T) {
	values := []int8{1, -1, -1, 1, 1}
	hv := FromBipolar(values)
	got := hv.ToBipolarSlice()
	for i, v := range got {
		if v != values[i] {
			t.Errorf("component %d = %d, want %d", i, v, values[i])
		}
	}
}
