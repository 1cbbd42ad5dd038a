package hdc

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestExtractFeaturesDegeneratePose(t *testing.T) {
	var landmarks [detector.NumLandmarks]detector.Point3D
	// Wrist and middle MCP coincide: hand_size == 0.
	got := ExtractFeatures(landmarks)
	var want [NumFeatures]float64
	if got != want {
		t.Fatalf("degenerate pose = %v, want all-zero vector", got)
	}
}

func TestExtractFeaturesThumbsUp(t *testing.T) {
	hand := detector.ThumbsUpLandmarks()
	f := ExtractFeaturesFromHand(&hand)

	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("feature %d = %v, want finite", i, v)
		}
	}

	// The extended thumb should sit well above the wrist relative to the
	// curled fingers: feature 10 is the thumb's signed relative height.
	if f[10] <= 0 {
		t.Errorf("thumb relative height = %v, want > 0 for an extended thumb", f[10])
	}
}

func TestExtractFeaturesCurlAngleNormalized(t *testing.T) {
	hand := detector.OpenPalmLandmarks()
	f := ExtractFeaturesFromHand(&hand)
	for i := 20; i <= 24; i++ {
		if f[i] < 0 || f[i] > 1 {
			t.Errorf("curl angle feature %d = %v, want in [0,1]", i, f[i])
		}
	}
}

func TestExtractFeaturesDeterministic(t *testing.T) {
	hand := detector.ThumbsUpLandmarks()
	a := ExtractFeaturesFromHand(&hand)
	b := ExtractFeaturesFromHand(&hand)
	if a != b {
		t.Fatalf("ExtractFeatures is not deterministic: %v != %v", a, b)
	}
}

func TestExtractFeaturesAdjacentMCPPairStartsAtThumbCMC(t *testing.T) {
	hand := detector.ThumbsUpLandmarks()
	f := ExtractFeaturesFromHand(&hand)

	wrist := hand.Points[detector.Wrist]
	middleMCP := hand.Points[detector.MiddleMCP]
	handSize := dist3(wrist, middleMCP)

	want := dist3(hand.Points[detector.ThumbCMC], hand.Points[detector.IndexMCP]) / handSize
	if got := f[44]; math.Abs(got-want) > 1e-12 {
		t.Errorf("feature 44 = %v, want dist(lm[1], lm[5])/hand_size = %v", got, want)
	}
}

func TestCurlAngleDegenerateVectorIsZero(t *testing.T) {
	p := detector.Point3D{X: 1, Y: 1, Z: 1}
	got := curlAngle(p, p, detector.Point3D{X: 2, Y: 2, Z: 2})
	if got != 0 {
		t.Errorf("curlAngle with zero-length vector = %v, want 0", got)
	}
}
