package hdc

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// NumFeatures is the length of the feature vector produced by
// ExtractFeatures. Position in the vector is semantically meaningful and
// stable across versions; the Quantizer's range table is indexed by it.
const NumFeatures = 48

// degenerateHandSize is the hand-size threshold below which a pose is
// considered degenerate (wrist and middle-MCP effectively coincident).
const degenerateHandSize = 1e-6

// fingertips lists the landmark indices of the five fingertips, thumb to
// pinky, in the order features are derived from them.
var fingertips = [5]int{
	detector.ThumbTip, detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip,
}

// mcps lists the landmark indices of the five MCP joints, thumb to pinky.
// The thumb's "MCP" here is landmark 1 (ThumbCMC), matching the curl-angle
// vertex the feature layout specifies for the thumb.
var mcps = [5]int{
	detector.ThumbCMC, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP,
}

// pips lists the PIP (or IP, for the thumb) joint index for each finger,
// used as the curl-angle vertex in ExtractFeatures.
var pips = [5]int{
	detector.ThumbIP, detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP,
}

// palmIndices are the MCP joints averaged to find the palm center.
var palmIndices = [4]int{detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}

// adjacentMCPPairs are the neighboring-finger MCP distances in features
// 44-47: (1,5), (5,9), (9,13), (13,17).
var adjacentMCPPairs = [4][2]int{
	{detector.ThumbCMC, detector.IndexMCP},
	{detector.IndexMCP, detector.MiddleMCP},
	{detector.MiddleMCP, detector.RingMCP},
	{detector.RingMCP, detector.PinkyMCP},
}

// ExtractFeaturesFromHand is a convenience wrapper over ExtractFeatures for
// callers already holding a detector.HandLandmarks.
func ExtractFeaturesFromHand(hand *detector.HandLandmarks) [NumFeatures]float64 {
	return ExtractFeatures(hand.Points)
}

// ExtractFeatures converts 21 hand landmarks into the 48-long pose-invariant
// feature vector described by the feature layout table. If the hand size
// (wrist-to-middle-MCP distance) is below degenerateHandSize, it returns a
// zero vector rather than dividing by a near-zero scale.
func ExtractFeatures(landmarks [detector.NumLandmarks]detector.Point3D) [NumFeatures]float64 {
	var f [NumFeatures]float64

	wrist := landmarks[detector.Wrist]
	middleMCP := landmarks[detector.MiddleMCP]
	handSize := dist3(wrist, middleMCP)

	if handSize < degenerateHandSize {
		return f
	}

	palmCenter := centroid4(landmarks, palmIndices)

	idx := 0

	// 0-4: fingertip distance to wrist
	for _, ti := range fingertips {
		f[idx] = dist3(landmarks[ti], wrist) / handSize
		idx++
	}

	// 5-9: fingertip distance to palm center
	for _, ti := range fingertips {
		f[idx] = dist3(landmarks[ti], palmCenter) / handSize
		idx++
	}

	// 10-14: upward-positive relative height
	for _, ti := range fingertips {
		f[idx] = (wrist.Y - landmarks[ti].Y) / handSize
		idx++
	}

	// 15-19: lateral spread relative to palm center
	for _, ti := range fingertips {
		f[idx] = (landmarks[ti].X - palmCenter.X) / handSize
		idx++
	}

	// 20-24: curl angle at each finger's PIP/IP joint
	for i := 0; i < 5; i++ {
		f[idx] = curlAngle(landmarks[mcps[i]], landmarks[pips[i]], landmarks[fingertips[i]]) / math.Pi
		idx++
	}

	// 25-34: pairwise inter-fingertip distances, i<j
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			f[idx] = dist3(landmarks[fingertips[i]], landmarks[fingertips[j]]) / handSize
			idx++
		}
	}

	// 35-38: thumb tip to each non-thumb fingertip
	for i := 1; i < 5; i++ {
		f[idx] = dist3(landmarks[fingertips[0]], landmarks[fingertips[i]]) / handSize
		idx++
	}

	// 39-43: relative depth
	for _, ti := range fingertips {
		f[idx] = (landmarks[ti].Z - wrist.Z) / handSize
		idx++
	}

	// 44-47: adjacent-MCP distances
	for _, pair := range adjacentMCPPairs {
		f[idx] = dist3(landmarks[pair[0]], landmarks[pair[1]]) / handSize
		idx++
	}

	return f
}

// dist3 returns the Euclidean distance between two 3D points.
func dist3(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// centroid4 returns the component-wise mean of the landmarks at the given
// four indices.
func centroid4(landmarks [detector.NumLandmarks]detector.Point3D, indices [4]int) detector.Point3D {
	var c detector.Point3D
	for _, i := range indices {
		c.X += landmarks[i].X
		c.Y += landmarks[i].Y
		c.Z += landmarks[i].Z
	}
	c.X /= 4
	c.Y /= 4
	c.Z /= 4
	return c
}

// curlAngle computes the angle at pip between the vectors (mcp-pip) and
// (tip-pip), in radians. If either vector has magnitude below 1e-8, the
// angle is defined as 0.
func curlAngle(mcp, pip, tip detector.Point3D) float64 {
	v1 := detector.Point3D{X: mcp.X - pip.X, Y: mcp.Y - pip.Y, Z: mcp.Z - pip.Z}
	v2 := detector.Point3D{X: tip.X - pip.X, Y: tip.Y - pip.Y, Z: tip.Z - pip.Z}

	m1 := math.Sqrt(v1.X*v1.X + v1.Y*v1.Y + v1.Z*v1.Z)
	m2 := math.Sqrt(v2.X*v2.X + v2.Y*v2.Y + v2.Z*v2.Z)
	if m1 < 1e-8 || m2 < 1e-8 {
		return 0
	}

	dot := v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z
	cos := dot / (m1 * m2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}
