package hdc

import "github.com/ayusman/mudra/internal/detector"

// Default recognizer construction parameters, matching the reference
// configuration: a 10,000-dimensional hypervector space, 16 bins per
// feature, a cosine-similarity acceptance threshold of 0.25, and a fixed
// RNG seed so item-memory content is reproducible run to run.
const (
	DefaultDim       = 10000
	DefaultNumBins   = 16
	DefaultThreshold = 0.25
	DefaultSeed      = 42
)

// Recognizer is the public façade over the feature extractor, item memory,
// encoder, and class store: construct one, add a handful of examples per
// gesture, and classify new poses. A Recognizer is not safe for concurrent
// use; callers with multiple goroutines touching one recognizer must
// serialize access themselves (see internal/app for how the capture
// pipeline does this with a mutex).
type Recognizer struct {
	dim       int
	numBins   int
	threshold float64
	seed      uint32
	memory    *ItemMemory
	store     *ClassStore
}

// New constructs a Recognizer with the given configuration. Passing zero for
// any of dim, numBins, or seed uses the package default; threshold is used
// as given (0 is a legitimate, if permissive, threshold).
func New(dim, numBins int, threshold float64, seed uint32) *Recognizer {
	if dim <= 0 {
		dim = DefaultDim
	}
	if numBins <= 0 {
		numBins = DefaultNumBins
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Recognizer{
		dim:       dim,
		numBins:   numBins,
		threshold: threshold,
		seed:      seed,
		memory:    NewItemMemory(dim, seed),
		store:     NewClassStore(dim, threshold),
	}
}

// NewDefault constructs a Recognizer with the package defaults.
func NewDefault() *Recognizer {
	return New(DefaultDim, DefaultNumBins, DefaultThreshold, DefaultSeed)
}

// Encode converts 21 hand landmarks into a bipolar hypervector. It is pure
// and idempotent: the same landmarks under the same configuration always
// produce the same hypervector, including for a degenerate (near-zero hand
// size) pose, which encodes as if every feature were zero.
func (r *Recognizer) Encode(landmarks [detector.NumLandmarks]detector.Point3D) *HV {
	features := ExtractFeatures(landmarks)
	bins := Quantize(features, r.numBins)
	return Encode(bins, r.memory)
}

// EncodeHand is a convenience wrapper over Encode for callers already
// holding a detector.HandLandmarks.
func (r *Recognizer) EncodeHand(hand *detector.HandLandmarks) *HV {
	return r.Encode(hand.Points)
}

// EncodeSlice validates and encodes landmarks arriving as a slice, the shape
// they take over the wire (JSON request bodies, recorded sample files)
// before anything has narrowed them to the fixed-size array Encode expects.
func (r *Recognizer) EncodeSlice(landmarks []detector.Point3D) (*HV, error) {
	if len(landmarks) != detector.NumLandmarks {
		return nil, ErrInvalidLandmarkCount
	}
	var arr [detector.NumLandmarks]detector.Point3D
	copy(arr[:], landmarks)
	return r.Encode(arr), nil
}

// AddExample bundles hv into the named gesture class, creating the class if
// it doesn't already exist, and returns the class's new example count.
func (r *Recognizer) AddExample(name string, hv *HV) int {
	return r.store.AddExample(name, hv)
}

// Predict classifies hv against every trained class. See ClassStore.Predict
// for the exact semantics (threshold, tie-break, empty-store behavior).
func (r *Recognizer) Predict(hv *HV) PredictResult {
	return r.store.Predict(hv)
}

// GetClassNames returns trained class names in insertion order.
func (r *Recognizer) GetClassNames() []string {
	return r.store.GetClassNames()
}

// GetExampleCount returns how many examples were added to name,
// case-insensitively, or 0 if the class does not exist.
func (r *Recognizer) GetExampleCount(name string) int {
	return r.store.GetExampleCount(name)
}

// ClearAll removes every trained class. Item memory and configuration are
// unaffected: re-encoding the same landmarks afterward yields the same
// hypervector as before the clear.
func (r *Recognizer) ClearAll() {
	r.store.ClearAll()
}

// RemoveGesture deletes the named class, case-insensitively, and reports
// whether a class was actually removed.
func (r *Recognizer) RemoveGesture(name string) bool {
	return r.store.RemoveGesture(name)
}

// Export snapshots the recognizer's configuration and class table into a
// portable State.
func (r *Recognizer) Export() State {
	return exportState(r.dim, r.numBins, r.threshold, r.store)
}

// Import validates state and, on success, atomically replaces the
// recognizer's configuration and class table. On failure the recognizer is
// left completely untouched. Because dim/numBins may change, the item
// memory is logically reset: it is rebuilt lazily from the new
// configuration on the next Encode, per the determinism contract that item
// memory content depends only on (dim, numBins, feature, bin).
func (r *Recognizer) Import(state State) error {
	newStore, err := importState(state)
	if err != nil {
		return err
	}
	if state.NumBins != r.numBins || state.Dim != r.dim {
		r.memory = NewItemMemory(state.Dim, r.seed)
	}
	r.dim = state.Dim
	r.numBins = state.NumBins
	r.threshold = state.Threshold
	r.store = newStore
	return nil
}

// Dim, NumBins, and Threshold report the recognizer's current configuration,
// used by callers persisting or displaying recognizer settings.
func (r *Recognizer) Dim() int           { return r.dim }
func (r *Recognizer) NumBins() int       { return r.numBins }
func (r *Recognizer) Threshold() float64 { return r.threshold }

// SetThreshold updates the cosine-similarity acceptance threshold used by
// Predict without disturbing item memory or trained classes.
func (r *Recognizer) SetThreshold(t float64) {
	r.threshold = t
	r.store.threshold = t
}
