// Package gesture provides gesture recognition and matching capabilities.
package gesture

import (
	"strings"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hdc"
)

// Type represents the type of gesture (static or dynamic).
type Type string

const (
	// TypeStatic represents a static gesture (single hand pose).
	TypeStatic Type = "static"
	// TypeDynamic represents a dynamic gesture (motion over time).
	TypeDynamic Type = "dynamic"
)

// Template represents a gesture template for matching. For static gestures,
// Landmarks — when present — is one training example fed into the
// recognizer on AddTemplate; repeated calls with the same ID/Name and
// different Landmarks accumulate few-shot examples under one class. For
// dynamic gestures, Path carries the motion template consumed by
// DynamicMatcher.
type Template struct {
	ID        string             // Unique identifier for the template
	Name      string             // Human-readable name
	Type      Type               // Static or dynamic gesture type
	Landmarks []detector.Point3D // One training example, for static gestures
	Path      []PathPoint        // Path points for dynamic gestures
	Tolerance float64            // Maximum DTW distance for a dynamic match
}

// PathPoint represents a point in a dynamic gesture path.
type PathPoint struct {
	X         float64 // X coordinate
	Y         float64 // Y coordinate
	Timestamp int64   // Timestamp in milliseconds
}

// Match represents a matching result between input and a template.
type Match struct {
	Template *Template // The matched template
	Score    float64   // Match score: cosine similarity for static, 1/(1+distance) for dynamic
	Distance float64   // 1-similarity for static, DTW distance for dynamic
}

// StaticMatcher classifies static hand poses against gesture classes trained
// few-shot through an hdc.Recognizer. It keeps a small ID<->name registry on
// top of the recognizer so callers can work with the same opaque gesture IDs
// the store uses, while the recognizer itself only knows class names.
type StaticMatcher struct {
	recognizer *hdc.Recognizer
	byID       map[string]*Template
	nameToID   map[string]string
	OnMatch    func(id, name string)
}

// NewStaticMatcher creates a StaticMatcher backed by recognizer.
func NewStaticMatcher(recognizer *hdc.Recognizer) *StaticMatcher {
	return &StaticMatcher{
		recognizer: recognizer,
		byID:       make(map[string]*Template),
		nameToID:   make(map[string]string),
	}
}

// canonicalName mirrors hdc's case-folding so ID lookups agree with the
// recognizer's own class keys.
func canonicalName(name string) string {
	return strings.ToUpper(name)
}

// AddTemplate registers template metadata and, if Landmarks is a full 21-
// point pose, trains the recognizer with it as one example of that class.
// Calling AddTemplate again with the same ID and different Landmarks adds
// another example to the same class.
func (m *StaticMatcher) AddTemplate(t *Template) {
	if t == nil || t.Type != TypeStatic {
		return
	}
	m.byID[t.ID] = t
	m.nameToID[canonicalName(t.Name)] = t.ID

	if len(t.Landmarks) == detector.NumLandmarks {
		if hv, err := m.recognizer.EncodeSlice(t.Landmarks); err == nil {
			m.recognizer.AddExample(t.Name, hv)
		}
	}
}

// RemoveTemplate removes a template by its ID and deletes every example
// trained under its class name.
func (m *StaticMatcher) RemoveTemplate(id string) {
	t, ok := m.byID[id]
	if !ok {
		return
	}
	m.recognizer.RemoveGesture(t.Name)
	delete(m.nameToID, canonicalName(t.Name))
	delete(m.byID, id)
}

// Match classifies hand against the trained classes. It returns at most one
// Match — the recognizer's winning class, if its cosine similarity clears
// the configured threshold — matching hdc.Recognizer.Predict's single-label
// semantics rather than the multi-template ranking the Euclidean matcher
// this replaced used to return.
func (m *StaticMatcher) Match(hand *detector.HandLandmarks) []Match {
	if hand == nil {
		return nil
	}

	result := m.recognizer.Predict(m.recognizer.EncodeHand(hand))
	if !result.Matched {
		return nil
	}

	id, ok := m.nameToID[result.Label]
	if !ok {
		return nil
	}

	match := Match{
		Template: m.byID[id],
		Score:    result.Confidence,
		Distance: 1 - result.Confidence,
	}

	if m.OnMatch != nil {
		m.OnMatch(id, result.Label)
	}

	return []Match{match}
}

// Predict exposes the recognizer's full result — every class's similarity,
// not just the winner — for callers such as the HTTP API that want the
// whole picture.
func (m *StaticMatcher) Predict(hand *detector.HandLandmarks) hdc.PredictResult {
	return m.recognizer.Predict(m.recognizer.EncodeHand(hand))
}

// Recognizer returns the underlying recognizer, used by callers that need
// to export/import state or inspect class metadata directly.
func (m *StaticMatcher) Recognizer() *hdc.Recognizer {
	return m.recognizer
}
