package hdc

// ClassState is the portable form of one gesture class: its unbinarized
// prototype sum and how many examples were bundled into it.
type ClassState struct {
	Prototype    []float64 `json:"prototype"`
	ExampleCount int       `json:"exampleCount"`
}

// State is the complete portable snapshot of a Recognizer, matching the
// persisted-state layout: dimensionality, bin count, threshold, and the
// full class table. The item memory is deliberately absent — it is
// regenerated deterministically from (Dim, NumBins) on demand, so
// compatibility across implementations rests on the RNG being bit-identical
// rather than on shipping the item memory itself.
type State struct {
	Dim       int                   `json:"dim"`
	NumBins   int                   `json:"numBins"`
	Threshold float64               `json:"threshold"`
	Classes   map[string]ClassState `json:"classes"`
}

// validate checks structural well-formedness: positive dimensionality and
// bin count, and every class's prototype exactly Dim long.
func (s *State) validate() error {
	if s.Dim <= 0 || s.NumBins <= 0 {
		return ErrInvalidState
	}
	for _, class := range s.Classes {
		if len(class.Prototype) != s.Dim {
			return ErrInvalidState
		}
		if class.ExampleCount < 0 {
			return ErrInvalidState
		}
	}
	return nil
}

// exportState builds a State snapshot from a ClassStore and its config.
func exportState(dim, numBins int, threshold float64, store *ClassStore) State {
	classes := make(map[string]ClassState, len(store.order))
	for _, name := range store.order {
		class := store.classes[name]
		prototype := make([]float64, len(class.prototype))
		copy(prototype, class.prototype)
		classes[name] = ClassState{Prototype: prototype, ExampleCount: class.exampleCount}
	}
	return State{Dim: dim, NumBins: numBins, Threshold: threshold, Classes: classes}
}

// importState validates state and, if valid, builds a fresh ClassStore from
// it. It does not mutate any existing store — callers swap the returned
// store in only after this succeeds, keeping import atomic.
func importState(state State) (*ClassStore, error) {
	if err := state.validate(); err != nil {
		return nil, err
	}
	store := NewClassStore(state.Dim, state.Threshold)
	for _, name := range orderedClassNames(state.Classes) {
		class := state.Classes[name]
		store.classes[name] = &gestureClass{
			name:         name,
			prototype:    append([]float64(nil), class.Prototype...),
			exampleCount: class.ExampleCount,
		}
		store.order = append(store.order, name)
	}
	return store, nil
}

// orderedClassNames returns the keys of a class map sorted alphabetically.
// A plain Go map has no stable iteration order, so State (a wire format)
// cannot preserve the original insertion order across an export/import
// round-trip by construction; sorting at least makes the resulting order
// deterministic and reproducible rather than random per process.
func orderedClassNames(classes map[string]ClassState) []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	insertionSort(names)
	return names
}

// insertionSort sorts names ascending. Insertion sort is adequate here: the
// class count is bounded by the number of gestures a user trains, never
// more than a few dozen.
func insertionSort(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
}
