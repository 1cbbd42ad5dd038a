package store

import (
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/hdc"
)

func TestRecognizerRepository_LoadStateNotFoundInitially(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	_, err = s.Recognizer().LoadState()
	if err != ErrNotFound {
		t.Fatalf("LoadState() error = %v, want ErrNotFound", err)
	}
}

func TestRecognizerRepository_SaveAndLoadRoundTrip(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	state := hdc.State{
		Dim:       128,
		NumBins:   16,
		Threshold: 0.25,
		Classes: map[string]hdc.ClassState{
			"FIST":  {Prototype: make([]float64, 128), ExampleCount: 3},
			"PEACE": {Prototype: make([]float64, 128), ExampleCount: 5},
		},
	}
	for i := range state.Classes["FIST"].Prototype {
		state.Classes["FIST"].Prototype[i] = float64(i)
	}

	if err := s.Recognizer().SaveState(state); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	loaded, err := s.Recognizer().LoadState()
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}

	if loaded.Dim != state.Dim || loaded.NumBins != state.NumBins || loaded.Threshold != state.Threshold {
		t.Errorf("loaded config = %+v, want dim/numBins/threshold matching %+v", loaded, state)
	}
	if len(loaded.Classes) != 2 {
		t.Fatalf("loaded %d classes, want 2", len(loaded.Classes))
	}
	fist, ok := loaded.Classes["FIST"]
	if !ok {
		t.Fatal("loaded state missing FIST class")
	}
	if fist.ExampleCount != 3 {
		t.Errorf("FIST example count = %d, want 3", fist.ExampleCount)
	}
	for i, v := range fist.Prototype {
		if v != float64(i) {
			t.Errorf("FIST prototype[%d] = %v, want %v", i, v, float64(i))
		}
	}
}

func TestRecognizerRepository_SaveStateReplacesPreviousClasses(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	first := hdc.State{Dim: 16, NumBins: 16, Threshold: 0.25, Classes: map[string]hdc.ClassState{
		"OLD": {Prototype: make([]float64, 16), ExampleCount: 1},
	}}
	if err := s.Recognizer().SaveState(first); err != nil {
		t.Fatalf("first SaveState() error = %v", err)
	}

	second := hdc.State{Dim: 16, NumBins: 16, Threshold: 0.3, Classes: map[string]hdc.ClassState{
		"NEW": {Prototype: make([]float64, 16), ExampleCount: 2},
	}}
	if err := s.Recognizer().SaveState(second); err != nil {
		t.Fatalf("second SaveState() error = %v", err)
	}

	loaded, err := s.Recognizer().LoadState()
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if _, ok := loaded.Classes["OLD"]; ok {
		t.Error("OLD class should have been replaced")
	}
	if _, ok := loaded.Classes["NEW"]; !ok {
		t.Error("NEW class should be present")
	}
	if loaded.Threshold != 0.3 {
		t.Errorf("threshold = %v, want 0.3", loaded.Threshold)
	}
}
