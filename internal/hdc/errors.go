package hdc

import "errors"

// ErrInvalidLandmarkCount is returned when a caller passes something other
// than 21 hand landmarks to a function expecting a full hand.
var ErrInvalidLandmarkCount = errors.New("hdc: expected 21 landmarks")

// ErrInvalidState is returned by Import when the state being loaded is
// structurally invalid: a class prototype whose length doesn't match the
// configured dimensionality, a negative example count, or a dimensionality/
// bin count of zero.
var ErrInvalidState = errors.New("hdc: invalid recognizer state")

// ErrUnknownGesture is returned by RemoveGesture when asked to remove a
// class name the store does not hold.
var ErrUnknownGesture = errors.New("hdc: unknown gesture class")
