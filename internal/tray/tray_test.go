package tray

import (
	"testing"
	"time"
)

func TestTray_IsEnabledDefaultsTrue(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Error("expected a new Tray to default to enabled")
	}
}

func TestTray_RedrawLastGestureWithNoMenuItemIsNoop(t *testing.T) {
	tr := New()
	tr.SetLastGesture("Thumbs Up")

	tr.mu.RLock()
	name := tr.lastGestureName
	at := tr.lastGestureAt
	tr.mu.RUnlock()

	if name != "Thumbs Up" {
		t.Errorf("lastGestureName = %q, want %q", name, "Thumbs Up")
	}
	if time.Since(at) > time.Second {
		t.Errorf("lastGestureAt = %v, want close to now", at)
	}
}

func TestTray_SetTrainedClassCountWithNoMenuItemIsNoop(t *testing.T) {
	tr := New()
	tr.SetTrainedClassCount(3)

	tr.mu.RLock()
	count := tr.trainedClasses
	tr.mu.RUnlock()

	if count != 3 {
		t.Errorf("trainedClasses = %d, want 3", count)
	}
}

func TestTray_OnToggleStoresCallback(t *testing.T) {
	tr := New()

	var got bool
	var called bool
	tr.OnToggle(func(enabled bool) {
		called = true
		got = enabled
	})

	tr.mu.RLock()
	callback := tr.onToggle
	tr.mu.RUnlock()

	callback(false)

	if !called {
		t.Fatal("expected onToggle callback to be invoked")
	}
	if got {
		t.Errorf("got = %v, want false", got)
	}
}

func TestTray_OnQuitCallback(t *testing.T) {
	tr := New()

	var called bool
	tr.OnQuit(func() { called = true })

	tr.mu.RLock()
	callback := tr.onQuit
	tr.mu.RUnlock()
	callback()

	if !called {
		t.Error("expected onQuit callback to be invoked")
	}
}
