// Package tray provides a macOS system tray interface for the Mudra gesture recognition system.
package tray

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/getlantern/systray"
)

// lastGestureRefreshInterval controls how often the "Last: ..." menu item's
// relative timestamp is redrawn while the tray is idle between gestures.
const lastGestureRefreshInterval = 5 * time.Second

// Tray represents the macOS system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onSettings func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	lastGestureName string
	lastGestureAt   time.Time
	trainedClasses  int

	// Menu items stored for later updates
	menuToggle      *systray.MenuItem
	menuLastGesture *systray.MenuItem
	menuClasses     *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSettings sets the callback function to be called when the settings menu item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	// Set the tray title and tooltip
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Gesture Recognition")

	// Create menu items
	t.menuToggle = systray.AddMenuItem("● Enabled", "Toggle gesture recognition")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem("Last: none", "Last detected gesture")
	t.menuLastGesture.Disable()

	t.menuClasses = systray.AddMenuItem("Trained: 0 gestures", "Number of trained gesture classes")
	t.menuClasses.Disable()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Refresh the relative "Last: ... ago" timestamp periodically, since it
	// otherwise only updates on the next detected gesture.
	go t.refreshLastGestureLoop()

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
// It performs cleanup tasks.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	// Update menu item text based on new state
	if enabled {
		t.menuToggle.SetTitle("● Enabled")
	} else {
		t.menuToggle.SetTitle("○ Disabled")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastGesture records a newly detected gesture and redraws the menu item
// showing it immediately.
func (t *Tray) SetLastGesture(name string) {
	t.mu.Lock()
	t.lastGestureName = name
	t.lastGestureAt = time.Now()
	t.mu.Unlock()

	t.redrawLastGesture()
}

// SetTrainedClassCount updates the menu item showing how many gesture
// classes the recognizer currently has trained examples for.
func (t *Tray) SetTrainedClassCount(count int) {
	t.mu.Lock()
	t.trainedClasses = count
	menuClasses := t.menuClasses
	t.mu.Unlock()

	if menuClasses != nil {
		menuClasses.SetTitle(fmt.Sprintf("Trained: %s gestures", humanize.Comma(int64(count))))
	}
}

// refreshLastGestureLoop keeps the "Last: ... ago" display current between
// gesture events, since SetLastGesture only fires when a new one occurs.
func (t *Tray) refreshLastGestureLoop() {
	ticker := time.NewTicker(lastGestureRefreshInterval)
	defer ticker.Stop()
	for range ticker.C {
		t.redrawLastGesture()
	}
}

// redrawLastGesture sets the last-gesture menu item's text from the current
// name and timestamp, using a humanized relative time ("3 minutes ago").
func (t *Tray) redrawLastGesture() {
	t.mu.RLock()
	menuItem := t.menuLastGesture
	name := t.lastGestureName
	at := t.lastGestureAt
	t.mu.RUnlock()

	if menuItem == nil {
		return
	}
	if name == "" {
		menuItem.SetTitle("Last: none")
		return
	}
	menuItem.SetTitle(fmt.Sprintf("Last: %s (%s)", name, humanize.Time(at)))
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
