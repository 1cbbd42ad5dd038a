package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection
// 4. Match against static/dynamic gestures
// 5. Buffer path for dynamic gestures (last 60 frames)
// 6. After 2s no motion, switch back to idle mode
// 7. Clear path buffer on dynamic match to prevent repeated triggers
func (a *App) runPipeline() {
	// Path buffer for dynamic gesture detection
	pathBuffer := make([]gesture.PathPoint, 0, PathBufferSize)

	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					pathBuffer = pathBuffer[:0] // Clear path buffer
					log.Println("Switched to idle mode")
				}
			}

			// Skip further processing if not in active mode or no detector
			if !activeMode || a.detector == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := a.detector.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				continue
			}

			// Process each detected hand
			for i := range hands {
				hand := &hands[i]

				// Step 3: Static gesture matching
				staticMatches := a.staticMatcher.Match(hand)
				if len(staticMatches) > 0 {
					best := staticMatches[0]
					log.Printf("Static gesture matched: %s (score: %.3f)", best.Template.Name, best.Score)
					a.executeAction(best.Template.ID, best.Template.Name)
					a.notifyMatch(best.Template.Name)
				}

				// Step 4: Buffer path for dynamic gesture detection
				// Use the index finger tip position for tracking
				indexTip := hand.Points[8] // IndexTip = 8
				pathPoint := gesture.PathPoint{
					X:         indexTip.X,
					Y:         indexTip.Y,
					Timestamp: time.Now().UnixMilli(),
				}

				// Add to path buffer
				if len(pathBuffer) >= PathBufferSize {
					// Shift buffer left by 1, removing oldest point
					copy(pathBuffer, pathBuffer[1:])
					pathBuffer = pathBuffer[:PathBufferSize-1]
				}
				pathBuffer = append(pathBuffer, pathPoint)

				// Step 5: Dynamic gesture matching (need at least some points)
				if len(pathBuffer) >= 10 {
					dynamicMatches := a.dynamicMatcher.Match(pathBuffer)
					if len(dynamicMatches) > 0 {
						best := dynamicMatches[0]
						log.Printf("Dynamic gesture matched: %s (score: %.3f)", best.Template.Name, best.Score)
						a.executeAction(best.Template.ID, best.Template.Name)
						a.notifyMatch(best.Template.Name)

						// Clear path buffer to prevent repeated triggers
						pathBuffer = pathBuffer[:0]
					}
				}
			}
		}
	}
}

// executeAction looks up the action bound to a recognized gesture and runs
// it through the matching plugin. A gesture with no bound action is a no-op,
// not an error: not every trained gesture needs to drive a plugin.
func (a *App) executeAction(gestureID, gestureName string) {
	if a.config.Store == nil {
		return
	}

	action, err := a.config.Store.Actions().GetByGestureID(gestureID)
	if err != nil {
		log.Printf("Failed to look up action for gesture %s: %v", gestureName, err)
		return
	}
	if action == nil || !action.Enabled {
		return
	}

	p, err := a.pluginMgr.Get(action.PluginName)
	if err != nil {
		log.Printf("Plugin %s not found for gesture %s: %v", action.PluginName, gestureName, err)
		return
	}

	req := &plugin.Request{
		Action:  action.ActionName,
		Gesture: gestureName,
		Config:  action.Config,
	}

	resp, err := a.pluginExec.Execute(p, req)
	if err != nil {
		log.Printf("Plugin %s execution failed for gesture %s: %v", action.PluginName, gestureName, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %s reported failure for gesture %s: %s", action.PluginName, gestureName, resp.Error)
	}
}

// notifyMatch invokes the registered OnGestureMatched callback, if any,
// outside of any lock the caller may hold.
func (a *App) notifyMatch(name string) {
	a.mu.RLock()
	callback := a.onMatch
	a.mu.RUnlock()

	if callback != nil {
		callback(name)
	}
}
