package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hdc"
	"github.com/ayusman/mudra/internal/store"
)

// metricsRecorder is the slice of server.Metrics this handler needs,
// defined here rather than imported to avoid a server<->api import cycle
// (server.Metrics satisfies this interface structurally).
type metricsRecorder interface {
	ObserveEncode(d time.Duration)
	ObservePredict(d time.Duration)
	RefreshClassExampleCounts(names []string, countOf func(string) int)
}

// RecognizerHandler exposes the hand-pose recognizer over HTTP: predicting a
// label for a landmark set, training a new example, and listing trained
// classes.
type RecognizerHandler struct {
	recognizer *hdc.Recognizer
	store      *store.Store
	metrics    metricsRecorder
}

// NewRecognizerHandler creates a RecognizerHandler backed by recognizer,
// persisting trained state to s after every mutation. metrics may be nil.
func NewRecognizerHandler(recognizer *hdc.Recognizer, s *store.Store, metrics metricsRecorder) *RecognizerHandler {
	return &RecognizerHandler{recognizer: recognizer, store: s, metrics: metrics}
}

// ServeHTTP routes /api/recognizer/predict, /api/recognizer/train, and
// /api/recognizer/classes.
func (h *RecognizerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recognizer/")
	switch path {
	case "predict":
		h.predict(w, r)
	case "train":
		h.train(w, r)
	case "classes":
		h.classes(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type landmarksRequest struct {
	Landmarks []detector.Point3D `json:"landmarks"`
}

type predictResponse struct {
	Label        string             `json:"label"`
	Matched      bool               `json:"matched"`
	Confidence   float64            `json:"confidence"`
	Similarities map[string]float64 `json:"similarities"`
}

// predict handles POST /api/recognizer/predict.
func (h *RecognizerHandler) predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req landmarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	encodeStart := time.Now()
	hv, err := h.recognizer.EncodeSlice(req.Landmarks)
	if h.metrics != nil {
		h.metrics.ObserveEncode(time.Since(encodeStart))
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	predictStart := time.Now()
	result := h.recognizer.Predict(hv)
	if h.metrics != nil {
		h.metrics.ObservePredict(time.Since(predictStart))
	}
	writeJSON(w, http.StatusOK, predictResponse{
		Label:        result.Label,
		Matched:      result.Matched,
		Confidence:   result.Confidence,
		Similarities: result.Similarities,
	})
}

type trainRequest struct {
	Gesture   string             `json:"gesture"`
	Landmarks []detector.Point3D `json:"landmarks"`
}

type trainResponse struct {
	Gesture      string `json:"gesture"`
	ExampleCount int    `json:"example_count"`
}

// train handles POST /api/recognizer/train, adding one example to the named
// class and persisting the updated recognizer state.
func (h *RecognizerHandler) train(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Gesture == "" {
		writeError(w, http.StatusBadRequest, "gesture is required")
		return
	}

	hv, err := h.recognizer.EncodeSlice(req.Landmarks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count := h.recognizer.AddExample(req.Gesture, hv)

	if h.store != nil {
		if err := h.store.Recognizer().SaveState(h.recognizer.Export()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to persist recognizer state")
			return
		}
	}
	if h.metrics != nil {
		h.metrics.RefreshClassExampleCounts(h.recognizer.GetClassNames(), h.recognizer.GetExampleCount)
	}

	writeJSON(w, http.StatusOK, trainResponse{Gesture: req.Gesture, ExampleCount: count})
}

type classInfo struct {
	Name         string `json:"name"`
	ExampleCount int    `json:"example_count"`
}

type classesResponse struct {
	Classes []classInfo `json:"classes"`
}

// classes handles GET /api/recognizer/classes.
func (h *RecognizerHandler) classes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	names := h.recognizer.GetClassNames()
	resp := classesResponse{Classes: make([]classInfo, 0, len(names))}
	for _, name := range names {
		resp.Classes = append(resp.Classes, classInfo{
			Name:         name,
			ExampleCount: h.recognizer.GetExampleCount(name),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
