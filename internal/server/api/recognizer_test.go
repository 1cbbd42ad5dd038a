package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hdc"
)

func TestRecognizerHandler_TrainAndPredict(t *testing.T) {
	recognizer := hdc.NewDefault()
	handler := NewRecognizerHandler(recognizer, nil, nil)

	thumbsUp := detector.ThumbsUpLandmarks()
	body, _ := json.Marshal(trainRequest{Gesture: "Thumbs Up", Landmarks: thumbsUp.Points[:]})

	req := httptest.NewRequest(http.MethodPost, "/api/recognizer/train", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("train status = %d, want %d, body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var trainResp trainResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &trainResp); err != nil {
		t.Fatalf("decode train response: %v", err)
	}
	if trainResp.ExampleCount != 1 {
		t.Errorf("ExampleCount = %d, want 1", trainResp.ExampleCount)
	}

	predictBody, _ := json.Marshal(landmarksRequest{Landmarks: thumbsUp.Points[:]})
	predictReq := httptest.NewRequest(http.MethodPost, "/api/recognizer/predict", bytes.NewReader(predictBody))
	predictRec := httptest.NewRecorder()
	handler.ServeHTTP(predictRec, predictReq)

	if predictRec.Code != http.StatusOK {
		t.Fatalf("predict status = %d, want %d", predictRec.Code, http.StatusOK)
	}
	var predictResp predictResponse
	if err := json.Unmarshal(predictRec.Body.Bytes(), &predictResp); err != nil {
		t.Fatalf("decode predict response: %v", err)
	}
	if !predictResp.Matched || predictResp.Label != "THUMBS UP" {
		t.Errorf("predict response = %+v, want matched THUMBS UP", predictResp)
	}
}

func TestRecognizerHandler_Classes(t *testing.T) {
	recognizer := hdc.NewDefault()
	handler := NewRecognizerHandler(recognizer, nil, nil)

	thumbsUp := detector.ThumbsUpLandmarks()
	hv, err := recognizer.EncodeSlice(thumbsUp.Points[:])
	if err != nil {
		t.Fatalf("EncodeSlice() error = %v", err)
	}
	recognizer.AddExample("Thumbs Up", hv)
	recognizer.AddExample("Thumbs Up", hv)

	req := httptest.NewRequest(http.MethodGet, "/api/recognizer/classes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("classes status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp classesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode classes response: %v", err)
	}
	if len(resp.Classes) != 1 || resp.Classes[0].Name != "THUMBS UP" || resp.Classes[0].ExampleCount != 2 {
		t.Errorf("classes = %+v, want one THUMBS UP class with count 2", resp.Classes)
	}
}

func TestRecognizerHandler_PredictInvalidLandmarkCount(t *testing.T) {
	handler := NewRecognizerHandler(hdc.NewDefault(), nil, nil)

	body, _ := json.Marshal(landmarksRequest{Landmarks: []detector.Point3D{{X: 1}}})
	req := httptest.NewRequest(http.MethodPost, "/api/recognizer/predict", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRecognizerHandler_TrainMissingGesture(t *testing.T) {
	handler := NewRecognizerHandler(hdc.NewDefault(), nil, nil)

	thumbsUp := detector.ThumbsUpLandmarks()
	body, _ := json.Marshal(trainRequest{Landmarks: thumbsUp.Points[:]})
	req := httptest.NewRequest(http.MethodPost, "/api/recognizer/train", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
