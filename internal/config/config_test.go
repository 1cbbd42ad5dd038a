package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/hdc"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Dim != hdc.DefaultDim {
		t.Errorf("Dim = %d, want %d", cfg.Dim, hdc.DefaultDim)
	}
	if cfg.NumBins != hdc.DefaultNumBins {
		t.Errorf("NumBins = %d, want %d", cfg.NumBins, hdc.DefaultNumBins)
	}
	if cfg.Threshold != hdc.DefaultThreshold {
		t.Errorf("Threshold = %f, want %f", cfg.Threshold, hdc.DefaultThreshold)
	}
	if cfg.Seed != hdc.DefaultSeed {
		t.Errorf("Seed = %d, want %d", cfg.Seed, hdc.DefaultSeed)
	}
	if cfg.CameraID != DefaultCameraID {
		t.Errorf("CameraID = %d, want %d", cfg.CameraID, DefaultCameraID)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mudra-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg, err := Load(filepath.Join(tmpDir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_PartialOverrideKeepsOtherDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mudra-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("camera_id: 3\nthreshold: 0.4\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CameraID != 3 {
		t.Errorf("CameraID = %d, want 3", cfg.CameraID)
	}
	if cfg.Threshold != 0.4 {
		t.Errorf("Threshold = %f, want 0.4", cfg.Threshold)
	}
	if cfg.Dim != hdc.DefaultDim {
		t.Errorf("Dim = %d, want default %d to be preserved", cfg.Dim, hdc.DefaultDim)
	}
}

func TestLoad_InvalidYAMLReturnsError(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mudra-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("dim: [this is not valid"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want an error for malformed YAML")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mudra-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "nested", "config.yaml")
	cfg := Default()
	cfg.CameraID = 7
	cfg.PluginDir = "/opt/mudra/plugins"
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultPath() = %s, want a config.yaml file", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".mudra" {
		t.Errorf("DefaultPath() = %s, want it under a .mudra directory", path)
	}
}
