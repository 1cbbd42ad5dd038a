// Package config loads the daemon's YAML configuration file, covering both
// the capture pipeline settings the teacher hardcoded and the recognizer's
// construction parameters.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/ayusman/mudra/internal/hdc"
)

// DefaultCameraID is the default OS camera device index.
const DefaultCameraID = 0

// DefaultMotionThresh is the default fraction of pixels that must change
// between frames before motion is considered detected.
const DefaultMotionThresh = 1.0

// Config is the daemon's full configuration: capture pipeline options plus
// the hdc.Recognizer construction parameters of spec.md §6.
type Config struct {
	CameraID     int     `yaml:"camera_id"`
	PluginDir    string  `yaml:"plugin_dir"`
	MotionThresh float64 `yaml:"motion_thresh"`
	Dim          int     `yaml:"dim"`
	NumBins      int     `yaml:"num_bins"`
	Threshold    float64 `yaml:"threshold"`
	Seed         uint32  `yaml:"seed"`
}

// Default returns a Config populated with the reference defaults: a
// 10,000-dimensional hypervector space, 16 bins per feature, a 0.25
// cosine-similarity threshold, and a fixed RNG seed.
func Default() Config {
	return Config{
		CameraID:     DefaultCameraID,
		PluginDir:    defaultPluginDir(),
		MotionThresh: DefaultMotionThresh,
		Dim:          hdc.DefaultDim,
		NumBins:      hdc.DefaultNumBins,
		Threshold:    hdc.DefaultThreshold,
		Seed:         hdc.DefaultSeed,
	}
}

// DefaultPath returns ~/.mudra/config.yaml, the daemon's default
// configuration file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".mudra", "config.yaml"), nil
}

func defaultPluginDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".mudra", "plugins")
}

// Load reads and decodes the YAML config file at path, starting from
// Default() so a missing file, or a file that only sets a few fields,
// still yields a fully usable Config. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
