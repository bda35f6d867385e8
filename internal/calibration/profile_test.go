package calibration

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/agbru/grou/internal/config"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	profile := NewProfile()

	if profile == nil {
		t.Fatal("NewProfile returned nil")
	}

	if profile.NumCPU != runtime.NumCPU() {
		t.Errorf("NumCPU = %d, want %d", profile.NumCPU, runtime.NumCPU())
	}

	if profile.GOARCH != runtime.GOARCH {
		t.Errorf("GOARCH = %s, want %s", profile.GOARCH, runtime.GOARCH)
	}

	if profile.GOOS != runtime.GOOS {
		t.Errorf("GOOS = %s, want %s", profile.GOOS, runtime.GOOS)
	}

	if profile.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s, want %s", profile.GoVersion, runtime.Version())
	}

	if profile.ProfileVersion != CurrentProfileVersion {
		t.Errorf("ProfileVersion = %d, want %d", profile.ProfileVersion, CurrentProfileVersion)
	}

	expectedWordSize := 32 << (^uint(0) >> 63)
	if profile.WordSize != expectedWordSize {
		t.Errorf("WordSize = %d, want %d", profile.WordSize, expectedWordSize)
	}

	if profile.CalibratedAt.IsZero() {
		t.Error("CalibratedAt is zero")
	}
}

func TestProfileSaveLoad(t *testing.T) {
	t.Parallel()
	// Create a temporary directory for the test
	tmpDir := t.TempDir()

	profilePath := filepath.Join(tmpDir, "test_profile.json")

	// Create and save a profile
	original := NewProfile()
	original.OptimalParallelThreshold = 512
	original.OptimalKaratsubaThreshold = 48
	original.CalibrationLimbs = 4096
	original.CalibrationTime = "1m30s"

	if err := original.SaveProfile(profilePath); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(profilePath); os.IsNotExist(err) {
		t.Fatal("Profile file was not created")
	}

	// Load the profile
	loaded, err := loadProfile(profilePath)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	// Verify loaded values
	if loaded.OptimalParallelThreshold != original.OptimalParallelThreshold {
		t.Errorf("OptimalParallelThreshold = %d, want %d",
			loaded.OptimalParallelThreshold, original.OptimalParallelThreshold)
	}

	if loaded.OptimalKaratsubaThreshold != original.OptimalKaratsubaThreshold {
		t.Errorf("OptimalKaratsubaThreshold = %d, want %d",
			loaded.OptimalKaratsubaThreshold, original.OptimalKaratsubaThreshold)
	}

	if loaded.CalibrationLimbs != original.CalibrationLimbs {
		t.Errorf("CalibrationLimbs = %d, want %d", loaded.CalibrationLimbs, original.CalibrationLimbs)
	}

	if loaded.NumCPU != original.NumCPU {
		t.Errorf("NumCPU = %d, want %d", loaded.NumCPU, original.NumCPU)
	}
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	// Valid profile for current hardware
	valid := NewProfile()
	if !valid.IsValid() {
		t.Error("Expected newly created profile to be valid")
	}

	// Invalid: wrong CPU count
	wrongCPU := NewProfile()
	wrongCPU.NumCPU = 999
	if wrongCPU.IsValid() {
		t.Error("Expected profile with wrong CPU count to be invalid")
	}

	// Invalid: wrong architecture
	wrongArch := NewProfile()
	wrongArch.GOARCH = "invalid_arch"
	if wrongArch.IsValid() {
		t.Error("Expected profile with wrong GOARCH to be invalid")
	}

	// Invalid: wrong word size
	wrongWordSize := NewProfile()
	wrongWordSize.WordSize = 16
	if wrongWordSize.IsValid() {
		t.Error("Expected profile with wrong word size to be invalid")
	}

	// Invalid: different instruction set extensions
	wrongFeatures := NewProfile()
	wrongFeatures.CPUFeatures = "imaginary"
	if wrongFeatures.IsValid() {
		t.Error("Expected profile with different CPU features to be invalid")
	}

	// Invalid: wrong version
	wrongVersion := NewProfile()
	wrongVersion.ProfileVersion = 999
	if wrongVersion.IsValid() {
		t.Error("Expected profile with wrong version to be invalid")
	}

	// Nil profile
	var nilProfile *CalibrationProfile
	if nilProfile.IsValid() {
		t.Error("Expected nil profile to be invalid")
	}
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	profile := NewProfile()

	// Fresh profile should not be stale
	if profile.IsStale(time.Hour) {
		t.Error("Expected fresh profile to not be stale")
	}

	// Old profile should be stale
	profile.CalibratedAt = time.Now().Add(-2 * time.Hour)
	if !profile.IsStale(time.Hour) {
		t.Error("Expected old profile to be stale")
	}

	// Nil profile should be stale
	var nilProfile *CalibrationProfile
	if !nilProfile.IsStale(time.Hour) {
		t.Error("Expected nil profile to be stale")
	}
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	profile := NewProfile()
	profile.OptimalParallelThreshold = 512
	profile.OptimalKaratsubaThreshold = 48

	str := profile.String()
	if str == "" {
		t.Error("String() returned empty string")
	}

	for _, want := range []string{"karatsuba=48", "parallel=512", runtime.GOARCH} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q, missing %q", str, want)
		}
	}
}

func TestLoadNonExistentProfile(t *testing.T) {
	t.Parallel()
	_, err := loadProfile("/nonexistent/path/to/profile.json")
	if err == nil {
		t.Fatal("Expected error loading nonexistent profile")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should wrap fs.ErrNotExist", err)
	}
	if !strings.HasPrefix(err.Error(), "reading calibration profile: ") {
		t.Errorf("error %q lacks its context prefix", err)
	}
}

func TestSaveProfileUnderFile(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("Failed to write blocker file: %v", err)
	}

	err := NewProfile().SaveProfile(filepath.Join(blocker, "profile.json"))
	if err == nil {
		t.Fatal("Expected error saving below a regular file")
	}
	if !strings.HasPrefix(err.Error(), "creating profile directory: ") {
		t.Errorf("error %q lacks its context prefix", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("directory error should be wrapped, not replaced")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	// Create file with invalid JSON
	invalidPath := filepath.Join(tmpDir, "invalid.json")
	if err := os.WriteFile(invalidPath, []byte("not valid json"), 0644); err != nil {
		t.Fatalf("Failed to write invalid file: %v", err)
	}

	_, err := loadProfile(invalidPath)
	if err == nil {
		t.Error("Expected error loading invalid JSON")
	}
}

func TestLoadOrCreateProfile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	profilePath := filepath.Join(tmpDir, "profile.json")

	// First call should create new profile
	profile, loaded := LoadOrCreateProfile(profilePath)
	if loaded {
		t.Error("Expected loaded to be false for nonexistent file")
	}
	if profile == nil {
		t.Fatal("Expected profile to not be nil")
	}

	// Save the profile
	profile.OptimalParallelThreshold = 8192
	if err := profile.SaveProfile(profilePath); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	// Second call should load existing profile
	profile2, loaded2 := LoadOrCreateProfile(profilePath)
	if !loaded2 {
		t.Error("Expected loaded to be true for existing file")
	}
	if profile2.OptimalParallelThreshold != 8192 {
		t.Errorf("Loaded profile has wrong threshold: %d", profile2.OptimalParallelThreshold)
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	path := GetDefaultProfilePath()
	if path == "" {
		t.Error("GetDefaultProfilePath returned empty string")
	}

	// Should end with the default filename
	if filepath.Base(path) != DefaultProfileFileName {
		t.Errorf("Path %s doesn't end with %s", path, DefaultProfileFileName)
	}
}


func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultProfileFileName)

	p := NewProfile()
	p.OptimalKaratsubaThreshold = 48
	p.OptimalParallelThreshold = 512
	if err := p.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	cfg, ok := LoadCachedCalibration(config.AppConfig{}, path)
	if !ok {
		t.Fatal("expected the profile to be applied")
	}
	if cfg.Threshold != 48 || cfg.ParallelThreshold != 512 {
		t.Errorf("thresholds = %d/%d, want 48/512", cfg.Threshold, cfg.ParallelThreshold)
	}

	// Explicit values win over the profile.
	cfg, _ = LoadCachedCalibration(config.AppConfig{Threshold: 20}, path)
	if cfg.Threshold != 20 {
		t.Errorf("Threshold = %d, want user value 20", cfg.Threshold)
	}
}

func TestLoadCachedCalibrationRejectsStaleProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultProfileFileName)

	p := NewProfile()
	p.OptimalKaratsubaThreshold = 48
	p.CalibratedAt = time.Now().Add(-2 * DefaultMaxProfileAge)
	if err := p.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	cfg, ok := LoadCachedCalibration(config.AppConfig{}, path)
	if ok || cfg.Threshold != 0 {
		t.Errorf("stale profile applied: ok=%v threshold=%d", ok, cfg.Threshold)
	}
}

func TestProfilePath(t *testing.T) {
	t.Parallel()
	if got := ProfilePath(config.AppConfig{CalibrationProfile: "/tmp/p.json"}); got != "/tmp/p.json" {
		t.Errorf("ProfilePath = %q", got)
	}
	if got := ProfilePath(config.AppConfig{}); got != GetDefaultProfilePath() {
		t.Errorf("ProfilePath = %q, want default", got)
	}
}
