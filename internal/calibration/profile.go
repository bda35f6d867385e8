package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/agbru/grou/internal/config"
	apperrors "github.com/agbru/grou/internal/errors"
)

const (
	// DefaultProfileFileName is the profile file created in the home directory.
	DefaultProfileFileName = ".grou_calibration.json"
	// CurrentProfileVersion is bumped whenever the profile format or the
	// meaning of a stored threshold changes.
	CurrentProfileVersion = 1
	// DefaultMaxProfileAge is how long a cached profile is trusted.
	DefaultMaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile is the persisted outcome of a calibration run together
// with the hardware fingerprint it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	// CPUFeatures lists the instruction set extensions that change
	// multiplication throughput, e.g. "adx,bmi2".
	CPUFeatures string `json:"cpu_features"`

	OptimalKaratsubaThreshold int `json:"optimal_karatsuba_threshold"`
	OptimalParallelThreshold  int `json:"optimal_parallel_threshold"`

	// CalibrationLimbs is the operand size the thresholds were measured with.
	CalibrationLimbs int    `json:"calibration_limbs"`
	CalibrationTime  string `json:"calibration_time"`
}

// NewProfile returns a profile stamped with the current hardware fingerprint.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    cpuFeatures(),
		CalibratedAt:   time.Now(),
	}
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration profile")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating profile directory")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.WrapError(err, "writing calibration profile")
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading calibration profile")
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, apperrors.WrapError(err, "decoding calibration profile %s", path)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When it cannot be read, a
// fresh profile is returned and loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// IsValid reports whether the profile was measured on hardware matching the
// current process. A nil profile is never valid.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.CPUFeatures == cpuFeatures()
}

func cpuFeatures() string {
	var f []string
	add := func(has bool, name string) {
		if has {
			f = append(f, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return strings.Join(f, ",")
}

// IsStale reports whether the profile is older than maxAge. A nil profile is
// always stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d (%s/%s, %d CPUs, %s): karatsuba=%d limbs, parallel=%d limbs, measured on %d-limb operands at %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.GoVersion,
		p.OptimalKaratsubaThreshold, p.OptimalParallelThreshold,
		p.CalibrationLimbs, p.CalibratedAt.Format(time.RFC3339))
}

// GetDefaultProfilePath returns ~/.grou_calibration.json, or the file name
// alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// ProfilePath returns the profile path configured in cfg, or the default.
func ProfilePath(cfg config.AppConfig) string {
	if cfg.CalibrationProfile != "" {
		return cfg.CalibrationProfile
	}
	return GetDefaultProfilePath()
}

// LoadCachedCalibration fills the thresholds of cfg that are still zero from
// a valid, fresh profile at path. It reports whether a profile was applied.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(DefaultMaxProfileAge) {
		return cfg, false
	}
	if cfg.Threshold == 0 && p.OptimalKaratsubaThreshold > 0 {
		cfg.Threshold = p.OptimalKaratsubaThreshold
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = p.OptimalParallelThreshold
	}
	return cfg, true
}
