package libworld

import "time"

const (
	MinCycleDurationMs = 1
	MaxCycleDurationMs = 1000
)

// Settings is the state the settings and places panels read and write.
type Settings struct {
	Month           int32 `yaml:"month"`
	CycleMonth      bool  `yaml:"cycle_month"`
	CycleDurationMs int32 `yaml:"cycle_duration_ms"`

	Wireframe           bool `yaml:"wireframe"`
	ShowEquator         bool `yaml:"show_equator"`
	ShowGeographicPoles bool `yaml:"show_geographic_poles"`
	ShowMagneticPoles   bool `yaml:"show_magnetic_poles"`
	ShowSky             bool `yaml:"show_sky"`

	Moving bool `yaml:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Month:           1,
		CycleDurationMs: 200,
		ShowSky:         true,
	}
}

// Clamp forces Month and CycleDurationMs into their ranges.
func (s *Settings) Clamp() {
	if s.Month < 1 {
		s.Month = 1
	} else if s.Month > 12 {
		s.Month = 12
	}
	if s.CycleDurationMs < MinCycleDurationMs {
		s.CycleDurationMs = MinCycleDurationMs
	} else if s.CycleDurationMs > MaxCycleDurationMs {
		s.CycleDurationMs = MaxCycleDurationMs
	}
}

func (s *Settings) CycleDuration() time.Duration {
	return time.Duration(s.CycleDurationMs) * time.Millisecond
}

// TextureIndex is the month texture slot for the current month.
func (s *Settings) TextureIndex() int {
	return int(s.Month) - 1
}

func (s *Settings) ToggleWireframe() {
	s.Wireframe = !s.Wireframe
}
