package libworld

import (
	"fmt"
	"time"
)

const MonthCount = 12

func NextMonth(month int32) int32 {
	return month%MonthCount + 1
}

// MonthTexturePath is the asset name of a month texture, month in 1..12.
func MonthTexturePath(month int) string {
	return fmt.Sprintf("globe/earth_%02d.png", month)
}

// MonthCycler advances Settings.Month on a repeating timer while cycling is enabled.
type MonthCycler struct {
	timer Timer
}

// Tick advances the timer by dt and reports whether the month changed.
// The timer is paused while cycling is disabled.
func (m *MonthCycler) Tick(dt time.Duration, s *Settings) bool {
	m.timer.Duration = s.CycleDuration()
	if !s.CycleMonth {
		return false
	}
	if !m.timer.Tick(dt) {
		return false
	}
	s.Month = NextMonth(s.Month)
	return true
}
