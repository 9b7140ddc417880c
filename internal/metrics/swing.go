package metrics

import (
	"math"

	"github.com/davfen/pendsim/internal/engine"
)

// SpeedBound reports the fraction of samples in which every bob's
// angular speed stayed under the threshold. 1.0 means the chain never
// exceeded it.
type SpeedBound struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewSpeedBound(threshold float64) *SpeedBound {
	return &SpeedBound{name: "speed_bound", threshold: threshold}
}

func (s *SpeedBound) Name() string { return s.name }

func (s *SpeedBound) Observe(snap engine.Snapshot) {
	s.samples++
	for _, b := range snap.Bobs {
		if math.Abs(b.Omega) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *SpeedBound) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *SpeedBound) Reset() {
	s.violations = 0
	s.samples = 0
}
