package engine

import "github.com/davfen/pendsim/internal/pendulum"

// BobState is one bob's state copied out of the live chain. Values only,
// safe to hand across goroutines and to the transport.
type BobState struct {
	Theta     float64 `json:"theta"`
	Omega     float64 `json:"omega"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Mass      float64 `json:"mass"`
	RodLength float64 `json:"rod_length"`
}

// Snapshot is an immutable copy of the pendulum state at one tick. It
// holds no references back into the live pendulum.
type Snapshot struct {
	Tick uint64     `json:"tick"`
	Time float64    `json:"time"`
	Bobs []BobState `json:"bobs"`
}

func snapshotBobs(p *pendulum.Pendulum) []BobState {
	bobs := make([]BobState, len(p.Bobs))
	for i, b := range p.Bobs {
		bobs[i] = BobState{
			Theta:     b.Theta,
			Omega:     b.Omega,
			X:         b.X,
			Y:         b.Y,
			Mass:      b.Mass,
			RodLength: b.RodLength,
		}
	}
	return bobs
}
