package metrics

import (
	"github.com/davfen/pendsim/internal/engine"
	"github.com/davfen/pendsim/internal/pendulum"
)

// Metric accumulates a scalar over a stream of snapshots.
type Metric interface {
	Name() string
	Observe(snap engine.Snapshot)
	Value() float64
	Reset()
}

// energyOf rebuilds a chain from snapshot values and evaluates its total
// mechanical energy. Snapshots carry everything the Lagrangian needs.
func energyOf(snap engine.Snapshot, gravity float64) float64 {
	bobs := make([]pendulum.Bob, len(snap.Bobs))
	for i, b := range snap.Bobs {
		bobs[i] = pendulum.NewBob(b.RodLength, b.Mass, b.Theta, b.Omega)
	}
	p := pendulum.New(bobs...)
	if gravity > 0 {
		p.G = gravity
	}
	return p.Energy()
}
