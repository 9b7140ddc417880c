package pendulum

import "math"

// Energy returns the total mechanical energy of the chain.
//
//	KE = ½ ωᵀ M ω
//	PE = −g Σ_i suffix[i] · L_i · cos(θ_i)
//
// The potential reference is the anchor, measured with y downward, so a
// hanging chain at rest has negative potential energy. With no damping
// in the model, Step keeps this quantity within a bounded drift band.
func (p *Pendulum) Energy() float64 {
	n := len(p.Bobs)
	if n == 0 {
		return 0
	}
	suffix := p.SuffixMasses()
	m := p.massMatrix(suffix)

	ke := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ke += 0.5 * m.At(i, j) * p.Bobs[i].Omega * p.Bobs[j].Omega
		}
	}

	pe := 0.0
	for i := 0; i < n; i++ {
		pe -= suffix[i] * p.G * p.Bobs[i].RodLength * math.Cos(p.Bobs[i].Theta)
	}
	return ke + pe
}
