package pendulum

import "gonum.org/v1/gonum/mat"

// accelerations solves M·a = −(C + G) for the generalized accelerations.
// If the system is degenerate (empty chain or numerically singular mass
// matrix) it returns zeros: the chain is momentarily frozen rather than
// the step failing.
func (p *Pendulum) accelerations(suffix []float64) []float64 {
	n := len(p.Bobs)
	a := make([]float64, n)
	if n == 0 {
		return a
	}

	m := p.massMatrix(suffix)
	c := p.coriolis(suffix)
	g := p.gravity(suffix)

	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, -(c[i] + g[i]))
	}

	var lu mat.LU
	lu.Factorize(m)
	var sol mat.VecDense
	if err := lu.SolveVecTo(&sol, false, rhs); err != nil {
		return a
	}
	for i := 0; i < n; i++ {
		a[i] = sol.AtVec(i)
	}
	return a
}

// Step advances the chain by one timestep of dt seconds using symplectic
// (semi-implicit) Euler: velocities are updated first, then angles from
// the already-updated velocities. The ordering is what bounds long-run
// energy drift. Angles are not wrapped; dt is not clamped.
func (p *Pendulum) Step(dt float64) {
	suffix := p.SuffixMasses()
	a := p.accelerations(suffix)
	for i := range p.Bobs {
		p.Bobs[i].Omega += a[i] * dt
		p.Bobs[i].Theta += p.Bobs[i].Omega * dt
	}
	p.RecomputePositions()
}
