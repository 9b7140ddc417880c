package pendulum

import "math"

const (
	DefaultGravity   = 9.81
	DefaultRodLength = 120.0
	DefaultMass      = 10.0
	DefaultTheta     = math.Pi / 2
)

// Bob is one link of the chain: a point mass on a rigid massless rod.
// Theta is the rod's angle from the downward vertical, Omega its angular
// velocity. X and Y are derived from the angles by RecomputePositions and
// are never authoritative input. RodLength and Mass must be positive;
// the engine does not enforce this.
type Bob struct {
	RodLength float64
	Mass      float64
	Theta     float64
	Omega     float64
	X, Y      float64
}

func NewBob(rodLength, mass, theta, omega float64) Bob {
	return Bob{RodLength: rodLength, Mass: mass, Theta: theta, Omega: omega}
}

// Pendulum is an ordered chain of bobs. Bob i hangs from bob i-1; bob 0
// hangs from the origin. The zero-length chain is valid.
type Pendulum struct {
	Bobs []Bob
	G    float64
}

func New(bobs ...Bob) *Pendulum {
	p := &Pendulum{Bobs: bobs, G: DefaultGravity}
	p.RecomputePositions()
	return p
}

// NewDefault returns the stock two-link configuration: both rods length
// 120, mass 10, starting horizontal at rest.
func NewDefault() *Pendulum {
	return New(
		NewBob(DefaultRodLength, DefaultMass, DefaultTheta, 0),
		NewBob(DefaultRodLength, DefaultMass, DefaultTheta, 0),
	)
}

func (p *Pendulum) N() int { return len(p.Bobs) }

// SuffixMasses returns s with s[i] = sum of masses of bobs i..n-1.
// The suffix sums appear in every term of the mass matrix and the
// gravity vector, so they are computed once per step.
func (p *Pendulum) SuffixMasses() []float64 {
	n := len(p.Bobs)
	s := make([]float64, n)
	acc := 0.0
	for i := n - 1; i >= 0; i-- {
		acc += p.Bobs[i].Mass
		s[i] = acc
	}
	return s
}

// RecomputePositions rebuilds every bob's Cartesian position from the
// current angles. Positions chain from the origin; y grows downward.
func (p *Pendulum) RecomputePositions() {
	var x, y float64
	for i := range p.Bobs {
		x += p.Bobs[i].RodLength * math.Sin(p.Bobs[i].Theta)
		y += p.Bobs[i].RodLength * math.Cos(p.Bobs[i].Theta)
		p.Bobs[i].X = x
		p.Bobs[i].Y = y
	}
}
