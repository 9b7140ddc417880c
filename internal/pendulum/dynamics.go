package pendulum

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MassMatrix builds the generalized mass matrix
//
//	M[i][j] = suffix[max(i,j)] · L_i · L_j · cos(θ_i − θ_j)
//
// which is symmetric by construction. Returns nil for the empty chain.
func (p *Pendulum) MassMatrix() *mat.Dense {
	return p.massMatrix(p.SuffixMasses())
}

func (p *Pendulum) massMatrix(suffix []float64) *mat.Dense {
	n := len(p.Bobs)
	if n == 0 {
		return nil
	}
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := suffix[max(i, j)]
			v := s * p.Bobs[i].RodLength * p.Bobs[j].RodLength *
				math.Cos(p.Bobs[i].Theta-p.Bobs[j].Theta)
			m.Set(i, j, v)
		}
	}
	return m
}

// dMassDTheta is the partial derivative ∂M[i][j]/∂θ_k. Only the cosine
// factor depends on the angles:
//
//	d/dθ_k cos(θ_i − θ_j) = −sin(θ_i − θ_j) · (δ_ik − δ_jk)
func (p *Pendulum) dMassDTheta(i, j, k int, suffix []float64) float64 {
	if i != k && j != k {
		return 0
	}
	dik := 0.0
	if i == k {
		dik = 1.0
	}
	djk := 0.0
	if j == k {
		djk = 1.0
	}
	return -suffix[max(i, j)] * p.Bobs[i].RodLength * p.Bobs[j].RodLength *
		math.Sin(p.Bobs[i].Theta-p.Bobs[j].Theta) * (dik - djk)
}

// Coriolis computes the velocity-dependent generalized forces from the
// Christoffel symbols of the mass matrix:
//
//	C[i] = Σ_j Σ_k Γ_ijk · ω_j · ω_k
//	Γ_ijk = ½ (∂M_ik/∂θ_j + ∂M_ij/∂θ_k − ∂M_jk/∂θ_i)
//
// This is the general O(n³) formulation, valid for any chain length.
func (p *Pendulum) Coriolis() []float64 {
	return p.coriolis(p.SuffixMasses())
}

func (p *Pendulum) coriolis(suffix []float64) []float64 {
	n := len(p.Bobs)
	c := make([]float64, n)
	for i := 0; i < n; i++ {
		ci := 0.0
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				gamma := 0.5 * (p.dMassDTheta(i, k, j, suffix) +
					p.dMassDTheta(i, j, k, suffix) -
					p.dMassDTheta(j, k, i, suffix))
				ci += gamma * p.Bobs[j].Omega * p.Bobs[k].Omega
			}
		}
		c[i] = ci
	}
	return c
}

// Gravity computes the generalized-coordinate gradient of gravitational
// potential energy: G[i] = suffix[i] · g · L_i · sin(θ_i). Every mass at
// or below link i loads that link's angle.
func (p *Pendulum) Gravity() []float64 {
	return p.gravity(p.SuffixMasses())
}

func (p *Pendulum) gravity(suffix []float64) []float64 {
	n := len(p.Bobs)
	g := make([]float64, n)
	for i := 0; i < n; i++ {
		g[i] = suffix[i] * p.G * p.Bobs[i].RodLength * math.Sin(p.Bobs[i].Theta)
	}
	return g
}
