package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/davfen/pendsim/internal/pendulum"
)

var _ = Describe("Step", func() {
	It("tracks the closed-form simple pendulum for a single bob", func() {
		const (
			length = 1.5
			theta0 = 0.6
			dt     = 0.001
			steps  = 5000
		)
		p := pendulum.New(pendulum.NewBob(length, 2.0, theta0, 0))

		// Reference: θ̈ = −(g/L)·sin θ integrated with the same
		// semi-implicit scheme, so the trajectories must agree to
		// floating-point accumulation error.
		theta, omega := theta0, 0.0
		for i := 0; i < steps; i++ {
			p.Step(dt)
			omega += -(pendulum.DefaultGravity / length) * math.Sin(theta) * dt
			theta += omega * dt
		}
		Expect(p.Bobs[0].Theta).To(BeNumerically("~", theta, 1e-8))
		Expect(p.Bobs[0].Omega).To(BeNumerically("~", omega, 1e-8))
	})

	It("converges to the closed form as dt shrinks", func() {
		accelError := func(dt float64) float64 {
			p := pendulum.New(pendulum.NewBob(1, 1, 0.4, 0))
			p.Step(dt)
			// From rest, the first velocity update recovers θ̈ exactly.
			got := p.Bobs[0].Omega / dt
			want := -pendulum.DefaultGravity * math.Sin(0.4)
			return math.Abs(got - want)
		}
		coarse := accelError(0.1)
		fine := accelError(0.001)
		Expect(fine).To(BeNumerically("<=", coarse))
		Expect(fine).To(BeNumerically("<", 1e-9))
	})

	It("advances at constant velocity when the system is degenerate", func() {
		// Zero masses make M singular; the solver falls back to zero
		// acceleration and the chain coasts.
		p := pendulum.New(pendulum.NewBob(1, 0, 0.3, 2.0))
		p.Step(0.01)
		Expect(p.Bobs[0].Omega).To(Equal(2.0))
		Expect(p.Bobs[0].Theta).To(BeNumerically("~", 0.3+2.0*0.01, 1e-12))
	})

	It("updates velocity before position", func() {
		// One step from rest must already move the angle by a·dt²,
		// which distinguishes semi-implicit from explicit Euler.
		const dt = 0.01
		p := pendulum.New(pendulum.NewBob(1, 1, 0.4, 0))
		p.Step(dt)
		a := -pendulum.DefaultGravity * math.Sin(0.4)
		Expect(p.Bobs[0].Theta).To(BeNumerically("~", 0.4+a*dt*dt, 1e-12))
	})

	It("does not wrap angles", func() {
		p := pendulum.New(pendulum.NewBob(1, 1, 0, 100))
		for i := 0; i < 100; i++ {
			p.Step(0.01)
		}
		Expect(p.Bobs[0].Theta).To(BeNumerically(">", math.Pi))
	})
})

var _ = Describe("Energy", func() {
	It("stays bounded for a two-link chain released from rest", func() {
		p := pendulum.New(
			pendulum.NewBob(1, 1, 0.5, 0),
			pendulum.NewBob(1, 1, 0.5, 0),
		)
		e0 := p.Energy()
		Expect(e0).NotTo(BeZero())

		const dt = 0.0005
		maxDrift := 0.0
		for i := 0; i < 40000; i++ {
			p.Step(dt)
			drift := math.Abs(p.Energy()-e0) / math.Abs(e0)
			maxDrift = math.Max(maxDrift, drift)
		}
		Expect(maxDrift).To(BeNumerically("<", 0.05))
	})

	It("equals the potential term for a chain at rest", func() {
		p := pendulum.New(
			pendulum.NewBob(1, 2, 0, 0),
			pendulum.NewBob(1, 1, 0, 0),
		)
		// suffix = [3, 1]; PE = −g·(3·1·cos 0 + 1·1·cos 0)
		Expect(p.Energy()).To(BeNumerically("~", -9.81*4, 1e-9))
	})
})

var _ = Describe("RecomputePositions", func() {
	It("hangs each bob directly below its predecessor at θ = 0", func() {
		p := pendulum.New(
			pendulum.NewBob(2, 1, 0, 0),
			pendulum.NewBob(3, 1, 0, 0),
			pendulum.NewBob(1, 1, 0, 0),
		)
		Expect(p.Bobs[0].X).To(BeZero())
		Expect(p.Bobs[0].Y).To(Equal(2.0))
		Expect(p.Bobs[1].X).To(BeZero())
		Expect(p.Bobs[1].Y).To(Equal(5.0))
		Expect(p.Bobs[2].X).To(BeZero())
		Expect(p.Bobs[2].Y).To(Equal(6.0))
	})

	It("chains positions from the previous bob", func() {
		p := pendulum.New(
			pendulum.NewBob(2, 1, math.Pi/2, 0),
			pendulum.NewBob(2, 1, 0, 0),
		)
		Expect(p.Bobs[0].X).To(BeNumerically("~", 2, 1e-12))
		Expect(p.Bobs[0].Y).To(BeNumerically("~", 0, 1e-12))
		Expect(p.Bobs[1].X).To(BeNumerically("~", 2, 1e-12))
		Expect(p.Bobs[1].Y).To(BeNumerically("~", 2, 1e-12))
	})

	It("is refreshed by every step", func() {
		p := pendulum.NewDefault()
		x0 := p.Bobs[1].X
		for i := 0; i < 10; i++ {
			p.Step(0.016)
		}
		Expect(p.Bobs[1].X).NotTo(Equal(x0))
	})
})
