package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/davfen/pendsim/internal/pendulum"
)

// chain builds an n-link chain with varied lengths, masses and angles so
// the dynamics terms are exercised off the symmetric special cases.
func chain(n int) *pendulum.Pendulum {
	bobs := make([]pendulum.Bob, n)
	for i := range bobs {
		bobs[i] = pendulum.NewBob(
			1.0+0.3*float64(i),
			2.0+0.5*float64(i),
			0.4+0.7*float64(i),
			0.2-0.1*float64(i),
		)
	}
	return pendulum.New(bobs...)
}

var _ = Describe("SuffixMasses", func() {
	It("sums masses from each index to the end", func() {
		p := pendulum.New(
			pendulum.NewBob(1, 1, 0, 0),
			pendulum.NewBob(1, 2, 0, 0),
			pendulum.NewBob(1, 4, 0, 0),
		)
		Expect(p.SuffixMasses()).To(Equal([]float64{7, 6, 4}))
	})

	It("is empty for the empty chain", func() {
		Expect(pendulum.New().SuffixMasses()).To(BeEmpty())
	})
})

var _ = Describe("MassMatrix", func() {
	It("is symmetric for chains of any length", func() {
		for n := 1; n <= 5; n++ {
			m := chain(n).MassMatrix()
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					Expect(m.At(i, j)).To(Equal(m.At(j, i)),
						"n=%d entry (%d,%d)", n, i, j)
				}
			}
		}
	})

	It("matches the direct triple sum", func() {
		p := chain(4)
		m := p.MassMatrix()
		n := p.N()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				sum := 0.0
				for k := max(i, j); k < n; k++ {
					sum += p.Bobs[k].Mass *
						p.Bobs[i].RodLength * p.Bobs[j].RodLength *
						math.Cos(p.Bobs[i].Theta-p.Bobs[j].Theta)
				}
				Expect(m.At(i, j)).To(BeNumerically("~", sum, 1e-12))
			}
		}
	})

	It("reduces to mL² for a single bob", func() {
		p := pendulum.New(pendulum.NewBob(2, 3, 0.7, 0))
		Expect(p.MassMatrix().At(0, 0)).To(BeNumerically("~", 3*2*2, 1e-12))
	})
})

var _ = Describe("empty chain", func() {
	It("produces empty dynamics vectors and a nil matrix", func() {
		p := pendulum.New()
		Expect(p.MassMatrix()).To(BeNil())
		Expect(p.Coriolis()).To(BeEmpty())
		Expect(p.Gravity()).To(BeEmpty())
		Expect(p.Energy()).To(BeZero())
	})

	It("is unchanged by a step", func() {
		p := pendulum.New()
		p.Step(0.016)
		Expect(p.N()).To(BeZero())
	})
})

var _ = Describe("Coriolis", func() {
	It("vanishes for a chain at rest", func() {
		p := chain(3)
		for i := range p.Bobs {
			p.Bobs[i].Omega = 0
		}
		for _, c := range p.Coriolis() {
			Expect(c).To(BeNumerically("~", 0, 1e-12))
		}
	})

	It("vanishes for a single bob", func() {
		p := pendulum.New(pendulum.NewBob(1, 1, 0.5, 3))
		Expect(p.Coriolis()[0]).To(BeNumerically("~", 0, 1e-12))
	})
})

var _ = Describe("Gravity", func() {
	It("loads each link with the mass at and below it", func() {
		p := pendulum.New(
			pendulum.NewBob(2, 1, 0.3, 0),
			pendulum.NewBob(1, 4, -0.2, 0),
		)
		g := p.Gravity()
		Expect(g[0]).To(BeNumerically("~", 5*9.81*2*math.Sin(0.3), 1e-9))
		Expect(g[1]).To(BeNumerically("~", 4*9.81*1*math.Sin(-0.2), 1e-9))
	})

	It("vanishes for a hanging chain", func() {
		p := pendulum.New(
			pendulum.NewBob(1, 1, 0, 0),
			pendulum.NewBob(1, 1, 0, 0),
		)
		for _, g := range p.Gravity() {
			Expect(g).To(BeZero())
		}
	})
})
