package pid

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Proportional", func() {
	It("should scale the error by the gain regardless of sample time", func() {
		p := NewProportional(2.5)

		for _, dt := range []time.Duration{0, time.Millisecond, time.Second, time.Hour} {
			Expect(p.Update(3.0, 1.0, dt)).To(Equal(5.0))
			Expect(p.Update(1.0, 3.0, dt)).To(Equal(-5.0))
		}
	})

	It("should keep Init as a no-op", func() {
		p := NewProportional(1.0)
		before := p.Update(2.0, 0.0, time.Second)
		p.Init()
		Expect(p.Update(2.0, 0.0, time.Second)).To(Equal(before))
	})
})

var _ = Describe("Integrator", func() {
	var i Integrator[float64]

	BeforeEach(func() {
		i = NewIntegrator(1.0, Range[float64]{Start: -100, End: 100})
	})

	It("should stay at zero under zero error", func() {
		for n := 0; n < 50; n++ {
			Expect(i.Update(4.0, 4.0, time.Second)).To(Equal(0.0))
		}
	})

	It("should accumulate trapezoidally", func() {
		Expect(i.Update(1.0, 0.0, time.Second)).To(Equal(0.5))
		Expect(i.Update(1.0, 0.0, time.Second)).To(Equal(1.5))
	})

	It("should clamp the accumulator into its limit", func() {
		i.Limit = Range[float64]{Start: -2, End: 2}
		for n := 0; n < 100; n++ {
			out := i.Update(10.0, 0.0, time.Second)
			Expect(out).To(BeNumerically("<=", 2.0))
			Expect(out).To(BeNumerically(">=", -2.0))
		}
		Expect(i.Update(10.0, 0.0, time.Second)).To(Equal(2.0))
	})

	It("should recover from saturation without windup", func() {
		i.Limit = Range[float64]{Start: -1, End: 1}
		for n := 0; n < 100; n++ {
			i.Update(10.0, 0.0, time.Second)
		}
		// Two reverse steps pull the clamped accumulator all the way
		// back down; an unclamped one would need fifty times as many.
		i.Update(0.0, 10.0, time.Second)
		Expect(i.Update(0.0, 10.0, time.Second)).To(Equal(-1.0))
	})

	It("should reset dynamic state but keep configuration", func() {
		i.Update(1.0, 0.0, time.Second)
		i.Init()
		Expect(i.Update(1.0, 0.0, time.Second)).To(Equal(0.5))
		Expect(i.Gain).To(Equal(1.0))
	})
})

var _ = Describe("Differentiator", func() {
	It("should match the discrete filter on the first step", func() {
		d := NewDifferentiator(1.0, 0.0)
		// numerator = -(2*1*1 + (0-1)*0) = -2, denominator = 0+1 = 1
		Expect(d.Update(0.0, 1.0, time.Second)).To(Equal(-2.0))
	})

	It("should decay toward zero on a constant measurement", func() {
		d := NewDifferentiator(1.0, 0.1)
		dt := 10 * time.Millisecond

		d.Update(0.0, 1.0, dt)
		prev := math.Abs(d.value)
		Expect(prev).To(BeNumerically(">", 0))

		for n := 0; n < 200; n++ {
			d.Update(0.0, 1.0, dt)
			cur := math.Abs(d.value)
			Expect(cur).To(BeNumerically("<", prev))
			prev = cur
		}
		Expect(prev).To(BeNumerically("<", 1e-6))
	})

	It("should differentiate the measurement, not the error", func() {
		d := NewDifferentiator(1.0, 0.1)
		dt := 10 * time.Millisecond

		d.Update(0.0, 0.0, dt)
		settled := d.value

		// A setpoint step with an unchanged measurement must not kick.
		d.Update(100.0, 0.0, dt)
		Expect(math.Abs(d.value)).To(BeNumerically("<=", math.Abs(settled)+1e-12))
	})

	It("should reset filter state on Init", func() {
		d := NewDifferentiator(1.0, 0.0)
		d.Update(0.0, 1.0, time.Second)
		d.Init()
		Expect(d.Update(0.0, 1.0, time.Second)).To(Equal(-2.0))
	})
})

var _ = Describe("Controller", func() {
	newController := func() *Controller[float64] {
		return New(
			Range[float64]{Start: -10, End: 10},
			100*time.Millisecond,
			NewProportional(2.0),
			NewIntegrator(1.0, Range[float64]{Start: -5, End: 5}),
			NewDifferentiator(0.5, 0.05),
		)
	}

	It("should clamp the combined output into its limit", func() {
		c := newController()
		for n := 0; n < 500; n++ {
			out := c.Update(1e6, 0.0)
			Expect(out).To(BeNumerically("<=", 10.0))
			Expect(out).To(BeNumerically(">=", -10.0))
		}
		Expect(c.Output()).To(Equal(10.0))
	})

	It("should behave like a fresh controller after Init", func() {
		c := newController()
		for n := 0; n < 20; n++ {
			c.Update(3.0, float64(n))
		}
		c.Init()
		Expect(c.Output()).To(Equal(0.0))

		fresh := newController()
		Expect(c.Update(3.0, 1.5)).To(Equal(fresh.Update(3.0, 1.5)))
	})

	It("should expose and apply tunable params", func() {
		c := newController()
		Expect(c.GetParams()).To(HaveKeyWithValue("kp", 2.0))

		Expect(c.SetParam("kp", 4.0)).To(Succeed())
		Expect(c.GetParams()).To(HaveKeyWithValue("kp", 4.0))
		Expect(c.SetParam("bogus", 1.0)).ToNot(Succeed())
	})

	It("should produce matching outputs at float32 and float64 precision", func() {
		c64 := New(
			Range[float64]{Start: -10, End: 10},
			10*time.Millisecond,
			NewProportional(2.0),
			NewIntegrator(0.5, Range[float64]{Start: -5, End: 5}),
			NewDifferentiator(0.1, 0.02),
		)
		c32 := New(
			Range[float32]{Start: -10, End: 10},
			10*time.Millisecond,
			NewProportional[float32](2.0),
			NewIntegrator[float32](0.5, Range[float32]{Start: -5, End: 5}),
			NewDifferentiator[float32](0.1, 0.02),
		)

		for n := 0; n < 100; n++ {
			m := math.Sin(float64(n) / 10.0)
			out64 := c64.Update(1.0, m)
			out32 := c32.Update(1.0, float32(m))
			Expect(float64(out32)).To(BeNumerically("~", out64, 1e-3))
		}
	})
})
