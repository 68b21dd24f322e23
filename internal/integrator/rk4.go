package integrator

import "github.com/san-kum/pidloop/internal/loop"

type RK4 struct {
	k1, k2, k3, k4 loop.State
	scratch        loop.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(loop.State, n)
		r.k2 = make(loop.State, n)
		r.k3 = make(loop.State, n)
		r.k4 = make(loop.State, n)
		r.scratch = make(loop.State, n)
	}
}

func (r *RK4) Step(p loop.Plant, x loop.State, u float64, t, dt float64) loop.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, p.Derive(x, u, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, p.Derive(r.scratch, u, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, p.Derive(r.scratch, u, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, p.Derive(r.scratch, u, t+dt))

	result := make(loop.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
