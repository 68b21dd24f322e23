// Package integrator provides fixed-step ODE steppers for plant models.
package integrator

import "github.com/san-kum/pidloop/internal/loop"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(p loop.Plant, x loop.State, u float64, t, dt float64) loop.State {
	dx := p.Derive(x, u, t)
	result := make(loop.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
