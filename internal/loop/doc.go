// Package loop closes a feedback loop between a [pid.Controller] and a
// simulated plant.
//
// The package defines the types shared by the simulation packages:
//
//   - [State]: vector representing plant state
//   - [Plant]: interface for plant ODEs (dX/dt = f(X, u, t))
//   - [Stepper]: numerical integrator interface
//   - [Metric]: per-run observation interface
//   - [Runner]: orchestrates closed-loop runs
//
// # Example
//
//	plant := plant.NewFirstOrder()
//	r := loop.New(plant, integrator.NewRK4(), ctrl)
//	result, _ := r.Run(ctx, x0, cfg)
//
// The runner drives the controller at its fixed sample time: one
// controller update, then one plant integration step per sample period.
//
// # Thread Safety
//
// Runner instances are NOT thread-safe; use one per goroutine.
package loop
