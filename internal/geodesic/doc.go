// Package geodesic advances (position, velocity) states along geodesics
// of a parametric surface.
//
//   - [State]: the ODE state (u, v, du/dt, dv/dt)
//   - [Integrator]: one-step transition, with [Euler] and [RK4] schemes
//   - [Trace]: bounded batch solve producing a discrete [Path]
//   - [Walker]: externally-clocked incremental stepping for animation
//   - [Shoot]: best-effort boundary solve by heading search
//
// The package never recovers from numeric degeneracy: an undefined
// surface point or singular metric turns the state NaN and integration
// continues degenerate from there, bounded only by the caller's step,
// length, and time budgets.
package geodesic
