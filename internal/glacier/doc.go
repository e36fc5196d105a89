// Package glacier implements the shallow-ice glacier flow solver.
//
// The solver advances an ice thickness field on a raster grid under a
// nonlinear diffusion law (the shallow-ice approximation) and mass-balance
// forcing:
//
//	dH/dt = -div(q) + b_dot,  q = -D * grad(S),  D = Gamma * H^(n+2) * |grad S|^(n-1)
//
// with S = B + H. Defaults correspond to Glen exponent n = 3. Time stepping
// is explicit with adaptive sub-stepping against the diffusive CFL bound
// dt <= CFL * dx^2 / (4 * D_max); the configured Dt acts as a maximum step.
// Domain boundaries are closed (no-flux).
//
// # Thread Safety
//
// Solver instances are NOT thread-safe. The solver owns the ice_thickness,
// ice_elevation and I_map grid fields for the duration of Run; readers
// should inspect them only between steps (via an Observer) or after Run
// returns.
package glacier
