// Package pendulum implements the dynamics of an N-link planar compound
// pendulum in generalized coordinates.
//
// Each link is a [Bob]: a point mass on a rigid massless rod, its angle
// measured from the downward vertical. The equations of motion
//
//	M·θ̈ + C + G = 0
//
// are assembled from the Lagrangian: [Pendulum.MassMatrix] builds the
// coupling matrix, [Pendulum.Coriolis] the velocity-dependent terms via
// the Christoffel symbols of M, and [Pendulum.Gravity] the gradient of
// gravitational potential. [Pendulum.Step] solves for accelerations with
// an LU decomposition and advances the state with a semi-implicit Euler
// step (velocity before position), which keeps long-run energy bounded.
//
// Cartesian bob positions are derived data, recomputed after every step.
package pendulum
