// Package dynamo provides the core numeric primitives shared by the rebound
// simulation packages.
//
//   - [Vec2]: 2D vector used for positions, velocities and corrections
//   - [Isometry]: rigid 2D pose (translation + rotation angle)
//   - [Params]: tuning constants for one simulation session
//
// # Units
//
// Positions are in world units. Renderers convert to pixels with
// [Params.PixelsPerUnit]; +Y points down the screen.
//
// # Thread Safety
//
// Values in this package are plain data and safe to copy between goroutines.
// Nothing here holds shared state.
package dynamo
