// Package collide is the collision world the simulation step talks to.
//
// Objects are registered with a pose, a [Shape], a [QueryType] and a tag, and
// identified afterwards by an opaque [Handle]. [World.Advance] runs a uniform
// grid broad phase followed by an exact narrow phase and records which pairs
// started or stopped touching since the previous call.
//
// Two query types exist:
//
//   - [Contacts]: the pair is active while the shapes penetrate; [World.ContactPair]
//     returns the manifold (points, normals, depths) computed by the last Advance
//   - [Proximity]: the pair is active while the shapes are closer than the margin;
//     only events are produced, never contact points
//
// A pair is a proximity pair when either object uses [Proximity].
//
// Manifold normals point from the first handle of the query to the second.
package collide
