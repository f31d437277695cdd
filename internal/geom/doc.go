// Package geom defines the profile of a friction locking cam.
//
// A cam turns about the origin and pushes against a fixed plane whose
// normal is the +x axis of the fixed frame. For every rotation angle the
// distance from the rotation center to the plane (the support distance)
// follows a displacement [Law].
//
//   - [Params]: base radius, displacement, angle range, segment count, law
//   - [ControlPoints]: the prescribed support distance at every knot
//   - [Spline]: the support distance as a uniform cubic B-spline in theta,
//     interpolating the knots ([FitSpline])
//   - [Contact]: where the cam touches the plane at one angle, the envelope
//     of the support lines
//   - [Profile]: a planar cubic B-spline fitted to the boundary for drawing
//     ([FitProfile]), convertible to Bezier curves
//
// # Frames
//
// The cam frame rotates with the cam. A cam-frame point p is seen in the
// fixed frame at [ToFixed](p, theta); its x coordinate is the distance to the
// plane. At the contact the cam edge is tangent to the plane.
//
// All angles in this package are radians.
package geom
