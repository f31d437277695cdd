package geom

import "gonum.org/v1/gonum/spatial/r2"

// The contact plane is fixed. Its normal points away from the rotation
// center along +x and the plane runs along y.
var (
	PlaneNormal  = r2.Vec{X: 1}
	PlaneTangent = r2.Vec{Y: 1}
)

var origin r2.Vec

// ToFixed expresses a cam-frame vector in the fixed frame after the cam
// has turned by theta.
func ToFixed(p r2.Vec, theta float64) r2.Vec {
	return r2.Rotate(p, -theta, origin)
}

// ToCam is the inverse of ToFixed.
func ToCam(p r2.Vec, theta float64) r2.Vec {
	return r2.Rotate(p, theta, origin)
}

// Polar returns the cam-frame point at distance r along angle theta.
func Polar(r, theta float64) r2.Vec {
	return ToCam(r2.Vec{X: r}, theta)
}

// Support is the distance from the rotation center to the plane when the
// cam-frame point p touches it at angle theta.
func Support(p r2.Vec, theta float64) float64 {
	return r2.Dot(ToFixed(p, theta), PlaneNormal)
}
