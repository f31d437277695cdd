package friction

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	normal = r2.Vec{X: 1}
	plane  = r2.Vec{Y: 1}
)

func TestRequiredFriction(t *testing.T) {
	tests := []struct {
		name    string
		contact r2.Vec
		tangent r2.Vec
		want    float64
	}{
		{"on the normal", r2.Vec{X: 1}, plane, 0},
		{"lever ratio", r2.Vec{X: 0.75, Y: 0.0716}, plane, 0.0716 / 0.75},
		{"negative offset", r2.Vec{X: 1, Y: -0.1}, plane, 0.1},
		{"reversed tangent", r2.Vec{X: 2, Y: 0.2}, r2.Vec{Y: -3}, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredFriction(tt.contact, tt.tangent, normal)
			if got.Degenerate {
				t.Fatalf("unexpected degenerate result: %s", got.Reason)
			}
			if math.Abs(got.Mu-tt.want) > 1e-12 {
				t.Errorf("Mu = %v, want %v", got.Mu, tt.want)
			}
			if got.Mu < 0 {
				t.Errorf("Mu must not be negative: %v", got.Mu)
			}
		})
	}
}

func TestRequiredFriction_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		contact r2.Vec
		tangent r2.Vec
		reason  string
	}{
		{"tangent along normal", r2.Vec{X: 1, Y: 0.1}, r2.Vec{X: 2}, ReasonParallel},
		{"zero tangent", r2.Vec{X: 1}, r2.Vec{}, ReasonNoTangent},
		{"contact on the plane", r2.Vec{Y: 0.5}, plane, ReasonNoNormal},
		{"NaN contact", r2.Vec{X: math.NaN(), Y: 0.1}, plane, ReasonNonFinite},
		{"infinite contact", r2.Vec{X: math.Inf(1), Y: math.Inf(1)}, plane, ReasonNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredFriction(tt.contact, tt.tangent, normal)
			if !got.Degenerate {
				t.Fatalf("expected degenerate result, got Mu=%v", got.Mu)
			}
			if got.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.reason)
			}
			if !math.IsInf(got.Mu, 1) {
				t.Errorf("Mu = %v, want +Inf", got.Mu)
			}
		})
	}
}

func TestResult_Holds(t *testing.T) {
	r := RequiredFriction(r2.Vec{X: 1, Y: 0.1}, plane, normal)
	if !r.Holds(0.2) {
		t.Error("expected lock with mu=0.2")
	}
	if r.Holds(0.05) {
		t.Error("expected slip with mu=0.05")
	}
	if degenerate(ReasonParallel).Holds(10) {
		t.Error("degenerate contact must not report a lock")
	}
}
