package geom

import (
	"fmt"
	"sort"
	"strings"
)

// Law shapes how the support distance grows from R at the start angle to
// R+D at the end angle. Offset is normalized: 0 at t=0 and 1 at t=1.
type Law int

const (
	// Linear grows the support distance by D*t.
	Linear Law = iota
	// Quadratic grows the support distance by D*t^2.
	Quadratic
	// EaseOut grows the support distance by D*(2t - t^2): fast at first,
	// flat at the end angle.
	EaseOut
)

var lawNames = map[Law]string{
	Linear:    "linear",
	Quadratic: "quadratic",
	EaseOut:   "ease-out",
}

func (l Law) String() string {
	if name, ok := lawNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Law(%d)", int(l))
}

// Offset returns the normalized displacement at t.
func (l Law) Offset(t float64) float64 {
	switch l {
	case Quadratic:
		return t * t
	case EaseOut:
		return 2*t - t*t
	default:
		return t
	}
}

// Slope returns dOffset/dt.
func (l Law) Slope(t float64) float64 {
	switch l {
	case Quadratic:
		return 2 * t
	case EaseOut:
		return 2 - 2*t
	default:
		return 1
	}
}

func (l Law) Valid() bool {
	_, ok := lawNames[l]
	return ok
}

// ParseLaw resolves a law by name. Matching is case insensitive.
func ParseLaw(name string) (Law, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l, n := range lawNames {
		if n == name {
			return l, nil
		}
	}
	return Linear, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLaw, name, strings.Join(LawNames(), ", "))
}

// LawNames lists the known law names in sorted order.
func LawNames() []string {
	names := make([]string, 0, len(lawNames))
	for _, n := range lawNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
