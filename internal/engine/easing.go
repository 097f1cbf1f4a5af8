package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownEasing is returned for an easing name that is not in the table.
var ErrUnknownEasing = errors.New("unknown easing")

// EasingFunc maps animation progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

var easings = map[string]EasingFunc{
	"linear":   func(t float64) float64 { return t },
	"ease-in":  func(t float64) float64 { return t * t * t },
	"ease-out": func(t float64) float64 { return 1 - math.Pow(1-t, 3) },
	"ease-in-out": func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	},
	"bounce": bounceOut,
}

// ParseEasing looks an easing up by name. Names are case-insensitive.
func ParseEasing(name string) (EasingFunc, error) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownEasing, name, strings.Join(EasingNames(), ", "))
	}
	return fn, nil
}

// EasingNames lists the known easings, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func bounceOut(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
