// Package layout implements the size arithmetic of a panel group: unit
// conversion, item ordering, the prepare/update/commit pipeline and the
// track template handed to renderers.
//
// Every function in this package is pure. Callers pass a Context and get
// new item slices back; the input is never modified.
package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Kind tags the representation held by a Unit.
type Kind uint8

const (
	// Auto marks a value that has not been resolved yet (no measurement,
	// no default). It is the zero Kind so an empty Unit means "unset".
	Auto Kind = iota
	// Pixels is an absolute length along the active axis.
	Pixels
	// Percent is a fraction (0..1) of a reference length. For min, max,
	// default and collapsed sizes the reference is the container; for a
	// committed current value it is the container minus the static width.
	Percent
	// Fill is the "1fr" sentinel accepted for max: no bound other than the
	// leftover space.
	Fill
)

func (k Kind) String() string {
	switch k {
	case Pixels:
		return "pixel"
	case Percent:
		return "percent"
	case Fill:
		return "fill"
	default:
		return "auto"
	}
}

// Unit is a tagged length value.
type Unit struct {
	Kind  Kind
	Value float64
}

// FillUnit is the "1fr" max sentinel.
var FillUnit = Unit{Kind: Fill, Value: 1}

// Px returns a pixel unit.
func Px(v float64) Unit { return Unit{Kind: Pixels, Value: v} }

// Pct returns a percent unit holding the fraction f (0.5 is 50%).
func Pct(f float64) Unit { return Unit{Kind: Percent, Value: f} }

// IsSet reports whether the unit holds a value.
func (u Unit) IsSet() bool { return u.Kind != Auto }

// ParseUnit parses "120px" or "35%". Anything else, including bare numbers
// and "1fr", fails with ErrInvalidUnit.
func ParseUnit(s string) (Unit, error) {
	raw := strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(raw, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Unit{}, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
		}
		return Px(v), nil
	case strings.HasSuffix(raw, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Unit{}, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
		}
		return Pct(v / 100), nil
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

// ParseMax parses a max constraint, which additionally accepts "1fr".
func ParseMax(s string) (Unit, error) {
	if strings.TrimSpace(s) == "1fr" {
		return FillUnit, nil
	}
	return ParseUnit(s)
}

// MustParseUnit is ParseUnit for literals known to be valid.
func MustParseUnit(s string) Unit {
	u, err := ParseMax(s)
	if err != nil {
		panic(err)
	}
	return u
}

// String formats the unit the way it appears in track templates.
func (u Unit) String() string {
	switch u.Kind {
	case Pixels:
		return formatNumber(u.Value) + "px"
	case Percent:
		return formatNumber(u.Value*100) + "%"
	case Fill:
		return "1fr"
	default:
		return "auto"
	}
}

// MarshalText implements encoding.TextMarshaler so units read naturally in
// TOML configuration.
func (u Unit) MarshalText() ([]byte, error) {
	if u.Kind == Auto {
		return []byte{}, nil
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string leaves
// the unit unset.
func (u *Unit) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*u = Unit{}
		return nil
	}
	parsed, err := ParseMax(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ToPixels resolves u against a container length. Percent units multiply the
// container length; Auto resolves to 0 and Fill to the whole container.
func ToPixels(containerSize float64, u Unit) float64 {
	switch u.Kind {
	case Pixels:
		return u.Value
	case Percent:
		return containerSize * u.Value
	case Fill:
		return containerSize
	default:
		return 0
	}
}

// ToPercent is the inverse of ToPixels: the fraction of containerSize that u
// occupies. A zero container yields 0.
func ToPercent(containerSize float64, u Unit) float64 {
	if u.Kind == Percent {
		return u.Value
	}
	if containerSize == 0 {
		return 0
	}
	return ToPixels(containerSize, u) / containerSize
}

type unitJSON struct {
	Kind  string  `json:"type"`
	Value float64 `json:"value"`
}

// MarshalJSON encodes the unit as {"type":..,"value":..} so snapshots keep
// committed fractions bit for bit instead of going through String.
func (u Unit) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(unitJSON{Kind: u.Kind.String(), Value: u.Value})
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var aux unitJSON
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch aux.Kind {
	case "pixel":
		*u = Px(aux.Value)
	case "percent":
		*u = Pct(aux.Value)
	case "fill":
		*u = FillUnit
	case "auto", "":
		*u = Unit{}
	default:
		return fmt.Errorf("%w: unknown unit type %q", ErrInvalidUnit, aux.Kind)
	}
	return nil
}

func formatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
