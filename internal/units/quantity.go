package units

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is a magnitude tagged with a unit. Values are immutable; every
// operation returns a new Quantity.
type Quantity struct {
	mag  float64
	unit Unit
}

// New builds a quantity from a magnitude and a unit expression.
func New(mag float64, unit string) (Quantity, error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{mag: mag, unit: u}, nil
}

// Must is New that panics on a bad unit expression.
func Must(mag float64, unit string) Quantity {
	q, err := New(mag, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// Number returns a dimensionless quantity.
func Number(v float64) Quantity {
	return Quantity{mag: v, unit: Unit{Factor: 1}}
}

// Parse reads "<magnitude> <unit>", for example "900 psi" or "9.81 m/s^2".
// A bare number is dimensionless.
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty quantity", ErrSyntax)
	}
	num, unit := s, ""
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		num, unit = s[:i], s[i+1:]
	}
	mag, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: bad magnitude in %q", ErrSyntax, s)
	}
	return New(mag, unit)
}

// Magnitude is the number expressed in the quantity's own unit.
func (q Quantity) Magnitude() float64 { return q.mag }

// Units returns the unit expression.
func (q Quantity) Units() string { return q.unit.Name }

// Dim returns the dimension of the quantity.
func (q Quantity) Dim() Dimension { return q.unit.Dim }

// SI is the magnitude expressed in the coherent SI unit of the dimension.
func (q Quantity) SI() float64 { return q.mag * q.unit.Factor }

// IsSet reports whether q was constructed, as opposed to the zero value
// left in an omitted struct field.
func (q Quantity) IsSet() bool { return q.unit.Factor != 0 }

// IsZero reports whether the magnitude is zero.
func (q Quantity) IsZero() bool { return q.mag == 0 }

// Check returns ErrDimensionMismatch unless q has dimension d.
func (q Quantity) Check(d Dimension) error {
	if q.unit.Dim != d {
		return fmt.Errorf("%w: have %s, want %s", ErrDimensionMismatch, q.unit.Dim, d)
	}
	return nil
}

// Mul returns q*o; the unit is the product expression.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		mag: q.mag * o.mag,
		unit: Unit{
			Name:   joinUnits(q.unit.Name, "*", o.unit.Name),
			Factor: q.unit.Factor * o.unit.Factor,
			Dim:    q.unit.Dim.add(o.unit.Dim),
		},
	}
}

// Div returns q/o, or ErrDivisionByZero when o is zero.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	if o.mag == 0 {
		return Quantity{}, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, q, o)
	}
	return Quantity{
		mag: q.mag / o.mag,
		unit: Unit{
			Name:   joinUnits(q.unit.Name, "/", o.unit.Name),
			Factor: q.unit.Factor / o.unit.Factor,
			Dim:    q.unit.Dim.sub(o.unit.Dim),
		},
	}, nil
}

// Scale multiplies the magnitude by a pure number.
func (q Quantity) Scale(k float64) Quantity {
	return Quantity{mag: q.mag * k, unit: q.unit}
}

// DivScalar divides the magnitude by a pure number.
func (q Quantity) DivScalar(k float64) (Quantity, error) {
	if k == 0 {
		return Quantity{}, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, q)
	}
	return Quantity{mag: q.mag / k, unit: q.unit}, nil
}

// Add returns q+o in the unit of q.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	v, err := o.in(q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{mag: q.mag + v, unit: q.unit}, nil
}

// Sub returns q-o in the unit of q.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	v, err := o.in(q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{mag: q.mag - v, unit: q.unit}, nil
}

// Pow raises q to an integer power. Exponents outside the int8 range
// fail with ErrSyntax.
func (q Quantity) Pow(n int) (Quantity, error) {
	dim, err := q.unit.Dim.scale(n)
	if err != nil {
		return Quantity{}, err
	}
	name := q.unit.Name
	if name != "" {
		name = wrap(name) + "^" + strconv.Itoa(n)
	}
	return Quantity{
		mag: math.Pow(q.mag, float64(n)),
		unit: Unit{
			Name:   name,
			Factor: math.Pow(q.unit.Factor, float64(n)),
			Dim:    dim,
		},
	}, nil
}

// Sqrt fails with ErrDimensionMismatch when the dimension has an odd
// exponent. The result is expressed in SI.
func (q Quantity) Sqrt() (Quantity, error) {
	var d Dimension
	for i, e := range q.unit.Dim {
		if e%2 != 0 {
			return Quantity{}, fmt.Errorf("%w: square root of %s", ErrDimensionMismatch, q.unit.Dim)
		}
		d[i] = e / 2
	}
	return Quantity{mag: math.Sqrt(q.SI()), unit: Unit{Name: d.baseUnit(), Factor: 1, Dim: d}}, nil
}

// To converts q into the given compatible unit.
func (q Quantity) To(unit string) (Quantity, error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	v, err := q.in(u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{mag: v, unit: u}, nil
}

// MustTo is To for conversions known to be valid.
func (q Quantity) MustTo(unit string) Quantity {
	c, err := q.To(unit)
	if err != nil {
		panic(err)
	}
	return c
}

// ToBase expresses q in the coherent SI unit of its dimension.
func (q Quantity) ToBase() Quantity {
	return Quantity{mag: q.SI(), unit: Unit{Name: q.unit.Dim.baseUnit(), Factor: 1, Dim: q.unit.Dim}}
}

// Float returns the pure number of a dimensionless quantity with all unit
// factors cancelled, so psi/(psi*in/in) yields a plain ratio.
func (q Quantity) Float() (float64, error) {
	if !q.unit.Dim.IsDimensionless() {
		return 0, fmt.Errorf("%w: %s is not dimensionless", ErrDimensionMismatch, q.unit.Dim)
	}
	return q.SI(), nil
}

// Cmp compares q and o after conversion to SI.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if q.unit.Dim != o.unit.Dim {
		return 0, fmt.Errorf("%w: compare %s with %s", ErrDimensionMismatch, q.unit.Dim, o.unit.Dim)
	}
	a, b := q.SI(), o.SI()
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

func (q Quantity) String() string {
	if q.unit.Name == "" {
		return strconv.FormatFloat(q.mag, 'g', -1, 64)
	}
	return strconv.FormatFloat(q.mag, 'g', -1, 64) + " " + q.unit.Name
}

// Format renders the magnitude with prec decimals.
func (q Quantity) Format(prec int) string {
	s := strconv.FormatFloat(q.mag, 'f', prec, 64)
	if q.unit.Name == "" {
		return s
	}
	return s + " " + q.unit.Name
}

func (q Quantity) in(u Unit) (float64, error) {
	if q.unit.Dim != u.Dim {
		return 0, fmt.Errorf("%w: cannot convert %s to %s", ErrDimensionMismatch, q.unit.Dim, u.Dim)
	}
	return q.mag * q.unit.Factor / u.Factor, nil
}

type quantityJSON struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// MarshalJSON writes an unset quantity as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(quantityJSON{Value: q.mag, Unit: q.unit.Name})
}

// UnmarshalJSON accepts {"value":900,"unit":"psi"}, "900 psi" or a bare
// number. null leaves q unchanged.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := Parse(s)
		if err != nil {
			return err
		}
		*q = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*q = Number(f)
		return nil
	}
	var raw quantityJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := New(raw.Value, raw.Unit)
	if err != nil {
		return err
	}
	*q = v
	return nil
}

func joinUnits(a, op, b string) string {
	switch {
	case a == "" && b == "":
		return ""
	case b == "":
		return a
	case a == "" && op == "*":
		return b
	case a == "":
		return "1/" + wrap(b)
	}
	return a + op + wrap(b)
}

func wrap(s string) string {
	if strings.ContainsAny(s, "*/^ ") {
		return "(" + s + ")"
	}
	return s
}
