package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Unit is a named scale of a dimension. Factor converts one of the unit
// into the coherent SI unit of Dim.
type Unit struct {
	Name   string
	Factor float64
	Dim    Dimension
}

const (
	inch    = 0.0254
	foot    = 0.3048
	pound   = 0.45359237
	gravity = 9.80665
	lbf     = pound * gravity
	psi     = lbf / (inch * inch)
)

var registry = map[string]Unit{}

func define(factor float64, dim Dimension, names ...string) {
	for _, n := range names {
		registry[n] = Unit{Name: names[0], Factor: factor, Dim: dim}
	}
}

func init() {
	define(1, Length, "m", "meter", "metre")
	define(0.01, Length, "cm")
	define(0.001, Length, "mm")
	define(1000, Length, "km")
	define(inch, Length, "in", "inch")
	define(foot, Length, "ft", "foot", "feet")

	define(1, Mass, "kg", "kilogram")
	define(0.001, Mass, "g", "gram")
	define(pound, Mass, "lb", "lbm", "pound")
	define(lbf/foot, Mass, "slug")

	define(1, Time, "s", "sec", "second")
	define(0.001, Time, "ms")
	define(60, Time, "min", "minute")
	define(3600, Time, "h", "hr", "hour")

	define(1, Force, "N", "newton")
	define(1000, Force, "kN")
	define(lbf, Force, "lbf")

	define(1, Pressure, "Pa", "pascal")
	define(1e3, Pressure, "kPa")
	define(1e6, Pressure, "MPa")
	define(1e9, Pressure, "GPa")
	define(psi, Pressure, "psi")
	define(psi*1000, Pressure, "ksi")
	define(1e5, Pressure, "bar")
	define(101325, Pressure, "atm")

	define(1e-3, Volume, "L", "liter", "litre")
	define(1e-6, Volume, "mL")
	define(231*inch*inch*inch, Volume, "gal", "gallon")

	define(1, Energy, "J", "joule")
	define(1e3, Energy, "kJ")
	define(1, Power, "W", "watt")
	define(1e3, Power, "kW")

	define(1, Temperature, "K", "kelvin")
	define(5.0/9.0, Temperature, "degR", "rankine")

	define(1, Dimensionless, "rad", "radian")
	define(math.Pi/180, Dimensionless, "deg", "degree")
	define(0.01, Dimensionless, "percent", "%")
}

// ParseUnit parses a unit expression such as "psi", "ft/s^2", "lbf*s/lb"
// or "kg/(m^2*s)". Operators apply left to right, so "ft/s*s" equals ft.
// An empty string or "dimensionless" yields the dimensionless unit.
func ParseUnit(expr string) (Unit, error) {
	s := strings.TrimSpace(expr)
	if s == "" || s == "dimensionless" {
		return Unit{Factor: 1}, nil
	}
	if u, ok := registry[s]; ok {
		u.Name = s
		return u, nil
	}
	p := &parser{src: strings.ReplaceAll(s, "**", "^")}
	u, err := p.expr()
	if err != nil {
		return Unit{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return Unit{}, fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, p.src[p.pos:], expr)
	}
	u.Name = s
	return u, nil
}

// MustParseUnit is ParseUnit that panics on error. Meant for package-level
// unit literals.
func MustParseUnit(expr string) Unit {
	u, err := ParseUnit(expr)
	if err != nil {
		panic(err)
	}
	return u
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expr() (Unit, error) {
	u, err := p.term()
	if err != nil {
		return Unit{}, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return u, nil
		}
		p.pos++
		next, err := p.term()
		if err != nil {
			return Unit{}, err
		}
		sign, factor := 1, u.Factor*next.Factor
		if op == '/' {
			sign, factor = -1, u.Factor/next.Factor
		}
		dim, err := u.Dim.checkedAdd(next.Dim, sign)
		if err != nil {
			return Unit{}, err
		}
		u = Unit{Factor: factor, Dim: dim}
	}
}

func (p *parser) term() (Unit, error) {
	u, err := p.atom()
	if err != nil {
		return Unit{}, err
	}
	if p.peek() != '^' {
		return u, nil
	}
	p.pos++
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.src) && unicode.IsDigit(rune(p.src[p.pos])) {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return Unit{}, fmt.Errorf("%w: bad exponent in %q", ErrSyntax, p.src)
	}
	dim, err := u.Dim.scale(n)
	if err != nil {
		return Unit{}, fmt.Errorf("%w in %q", err, p.src)
	}
	return Unit{Factor: math.Pow(u.Factor, float64(n)), Dim: dim}, nil
}

func (p *parser) atom() (Unit, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		u, err := p.expr()
		if err != nil {
			return Unit{}, err
		}
		if p.peek() != ')' {
			return Unit{}, fmt.Errorf("%w: missing ')' in %q", ErrSyntax, p.src)
		}
		p.pos++
		return u, nil
	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.src) && (unicode.IsDigit(rune(p.src[p.pos])) || p.src[p.pos] == '.') {
			p.pos++
		}
		v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return Unit{}, fmt.Errorf("%w: bad number in %q", ErrSyntax, p.src)
		}
		return Unit{Factor: v}, nil
	case unicode.IsLetter(rune(c)) || c == '%':
		start := p.pos
		for p.pos < len(p.src) && (unicode.IsLetter(rune(p.src[p.pos])) || p.src[p.pos] == '_' || p.src[p.pos] == '%') {
			p.pos++
		}
		name := p.src[start:p.pos]
		u, ok := registry[name]
		if !ok {
			return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
		}
		return u, nil
	default:
		return Unit{}, fmt.Errorf("%w: %q", ErrSyntax, p.src)
	}
}
