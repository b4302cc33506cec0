package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension holds the exponents of the SI base dimensions in the order
// mass, length, time, current, temperature, amount, luminosity.
type Dimension [7]int8

const (
	massIdx = iota
	lengthIdx
	timeIdx
	currentIdx
	temperatureIdx
	amountIdx
	luminosityIdx
)

var baseSymbols = [7]string{"kg", "m", "s", "A", "K", "mol", "cd"}

var (
	Dimensionless = Dimension{}
	Mass          = Dimension{massIdx: 1}
	Length        = Dimension{lengthIdx: 1}
	Time          = Dimension{timeIdx: 1}
	Temperature   = Dimension{temperatureIdx: 1}

	Area         = Dimension{lengthIdx: 2}
	Volume       = Dimension{lengthIdx: 3}
	Velocity     = Dimension{lengthIdx: 1, timeIdx: -1}
	Acceleration = Dimension{lengthIdx: 1, timeIdx: -2}
	Force        = Dimension{massIdx: 1, lengthIdx: 1, timeIdx: -2}
	Pressure     = Dimension{massIdx: 1, lengthIdx: -1, timeIdx: -2}
	Density      = Dimension{massIdx: 1, lengthIdx: -3}
	MassFlow     = Dimension{massIdx: 1, timeIdx: -1}
	Energy       = Dimension{massIdx: 1, lengthIdx: 2, timeIdx: -2}
	Power        = Dimension{massIdx: 1, lengthIdx: 2, timeIdx: -3}
)

var dimensionNames = map[Dimension]string{
	Dimensionless: "dimensionless",
	Mass:          "mass",
	Length:        "length",
	Time:          "time",
	Temperature:   "temperature",
	Area:          "area",
	Volume:        "volume",
	Velocity:      "velocity",
	Acceleration:  "acceleration",
	Force:         "force",
	Pressure:      "pressure",
	Density:       "density",
	MassFlow:      "mass flow",
	Energy:        "energy",
	Power:         "power",
}

func (d Dimension) add(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

func (d Dimension) sub(o Dimension) Dimension {
	for i := range d {
		d[i] -= o[i]
	}
	return d
}

// scale multiplies every exponent by n. It fails with ErrSyntax when an
// exponent leaves the int8 range.
func (d Dimension) scale(n int) (Dimension, error) {
	for i := range d {
		e := int(d[i]) * n
		if e < math.MinInt8 || e > math.MaxInt8 {
			return Dimension{}, fmt.Errorf("%w: exponent %d out of range", ErrSyntax, e)
		}
		d[i] = int8(e)
	}
	return d, nil
}

// checkedAdd is add with the same range check as scale.
func (d Dimension) checkedAdd(o Dimension, sign int) (Dimension, error) {
	for i := range d {
		e := int(d[i]) + sign*int(o[i])
		if e < math.MinInt8 || e > math.MaxInt8 {
			return Dimension{}, fmt.Errorf("%w: exponent %d out of range", ErrSyntax, e)
		}
		d[i] = int8(e)
	}
	return d, nil
}

// IsDimensionless reports whether every exponent is zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimensionless
}

// String returns the common name of the dimension when there is one and
// the base-unit form (kg*m^-1*s^-2) otherwise.
func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return d.baseUnit()
}

// baseUnit renders the coherent SI unit expression for d.
func (d Dimension) baseUnit() string {
	var parts []string
	for i, e := range d {
		switch {
		case e == 0:
			continue
		case e == 1:
			parts = append(parts, baseSymbols[i])
		default:
			parts = append(parts, baseSymbols[i]+"^"+strconv.Itoa(int(e)))
		}
	}
	return strings.Join(parts, "*")
}
