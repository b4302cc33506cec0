package importer

import (
	"strconv"
	"strings"

	"Thruster/internal/calc/tank"
	"Thruster/internal/units"
)

// ParseTankRows turns sheet rows into tank inputs. The first row is a
// header. Columns: name, pressure, inner radius, thickness, material or
// strength, required FOS. Rows that do not parse are counted and skipped.
func ParseTankRows(rows [][]string) (items []tank.Input, skipped int) {
	for i := 1; i < len(rows); i++ {
		in, ok := parseTankRow(rows[i])
		if !ok {
			skipped++
			continue
		}
		items = append(items, in)
	}
	return items, skipped
}

func parseTankRow(row []string) (tank.Input, bool) {
	if len(row) < 5 {
		return tank.Input{}, false
	}
	var in tank.Input
	var err error
	in.Name = strings.TrimSpace(row[0])
	if in.Pressure, err = units.Parse(row[1]); err != nil {
		return tank.Input{}, false
	}
	if in.InnerRadius, err = units.Parse(row[2]); err != nil {
		return tank.Input{}, false
	}
	if in.Thickness, err = units.Parse(row[3]); err != nil {
		return tank.Input{}, false
	}
	if s, err := units.Parse(row[4]); err == nil {
		in.Strength = s
	} else {
		in.Material = strings.TrimSpace(row[4])
	}
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		if in.RequiredFOS, err = strconv.ParseFloat(strings.TrimSpace(row[5]), 64); err != nil {
			return tank.Input{}, false
		}
	}
	return in, true
}
