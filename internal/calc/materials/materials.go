// Package materials keeps named allowables for tank and chamber walls.
package materials

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"Thruster/internal/units"

	"gopkg.in/ini.v1"
)

var ErrUnknownMaterial = errors.New("unknown material")

type Material struct {
	Name     string         `json:"name"`
	Yield    units.Quantity `json:"yield"`
	Ultimate units.Quantity `json:"ultimate"`
	Density  units.Quantity `json:"density"`
}

var (
	mu      sync.RWMutex
	catalog = map[string]Material{}
)

func init() {
	for _, m := range []Material{
		{Name: "Al6061-T6", Yield: units.Must(35, "ksi"), Ultimate: units.Must(42, "ksi"), Density: units.Must(2700, "kg/m^3")},
		{Name: "Al5052-H32", Yield: units.Must(23, "ksi"), Ultimate: units.Must(33, "ksi"), Density: units.Must(2680, "kg/m^3")},
		{Name: "SS304", Yield: units.Must(215, "MPa"), Ultimate: units.Must(505, "MPa"), Density: units.Must(8000, "kg/m^3")},
		{Name: "SS316", Yield: units.Must(205, "MPa"), Ultimate: units.Must(515, "MPa"), Density: units.Must(8000, "kg/m^3")},
		{Name: "Ti-6Al-4V", Yield: units.Must(880, "MPa"), Ultimate: units.Must(950, "MPa"), Density: units.Must(4430, "kg/m^3")},
		{Name: "Inconel718", Yield: units.Must(1030, "MPa"), Ultimate: units.Must(1240, "MPa"), Density: units.Must(8190, "kg/m^3")},
	} {
		catalog[key(m.Name)] = m
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a material by case-insensitive name.
func Lookup(name string) (Material, error) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := catalog[key(name)]
	if !ok {
		return Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Register adds or replaces a material. Yield must be pressure-dimensioned.
func Register(m Material) error {
	if m.Name == "" {
		return fmt.Errorf("material name required")
	}
	if err := m.Yield.Check(units.Pressure); err != nil {
		return fmt.Errorf("%s yield: %w", m.Name, err)
	}
	if m.Density.IsSet() {
		if err := m.Density.Check(units.Density); err != nil {
			return fmt.Errorf("%s density: %w", m.Name, err)
		}
	}
	mu.Lock()
	catalog[key(m.Name)] = m
	mu.Unlock()
	return nil
}

// List returns every material sorted by name.
func List() []Material {
	mu.RLock()
	out := make([]Material, 0, len(catalog))
	for _, m := range catalog {
		out = append(out, m)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LoadSection registers every key of sec as a material. Values are
// "<yield>[, <density>[, <ultimate>]]", e.g. "35 ksi, 2700 kg/m^3".
func LoadSection(sec *ini.Section) error {
	for _, k := range sec.Keys() {
		parts := strings.Split(k.String(), ",")
		m := Material{Name: k.Name()}
		var err error
		if m.Yield, err = units.Parse(parts[0]); err != nil {
			return fmt.Errorf("material %s: %w", k.Name(), err)
		}
		if len(parts) > 1 {
			if m.Density, err = units.Parse(parts[1]); err != nil {
				return fmt.Errorf("material %s: %w", k.Name(), err)
			}
		}
		if len(parts) > 2 {
			if m.Ultimate, err = units.Parse(parts[2]); err != nil {
				return fmt.Errorf("material %s: %w", k.Name(), err)
			}
		}
		if err := Register(m); err != nil {
			return err
		}
	}
	return nil
}
