package grid

import "fmt"

// AddZeros creates a zero-initialized node field and returns it. If the
// field already exists it is zeroed in place and returned.
func (g *RasterGrid) AddZeros(name string) []float64 {
	if f, ok := g.fields[name]; ok {
		for i := range f {
			f[i] = 0
		}
		return f
	}
	f := make([]float64, g.NumNodes())
	g.fields[name] = f
	return f
}

// AddField attaches vals as a named node field. The slice is stored by
// reference: callers holding it observe solver updates in place.
func (g *RasterGrid) AddField(name string, vals []float64) error {
	if len(vals) != g.NumNodes() {
		return fmt.Errorf("grid: field %q has %d values, grid has %d nodes",
			name, len(vals), g.NumNodes())
	}
	g.fields[name] = vals
	return nil
}

// Field returns the named node field, or an error if absent.
func (g *RasterGrid) Field(name string) ([]float64, error) {
	f, ok := g.fields[name]
	if !ok {
		return nil, fmt.Errorf("grid: no field %q", name)
	}
	return f, nil
}

// SetField copies vals into the named field, creating it if needed.
func (g *RasterGrid) SetField(name string, vals []float64) error {
	if len(vals) != g.NumNodes() {
		return fmt.Errorf("grid: field %q has %d values, grid has %d nodes",
			name, len(vals), g.NumNodes())
	}
	f, ok := g.fields[name]
	if !ok {
		f = make([]float64, g.NumNodes())
		g.fields[name] = f
	}
	copy(f, vals)
	return nil
}

// HasField reports whether a field with the given name exists.
func (g *RasterGrid) HasField(name string) bool {
	_, ok := g.fields[name]
	return ok
}

// FieldNames lists the attached field names in arbitrary order.
func (g *RasterGrid) FieldNames() []string {
	names := make([]string, 0, len(g.fields))
	for name := range g.fields {
		names = append(names, name)
	}
	return names
}
