package geom

// State enumerates material aggregation states.
type State int

const (
	StateSolid State = iota
	StateLiquid
	StateGas
)

func (s State) String() string {
	switch s {
	case StateSolid:
		return "solid"
	case StateLiquid:
		return "liquid"
	case StateGas:
		return "gas"
	default:
		return "unknown"
	}
}

// Element is an entry of the built-in periodic subset.
type Element struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Z      int     `json:"z"`
	A      float64 `json:"a"` // molar mass in g/mol
}

// Component binds an element into a material, either by atom count
// (molecular composition) or by mass fraction. Exactly one of Atoms
// and Fraction is set per component, and a material never mixes the
// two styles.
type Component struct {
	Element  Element `json:"element"`
	Atoms    int     `json:"atoms,omitempty"`
	Fraction float64 `json:"fraction,omitempty"`
}

// PropertyTable is a photon-energy-indexed property curve attached to
// a material or optical surface. Energies are in eV and ascend; values
// are read pointwise by the transport engine, never interpolated here.
// A constant property is a table with a single entry.
type PropertyTable struct {
	Energies []float64 `json:"energies"`
	Values   []float64 `json:"values"`
}

// Constant returns a single-entry table for energy-independent
// properties.
func Constant(v float64) PropertyTable {
	return PropertyTable{Energies: []float64{1}, Values: []float64{v}}
}

// Len returns the number of table entries.
func (t PropertyTable) Len() int { return len(t.Energies) }

// properties stores named property tables in attachment order. It is
// embedded by Material and OpticalSurface.
type properties struct {
	propNames []string
	props     map[string]PropertyTable
}

// SetProperty attaches a named property table. Attaching an existing
// name replaces the previous table without changing its position in
// the attachment order.
func (p *properties) SetProperty(name string, t PropertyTable) {
	if p.props == nil {
		p.props = make(map[string]PropertyTable)
	}
	if _, ok := p.props[name]; !ok {
		p.propNames = append(p.propNames, name)
	}
	p.props[name] = t
}

// Property returns the named table and whether it is attached.
func (p *properties) Property(name string) (PropertyTable, bool) {
	t, ok := p.props[name]
	return t, ok
}

// PropertyNames returns attached property names in attachment order.
func (p *properties) PropertyNames() []string {
	out := make([]string, len(p.propNames))
	copy(out, p.propNames)
	return out
}

// Material describes a named material. Composition, density and state
// are fixed at creation; optical property tables are attached once by
// the optics collaborator before the material is handed to volumes.
type Material struct {
	Name        string      `json:"name"`
	Density     float64     `json:"density"` // g/cm3
	State       State       `json:"state"`
	Temperature float64     `json:"temperature,omitempty"` // K, 0 = unspecified
	Pressure    float64     `json:"pressure,omitempty"`    // Pa, 0 = unspecified
	Components  []Component `json:"components,omitempty"`

	properties
}
