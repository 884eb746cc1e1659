package geom

// Built-in element subset. Molar masses are standard atomic weights.
var (
	Hydrogen  = Element{Symbol: "H", Name: "hydrogen", Z: 1, A: 1.008}
	Carbon    = Element{Symbol: "C", Name: "carbon", Z: 6, A: 12.011}
	Nitrogen  = Element{Symbol: "N", Name: "nitrogen", Z: 7, A: 14.007}
	Oxygen    = Element{Symbol: "O", Name: "oxygen", Z: 8, A: 15.999}
	Silicon   = Element{Symbol: "Si", Name: "silicon", Z: 14, A: 28.085}
	Argon     = Element{Symbol: "Ar", Name: "argon", Z: 18, A: 39.948}
	Chromium  = Element{Symbol: "Cr", Name: "chromium", Z: 24, A: 51.996}
	Manganese = Element{Symbol: "Mn", Name: "manganese", Z: 25, A: 54.938}
	Iron      = Element{Symbol: "Fe", Name: "iron", Z: 26, A: 55.845}
	Nickel    = Element{Symbol: "Ni", Name: "nickel", Z: 28, A: 58.693}
	Copper    = Element{Symbol: "Cu", Name: "copper", Z: 29, A: 63.546}
	Germanium = Element{Symbol: "Ge", Name: "germanium", Z: 32, A: 72.630}
	Lead      = Element{Symbol: "Pb", Name: "lead", Z: 82, A: 207.2}
)

var elementsBySymbol = map[string]Element{
	"H": Hydrogen, "C": Carbon, "N": Nitrogen, "O": Oxygen,
	"Si": Silicon, "Ar": Argon, "Cr": Chromium, "Mn": Manganese,
	"Fe": Iron, "Ni": Nickel, "Cu": Copper, "Ge": Germanium, "Pb": Lead,
}

// ElementBySymbol returns the built-in element with the given symbol.
func ElementBySymbol(symbol string) (Element, bool) {
	e, ok := elementsBySymbol[symbol]
	return e, ok
}
