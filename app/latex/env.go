package latex

// SymbolKind groups related environment symbols.
type SymbolKind int

const (
	SymbolUnit SymbolKind = iota
	SymbolElement
	SymbolConstant
	SymbolFunction
	SymbolVariable
)

// Symbol describes one identifier supplied by the caller's environment.
// The scanner reads the key set to drive greedy identifier matching; the
// descriptors themselves are opaque to the parser and flow through to
// downstream plugins.
type Symbol struct {
	Name string
	Kind SymbolKind
}

// Env maps identifiers to symbol descriptors. Mutating an Env during an
// active parse is prohibited.
type Env map[string]Symbol

// UnitEnv returns an environment pre-loaded with the common measurement
// units, so that multi-character names like "kg" and "mol" lex as single
// identifiers.
func UnitEnv() Env {
	env := make(Env, len(unitNames))
	for _, name := range unitNames {
		env[name] = Symbol{Name: name, Kind: SymbolUnit}
	}
	return env
}

// ChemistryEnv returns an environment pre-loaded with the periodic table.
// Its presence switches the parser into chemistry mode.
func ChemistryEnv() Env {
	env := make(Env, len(elementSymbols))
	for _, name := range elementSymbols {
		env[name] = Symbol{Name: name, Kind: SymbolElement}
	}
	return env
}

var unitNames = []string{
	"mm", "cm", "m", "km", "in", "ft", "yd", "mi",
	"mg", "g", "kg", "oz", "lb",
	"ms", "s", "min", "hr",
	"mL", "L",
	"mol", "mmol",
	"\\mu g", "\\mu L", "\\mu m",
	"Pa", "kPa", "atm",
	"J", "kJ", "cal", "kcal",
	"N", "kN", "W", "kW",
}

// elementSymbols lists the periodic table in atomic-number order.
var elementSymbols = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// elementLookup indexes the periodic table for chemistry-mode detection.
var elementLookup map[string]bool

func init() {
	elementLookup = make(map[string]bool, len(elementSymbols))
	for _, s := range elementSymbols {
		elementLookup[s] = true
	}
}

// isChemistry reports whether the environment contains at least two
// periodic-table symbols, the signal that the source is chemical notation.
func (e Env) isChemistry() bool {
	count := 0
	for k := range e {
		if elementLookup[k] {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// hasIdentPrefix reports whether any environment key starts with prefix.
// The scanner uses it to extend identifier runs greedily.
func (e Env) hasIdentPrefix(prefix string) bool {
	for k := range e {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// hasIdent reports whether name is a known identifier.
func (e Env) hasIdent(name string) bool {
	_, ok := e[name]
	return ok
}
