package menus

// Allergen alt codes published by the dining API.
const (
	AllergenGluten     = "gluten"
	AllergenDairy      = "dairy"
	AllergenEgg        = "egg"
	AllergenSoy        = "soy"
	AllergenFish       = "fish"
	AllergenPeanut     = "hasPeanut"
	AllergenTreeNut    = "tree nut"
	AllergenShellfish  = "hasShellfish"
	AllergenVegetarian = "vegetarian"
	AllergenGlutenFree = "gluten-free"
)

// Allergen is an icon reference plus the semantic code in Alt.
type Allergen struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Symbol returns the short badge label for the allergen.
func (a Allergen) Symbol() string {
	switch a.Alt {
	case AllergenGluten:
		return "G"
	case AllergenDairy:
		return "D"
	case AllergenEgg:
		return "E"
	case AllergenSoy:
		return "S"
	case AllergenFish:
		return "F"
	case AllergenPeanut:
		return "P"
	case AllergenTreeNut:
		return "N"
	case AllergenShellfish:
		return "SF"
	case AllergenVegetarian:
		return "V"
	case AllergenGlutenFree:
		return "GF"
	default:
		return "?"
	}
}

// DisplayName returns a readable allergen name, falling back to the raw code.
func (a Allergen) DisplayName() string {
	switch a.Alt {
	case AllergenPeanut:
		return "peanuts"
	case AllergenTreeNut:
		return "tree nuts"
	case AllergenShellfish:
		return "shellfish"
	default:
		return a.Alt
	}
}

// IsDietary reports whether the code marks a dietary label rather than an allergen.
func (a Allergen) IsDietary() bool {
	return a.Alt == AllergenVegetarian || a.Alt == AllergenGlutenFree
}
