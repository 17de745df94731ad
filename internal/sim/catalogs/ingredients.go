package catalogs

// Process names a transformation edge of the ingredient graph.
type Process uint8

const (
	ProcessChop Process = iota + 1
	ProcessCook
)

func (p Process) String() string {
	switch p {
	case ProcessChop:
		return "chop"
	case ProcessCook:
		return "cook"
	default:
		return "none"
	}
}

func (c IngredientCatalog) Has(id string) bool {
	_, ok := c.Defs[id]
	return ok
}

// Apply follows the p edge out of id. A missing edge (or unknown id) returns id unchanged.
func (c IngredientCatalog) Apply(id string, p Process) string {
	d, ok := c.Defs[id]
	if !ok {
		return id
	}
	var to string
	switch p {
	case ProcessChop:
		to = d.Chop
	case ProcessCook:
		to = d.Cook
	}
	if to == "" {
		return id
	}
	return to
}

// Can reports whether id has a p edge.
func (c IngredientCatalog) Can(id string, p Process) bool {
	return c.Apply(id, p) != id
}

func (c IngredientCatalog) Chop(id string) string { return c.Apply(id, ProcessChop) }
func (c IngredientCatalog) Cook(id string) string { return c.Apply(id, ProcessCook) }
func (c IngredientCatalog) CanChop(id string) bool { return c.Can(id, ProcessChop) }
func (c IngredientCatalog) CanCook(id string) bool { return c.Can(id, ProcessCook) }

// Terminal reports whether id has no out-edges.
func (c IngredientCatalog) Terminal(id string) bool {
	return !c.CanChop(id) && !c.CanCook(id)
}

func (c IngredientCatalog) Color(id string) string {
	return c.Defs[id].Color
}

// Glyph is the single character a text front-end draws for id. Defaults to the first letter.
func (c IngredientCatalog) Glyph(id string) rune {
	d := c.Defs[id]
	if d.Glyph != "" {
		return []rune(d.Glyph)[0]
	}
	if id != "" {
		return []rune(id)[0]
	}
	return '?'
}

// Ingredient returns the ingredient dispensed by the crate role, e.g. "FISH_CRATE".
func (c CrateCatalog) Ingredient(role string) (string, bool) {
	id, ok := c.ByRole[role]
	return id, ok
}
