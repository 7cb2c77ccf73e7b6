package crafting

// Item identifiers from the Data Dragon catalog used by the default
// recipe table. Base components on the left, crafted results on the right.
const (
	BFSword    = "1038"
	LargeRod   = "1058"
	GiantsBelt = "1011"

	DoransBlade   = "228003"
	Gunblade      = "223146"
	SteraksGage   = "223053"
	RabadonsCap   = "223089"
	RylaisScepter = "223116"
	WarmogsArmor  = "3083"
)

// Recipe is a fixed rule mapping two input item ids to one output id.
// Inputs are unordered; a recipe may combine an item with itself.
type Recipe struct {
	First  string
	Second string
	Result string
}

type pairKey struct {
	a, b string
}

// normalize makes the key order-independent
func normalize(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// RecipeBook is an immutable, process-wide recipe table. Lookup is
// symmetric in the two inputs; the first registered recipe for a pair wins.
type RecipeBook struct {
	recipes map[pairKey]string
}

// NewRecipeBook builds a recipe book from a fixed set of recipes
func NewRecipeBook(recipes ...Recipe) *RecipeBook {
	book := &RecipeBook{recipes: make(map[pairKey]string, len(recipes))}
	for _, r := range recipes {
		key := normalize(r.First, r.Second)
		if _, exists := book.recipes[key]; exists {
			continue
		}
		book.recipes[key] = r.Result
	}
	return book
}

// Result looks up the combination result for two item ids, in either order
func (b *RecipeBook) Result(itemA, itemB string) (string, bool) {
	result, ok := b.recipes[normalize(itemA, itemB)]
	return result, ok
}

// Size returns the number of registered recipes
func (b *RecipeBook) Size() int {
	return len(b.recipes)
}

// DefaultRecipeBook returns the standard combination table
func DefaultRecipeBook() *RecipeBook {
	return NewRecipeBook(
		Recipe{First: BFSword, Second: BFSword, Result: DoransBlade},
		Recipe{First: BFSword, Second: LargeRod, Result: Gunblade},
		Recipe{First: BFSword, Second: GiantsBelt, Result: SteraksGage},
		Recipe{First: LargeRod, Second: LargeRod, Result: RabadonsCap},
		Recipe{First: LargeRod, Second: GiantsBelt, Result: RylaisScepter},
		Recipe{First: GiantsBelt, Second: GiantsBelt, Result: WarmogsArmor},
	)
}
