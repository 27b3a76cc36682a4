package combo

import "comboplanner/internal/models"

// Template is an ordered list of categories a combo is built from.
type Template struct {
	Name  string
	Steps []models.MenuCategory
}

var (
	entreeTemplates = []Template{
		{Name: "Brunch Favorite", Steps: []models.MenuCategory{models.CategoryEntrees, models.CategorySides, models.CategoryDrink}},
		{Name: "Easy Brunch", Steps: []models.MenuCategory{models.CategoryEntrees, models.CategoryDrink}},
	}

	tacoTemplates = []Template{
		{Name: "First-Timer", Steps: []models.MenuCategory{models.CategoryAntojitos, models.CategoryTacos, models.CategorySides, models.CategoryDrink}},
		{Name: "Light & Fresh", Steps: []models.MenuCategory{models.CategorySoupSalad, models.CategoryTacos, models.CategorySides, models.CategoryDrink}},
		{Name: "Share & Sizzle", Steps: []models.MenuCategory{models.CategoryAntojitos, models.CategoryFajitas, models.CategoryDrink}},
		{Name: "Cheesy Classic", Steps: []models.MenuCategory{models.CategoryQuesadillas, models.CategoryTacos, models.CategoryDrink}},
		{Name: "Comfort Plate", Steps: []models.MenuCategory{models.CategoryEnchiladas, models.CategorySides, models.CategoryDrink}},
	}

	dessertTemplate = Template{
		Name:  "Sweet Finish",
		Steps: []models.MenuCategory{models.CategoryAntojitos, models.CategoryTacos, models.CategoryDesserts, models.CategoryDrink},
	}
)

// Templates returns the templates searched for a scoped menu. A menu with
// entrees gets the entree set; otherwise the taco set, plus a dessert
// template when desserts exist.
func Templates(scoped *models.ScopedMenu) []Template {
	if scoped.Has(models.CategoryEntrees) {
		return append([]Template(nil), entreeTemplates...)
	}
	templates := append([]Template(nil), tacoTemplates...)
	if scoped.Has(models.CategoryDesserts) {
		templates = append(templates, dessertTemplate)
	}
	return templates
}
