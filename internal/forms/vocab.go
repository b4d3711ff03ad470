package forms

// Fixed vocabularies offered by the submission form. Cuisine and
// restaurant type are stored as free text; the lists only seed the
// dropdowns. Cost level and dietary restrictions are validated against
// their vocabularies.

const DefaultCostLevel = "moderate"

// CostLevel is one price band with its form label.
type CostLevel struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var CostLevels = []CostLevel{
	{"cheap", "Cheap (฿)", "Under ฿500 per person"},
	{"moderate", "Moderate (฿฿)", "฿500-1,000 per person"},
	{"expensive", "Expensive (฿฿฿)", "฿1,000-2,000 per person"},
	{"very-expensive", "Very Expensive (฿฿฿฿)", "฿2,000-3,500 per person"},
	{"extremely-expensive", "Extremely Expensive (฿฿฿฿฿)", "Over ฿3,500 per person"},
}

var DietaryRestrictions = []string{
	"Vegetarian", "Vegan", "Gluten-Free", "Dairy-Free", "Nut-Free",
	"Soy-Free", "Halal", "Kosher", "Keto-Friendly", "Low-Carb",
	"Sugar-Free", "Paleo", "Raw Food", "Organic",
}

var CuisineTypes = []string{
	"Italian", "Japanese", "French", "Indian", "Mexican", "Chinese",
	"Thai", "Korean", "Greek", "Spanish", "Turkish", "Lebanese",
	"American", "British", "German", "Vietnamese", "Ethiopian",
	"Moroccan", "Brazilian", "Peruvian", "Mediterranean", "Fusion",
}

var RestaurantTypes = []string{
	"Fine Dining", "Casual Dining", "Fast Food", "Cafe", "Bar",
	"Pub", "Steakhouse", "Seafood", "Pizzeria", "Bakery",
	"Food Truck", "Buffet", "Bistro", "Diner", "Tapas Bar",
	"Wine Bar", "Brewery", "Street Food", "Dessert Shop",
}

func validCostLevel(v string) bool {
	for _, level := range CostLevels {
		if level.Value == v {
			return true
		}
	}
	return false
}

func validDietaryTag(v string) bool {
	for _, tag := range DietaryRestrictions {
		if tag == v {
			return true
		}
	}
	return false
}
