package main

import (
	"net/http"

	"triplog/internal/forms"
)

// getVocabulariesHandler serves the fixed option lists the submission form
// builds its dropdowns from.
func (app *application) getVocabulariesHandler(w http.ResponseWriter, r *http.Request) {
	app.jsonResponse(w, http.StatusOK, map[string]any{
		"cost_levels":          forms.CostLevels,
		"cuisine_types":        forms.CuisineTypes,
		"restaurant_types":     forms.RestaurantTypes,
		"dietary_restrictions": forms.DietaryRestrictions,
	})
}
