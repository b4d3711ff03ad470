package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"triplog/internal/forms"
	"triplog/internal/view"
)

// listRestaurantsHandler renders the list view: restaurants filtered by
// the search term, each with its aggregate rating.
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	sh := getShellFromContext(r)
	sh.SetSearchTerm(r.URL.Query().Get("search"))

	visible := sh.Visible()
	cards := make([]view.RestaurantCard, 0, len(visible))
	for _, restaurant := range visible {
		cards = append(cards, view.NewRestaurantCard(
			restaurant,
			sh.AverageRating(restaurant.ID),
			sh.ReviewCount(restaurant.ID),
		))
	}

	app.jsonResponse(w, http.StatusOK, cards)
}

// getRestaurantHandler selects a restaurant and renders the detail view;
// the shell chains the review and comment fetches.
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	sh := getShellFromContext(r)

	restaurantID := chi.URLParam(r, "restaurantID")
	if !sh.SelectByID(r.Context(), restaurantID) {
		app.notFoundResponse(w, r, errors.New("unknown restaurant"))
		return
	}

	selected := sh.Selected()
	detail := view.NewRestaurantDetail(
		*selected,
		sh.Reviews(),
		sh.Comments(),
		sh.CurrentUser() != nil,
	)

	app.jsonResponse(w, http.StatusOK, detail)
}

func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var form forms.AddRestaurant
	if err := readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sh := getShellFromContext(r)
	restaurant, trip, err := form.Submit(
		r.Context(),
		app.store,
		getIdentityFromContext(r),
		getSessionFromContext(r),
	)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	sh.RestaurantAdded(r.Context())

	app.jsonResponse(w, http.StatusCreated, map[string]any{
		"restaurant": restaurant,
		"trip":       trip,
	})
}

func (app *application) clearSelectionHandler(w http.ResponseWriter, r *http.Request) {
	sh := getShellFromContext(r)
	sh.ClearSelection()

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "selection cleared"})
}

type openImagePayload struct {
	Image string `json:"image" validate:"required"`
}

func (app *application) openImageHandler(w http.ResponseWriter, r *http.Request) {
	var payload openImagePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if payload.Image == "" {
		app.badRequestResponse(w, r, errors.New("image is required"))
		return
	}

	sh := getShellFromContext(r)
	if sh.Selected() == nil {
		app.badRequestResponse(w, r, errors.New("no restaurant selected"))
		return
	}
	sh.OpenImage(payload.Image)

	app.jsonResponse(w, http.StatusOK, map[string]string{"selected_image": sh.SelectedImage()})
}

func (app *application) closeImageHandler(w http.ResponseWriter, r *http.Request) {
	sh := getShellFromContext(r)
	sh.CloseImage()

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "image closed"})
}
