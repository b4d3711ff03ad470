package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"triplog/internal/forms"
)

func (app *application) createTripHandler(w http.ResponseWriter, r *http.Request) {
	var form forms.AddReview
	if err := readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form.RestaurantID = chi.URLParam(r, "restaurantID")

	sh := getShellFromContext(r)
	trip, err := form.Submit(
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

	sh.ReviewAdded(r.Context())

	app.jsonResponse(w, http.StatusCreated, trip)
}
