package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"triplog/internal/forms"
)

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	var form forms.AddComment
	if err := readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form.TripID = chi.URLParam(r, "tripID")

	sh := getShellFromContext(r)
	comment, err := form.Submit(
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

	sh.CommentAdded(r.Context())

	app.jsonResponse(w, http.StatusCreated, comment)
}
