package main

import (
	"net/http"

	"github.com/adilbekov/homecook-api/internal/domain"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=500"`
}

// createContactSubmissionHandler godoc
//
//	@Summary		Submit contact form
//	@Description	Store a contact form submission
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ContactRequest	true	"Submission"
//	@Success		201		{object}	domain.ContactSubmission
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/contact [post]
func (app *application) createContactSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	submission := &domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := app.contactRepo.Create(r.Context(), submission); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, submission); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getContactSubmissionsHandler godoc
//
//	@Summary		List contact submissions
//	@Description	List all contact form submissions, newest first
//	@Tags			contact
//	@Produce		json
//	@Success		200	{array}	domain.ContactSubmission
//	@Failure		500	{object}	map[string]string
//	@Router			/contact [get]
func (app *application) getContactSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	submissions, err := app.contactRepo.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, submissions); err != nil {
		app.internalServerError(w, r, err)
	}
}
