package main

import (
	"net/http"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HomeCookApplicationRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Location      string `json:"location" validate:"required"`
	LicenceStatus string `json:"licenceStatus" validate:"required,oneof=yes no assistance"`
	Notes         string `json:"notes"`
}

// createHomeCookApplicationHandler godoc
//
//	@Summary		Apply as a home cook
//	@Description	Submit an application to join the marketplace as a cook
//	@Tags			homecooks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		HomeCookApplicationRequest	true	"Application"
//	@Success		201		{object}	domain.HomeCookApplication
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/homecooks [post]
func (app *application) createHomeCookApplicationHandler(w http.ResponseWriter, r *http.Request) {
	var req HomeCookApplicationRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	application := &domain.HomeCookApplication{
		Name:          req.Name,
		Email:         req.Email,
		Location:      req.Location,
		LicenceStatus: domain.LicenceStatus(req.LicenceStatus),
		Status:        domain.ApplicationStatusPending,
		Notes:         req.Notes,
	}

	if err := app.applicationRepo.Create(r.Context(), application); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, application); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getHomeCookApplicationsHandler godoc
//
//	@Summary		List home cook applications
//	@Description	List all applications, newest first
//	@Tags			homecooks
//	@Produce		json
//	@Success		200	{array}	domain.HomeCookApplication
//	@Failure		500	{object}	map[string]string
//	@Router			/homecooks [get]
func (app *application) getHomeCookApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	applications, err := app.applicationRepo.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, applications); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getHomeCookApplicationHandler godoc
//
//	@Summary		Get application by ID
//	@Description	Get application details by application ID
//	@Tags			homecooks
//	@Produce		json
//	@Param			application_id	path		string	true	"Application ID"
//	@Success		200				{object}	domain.HomeCookApplication
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/homecooks/{application_id} [get]
func (app *application) getHomeCookApplicationHandler(w http.ResponseWriter, r *http.Request) {
	applicationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "application_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	application, err := app.applicationRepo.GetByID(r.Context(), applicationID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, application); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateHomeCookApplicationRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Location      string `json:"location" validate:"required"`
	LicenceStatus string `json:"licenceStatus" validate:"required,oneof=yes no assistance"`
	Status        string `json:"status" validate:"required,oneof=pending approved rejected"`
	Notes         string `json:"notes"`
}

// updateHomeCookApplicationHandler godoc
//
//	@Summary		Update application
//	@Description	Replace the fields of an application, including its review status
//	@Tags			homecooks
//	@Accept			json
//	@Produce		json
//	@Param			application_id	path		string								true	"Application ID"
//	@Param			request			body		UpdateHomeCookApplicationRequest	true	"Application"
//	@Success		200				{object}	domain.HomeCookApplication
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Router			/homecooks/{application_id} [put]
func (app *application) updateHomeCookApplicationHandler(w http.ResponseWriter, r *http.Request) {
	applicationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "application_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateHomeCookApplicationRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	application, err := app.applicationRepo.GetByID(r.Context(), applicationID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	application.Name = req.Name
	application.Email = req.Email
	application.Location = req.Location
	application.LicenceStatus = domain.LicenceStatus(req.LicenceStatus)
	application.Status = domain.ApplicationStatus(req.Status)
	application.Notes = req.Notes

	if err := app.applicationRepo.Update(r.Context(), application); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, application); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteHomeCookApplicationHandler godoc
//
//	@Summary		Delete application
//	@Description	Delete an application by ID
//	@Tags			homecooks
//	@Produce		json
//	@Param			application_id	path		string	true	"Application ID"
//	@Success		200				{object}	map[string]interface{}
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/homecooks/{application_id} [delete]
func (app *application) deleteHomeCookApplicationHandler(w http.ResponseWriter, r *http.Request) {
	applicationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "application_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.applicationRepo.Delete(r.Context(), applicationID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonMessage(w, http.StatusOK, "Application deleted successfully"); err != nil {
		app.internalServerError(w, r, err)
	}
}
