package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/repo"
	"github.com/adilbekov/homecook-api/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRequest struct {
	MealID    string `json:"mealId"`
	MealName  string `json:"mealName" validate:"required"`
	UserName  string `json:"userName" validate:"required"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
}

// createReviewHandler godoc
//
//	@Summary		Create review
//	@Description	Post a review as the logged-in user
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			request	body		ReviewRequest	true	"Review"
//	@Success		201		{object}	domain.Review
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	// ownership is tied to the session, never to a client-supplied id
	userID, err := app.sessionUser(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	var req ReviewRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review := &domain.Review{
		MealID:    req.MealID,
		MealName:  req.MealName,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := app.reviewService.Create(r.Context(), review); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getReviewsHandler godoc
//
//	@Summary		List reviews
//	@Description	List reviews, optionally filtered by meal and rating
//	@Tags			reviews
//	@Produce		json
//	@Param			mealId	query		string	false	"Meal ID"
//	@Param			rating	query		int		false	"Exact star rating"
//	@Param			sortBy	query		string	false	"Sort order: rating or oldest"
//	@Success		200		{array}		domain.Review
//	@Failure		400		{object}	map[string]string
//	@Router			/reviews [get]
func (app *application) getReviewsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.ReviewFilter{
		MealID: r.URL.Query().Get("mealId"),
		SortBy: r.URL.Query().Get("sortBy"),
	}

	if v := r.URL.Query().Get("rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil || rating < 1 || rating > 5 {
			app.badRequestResponse(w, r, errors.New("rating must be between 1 and 5"))
			return
		}
		filter.Rating = rating
	}

	reviews := app.reviewService.List(r.Context(), filter)

	if err := app.jsonResponse(w, http.StatusOK, reviews); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getReviewHandler godoc
//
//	@Summary		Get review by ID
//	@Description	Get review details by review ID
//	@Tags			reviews
//	@Produce		json
//	@Param			review_id	path		string	true	"Review ID"
//	@Success		200			{object}	domain.Review
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/reviews/{review_id} [get]
func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "review_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	review, err := app.reviewService.Get(r.Context(), reviewID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateReviewHandler godoc
//
//	@Summary		Update review
//	@Description	Edit a review owned by the logged-in user
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			review_id	path		string			true	"Review ID"
//	@Param			request		body		ReviewRequest	true	"Review"
//	@Success		200			{object}	domain.Review
//	@Failure		400			{object}	map[string]string
//	@Failure		401			{object}	map[string]string
//	@Failure		403			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/reviews/{review_id} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := app.sessionUser(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "review_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req ReviewRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	changes := service.ReviewChanges{
		MealID:    req.MealID,
		MealName:  req.MealName,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	review, err := app.reviewService.Update(r.Context(), reviewID, userID, changes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			app.forbiddenResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete review
//	@Description	Delete a review owned by the logged-in user
//	@Tags			reviews
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			review_id	path		string	true	"Review ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		401			{object}	map[string]string
//	@Failure		403			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/reviews/{review_id} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := app.sessionUser(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "review_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.reviewService.Delete(r.Context(), reviewID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			app.forbiddenResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonMessage(w, http.StatusOK, "Review deleted successfully"); err != nil {
		app.internalServerError(w, r, err)
	}
}
