package main

import (
	"errors"
	"net/http"

	"github.com/adilbekov/homecook-api/internal/service"
	"github.com/adilbekov/homecook-api/internal/validate"
)

type SignupRequest struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=6"`
	Phone              string   `json:"phone"`
	Location           string   `json:"location"`
	DietaryPreferences []string `json:"dietaryPreferences"`
}

// signupHandler godoc
//
//	@Summary		Sign up
//	@Description	Register a new user account
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"Signup form"
//	@Success		201		{object}	domain.PublicUser
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/users/signup [post]
func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !validate.Phone(req.Phone) {
		app.badRequestResponse(w, r, errors.New("phone must be 10 digits"))
		return
	}

	user, err := app.userService.Signup(r.Context(), service.SignupRequest{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Phone:              req.Phone,
		Location:           req.Location,
		DietaryPreferences: req.DietaryPreferences,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, user.Public()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// loginHandler godoc
//
//	@Summary		Log in
//	@Description	Verify credentials and issue a session token
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/users/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, token, err := app.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			app.unauthorizedResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := LoginResponse{
		Token: token,
		User:  user.Public(),
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary		Log out
//	@Description	Revoke the current session token
//	@Tags			users
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	map[string]interface{}
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/users/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		app.unauthorizedResponse(w, r, err)
		return
	}

	if err := app.userService.Logout(r.Context(), token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonMessage(w, http.StatusOK, "Logged out"); err != nil {
		app.internalServerError(w, r, err)
	}
}
