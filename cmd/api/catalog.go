package main

import (
	"net/http"

	"github.com/adilbekov/homecook-api/internal/catalog"
)

// getCatalogHandler godoc
//
//	@Summary		Get catalog feed
//	@Description	Return subscription plans and instant meals
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	catalog.Feed
//	@Router			/catalog [get]
func (app *application) getCatalogHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, app.feed); err != nil {
		app.internalServerError(w, r, err)
	}
}

type MealsResponse struct {
	Meals []catalog.Item `json:"meals"`
	Count int            `json:"count"`
}

// getMealsHandler godoc
//
//	@Summary		List meals
//	@Description	List instant meals filtered by text, price range and sort order
//	@Tags			catalog
//	@Produce		json
//	@Param			q		query		string	false	"Search text"
//	@Param			price	query		string	false	"Price range: min-max or min+"
//	@Param			sort	query		string	false	"Sort key: price-low, price-high or name"
//	@Success		200		{object}	MealsResponse
//	@Router			/meals [get]
func (app *application) getMealsHandler(w http.ResponseWriter, r *http.Request) {
	manager := catalog.NewManager(app.feed.InstantMeals)
	manager.Search(r.URL.Query().Get("q"))
	manager.FilterByPrice(r.URL.Query().Get("price"))
	manager.Sort(r.URL.Query().Get("sort"))

	meals := manager.FilteredMeals()

	response := MealsResponse{
		Meals: meals,
		Count: len(meals),
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// searchHandler godoc
//
//	@Summary		Search catalog
//	@Description	Search plans and meals by name or description; queries under two characters match nothing
//	@Tags			catalog
//	@Produce		json
//	@Param			q	query	string	true	"Search text"
//	@Success		200	{array}	catalog.IndexEntry
//	@Router			/search [get]
func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches := []catalog.IndexEntry{}
	if len(query) >= 2 {
		matches = app.feed.Match(query)
	}

	if err := app.jsonResponse(w, http.StatusOK, matches); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CheckoutConfigResponse struct {
	TaxRate float64 `json:"taxRate"`
}

// getCheckoutConfigHandler godoc
//
//	@Summary		Get checkout config
//	@Description	Return the tax rate applied at checkout
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CheckoutConfigResponse
//	@Router			/config/checkout [get]
func (app *application) getCheckoutConfigHandler(w http.ResponseWriter, r *http.Request) {
	response := CheckoutConfigResponse{TaxRate: app.orderService.TaxRate()}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
