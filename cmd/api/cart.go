package main

import (
	"errors"
	"net/http"

	"github.com/adilbekov/homecook-api/internal/cart"
	"github.com/adilbekov/homecook-api/internal/notify"
	"github.com/adilbekov/homecook-api/internal/service"
	"github.com/go-chi/chi"
)

const cartIDHeader = "X-Cart-ID"

var errMissingCartID = errors.New("X-Cart-ID header is required")

type CartResponse struct {
	Items         []cart.Line      `json:"items"`
	Subtotal      float64          `json:"subtotal"`
	Tax           float64          `json:"tax"`
	Total         float64          `json:"total"`
	TaxRate       float64          `json:"taxRate"`
	Notifications []notify.Message `json:"notifications,omitempty"`
}

// loadCart rebuilds the cart identified by the X-Cart-ID header, wiring a
// collector so cart notifications can ride back on the response.
func (app *application) loadCart(r *http.Request) (*cart.Cart, *notify.Collector, error) {
	cartID := r.Header.Get(cartIDHeader)
	if cartID == "" {
		return nil, nil, errMissingCartID
	}

	collector := notify.NewCollector()

	c, err := cart.Load(
		r.Context(),
		app.cartStore,
		cart.Key(cartID),
		cart.WithTaxRate(app.config.taxRate),
		cart.WithNotifier(collector),
	)
	if err != nil {
		return nil, nil, err
	}

	return c, collector, nil
}

func cartResponse(c *cart.Cart, collector *notify.Collector) CartResponse {
	return CartResponse{
		Items:         c.Lines(),
		Subtotal:      c.Subtotal(),
		Tax:           c.Tax(),
		Total:         c.Total(),
		TaxRate:       c.TaxRate(),
		Notifications: collector.Messages(),
	}
}

// getCartHandler godoc
//
//	@Summary		Get cart
//	@Description	Return the cart with computed totals
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-ID	header		string	true	"Cart ID"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	c, collector, err := app.loadCart(r)
	if err != nil {
		app.cartError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cartResponse(c, collector)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AddCartItemRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// addCartItemHandler godoc
//
//	@Summary		Add item to cart
//	@Description	Add one unit of an item; an existing line gains quantity
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-ID	header		string				true	"Cart ID"
//	@Param			request		body		AddCartItemRequest	true	"Item"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, collector, err := app.loadCart(r)
	if err != nil {
		app.cartError(w, r, err)
		return
	}

	if err := c.AddItem(r.Context(), req.Name, req.Price); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cartResponse(c, collector)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// incrementCartItemHandler godoc
//
//	@Summary		Increment item quantity
//	@Description	Raise the named line's quantity by one
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-ID	header		string	true	"Cart ID"
//	@Param			name		path		string	true	"Item name"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart/items/{name}/increment [post]
func (app *application) incrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	c, collector, err := app.loadCart(r)
	if err != nil {
		app.cartError(w, r, err)
		return
	}

	if err := c.Increment(r.Context(), chi.URLParam(r, "name")); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cartResponse(c, collector)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// decrementCartItemHandler godoc
//
//	@Summary		Decrement item quantity
//	@Description	Lower the named line's quantity by one, removing it at zero
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-ID	header		string	true	"Cart ID"
//	@Param			name		path		string	true	"Item name"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart/items/{name}/decrement [post]
func (app *application) decrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	c, collector, err := app.loadCart(r)
	if err != nil {
		app.cartError(w, r, err)
		return
	}

	if err := c.Decrement(r.Context(), chi.URLParam(r, "name")); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cartResponse(c, collector)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeCartItemHandler godoc
//
//	@Summary		Remove item from cart
//	@Description	Delete the named line regardless of quantity
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-ID	header		string	true	"Cart ID"
//	@Param			name		path		string	true	"Item name"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart/items/{name} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	c, collector, err := app.loadCart(r)
	if err != nil {
		app.cartError(w, r, err)
		return
	}

	if err := c.Remove(r.Context(), chi.URLParam(r, "name")); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cartResponse(c, collector)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// clearCartHandler godoc
//
//	@Summary		Clear cart
//	@Description	Remove every line from the cart
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-ID	header		string	true	"Cart ID"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	c, collector, err := app.loadCart(r)
	if err != nil {
		app.cartError(w, r, err)
		return
	}

	if err := c.Clear(r.Context()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, cartResponse(c, collector)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CheckoutRequest struct {
	DeliveryOption  string `json:"deliveryOption" validate:"omitempty,oneof=pickup delivery"`
	DeliveryAddress string `json:"deliveryAddress"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
}

type CheckoutResponse struct {
	Order         any              `json:"order"`
	Notifications []notify.Message `json:"notifications,omitempty"`
}

// checkoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Turn the cart into an order, compute totals and clear the cart
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-ID	header		string			true	"Cart ID"
//	@Param			request		body		CheckoutRequest	true	"Customer details"
//	@Success		201			{object}	CheckoutResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/cart/checkout [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	cartID := r.Header.Get(cartIDHeader)
	if cartID == "" {
		app.badRequestResponse(w, r, errMissingCartID)
		return
	}

	var req CheckoutRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	collector := notify.NewCollector()

	order, err := app.orderService.Checkout(r.Context(), cartID, service.CheckoutRequest{
		DeliveryOption:  req.DeliveryOption,
		DeliveryAddress: req.DeliveryAddress,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
	}, collector)
	if err != nil {
		if service.IsValidationError(err) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := CheckoutResponse{
		Order:         order,
		Notifications: collector.Messages(),
	}

	if err := app.jsonResponse(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) cartError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errMissingCartID) {
		app.badRequestResponse(w, r, err)
		return
	}
	app.internalServerError(w, r, err)
}
