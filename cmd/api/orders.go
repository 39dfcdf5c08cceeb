package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/service"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID = errors.New("invalid ID format")
)

type OrderItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
}

type OrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Subtotal        float64            `json:"subtotal" validate:"gte=0"`
	Tax             float64            `json:"tax" validate:"gte=0"`
	Total           float64            `json:"total" validate:"gte=0"`
	DeliveryOption  string             `json:"deliveryOption" validate:"omitempty,oneof=pickup delivery"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required_if=DeliveryOption delivery"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string             `json:"customerPhone"`
}

func (req *OrderRequest) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	deliveryOption := req.DeliveryOption
	if deliveryOption == "" {
		deliveryOption = domain.DeliveryOptionPickup
	}

	return &domain.Order{
		Items:           items,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		Total:           req.Total,
		DeliveryOption:  deliveryOption,
		DeliveryAddress: req.DeliveryAddress,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Status:          domain.OrderStatusPending,
	}
}

// createOrderHandler godoc
//
//	@Summary		Create order
//	@Description	Create an order from an explicit item list
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OrderRequest	true	"Order"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order := req.toDomain()

	if err := app.orderService.CreateOrder(r.Context(), order); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	List all orders, newest first
//	@Tags			orders
//	@Produce		json
//	@Success		200	{array}	domain.Order
//	@Failure		500	{object}	map[string]string
//	@Router			/orders [get]
func (app *application) getOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orderRepo.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, orders); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get order by ID
//	@Description	Get order details by order ID
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	order, err := app.orderRepo.GetByID(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOrderHandler godoc
//
//	@Summary		Replace order
//	@Description	Replace the editable fields of an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string			true	"Order ID"
//	@Param			request		body		OrderRequest	true	"Order"
//	@Success		200			{object}	domain.Order
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/orders/{order_id} [put]
func (app *application) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req OrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.orderRepo.GetByID(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	order := req.toDomain()
	order.ID = orderID
	order.Status = existing.Status
	order.CreatedAt = existing.CreatedAt

	if err := app.orderRepo.Update(r.Context(), order); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteOrderHandler godoc
//
//	@Summary		Delete order
//	@Description	Delete an order by ID
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/orders/{order_id} [delete]
func (app *application) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "order_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.orderRepo.Delete(r.Context(), orderID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonMessage(w, http.StatusOK, "Order deleted successfully"); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready delivered cancelled"`
	Reason string `json:"reason"`
	UserID string `json:"user_id,omitempty"`
}

// updateOrderStatusHandler godoc
//
//	@Summary		Update order status
//	@Description	Queue a status transition for an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order_id	path		string						true	"Order ID"
//	@Param			request		body		UpdateOrderStatusRequest	true	"Status update request"
//	@Success		202			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/orders/{order_id}/status [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, errors.New("order_id is required"))
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// use default user_id if not provided
	userID := req.UserID
	if userID == "" {
		userID = "admin_123"
	}

	if err := app.orderService.RequestStatusChange(r.Context(), orderID, req.Status, req.Reason, userID); err != nil {
		if service.IsValidationError(err) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonMessage(w, http.StatusAccepted, "Status update queued"); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderAuditHandler godoc
//
//	@Summary		Get order audit trail
//	@Description	List status transitions recorded for an order
//	@Tags			orders
//	@Produce		json
//	@Param			order_id	path		string	true	"Order ID"
//	@Param			limit		query		int		false	"Max records"
//	@Success		200			{array}		domain.OrderStatusAudit
//	@Failure		400			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/orders/{order_id}/audit [get]
func (app *application) getOrderAuditHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, errors.New("order_id is required"))
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	audits, err := app.orderService.GetOrderAudit(r.Context(), orderID, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}
