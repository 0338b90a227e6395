package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Deepender31/artwork-backend/internal/api/metrics"
	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry an order placement safely.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places a pending order for an artwork at the given price snapshot.
//
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Client idempotency key"
// @Param        body             body      createOrderRequest  true   "Order"
// @Success      201              {object}  domain.Order
// @Success      200              {object}  domain.Order  "Replay of an earlier request with the same key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /orders/create [post]
func (h *OrderHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return domain.Validation("Idempotency-Key", "idempotency key must be at most %d characters", maxIdempotencyKeyLen)
	}

	res, err := h.orders.Create(c.Request().Context(), caller, ports.CreateOrderInput{
		ArtworkID:      req.ArtworkID,
		Price:          req.Price,
		IdempotencyKey: key,
	})
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		metrics.OrdersTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, res.Order)
	}
	metrics.OrdersTotal.WithLabelValues("created").Inc()
	if res.PriceMismatch {
		metrics.OrderPriceMismatchTotal.Inc()
	}
	return c.JSON(http.StatusCreated, res.Order)
}

// UpdateStatus completes or cancels a pending order.
//
// @Summary      Transition order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      orderStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.TransitionStatus(c.Request().Context(), caller, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// ListByBuyer returns the orders placed by a user.
//
// @Summary      List orders of a buyer
// @Tags         orders
// @Produce      json
// @Param        userId  path      string  true  "Buyer ID"
// @Success      200     {array}   domain.OrderView
// @Router       /orders/user/{userId} [get]
func (h *OrderHandler) ListByBuyer(c echo.Context) error {
	views, err := h.orders.ListByBuyer(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListByArtist returns the orders placed on an artist's artworks.
//
// @Summary      List orders of an artist
// @Tags         orders
// @Produce      json
// @Param        artistId  path      string  true  "Artist ID"
// @Success      200       {array}   domain.OrderView
// @Router       /orders/artist/{artistId} [get]
func (h *OrderHandler) ListByArtist(c echo.Context) error {
	views, err := h.orders.ListByArtist(c.Request().Context(), c.Param("artistId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}
