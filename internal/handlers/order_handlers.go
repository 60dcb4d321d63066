package handlers

import (
	"net/http"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/services"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type shippingRequest struct {
	Name         string  `json:"name"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
}

func (r shippingRequest) toModel() models.ShippingInfo {
	return models.ShippingInfo{
		Name:         r.Name,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		Phone:        r.Phone,
		Email:        r.Email,
	}
}

type checkoutRequest struct {
	Shipping shippingRequest `json:"shipping"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	order, err := h.orderService.Checkout(c.Request().Context(), customerID, req.Shipping.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

type guestCheckoutRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Shipping  shippingRequest `json:"shipping"`
}

func (h *OrderHandler) GuestCheckout(c echo.Context) error {
	var req guestCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.orderService.GuestCheckout(c.Request().Context(), productID, req.Quantity, req.Shipping.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), customerID, orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
