package handlers

import (
	"net/http"

	"shopmart/internal/common"
	"shopmart/internal/services"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.cartService.AddToCart(c.Request().Context(), customerID, productID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type modifyCartRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) ModifyCart(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	productID, err := common.ValidateUUID(c.Param("productId"), "productId")
	if err != nil {
		return respondError(c, err)
	}

	var req modifyCartRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	if err := h.cartService.ModifyCart(c.Request().Context(), customerID, productID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	view, err := h.cartService.GetCart(c.Request().Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
