package handlers

import (
	"errors"
	"log"
	"net/http"

	"shopmart/internal/common"
	"shopmart/internal/services"

	"github.com/labstack/echo/v4"
)

// respondError maps service-layer errors onto the HTTP surface. Business
// failures get specific codes; anything unrecognized is logged and
// returned as an opaque 500.
func respondError(c echo.Context, err error) error {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return common.SendValidationError(c, ve.Field, ve.Reason)
	}

	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, "resource")
	case errors.Is(err, common.ErrForbidden):
		return common.SendForbiddenError(c)
	case errors.Is(err, services.ErrInvalidCredentials):
		return common.SendUnauthorizedError(c)
	case errors.Is(err, common.ErrInsufficientStock):
		return c.JSON(http.StatusConflict,
			common.CreateErrorResponse("INSUFFICIENT_STOCK", "Not enough stock to fulfil the order", nil))
	case errors.Is(err, common.ErrEmptyCart):
		return common.SendClientError(c, "Cart is empty")
	case errors.Is(err, common.ErrHasChildren):
		return c.JSON(http.StatusConflict,
			common.CreateErrorResponse("HAS_CHILDREN", "Category still has subcategories", nil))
	case errors.Is(err, common.ErrNotPurchased):
		return common.SendForbiddenError(c)
	case errors.Is(err, common.ErrAlreadyReviewed):
		return c.JSON(http.StatusConflict,
			common.CreateErrorResponse("ALREADY_REVIEWED", "Product already reviewed", nil))
	}

	log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	return common.SendServerError(c, "Internal server error")
}
