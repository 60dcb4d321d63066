package handlers

import (
	"net/http"

	"shopmart/internal/common"
	"shopmart/internal/services"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type postReviewRequest struct {
	Rating int     `json:"rating"`
	Text   *string `json:"text"`
}

func (h *ReviewHandler) PostReview(c echo.Context) error {
	customerID, ok := common.GetCustomerIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	var req postReviewRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	review, err := h.reviewService.PostReview(c.Request().Context(), customerID, productID, req.Rating, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}
