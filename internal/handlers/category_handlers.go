package handlers

import (
	"net/http"

	"shopmart/internal/common"
	"shopmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	catalogService services.CatalogService
}

func NewCategoryHandler(catalogService services.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

type addCategoryRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// AddCategory creates a subcategory under the given parent, or directly
// under the vendor's root when parent_id is omitted.
func (h *CategoryHandler) AddCategory(c echo.Context) error {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req addCategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		id, err := common.ValidateUUID(*req.ParentID, "parent_id")
		if err != nil {
			return respondError(c, err)
		}
		parentID = &id
	}

	category, err := h.catalogService.AddCategory(c.Request().Context(), vendorID, parentID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	categoryID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.catalogService.DeleteCategory(c.Request().Context(), vendorID, categoryID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) GetSubtree(c echo.Context) error {
	categoryID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	subtree, err := h.catalogService.Subtree(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, subtree)
}

func (h *CategoryHandler) GetVendorTree(c echo.Context) error {
	vendorID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	tree, err := h.catalogService.VendorTree(c.Request().Context(), vendorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}
