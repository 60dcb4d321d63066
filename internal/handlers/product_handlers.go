package handlers

import (
	"net/http"
	"time"

	"shopmart/internal/common"
	"shopmart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const presignedImageTTL = 15 * time.Minute

type ProductHandler struct {
	productService services.ProductService
	storage        services.StorageService
}

func NewProductHandler(productService services.ProductService, storage services.StorageService) *ProductHandler {
	return &ProductHandler{productService: productService, storage: storage}
}

type createProductRequest struct {
	CategoryID      string  `json:"category_id"`
	Name            string  `json:"name"`
	StockQuantity   int     `json:"stock_quantity"`
	PriceOriginal   string  `json:"price_original"`
	PriceDiscounted *string `json:"price_discounted"`
	Tag             *string `json:"tag"`
	Description     *string `json:"description"`
}

func (r createProductRequest) toInput() (services.CreateProductInput, error) {
	categoryID, err := common.ValidateUUID(r.CategoryID, "category_id")
	if err != nil {
		return services.CreateProductInput{}, err
	}

	price, err := decimal.NewFromString(r.PriceOriginal)
	if err != nil {
		return services.CreateProductInput{}, &common.ValidationError{Field: "price_original", Reason: "must be a decimal number"}
	}

	var discounted *decimal.Decimal
	if r.PriceDiscounted != nil {
		d, err := decimal.NewFromString(*r.PriceDiscounted)
		if err != nil {
			return services.CreateProductInput{}, &common.ValidationError{Field: "price_discounted", Reason: "must be a decimal number"}
		}
		discounted = &d
	}

	return services.CreateProductInput{
		CategoryID:      categoryID,
		Name:            r.Name,
		StockQuantity:   r.StockQuantity,
		PriceOriginal:   price,
		PriceDiscounted: discounted,
		Tag:             r.Tag,
		Description:     r.Description,
	}, nil
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	input, err := req.toInput()
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productService.Create(c.Request().Context(), vendorID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) CreateProductBatch(c echo.Context) error {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var reqs []createProductRequest
	if err := c.Bind(&reqs); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	inputs := make([]services.CreateProductInput, 0, len(reqs))
	for _, req := range reqs {
		input, err := req.toInput()
		if err != nil {
			return respondError(c, err)
		}
		inputs = append(inputs, input)
	}

	products, err := h.productService.CreateBatch(c.Request().Context(), vendorID, inputs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productService.Get(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListAll(c echo.Context) error {
	products, err := h.productService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListByCategory(c echo.Context) error {
	categoryID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	products, err := h.productService.ListByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListByVendor(c echo.Context) error {
	vendorID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	products, err := h.productService.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListReviews(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	reviews, err := h.productService.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// UploadImage stores the multipart file in object storage and records
// its path against the product.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "Missing image file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "Unreadable image file")
	}
	defer file.Close()

	path, err := h.storage.UploadProductImage(c.Request().Context(), productID, fileHeader.Filename,
		file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return respondError(c, err)
	}

	image, err := h.productService.AttachImage(c.Request().Context(), vendorID, productID, path)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

type imageURL struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ListImages returns short-lived presigned URLs instead of raw storage
// paths, so clients fetch image bytes from object storage directly.
func (h *ProductHandler) ListImages(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}

	images, err := h.productService.ListImages(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, err)
	}

	urls := make([]imageURL, 0, len(images))
	for _, image := range images {
		url, err := h.storage.PresignedURL(c.Request().Context(), image.Path, presignedImageTTL)
		if err != nil {
			return respondError(c, err)
		}
		urls = append(urls, imageURL{ID: image.ID.String(), URL: url})
	}
	return c.JSON(http.StatusOK, urls)
}
