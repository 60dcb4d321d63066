package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	CustomerIDKey contextKey = "customer_id"
	VendorIDKey   contextKey = "vendor_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response. The message is generic;
// internal detail stays on the operator side of the trust boundary.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// SendForbiddenError sends a forbidden error response for cross-tenant access
func SendForbiddenError(c echo.Context) error {
	return c.JSON(http.StatusForbidden, CreateErrorResponse("FORBIDDEN", "Access to this resource is not allowed", nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, &ValidationError{Field: fieldName, Reason: "is required"}
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, &ValidationError{Field: fieldName, Reason: "must be a valid UUID"}
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: fieldName, Reason: "is required"}
	}
	return nil
}

// ValidateStringLength validates a string against inclusive length bounds.
func ValidateStringLength(value, fieldName string, min, max int) error {
	if len(value) < min || len(value) > max {
		return &ValidationError{
			Field:  fieldName,
			Reason: fmt.Sprintf("must be between %d and %d characters", min, max),
		}
	}
	return nil
}

// ValidatePositiveQuantity validates order/cart quantities.
func ValidatePositiveQuantity(value int, fieldName string) error {
	if value <= 0 {
		return &ValidationError{Field: fieldName, Reason: "must be positive"}
	}
	return nil
}

// ValidateRating validates a review rating.
func ValidateRating(rating int) error {
	if rating < 0 || rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}
	return nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetCustomerIDFromContext extracts the customer ID from the request context
func GetCustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	customerID, ok := ctx.Value(CustomerIDKey).(uuid.UUID)
	return customerID, ok
}

// GetVendorIDFromContext extracts the vendor ID from the request context
func GetVendorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	vendorID, ok := ctx.Value(VendorIDKey).(uuid.UUID)
	return vendorID, ok
}

// WithCustomerID returns a context carrying the authenticated customer identity.
func WithCustomerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, CustomerIDKey, id)
}

// WithVendorID returns a context carrying the authenticated vendor identity.
func WithVendorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, VendorIDKey, id)
}
