package e

import (
	"fmt"
	"strings"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrPromotionNameRequired = fmt.Errorf("promotion name is required")
	ErrInvalidPromotionType  = fmt.Errorf("invalid promotion type: must be PERCENT, FIXED_AMOUNT or FIXED_PRICE_COMBO")
	ErrInvalidPromotionScope = fmt.Errorf("invalid promotion scope: must be ORDER, PRODUCT, CATEGORY or COMBO")
	ErrProductIDsRequired    = fmt.Errorf("productIds is required for PRODUCT scope")
	ErrCategoriesRequired    = fmt.Errorf("categories is required for CATEGORY scope")
	ErrComboItemsRequired    = fmt.Errorf("comboItems is required for COMBO scope")
	ErrScopePayloadMismatch  = fmt.Errorf("scope-specific payload does not match promotion scope")
	ErrInvalidDateWindow     = fmt.Errorf("endDate must not be before startDate")
	ErrValueMustBePositive   = fmt.Errorf("value must be positive")
	ErrMissingFields         = fmt.Errorf("missing required fields: name, type, scope, value, startDate, endDate")
	ErrMissingCalcFields     = fmt.Errorf("missing required fields: items (array), subtotal (number)")
	ErrInvalidPromotionID    = fmt.Errorf("invalid promotion ID")
	ErrStatusBadRequest      = fmt.Errorf("bad request")

	// 404 Not Found
	ErrPromotionNotFound = fmt.Errorf("promotion not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ConflictError возвращается валидатором уникальности, когда кандидат
// пересекается с существующими промоакциями того же scope.
// Details содержит описание каждого конфликта дословно, по одному на цель.
type ConflictError struct {
	Details []string
}

func NewConflictError(details []string) *ConflictError {
	return &ConflictError{Details: details}
}

func (c *ConflictError) Error() string {
	return fmt.Sprintf("promotion validation failed: %s", strings.Join(c.Details, "; "))
}
