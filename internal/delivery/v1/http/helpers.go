package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConflictResponse — ответ 409 с развёрнутым списком конфликтов уникальности.
type ConflictResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

type ComboItemPayload struct {
	ProductID   int64 `json:"productId"`
	RequiredQty int32 `json:"requiredQty"`
}

type PromotionResponse struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Type          string             `json:"type"`
	Scope         string             `json:"scope"`
	Value         int64              `json:"value"`
	StartDate     time.Time          `json:"startDate"`
	EndDate       time.Time          `json:"endDate"`
	MinOrderTotal int64              `json:"minOrderTotal"`
	IsActive      bool               `json:"isActive"`
	ProductIDs    []int64            `json:"productIds,omitempty"`
	Categories    []string           `json:"categories,omitempty"`
	ComboItems    []ComboItemPayload `json:"comboItems,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

type AppliedPromotionResponse struct {
	PromotionID    int64  `json:"promotionId"`
	Name           string `json:"name"`
	DiscountAmount int64  `json:"discountAmount"`
}

type CalculateResponse struct {
	ApplicablePromotions []AppliedPromotionResponse `json:"applicablePromotions"`
	TotalDiscount        int64                      `json:"totalDiscount"`
	FinalTotal           int64                      `json:"finalTotal"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrMissingCalcFields):
		return http.StatusBadRequest, e.ErrMissingCalcFields.Error()
	case errors.Is(err, e.ErrInvalidPromotionID):
		return http.StatusBadRequest, e.ErrInvalidPromotionID.Error()
	case errors.Is(err, e.ErrPromotionNameRequired):
		return http.StatusBadRequest, e.ErrPromotionNameRequired.Error()
	case errors.Is(err, e.ErrInvalidPromotionType):
		return http.StatusBadRequest, e.ErrInvalidPromotionType.Error()
	case errors.Is(err, e.ErrInvalidPromotionScope):
		return http.StatusBadRequest, e.ErrInvalidPromotionScope.Error()
	case errors.Is(err, e.ErrProductIDsRequired):
		return http.StatusBadRequest, e.ErrProductIDsRequired.Error()
	case errors.Is(err, e.ErrCategoriesRequired):
		return http.StatusBadRequest, e.ErrCategoriesRequired.Error()
	case errors.Is(err, e.ErrComboItemsRequired):
		return http.StatusBadRequest, e.ErrComboItemsRequired.Error()
	case errors.Is(err, e.ErrScopePayloadMismatch):
		return http.StatusBadRequest, e.ErrScopePayloadMismatch.Error()
	case errors.Is(err, e.ErrInvalidDateWindow):
		return http.StatusBadRequest, e.ErrInvalidDateWindow.Error()
	case errors.Is(err, e.ErrValueMustBePositive):
		return http.StatusBadRequest, e.ErrValueMustBePositive.Error()
	case errors.Is(err, e.ErrPromotionNotFound):
		return http.StatusNotFound, e.ErrPromotionNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// WriteError сериализует ошибку в JSON-ответ.
// Конфликты уникальности отдаются отдельным форматом с полем details.
func WriteError(w http.ResponseWriter, err error) {
	var conflictErr *e.ConflictError
	if errors.As(err, &conflictErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(&ConflictResponse{
			Error:   "Promotion validation failed",
			Details: conflictErr.Details,
		})
		return
	}

	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePromotionID разбирает path-параметр {id} в int64
func parsePromotionID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidPromotionID
	}

	return id, nil
}

func toPromotionResponse(p *domain.Promotion) *PromotionResponse {
	return &PromotionResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Type:          string(p.Type),
		Scope:         string(p.Scope),
		Value:         p.Value,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		MinOrderTotal: p.MinOrderTotal,
		IsActive:      p.IsActive,
		ProductIDs:    p.ProductIDs,
		Categories:    p.Categories,
		ComboItems:    toComboItemPayloads(p.ComboItems),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toArrPromotionResponse(promotions []domain.Promotion) []PromotionResponse {
	result := make([]PromotionResponse, 0, len(promotions))
	for i := range promotions {
		result = append(result, *toPromotionResponse(&promotions[i]))
	}

	return result
}

func toComboItemPayloads(items []domain.ComboItem) []ComboItemPayload {
	if len(items) == 0 {
		return nil
	}

	result := make([]ComboItemPayload, 0, len(items))
	for _, item := range items {
		result = append(result, ComboItemPayload{
			ProductID:   item.ProductID,
			RequiredQty: item.RequiredQty,
		})
	}

	return result
}

func toComboItems(payloads []ComboItemPayload) []domain.ComboItem {
	if payloads == nil {
		return nil
	}

	result := make([]domain.ComboItem, 0, len(payloads))
	for _, payload := range payloads {
		result = append(result, domain.ComboItem{
			ProductID:   payload.ProductID,
			RequiredQty: payload.RequiredQty,
		})
	}

	return result
}

func toCalculateResponse(res *usecase.CalculateDiscountsRes) *CalculateResponse {
	applied := make([]AppliedPromotionResponse, 0, len(res.ApplicablePromotions))
	for _, promo := range res.ApplicablePromotions {
		applied = append(applied, AppliedPromotionResponse{
			PromotionID:    promo.PromotionID,
			Name:           promo.Name,
			DiscountAmount: promo.DiscountAmount,
		})
	}

	return &CalculateResponse{
		ApplicablePromotions: applied,
		TotalDiscount:        res.TotalDiscount,
		FinalTotal:           res.FinalTotal,
	}
}
