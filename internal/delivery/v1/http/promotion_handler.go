package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
	"github.com/brewpoint-tech/promo-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type PromotionHandler struct {
	promotionUsecase usecase.PromotionUC
	pricingUsecase   usecase.PricingUC
	logger           logger.Logger
}

func NewPromotionHandler(promotionUsecase usecase.PromotionUC, pricingUsecase usecase.PricingUC, logger logger.Logger) *PromotionHandler {
	return &PromotionHandler{
		promotionUsecase: promotionUsecase,
		pricingUsecase:   pricingUsecase,
		logger:           logger,
	}
}

type CreatePromotionRequest struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Type          string             `json:"type"`
	Scope         string             `json:"scope"`
	Value         *int64             `json:"value"`
	StartDate     *time.Time         `json:"startDate"`
	EndDate       *time.Time         `json:"endDate"`
	MinOrderTotal int64              `json:"minOrderTotal"`
	IsActive      *bool              `json:"isActive"`
	ProductIDs    []int64            `json:"productIds"`
	Categories    []string           `json:"categories"`
	ComboItems    []ComboItemPayload `json:"comboItems"`
}

type UpdatePromotionRequest struct {
	Name          *string            `json:"name"`
	Description   *string            `json:"description"`
	Type          *string            `json:"type"`
	Scope         *string            `json:"scope"`
	Value         *int64             `json:"value"`
	StartDate     *time.Time         `json:"startDate"`
	EndDate       *time.Time         `json:"endDate"`
	MinOrderTotal *int64             `json:"minOrderTotal"`
	IsActive      *bool              `json:"isActive"`
	ProductIDs    []int64            `json:"productIds"`
	Categories    []string           `json:"categories"`
	ComboItems    []ComboItemPayload `json:"comboItems"`
}

type CartItemPayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type CalculateRequest struct {
	Items    []CartItemPayload `json:"items"`
	Subtotal *int64            `json:"subtotal"`
}

// listPromotions
//
//	@Summary		Список промоакций
//	@Description	Возвращает все промоакции с опциональными фильтрами
//	@Tags			promotions
//	@Produce		json
//	@Param			isActive	query		bool	false	"Фильтр по флагу активности"
//	@Param			scope		query		string	false	"Фильтр по scope (ORDER, PRODUCT, CATEGORY, COMBO)"
//	@Param			type		query		string	false	"Фильтр по типу (PERCENT, FIXED_AMOUNT, FIXED_PRICE_COMBO)"
//	@Success		200			{array}		PromotionResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/promotions [get]
func (h *PromotionHandler) listPromotions(w http.ResponseWriter, r *http.Request) {
	req := &usecase.ListPromotionsReq{
		Scope: domain.PromotionScope(r.URL.Query().Get("scope")),
		Type:  domain.PromotionType(r.URL.Query().Get("type")),
	}

	if isActiveStr := r.URL.Query().Get("isActive"); isActiveStr != "" {
		isActive := isActiveStr == "true"
		req.IsActive = &isActive
	}

	promotions, err := h.promotionUsecase.ListPromotions(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrPromotionResponse(promotions))
}

// listActivePromotions
//
//	@Summary		Действующие промоакции
//	@Description	Возвращает включённые промоакции, чьё окно дат содержит текущий момент
//	@Tags			promotions
//	@Produce		json
//	@Success		200	{array}		PromotionResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/promotions/active [get]
func (h *PromotionHandler) listActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionUsecase.ListActivePromotions(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrPromotionResponse(promotions))
}

// getPromotion
//
//	@Summary		Промоакция по ID
//	@Tags			promotions
//	@Produce		json
//	@Param			id	path		int	true	"ID промоакции"
//	@Success		200	{object}	PromotionResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/promotions/{id} [get]
func (h *PromotionHandler) getPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := parsePromotionID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), chi.URLParam(r, "id"))
		WriteError(w, err)
		return
	}

	promotion, err := h.promotionUsecase.GetPromotion(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPromotionResponse(promotion))
}

// createPromotion
//
//	@Summary		Создание промоакции
//	@Description	Создаёт промоакцию после проверки формы и уникальности по scope
//	@Tags			promotions
//	@Accept			json
//	@Produce		json
//	@Param			promotion	body		CreatePromotionRequest	true	"Промоакция"
//	@Success		201			{object}	PromotionResponse
//	@Failure		400			{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		409			{object}	ConflictResponse	"Конфликт уникальности"
//	@Router			/promotions [post]
func (h *PromotionHandler) createPromotion(w http.ResponseWriter, r *http.Request) {
	var body CreatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	req, err := toCreatePromotionReq(&body)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	promotion, err := h.promotionUsecase.CreatePromotion(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toPromotionResponse(promotion))
}

// updatePromotion
//
//	@Summary		Обновление промоакции
//	@Description	Частично обновляет промоакцию; изменённый набор целей повторно проверяется на уникальность
//	@Tags			promotions
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int						true	"ID промоакции"
//	@Param			promotion	body		UpdatePromotionRequest	true	"Изменяемые поля"
//	@Success		200			{object}	PromotionResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ConflictResponse
//	@Router			/promotions/{id} [put]
func (h *PromotionHandler) updatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := parsePromotionID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), chi.URLParam(r, "id"))
		WriteError(w, err)
		return
	}

	var body UpdatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	promotion, err := h.promotionUsecase.UpdatePromotion(r.Context(), toUpdatePromotionReq(id, &body))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPromotionResponse(promotion))
}

// deletePromotion
//
//	@Summary		Удаление промоакции
//	@Tags			promotions
//	@Produce		json
//	@Param			id	path		int	true	"ID промоакции"
//	@Success		200	{object}	MessageResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/promotions/{id} [delete]
func (h *PromotionHandler) deletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := parsePromotionID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), chi.URLParam(r, "id"))
		WriteError(w, err)
		return
	}

	if err := h.promotionUsecase.DeletePromotion(r.Context(), id); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &MessageResponse{Message: "Promotion deleted successfully"})
}

// calculateDiscounts
//
//	@Summary		Расчёт скидок по корзине
//	@Description	Определяет действующие промоакции для корзины и считает итоговую сумму
//	@Tags			promotions
//	@Accept			json
//	@Produce		json
//	@Param			cart	body		CalculateRequest	true	"Корзина и подытог в копейках"
//	@Success		200		{object}	CalculateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/promotions/calculate [post]
func (h *PromotionHandler) calculateDiscounts(w http.ResponseWriter, r *http.Request) {
	var body CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if body.Items == nil || body.Subtotal == nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, e.ErrMissingCalcFields.Error())
		WriteError(w, e.ErrMissingCalcFields)
		return
	}

	items := make([]domain.CartItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, domain.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	res, err := h.pricingUsecase.CalculateDiscounts(r.Context(), usecase.NewCalculateDiscountsReq(items, *body.Subtotal))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCalculateResponse(res))
}

func toCreatePromotionReq(body *CreatePromotionRequest) (*usecase.CreatePromotionReq, error) {
	if body.Name == "" || body.Type == "" || body.Scope == "" ||
		body.Value == nil || body.StartDate == nil || body.EndDate == nil {
		return nil, e.ErrMissingFields
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	return &usecase.CreatePromotionReq{
		Name:          body.Name,
		Description:   body.Description,
		Type:          domain.PromotionType(body.Type),
		Scope:         domain.PromotionScope(body.Scope),
		Value:         *body.Value,
		StartDate:     *body.StartDate,
		EndDate:       *body.EndDate,
		MinOrderTotal: body.MinOrderTotal,
		IsActive:      isActive,
		ProductIDs:    body.ProductIDs,
		Categories:    body.Categories,
		ComboItems:    toComboItems(body.ComboItems),
	}, nil
}

func toUpdatePromotionReq(id int64, body *UpdatePromotionRequest) *usecase.UpdatePromotionReq {
	req := &usecase.UpdatePromotionReq{
		ID:            id,
		Name:          body.Name,
		Description:   body.Description,
		Value:         body.Value,
		StartDate:     body.StartDate,
		EndDate:       body.EndDate,
		MinOrderTotal: body.MinOrderTotal,
		IsActive:      body.IsActive,
		ProductIDs:    body.ProductIDs,
		Categories:    body.Categories,
		ComboItems:    toComboItems(body.ComboItems),
	}

	if body.Type != nil {
		promoType := domain.PromotionType(*body.Type)
		req.Type = &promoType
	}
	if body.Scope != nil {
		scope := domain.PromotionScope(*body.Scope)
		req.Scope = &scope
	}

	return req
}
