package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
	"github.com/go-chi/chi/v5"
)

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

type stubPromotionUC struct {
	createErr error
	promotion *domain.Promotion
	getErr    error
}

func (s *stubPromotionUC) CreatePromotion(ctx context.Context, req *usecase.CreatePromotionReq) (*domain.Promotion, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.promotion, nil
}

func (s *stubPromotionUC) UpdatePromotion(ctx context.Context, req *usecase.UpdatePromotionReq) (*domain.Promotion, error) {
	return s.promotion, nil
}

func (s *stubPromotionUC) DeletePromotion(ctx context.Context, id int64) error {
	return s.getErr
}

func (s *stubPromotionUC) GetPromotion(ctx context.Context, id int64) (*domain.Promotion, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.promotion, nil
}

func (s *stubPromotionUC) ListPromotions(ctx context.Context, req *usecase.ListPromotionsReq) ([]domain.Promotion, error) {
	return nil, nil
}

func (s *stubPromotionUC) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	return nil, nil
}

func (s *stubPromotionUC) ValidatePromotion(ctx context.Context, candidate *domain.Promotion, excludeID int64) ([]usecase.Conflict, error) {
	return nil, nil
}

type stubPricingUC struct {
	res *usecase.CalculateDiscountsRes
}

func (s *stubPricingUC) CalculateDiscounts(ctx context.Context, req *usecase.CalculateDiscountsReq) (*usecase.CalculateDiscountsRes, error) {
	return s.res, nil
}

func newTestRouter(promoUC usecase.PromotionUC, pricingUC usecase.PricingUC) *chi.Mux {
	r := chi.NewRouter()
	handler := NewPromotionHandler(promoUC, pricingUC, noopLogger{})
	r.Route("/api/v1", func(v1 chi.Router) {
		registerPromotionRoutes(v1, handler)
	})
	return r
}

func TestCreatePromotion_ConflictResponse(t *testing.T) {
	conflictErr := e.NewConflictError([]string{
		"Product 2 already has an active promotion (ID: 7). Please update the existing promotion instead.",
	})
	router := newTestRouter(&stubPromotionUC{createErr: conflictErr}, &stubPricingUC{})

	body := `{"name":"x","type":"PERCENT","scope":"PRODUCT","value":10,` +
		`"startDate":"2026-03-01T00:00:00Z","endDate":"2026-03-31T00:00:00Z","productIds":[2]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp ConflictResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Promotion validation failed" {
		t.Errorf("unexpected error field: %s", resp.Error)
	}
	if len(resp.Details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(resp.Details))
	}
}

func TestCreatePromotion_MissingFields(t *testing.T) {
	router := newTestRouter(&stubPromotionUC{}, &stubPricingUC{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions", strings.NewReader(`{"name":"x"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetPromotion_InvalidID(t *testing.T) {
	router := newTestRouter(&stubPromotionUC{}, &stubPricingUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/promotions/abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetPromotion_NotFound(t *testing.T) {
	router := newTestRouter(&stubPromotionUC{getErr: e.ErrPromotionNotFound}, &stubPricingUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/promotions/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCalculateDiscounts_EmptyPromotionsYieldEmptyArray(t *testing.T) {
	router := newTestRouter(&stubPromotionUC{}, &stubPricingUC{
		res: &usecase.CalculateDiscountsRes{
			ApplicablePromotions: []usecase.AppliedPromotion{},
			TotalDiscount:        0,
			FinalTotal:           30000,
		},
	})

	body := `{"items":[{"productId":1,"quantity":1}],"subtotal":30000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// applicablePromotions должен сериализоваться как [], а не null
	if !strings.Contains(rec.Body.String(), `"applicablePromotions":[]`) {
		t.Errorf("expected empty array in response, got %s", rec.Body.String())
	}
}

func TestCalculateDiscounts_MissingSubtotal(t *testing.T) {
	router := newTestRouter(&stubPromotionUC{}, &stubPricingUC{})

	body := `{"items":[{"productId":1,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promotions/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetPromotion_ResponseShape(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	router := newTestRouter(&stubPromotionUC{
		promotion: &domain.Promotion{
			ID: 1, Name: "drinks promo", Type: domain.TypePercent, Scope: domain.ScopeCategory,
			Value: 15, StartDate: created, EndDate: created.Add(24 * time.Hour),
			IsActive: true, Categories: []string{"drinks"}, CreatedAt: created,
		},
	}, &stubPricingUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/promotions/1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp PromotionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 1 || resp.Scope != "CATEGORY" || len(resp.Categories) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
