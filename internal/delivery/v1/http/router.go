package http

import (
	_ "github.com/brewpoint-tech/promo-backend/docs" // Импорт сгенерированных файлов
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
	"github.com/brewpoint-tech/promo-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(promoUC usecase.PromotionUC, pricingUC usecase.PricingUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		promoHandler := NewPromotionHandler(promoUC, pricingUC, r.logger)
		registerPromotionRoutes(v1, promoHandler)
	})
}

func registerPromotionRoutes(router chi.Router, promoHandler *PromotionHandler) {
	router.Route("/promotions", func(pr chi.Router) {
		pr.Get("/", promoHandler.listPromotions)
		pr.Get("/active", promoHandler.listActivePromotions)
		pr.Post("/", promoHandler.createPromotion)
		pr.Post("/calculate", promoHandler.calculateDiscounts)
		pr.Get("/{id}", promoHandler.getPromotion)
		pr.Put("/{id}", promoHandler.updatePromotion)
		pr.Delete("/{id}", promoHandler.deletePromotion)
	})
}
