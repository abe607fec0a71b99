package main

import (
	"os"

	"github.com/brewpoint-tech/promo-backend/internal/app"
	config "github.com/brewpoint-tech/promo-backend/internal/cfg"
	"github.com/brewpoint-tech/promo-backend/pkg/logger"
)

//	@title			Promo Backend API
//	@version		1.0
//	@description	Сервис промоакций: управление правилами скидок и расчёт скидок по корзине

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	log := logger.NewZerologLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
