package main

import (
	"innkeep/internal/priceperiods/handler"
	"innkeep/internal/priceperiods/repository"
	"innkeep/internal/priceperiods/service"
	"innkeep/internal/priceperiods/validator"
	"innkeep/pkg/app"
	"innkeep/pkg/config"
)

const ServiceName = "priceperiods"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Price Periods service")
	periodService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewPricePeriodHandler(periodService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.PricePeriodService {
	periodValidator := validator.NewPricePeriodValidator(cfg.Log)
	periodRepo := repository.NewMongoPricePeriodRepository(cfg)
	periodService := service.NewPricePeriodService(periodRepo, periodValidator, cfg)

	cfg.Log.Info("Price period service initialized", "database", cfg.MongoDatabaseName)
	return periodService
}
