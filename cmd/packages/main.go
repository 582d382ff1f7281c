package main

import (
	"innkeep/internal/packages/handler"
	"innkeep/internal/packages/repository"
	"innkeep/internal/packages/service"
	"innkeep/internal/packages/validator"
	"innkeep/pkg/app"
	"innkeep/pkg/config"
)

const ServiceName = "packages"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Holiday Packages service")
	packageService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewHolidayPackageHandler(packageService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.HolidayPackageService {
	packageValidator := validator.NewHolidayPackageValidator(cfg.Log)
	packageRepo := repository.NewMongoHolidayPackageRepository(cfg)
	packageService := service.NewHolidayPackageService(packageRepo, packageValidator, cfg)

	cfg.Log.Info("Holiday package service initialized", "database", cfg.MongoDatabaseName)
	return packageService
}
