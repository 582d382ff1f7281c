package main

import (
	"os"

	"innkeep/internal/availability"
	"innkeep/internal/bookings/handler"
	"innkeep/internal/bookings/repository"
	"innkeep/internal/bookings/service"
	"innkeep/internal/bookings/validator"
	packagesrepo "innkeep/internal/packages/repository"
	periodsrepo "innkeep/internal/priceperiods/repository"
	"innkeep/internal/pricing"
	roomsrepo "innkeep/internal/rooms/repository"
	"innkeep/pkg/app"
	"innkeep/pkg/config"
	"innkeep/pkg/contracts"
	"innkeep/pkg/kafka"
	kafka_config "innkeep/pkg/kafka/config"
	kafka_middleware "innkeep/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)
	packageRepo := packagesrepo.NewMongoHolidayPackageRepository(cfg)
	periodRepo := periodsrepo.NewMongoPricePeriodRepository(cfg)

	resolver := availability.NewResolver(bookingRepo, packageRepo, cfg.Log)
	calculator := pricing.NewCalculator(periodRepo, packageRepo, cfg.Log)
	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.MaxStayNights)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		roomRepo,
		packageRepo,
		resolver,
		calculator,
		bookingValidator,
		initProducer(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initProducer returns nil when Kafka is disabled; the booking service
// treats a nil producer as "no event stream".
func initProducer(cfg *config.Config) *kafka.Producer {
	if os.Getenv("KAFKA_ENABLED") != "true" {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return nil
	}

	kcfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kcfg, contracts.TopicBookingEvents, contracts.TopicBookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware())
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka producer initialized", "topic", contracts.TopicBookingEvents, "brokers", kcfg.Brokers)
	return producer
}
