package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"innkeep/internal/notifications/service"
	"innkeep/pkg/config"
	"innkeep/pkg/contracts"
	"innkeep/pkg/kafka"
	kafka_config "innkeep/pkg/kafka/config"
	kafka_middleware "innkeep/pkg/kafka/middleware"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "innkeep-notifier"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Notifier service")

	kcfg := kafka_config.Load()
	consumer, err := kafka.NewConsumer(
		kcfg,
		contracts.TopicBookingEvents,
		consumerGroup,
		contracts.TopicBookingEventsDLQ,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware())
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	notifier := service.NewNotifier(service.NewLogSender(cfg.Log), cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	consumerErrors := make(chan error, 1)
	go func() {
		cfg.Log.Info("Consuming booking events",
			"topic", contracts.TopicBookingEvents,
			"group", consumerGroup,
			"brokers", kcfg.Brokers,
		)
		consumerErrors <- consumer.Consume(ctx, notifier.HandleMessage)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil {
			cfg.Log.Fatal("Consumer failed", "error", err)
		}

	case sig := <-shutdown:
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
		<-consumerErrors
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}
