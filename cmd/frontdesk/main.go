package main

import (
	"net/http"
	"os"

	"innkeep/internal/frontdesk/api"
	"innkeep/internal/frontdesk/core"
	"innkeep/pkg/config"
)

const ServiceName = "frontdesk"

func main() {
	cfg := config.Load(ServiceName)
	log := cfg.Log

	clients := core.NewClients(cfg)
	router := api.SetupRouter(clients, log)

	addr := ":" + cfg.Port
	log.Info("Starting Frontdesk API server",
		"address", addr,
		"bookings_url", cfg.BookingsServiceURL,
		"packages_url", cfg.PackagesServiceURL,
	)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
