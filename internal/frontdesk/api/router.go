package api

import (
	"net/http"

	"innkeep/internal/frontdesk/core"
	"innkeep/internal/frontdesk/handlers"
	"innkeep/internal/frontdesk/service"
	"innkeep/pkg/logger"
)

func SetupRouter(clients *core.Clients, log *logger.Logger) *http.ServeMux {
	frontdeskService := service.NewFrontdeskService(clients, log)
	flowHandler := handlers.NewFlowHandler(frontdeskService, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/frontdesk/execute", flowHandler.ExecuteFlow)
	mux.HandleFunc("/api/v1/frontdesk/flows", flowHandler.ListFlows)
	mux.HandleFunc("/api/v1/frontdesk/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return mux
}
