package handler

import (
	"encoding/json"
	"net/http"

	"innkeep/internal/priceperiods/service"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PricePeriodHandler struct {
	service service.PricePeriodService
	log     *logger.Logger
}

func NewPricePeriodHandler(service service.PricePeriodService, log *logger.Logger) *PricePeriodHandler {
	return &PricePeriodHandler{
		service: service,
		log:     log,
	}
}

func (h *PricePeriodHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var period model.RoomPricePeriod
	if err := json.NewDecoder(r.Body).Decode(&period); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &period); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, period)
}

func (h *PricePeriodHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	period, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, period)
}

func (h *PricePeriodHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var periods []*model.RoomPricePeriod
	var total int64

	if roomType := r.URL.Query().Get("room_type"); roomType != "" {
		periods, total, err = h.service.GetByRoomType(r.Context(), roomType, limit, offset)
	} else {
		periods, total, err = h.service.GetAll(r.Context(), limit, offset)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, periods, total, limit, int(offset))
}

func (h *PricePeriodHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.RoomPricePeriodUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PricePeriodHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PricePeriodHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/price-periods", h.Create)
	router.GET("/api/v1/price-periods", h.GetAll)
	router.GET("/api/v1/price-periods/id/:id", h.GetByID)
	router.PATCH("/api/v1/price-periods/id/:id", h.Update)
	router.DELETE("/api/v1/price-periods/id/:id", h.Delete)
}
