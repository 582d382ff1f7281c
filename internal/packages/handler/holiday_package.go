package handler

import (
	"encoding/json"
	"net/http"

	"innkeep/internal/packages/service"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HolidayPackageHandler struct {
	service service.HolidayPackageService
	log     *logger.Logger
}

func NewHolidayPackageHandler(service service.HolidayPackageService, log *logger.Logger) *HolidayPackageHandler {
	return &HolidayPackageHandler{
		service: service,
		log:     log,
	}
}

func (h *HolidayPackageHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pkg model.HolidayPackage
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &pkg); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, pkg)
}

func (h *HolidayPackageHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pkg, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, pkg)
}

func (h *HolidayPackageHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	packages, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, packages, total, limit, int(offset))
}

// GetActive lists active packages intersecting a stay window, sent as
// check_in/check_out query params.
func (h *HolidayPackageHandler) GetActive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	checkIn, err := httputil.ExtractDate(r, "check_in")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	checkOut, err := httputil.ExtractDate(r, "check_out")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	packages, err := h.service.GetActive(r.Context(), checkIn, checkOut)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, packages)
}

func (h *HolidayPackageHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.HolidayPackageUpdate
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

func (h *HolidayPackageHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *HolidayPackageHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/packages", h.Create)
	router.GET("/api/v1/packages", h.GetAll)
	router.GET("/api/v1/packages/active", h.GetActive)
	router.GET("/api/v1/packages/id/:id", h.GetByID)
	router.PATCH("/api/v1/packages/id/:id", h.Update)
	router.DELETE("/api/v1/packages/id/:id", h.Delete)
}
