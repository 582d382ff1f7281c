package handler

import (
	"encoding/json"
	"net/http"

	"innkeep/internal/bookings/service"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// ActorRoleHeader names the acting role for a request. Absent or unknown
// values fall back to guest, the least capable role.
const ActorRoleHeader = "X-Actor-Role"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &booking, actorFromRequest(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) GetByConfirmationCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByConfirmationCode(r.Context(), ps.ByName("code"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, bookings, total, limit, int(offset))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomID := r.URL.Query().Get("room_id")
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

	available, err := h.service.CheckAvailability(r.Context(), roomID, checkIn, checkOut, r.URL.Query().Get("package_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{
		"room_id":   roomID,
		"check_in":  checkIn,
		"check_out": checkOut,
		"available": available,
	})
}

func (h *BookingHandler) SearchAvailableRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	rooms, err := h.service.SearchAvailableRooms(
		r.Context(),
		checkIn,
		checkOut,
		r.URL.Query().Get("room_type"),
		r.URL.Query().Get("package_id"),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rooms)
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	quote, err := h.service.QuotePrice(
		r.Context(),
		r.URL.Query().Get("room_id"),
		checkIn,
		checkOut,
		r.URL.Query().Get("package_id"),
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, quote)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
	router.GET("/api/v1/bookings/code/:code", h.GetByConfirmationCode)
	router.GET("/api/v1/availability/check", h.CheckAvailability)
	router.GET("/api/v1/availability/rooms", h.SearchAvailableRooms)
	router.GET("/api/v1/availability/quote", h.Quote)
}

func actorFromRequest(r *http.Request) model.Actor {
	switch r.Header.Get(ActorRoleHeader) {
	case model.RoleStaff:
		return model.Actor{Role: model.RoleStaff}
	case model.RoleAdmin:
		return model.Actor{Role: model.RoleAdmin}
	default:
		return model.GuestActor()
	}
}
