package adaptor

import (
	"net/http"
	"strconv"

	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/usecase"
	"cinema-reservations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service      usecase.ReservationService
	defaultLimit int
	log          *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, defaultLimit int, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:      service,
		defaultLimit: defaultLimit,
		log:          log.With(zap.String("handler", "reservation")),
	}
}

// ListReservations handles GET /api/reservations
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListReservations(r.Context(), listRequest(r, h.defaultLimit))
	if err != nil {
		respondReadError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, reservations)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid reservation ID")
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		respondReadError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, reservation)
}

// ListByUser handles GET /api/reservations/user/{userId}
func (h *ReservationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.ParseID(chi.URLParam(r, "userId"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID")
		return
	}

	reservations, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		respondReadError(w, h.log, err, "list reservations by user")
		return
	}

	utils.ResponseSuccess(w, reservations)
}

// ListByMovie handles GET /api/reservations/movie/{movieId}
func (h *ReservationHandler) ListByMovie(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListByMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		respondReadError(w, h.log, err, "list reservations by movie")
		return
	}

	utils.ResponseSuccess(w, reservations)
}

// ListBySchedule handles GET /api/reservations/schedule/{scheduleId}
func (h *ReservationHandler) ListBySchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(chi.URLParam(r, "scheduleId"), 10, 32)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID")
		return
	}

	reservations, err := h.service.ListBySchedule(r.Context(), int32(scheduleID))
	if err != nil {
		respondReadError(w, h.log, err, "list reservations by schedule")
		return
	}

	utils.ResponseSuccess(w, reservations)
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), &req)
	if err != nil {
		respondWriteError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, reservation)
}

// CancelReservation handles PUT /api/reservations/{id}/cancel
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid reservation ID")
		return
	}

	reservation, err := h.service.CancelReservation(r.Context(), id)
	if err != nil {
		respondWriteError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, reservation)
}

// DeleteReservation handles DELETE /api/reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid reservation ID")
		return
	}

	if err := h.service.DeleteReservation(r.Context(), id); err != nil {
		respondWriteError(w, h.log, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation deleted successfully")
}
