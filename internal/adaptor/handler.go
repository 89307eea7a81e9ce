package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/usecase"
	"cinema-reservations/pkg/errs"
	"cinema-reservations/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	User        *UserHandler
	Reservation *ReservationHandler
	Payment     *PaymentHandler
	Health      *HealthHandler
}

func NewHandler(service *usecase.Service, pinger Pinger, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		User:        NewUserHandler(service.User, config.Pagination.DefaultLimit, log),
		Reservation: NewReservationHandler(service.Reservation, config.Pagination.DefaultLimit, log),
		Payment:     NewPaymentHandler(service.Payment, log),
		Health:      NewHealthHandler(pinger, log),
	}
}

// decodeAndValidate reads a JSON body into dst and runs the struct tags. It writes
// the 400 itself and reports false when the request must stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed: "+utils.FormatValidationErrors(validationErrors))
		return false
	}

	return true
}

func listRequest(r *http.Request, defaultLimit int) request.ListRequest {
	query := r.URL.Query()
	req := request.ListRequest{
		Limit:  utils.ParseInt(query.Get("limit"), defaultLimit),
		Offset: utils.ParseInt(query.Get("offset"), 0),
	}
	return req.Normalize(defaultLimit)
}

// respondReadError maps a failed lookup: NotFound is 404, bad input 400, the rest 500
func respondReadError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())
	case errs.KindValidationFailed:
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error())
	default:
		respondInternal(w, log, err, operation)
	}
}

// respondWriteError maps a failed mutation: every domain error is a 400
func respondWriteError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch kind := errs.KindOf(err); kind {
	case errs.KindNotFound, errs.KindConflict, errs.KindValidationFailed:
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		utils.ResponseBadRequest(w, err.Error())
	default:
		respondInternal(w, log, err, operation)
	}
}

func respondInternal(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	log.Error(operation+" failed",
		zap.Error(err),
		zap.Strings("stack", errs.ExtractStackLines(err, 12)),
	)
	utils.ResponseInternalError(w, "Internal server error")
}
