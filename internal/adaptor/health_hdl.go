package adaptor

import (
	"context"
	"net/http"
	"time"

	"cinema-reservations/pkg/utils"

	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log.With(zap.String("handler", "health")),
	}
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("Database ping failed", zap.Error(err))
		utils.ResponseUnavailable(w, healthStatus{Status: "DOWN", Database: "DOWN"}, "database unreachable")
		return
	}

	utils.ResponseSuccess(w, healthStatus{Status: "UP", Database: "UP"})
}
