package adaptor

import (
	"net/http"

	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/usecase"
	"cinema-reservations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service      usecase.UserService
	defaultLimit int
	log          *zap.Logger
}

func NewUserHandler(service usecase.UserService, defaultLimit int, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:      service,
		defaultLimit: defaultLimit,
		log:          log.With(zap.String("handler", "user")),
	}
}

// ListUsers handles GET /api/users. view=full returns complete user records
// instead of summaries.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	req := listRequest(r, h.defaultLimit)

	var (
		users any
		err   error
	)
	if r.URL.Query().Get("view") == "full" {
		users, err = h.service.ListUsers(r.Context(), req)
	} else {
		users, err = h.service.ListUserSummaries(r.Context(), req)
	}
	if err != nil {
		respondReadError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondReadError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// GetUserByEmail handles GET /api/users/email/{email}
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		respondReadError(w, h.log, err, "get user by email")
		return
	}

	utils.ResponseSuccess(w, user)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		respondWriteError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID")
		return
	}

	var req request.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		respondWriteError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		respondWriteError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully")
}
