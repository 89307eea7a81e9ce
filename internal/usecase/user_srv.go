package usecase

import (
	"context"
	"strings"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/internal/data/repository"
	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/dto/response"
	"cinema-reservations/pkg/clock"
	"cinema-reservations/pkg/errs"

	"go.uber.org/zap"
)

type UserService interface {
	ListUsers(ctx context.Context, req request.ListRequest) ([]*response.UserResponse, error)
	ListUserSummaries(ctx context.Context, req request.ListRequest) ([]response.UserSummaryResponse, error)
	GetUser(ctx context.Context, id int64) (*response.UserResponse, error)
	GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	userRepo repository.UserRepository
	clock    clock.Clock
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, clk clock.Clock, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		clock:    clk,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) ListUsers(ctx context.Context, req request.ListRequest) ([]*response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	result := make([]*response.UserResponse, 0, len(users))
	for _, user := range users {
		resp, err := response.UserToResponse(user)
		if err != nil {
			return nil, errs.Internal(err, "project user")
		}
		result = append(result, resp)
	}
	return result, nil
}

func (us *userService) ListUserSummaries(ctx context.Context, req request.ListRequest) ([]response.UserSummaryResponse, error) {
	users, err := us.userRepo.FindAll(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	result := make([]response.UserSummaryResponse, 0, len(users))
	for _, user := range users {
		summary, err := response.UserToSummary(user)
		if err != nil {
			return nil, errs.Internal(err, "project user summary")
		}
		result = append(result, summary)
	}
	return result, nil
}

func (us *userService) GetUser(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("User not found with id: %d", id)
	}
	return us.project(user)
}

func (us *userService) GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("User not found with email: %s", email)
	}
	return us.project(user)
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := us.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		us.log.Warn("Duplicate email on create", zap.String("email", email))
		return nil, errs.Conflict("User with email %s already exists", email)
	}

	now := us.clock.Now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email: email,
		Name:  strings.TrimSpace(req.Name),
		Phone: req.Phone,
	}

	// the unique index still catches a concurrent create with the same email
	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User created", zap.Int64("user_id", user.ID))
	return us.project(user)
}

func (us *userService) UpdateUser(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("User not found with id: %d", id)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = req.Phone
	user.UpdatedAt = us.clock.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return us.project(user)
}

func (us *userService) DeleteUser(ctx context.Context, id int64) error {
	return us.userRepo.Delete(ctx, id)
}

func (us *userService) project(user *entity.User) (*response.UserResponse, error) {
	resp, err := response.UserToResponse(user)
	if err != nil {
		return nil, errs.Internal(err, "project user")
	}
	return resp, nil
}
