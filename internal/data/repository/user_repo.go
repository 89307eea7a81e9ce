package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/database"
	"cinema-reservations/pkg/errs"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, name, phone, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and fills in the generated id and timestamps
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := ur.db.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Phone,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if isUniqueViolation(err) {
		return errs.Conflict("User with email %s already exists", user.Email)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return errs.Internal(err, fmt.Sprintf("create user %s", user.Email))
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, errs.Internal(err, fmt.Sprintf("find user by ID %d", id))
	}

	return user, nil
}

func (ur *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := ur.db.Query(ctx, query, ids)
	if err != nil {
		ur.log.Error("Failed to find users by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, errs.Internal(err, "find users by IDs")
	}
	defer rows.Close()

	return ur.collect(rows)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, errs.Internal(err, fmt.Sprintf("find user by email %s", email))
	}

	return user, nil
}

func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to find all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, errs.Internal(err, "find all users")
	}
	defer rows.Close()

	return ur.collect(rows)
}

func (ur *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := ur.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		ur.log.Error("Failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, errs.Internal(err, fmt.Sprintf("check email %s exists", email))
	}
	return exists, nil
}

// Update writes name and phone. Email is immutable after creation.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return errs.Internal(err, fmt.Sprintf("update user %d", user.ID))
	}

	if result.RowsAffected() == 0 {
		return errs.NotFound("User not found with id: %d", user.ID)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return errs.Conflict("User %d still has reservations", id)
	}
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return errs.Internal(err, fmt.Sprintf("delete user %d", id))
	}

	if result.RowsAffected() == 0 {
		return errs.NotFound("User not found with id: %d", id)
	}

	ur.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

func (ur *userRepository) collect(rows pgx.Rows) ([]*entity.User, error) {
	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, errs.Internal(err, "scan user row")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err, "iterate user rows")
	}

	return users, nil
}
