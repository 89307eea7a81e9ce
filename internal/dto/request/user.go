package request

type CreateUserRequest struct {
	Email string  `json:"email" validate:"required,email,max=255"`
	Name  string  `json:"name" validate:"required,notblank,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}

// UpdateUserRequest has no email field: email is fixed once the user exists
type UpdateUserRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}
