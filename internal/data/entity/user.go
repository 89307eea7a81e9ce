package entity

type User struct {
	Base
	Email string  `db:"email"`
	Name  string  `db:"name"`
	Phone *string `db:"phone"`
}
