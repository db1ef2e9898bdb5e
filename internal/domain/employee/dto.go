package employee

import "time"

type CreateEmployeeRequest struct {
	FullName  string     `json:"full_name" validate:"required,max=200"`
	Login     string     `json:"login" validate:"required,min=3,max=50"`
	Password  string     `json:"password" validate:"required,min=6"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Phone     string     `json:"phone" validate:"omitempty,phone"`
	Role      Role       `json:"role" validate:"omitempty,oneof=admin cashier"`
	IsActive  *bool      `json:"is_active"`
	Bio       string     `json:"bio" validate:"max=1000"`
	BirthDate *time.Time `json:"birth_date"`
	HireDate  *time.Time `json:"hire_date"`
}

// UpdateEmployeeRequest is a partial admin update.
type UpdateEmployeeRequest struct {
	FullName  *string    `json:"full_name" validate:"omitempty,max=200"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone" validate:"omitempty,phone"`
	Role      *Role      `json:"role" validate:"omitempty,oneof=admin cashier"`
	IsActive  *bool      `json:"is_active"`
	Password  *string    `json:"password" validate:"omitempty,min=6"`
	Avatar    *string    `json:"avatar" validate:"omitempty,max=500"`
	Bio       *string    `json:"bio" validate:"omitempty,max=1000"`
	BirthDate *time.Time `json:"birth_date"`
	HireDate  *time.Time `json:"hire_date"`
}

// ProfileUpdate holds the fields employees may change on themselves.
type ProfileUpdate struct {
	FullName  *string    `json:"full_name" validate:"omitempty,max=200"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Phone     *string    `json:"phone" validate:"omitempty,phone"`
	Avatar    *string    `json:"avatar" validate:"omitempty,max=500"`
	Bio       *string    `json:"bio" validate:"omitempty,max=1000"`
	BirthDate *time.Time `json:"birth_date"`
}
