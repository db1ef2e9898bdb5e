package employee

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// PasswordCost is the bcrypt cost used for new hashes.
const PasswordCost = 12

type Employee struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	FullName     string     `gorm:"size:200;not null" json:"full_name"`
	Login        string     `gorm:"size:50;not null;uniqueIndex" json:"login"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Email        string     `gorm:"size:200" json:"email,omitempty"`
	Phone        string     `gorm:"size:30" json:"phone,omitempty"`
	Role         Role       `gorm:"size:20;not null;index" json:"role"`
	IsActive     bool       `gorm:"not null;index" json:"is_active"`
	Avatar       string     `gorm:"size:500" json:"avatar,omitempty"`
	Bio          string     `gorm:"size:1000" json:"bio,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	HireDate     time.Time  `json:"hire_date"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) IsAdmin() bool { return e.Role == RoleAdmin }

// CheckPassword reports whether password matches the stored hash.
func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes password with the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Stats counts the rentals an employee has processed.
type Stats struct {
	RentalsProcessed int64 `json:"total_rentals_processed"`
	ReturnsProcessed int64 `json:"total_returns_processed"`
}

// WithStats is an employee together with processing counters.
type WithStats struct {
	*Employee
	Stats Stats `json:"stats"`
}
