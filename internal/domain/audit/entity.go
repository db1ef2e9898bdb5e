package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Retention is how long entries are kept before Purge removes them.
const Retention = 365 * 24 * time.Hour

type Type string

const (
	TypeLogin Type = "login"

	TypeClientCreate Type = "client_create"
	TypeClientUpdate Type = "client_update"
	TypeClientDelete Type = "client_delete"

	TypeRentalCreate  Type = "rental_create"
	TypeRentalReturn  Type = "rental_return"
	TypeRentalDeleted Type = "rental_deleted"

	TypeMovieCreate Type = "movie_create"
	TypeMovieUpdate Type = "movie_update"
	TypeMovieDelete Type = "movie_delete"

	TypeCassetteCreate Type = "cassette_create"
	TypeCassetteUpdate Type = "cassette_update"
	TypeCassetteDelete Type = "cassette_delete"

	TypeGenreCreate Type = "genre_create"
	TypeGenreUpdate Type = "genre_update"
	TypeGenreDelete Type = "genre_delete"

	TypeTariffCreate Type = "tariff_create"
	TypeTariffUpdate Type = "tariff_update"
	TypeTariffDelete Type = "tariff_delete"

	TypeEmployeeCreate Type = "employee_create"
	TypeEmployeeUpdate Type = "employee_update"
	TypeEmployeeDelete Type = "employee_delete"
)

const (
	EntityAuth     = "auth"
	EntityClient   = "clients"
	EntityRental   = "rentals"
	EntityMovie    = "movies"
	EntityCassette = "cassettes"
	EntityGenre    = "genres"
	EntityTariff   = "tariffs"
	EntityEmployee = "employees"
)

// Event is what services hand to the recorder.
type Event struct {
	EmployeeID int64
	Type       Type
	Action     string
	EntityType string
	EntityID   int64
	Details    map[string]any
}

// Entry is a stored audit record. Entries are only ever inserted or purged.
type Entry struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID int64             `gorm:"not null;index" json:"employee_id"`
	Type       Type              `gorm:"size:40;not null;index" json:"type"`
	Action     string            `gorm:"size:500;not null" json:"action"`
	EntityType string            `gorm:"size:40" json:"entity_type,omitempty"`
	EntityID   int64             `gorm:"index" json:"entity_id,omitempty"`
	Details    datatypes.JSONMap `json:"details,omitempty"`
	IP         string            `gorm:"size:64" json:"ip"`
	UserAgent  string            `gorm:"size:500" json:"user_agent"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"created_at"`
	ExpiresAt  time.Time         `gorm:"not null;index" json:"expires_at"`
}

func (Entry) TableName() string { return "audit_log_entries" }

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	EmployeeID int64
	Type       Type
	EntityType string
	Limit      int
	Offset     int
}

type LoginRecord struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
}
