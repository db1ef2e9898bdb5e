package catalog

import "time"

type Genre struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Genre) TableName() string { return "genres" }

type Rating string

const (
	RatingG    Rating = "G"
	RatingPG   Rating = "PG"
	RatingPG13 Rating = "PG-13"
	RatingR    Rating = "R"
	RatingNC17 Rating = "NC-17"
)

func (r Rating) Valid() bool {
	switch r {
	case RatingG, RatingPG, RatingPG13, RatingR, RatingNC17:
		return true
	}
	return false
}

// Movie is a catalog title. It is not rentable itself; media units are.
type Movie struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:300;not null;index" json:"title"`
	Director    string    `gorm:"size:200" json:"director,omitempty"`
	Year        int       `gorm:"not null" json:"year"`
	Duration    int       `json:"duration,omitempty"`
	Description string    `gorm:"size:2000" json:"description,omitempty"`
	CoverURL    string    `gorm:"size:500" json:"cover_url,omitempty"`
	Rating      Rating    `gorm:"size:10" json:"rating,omitempty"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	Genres      []Genre   `gorm:"many2many:movie_genres" json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Movie) TableName() string { return "movies" }

func (m *Movie) GenreIDs() []int64 {
	ids := make([]int64, 0, len(m.Genres))
	for _, g := range m.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

type MovieFilter struct {
	Search   string
	GenreID  int64
	IsActive *bool
	Limit    int
	Offset   int
}
