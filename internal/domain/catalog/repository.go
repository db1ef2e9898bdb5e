package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"videorental/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// genres

func (r *Repository) ListGenres(ctx context.Context, activeOnly bool) ([]Genre, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []Genre
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetGenre(ctx context.Context, id int64) (*Genre, error) {
	var g Genre
	err := r.db.WithContext(ctx).First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGenreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) FindGenres(ctx context.Context, ids []int64) ([]Genre, error) {
	var out []Genre
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// GenreNameTaken compares names case-insensitively.
func (r *Repository) GenreNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&Genre{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) CreateGenre(ctx context.Context, g *Genre) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *Repository) SaveGenre(ctx context.Context, g *Genre) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *Repository) CountMoviesWithGenre(ctx context.Context, genreID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("movie_genres").Where("genre_id = ?", genreID).Count(&n).Error
	return n, err
}

func (r *Repository) DeleteGenre(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Genre{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGenreNotFound
	}
	return nil
}

// movies

func (r *Repository) ListMovies(ctx context.Context, f MovieFilter) ([]Movie, int64, error) {
	q := r.db.WithContext(ctx).Model(&Movie{})
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(director) LIKE ?)", like, like)
	}
	if f.GenreID > 0 {
		q = q.Where("id IN (?)", r.db.Table("movie_genres").Select("movie_id").Where("genre_id = ?", f.GenreID))
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Preload("Genres").Order("title ASC")
	if f.Limit > 0 {
		page = page.Limit(f.Limit).Offset(f.Offset)
	}
	var out []Movie
	err := page.Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	var m Movie
	err := r.db.WithContext(ctx).Preload("Genres").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) CreateMovie(ctx context.Context, m *Movie) error {
	return r.db.WithContext(ctx).Omit("Genres.*").Create(m).Error
}

// SaveMovie writes the movie and replaces its genre links.
func (r *Repository) SaveMovie(ctx context.Context, m *Movie) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	return db.Model(m).Omit("Genres.*").Association("Genres").Replace(m.Genres)
}

func (r *Repository) CountUnitsForMovie(ctx context.Context, movieID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(domain.MediaUnitsTable).Where("movie_id = ?", movieID).Count(&n).Error
	return n, err
}

func (r *Repository) DeleteMovie(ctx context.Context, m *Movie) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(m).Association("Genres").Clear(); err != nil {
		return err
	}
	return db.Delete(&Movie{}, m.ID).Error
}
