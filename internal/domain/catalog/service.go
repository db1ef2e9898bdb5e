package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"videorental/internal/domain/audit"
	"videorental/internal/pkg/apperr"
)

const minMovieYear = 1900

type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}

type Service struct {
	repo  *Repository
	audit AuditRecorder
	now   func() time.Time
}

func NewService(repo *Repository, recorder AuditRecorder) *Service {
	return &Service{repo: repo, audit: recorder, now: time.Now}
}

func (s *Service) ListGenres(ctx context.Context, activeOnly bool) ([]Genre, error) {
	return s.repo.ListGenres(ctx, activeOnly)
}

func (s *Service) GetGenre(ctx context.Context, id int64) (*Genre, error) {
	return s.repo.GetGenre(ctx, id)
}

func (s *Service) CreateGenre(ctx context.Context, staffID int64, req GenreRequest) (*Genre, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrGenreNameNeeded
	}
	taken, err := s.repo.GenreNameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrGenreExists
	}

	g := &Genre{Name: name, Description: strings.TrimSpace(req.Description), IsActive: true}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}
	if err := s.repo.CreateGenre(ctx, g); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrGenreExists
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeGenreCreate,
		Action:     fmt.Sprintf("Created genre %q", g.Name),
		EntityType: audit.EntityGenre,
		EntityID:   g.ID,
	})
	return g, nil
}

func (s *Service) UpdateGenre(ctx context.Context, staffID, id int64, req UpdateGenreRequest) (*Genre, error) {
	g, err := s.repo.GetGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrGenreNameNeeded
		}
		taken, err := s.repo.GenreNameTaken(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrGenreExists
		}
		g.Name = name
	}
	if req.Description != nil {
		g.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}
	if err := s.repo.SaveGenre(ctx, g); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrGenreExists
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeGenreUpdate,
		Action:     fmt.Sprintf("Updated genre %q", g.Name),
		EntityType: audit.EntityGenre,
		EntityID:   g.ID,
	})
	return g, nil
}

func (s *Service) DeleteGenre(ctx context.Context, staffID, id int64) error {
	var name string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		g, err := tx.GetGenre(ctx, id)
		if err != nil {
			return err
		}
		name = g.Name
		n, err := tx.CountMoviesWithGenre(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrGenreInUse
		}
		return tx.DeleteGenre(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeGenreDelete,
		Action:     fmt.Sprintf("Deleted genre %q", name),
		EntityType: audit.EntityGenre,
		EntityID:   id,
	})
	return nil
}

func (s *Service) ListMovies(ctx context.Context, f MovieFilter) (*MovieListResponse, error) {
	movies, total, err := s.repo.ListMovies(ctx, f)
	if err != nil {
		return nil, err
	}
	return &MovieListResponse{Movies: movies, Total: total}, nil
}

func (s *Service) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	return s.repo.GetMovie(ctx, id)
}

// MovieGenreIDs resolves a title's genres; unknown titles are NotFound.
func (s *Service) MovieGenreIDs(ctx context.Context, movieID int64) ([]int64, error) {
	m, err := s.repo.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return m.GenreIDs(), nil
}

func (s *Service) CreateMovie(ctx context.Context, staffID int64, req CreateMovieRequest) (*Movie, error) {
	m := &Movie{
		Title:       strings.TrimSpace(req.Title),
		Director:    strings.TrimSpace(req.Director),
		Year:        req.Year,
		Duration:    req.Duration,
		Description: strings.TrimSpace(req.Description),
		CoverURL:    strings.TrimSpace(req.CoverURL),
		Rating:      req.Rating,
		IsActive:    true,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.validateMovie(m); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}
	m.Genres = genres

	if err := s.repo.CreateMovie(ctx, m); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeMovieCreate,
		Action:     fmt.Sprintf("Created movie %q (%d)", m.Title, m.Year),
		EntityType: audit.EntityMovie,
		EntityID:   m.ID,
	})
	return m, nil
}

func (s *Service) UpdateMovie(ctx context.Context, staffID, id int64, req UpdateMovieRequest) (*Movie, error) {
	m, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Director != nil {
		m.Director = strings.TrimSpace(*req.Director)
	}
	if req.Year != nil {
		m.Year = *req.Year
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.Description != nil {
		m.Description = strings.TrimSpace(*req.Description)
	}
	if req.CoverURL != nil {
		m.CoverURL = strings.TrimSpace(*req.CoverURL)
	}
	if req.Rating != nil {
		m.Rating = *req.Rating
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.validateMovie(m); err != nil {
		return nil, err
	}
	if req.GenreIDs != nil {
		genres, err := s.resolveGenres(ctx, *req.GenreIDs)
		if err != nil {
			return nil, err
		}
		m.Genres = genres
	}

	if err := s.repo.SaveMovie(ctx, m); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeMovieUpdate,
		Action:     fmt.Sprintf("Updated movie %q", m.Title),
		EntityType: audit.EntityMovie,
		EntityID:   m.ID,
	})
	return m, nil
}

// DeleteMovie refuses while any media unit of the title exists.
func (s *Service) DeleteMovie(ctx context.Context, staffID, id int64) error {
	var title string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		m, err := tx.GetMovie(ctx, id)
		if err != nil {
			return err
		}
		title = m.Title
		n, err := tx.CountUnitsForMovie(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrMovieHasUnits
		}
		return tx.DeleteMovie(ctx, m)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeMovieDelete,
		Action:     fmt.Sprintf("Deleted movie %q", title),
		EntityType: audit.EntityMovie,
		EntityID:   id,
	})
	return nil
}

func (s *Service) validateMovie(m *Movie) error {
	if m.Title == "" {
		return ErrTitleRequired
	}
	if m.Year < minMovieYear || m.Year > s.now().Year() {
		return ErrInvalidYear
	}
	if m.Rating != "" && !m.Rating.Valid() {
		return ErrInvalidRating
	}
	if m.Duration < 0 {
		return apperr.Validation("duration must not be negative")
	}
	return nil
}

func (s *Service) resolveGenres(ctx context.Context, ids []int64) ([]Genre, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, ErrGenresRequired
	}
	genres, err := s.repo.FindGenres(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, ErrUnknownGenre
	}
	return genres, nil
}
