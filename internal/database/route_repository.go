package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// ErrDuplicateRouteName is returned when a route's name collides with an
// existing route.
var ErrDuplicateRouteName = errors.New("route name already exists")

// RouteRepository handles database operations for the routes table
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create creates a new route
func (r *RouteRepository) Create(route *models.Route) error {
	query := `
		INSERT INTO routes (id, name, segments, is_featured, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if route.ID == "" {
		route.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		route.ID, route.Name, route.Segments, route.IsFeatured, route.ImageURL,
	).Scan(&route.CreatedAt, &route.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateRouteName
	}
	return err
}

// GetByID retrieves a route by ID
func (r *RouteRepository) GetByID(id string) (*models.Route, error) {
	query := `
		SELECT id, name, segments, is_featured, image_url, created_at, updated_at
		FROM routes
		WHERE id = $1
	`

	var route models.Route
	if err := r.db.Get(&route, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

// List retrieves routes ordered by name with limit/offset pagination
func (r *RouteRepository) List(limit, offset int) ([]models.Route, error) {
	query := `
		SELECT id, name, segments, is_featured, image_url, created_at, updated_at
		FROM routes
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	routes := []models.Route{}
	if err := r.db.Select(&routes, query, limit, offset); err != nil {
		return nil, err
	}
	return routes, nil
}

// Count returns the total number of routes
func (r *RouteRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM routes`)
	return count, err
}

// GetFeatured retrieves up to limit featured routes, newest first
func (r *RouteRepository) GetFeatured(limit int) ([]models.Route, error) {
	query := `
		SELECT id, name, segments, is_featured, image_url, created_at, updated_at
		FROM routes
		WHERE is_featured = true
		ORDER BY created_at DESC
		LIMIT $1
	`

	routes := []models.Route{}
	if err := r.db.Select(&routes, query, limit); err != nil {
		return nil, err
	}
	return routes, nil
}

// GetAll retrieves every route. Used by trip search, which matches segment
// chains in memory.
func (r *RouteRepository) GetAll() ([]models.Route, error) {
	query := `
		SELECT id, name, segments, is_featured, image_url, created_at, updated_at
		FROM routes
		ORDER BY name
	`

	routes := []models.Route{}
	if err := r.db.Select(&routes, query); err != nil {
		return nil, err
	}
	return routes, nil
}

// DistinctOrigins returns the sorted set of segment origins across all routes
func (r *RouteRepository) DistinctOrigins() ([]string, error) {
	query := `
		SELECT DISTINCT seg->>'origin' AS origin
		FROM routes, jsonb_array_elements(segments) AS seg
		ORDER BY origin
	`

	origins := []string{}
	if err := r.db.Select(&origins, query); err != nil {
		return nil, err
	}
	return origins, nil
}

// DistinctDestinations returns the sorted set of segment destinations across all routes
func (r *RouteRepository) DistinctDestinations() ([]string, error) {
	query := `
		SELECT DISTINCT seg->>'destination' AS destination
		FROM routes, jsonb_array_elements(segments) AS seg
		ORDER BY destination
	`

	destinations := []string{}
	if err := r.db.Select(&destinations, query); err != nil {
		return nil, err
	}
	return destinations, nil
}

// Update replaces a route's editable fields
func (r *RouteRepository) Update(route *models.Route) error {
	query := `
		UPDATE routes
		SET name = $2, segments = $3, is_featured = $4, image_url = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		route.ID, route.Name, route.Segments, route.IsFeatured, route.ImageURL,
	).Scan(&route.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateRouteName
	}
	return err
}

// Delete removes a route
func (r *RouteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
