package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// AddOnRepository handles database operations for the add_ons table
type AddOnRepository struct {
	db DB
}

// NewAddOnRepository creates a new AddOnRepository
func NewAddOnRepository(db DB) *AddOnRepository {
	return &AddOnRepository{db: db}
}

// Create creates a new add-on
func (r *AddOnRepository) Create(addOn *models.AddOn) error {
	query := `
		INSERT INTO add_ons (id, name, description, price, pricing_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if addOn.ID == "" {
		addOn.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		addOn.ID, addOn.Name, addOn.Description, addOn.Price, addOn.PricingType, addOn.IsActive,
	).Scan(&addOn.CreatedAt, &addOn.UpdatedAt)
}

// GetByID retrieves an add-on by ID
func (r *AddOnRepository) GetByID(id string) (*models.AddOn, error) {
	query := `
		SELECT id, name, description, price, pricing_type, is_active, created_at, updated_at
		FROM add_ons
		WHERE id = $1
	`

	var addOn models.AddOn
	if err := r.db.Get(&addOn, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &addOn, nil
}

// GetActiveByIDs retrieves the active add-ons among the given IDs. Inactive
// or unknown IDs are silently dropped; callers decide how to treat misses.
func (r *AddOnRepository) GetActiveByIDs(ids []string) ([]models.AddOn, error) {
	query := `
		SELECT id, name, description, price, pricing_type, is_active, created_at, updated_at
		FROM add_ons
		WHERE id = ANY($1) AND is_active = true
	`

	addOns := []models.AddOn{}
	if err := r.db.Select(&addOns, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return addOns, nil
}

// List retrieves add-ons ordered by name with limit/offset pagination
func (r *AddOnRepository) List(limit, offset int) ([]models.AddOn, error) {
	query := `
		SELECT id, name, description, price, pricing_type, is_active, created_at, updated_at
		FROM add_ons
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	addOns := []models.AddOn{}
	if err := r.db.Select(&addOns, query, limit, offset); err != nil {
		return nil, err
	}
	return addOns, nil
}

// ListActive retrieves the add-ons currently offered to customers
func (r *AddOnRepository) ListActive() ([]models.AddOn, error) {
	query := `
		SELECT id, name, description, price, pricing_type, is_active, created_at, updated_at
		FROM add_ons
		WHERE is_active = true
		ORDER BY name
	`

	addOns := []models.AddOn{}
	if err := r.db.Select(&addOns, query); err != nil {
		return nil, err
	}
	return addOns, nil
}

// Count returns the total number of add-ons
func (r *AddOnRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM add_ons`)
	return count, err
}

// Update replaces an add-on's editable fields
func (r *AddOnRepository) Update(addOn *models.AddOn) error {
	query := `
		UPDATE add_ons
		SET name = $2, description = $3, price = $4, pricing_type = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	return r.db.QueryRow(
		query,
		addOn.ID, addOn.Name, addOn.Description, addOn.Price, addOn.PricingType, addOn.IsActive,
	).Scan(&addOn.UpdatedAt)
}

// Delete removes an add-on
func (r *AddOnRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM add_ons WHERE id = $1`, id)
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
