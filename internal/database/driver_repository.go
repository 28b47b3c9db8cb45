package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// ErrDuplicateDriverDetails is returned when a driver's phone number or
// license number collides with an existing driver.
var ErrDuplicateDriverDetails = errors.New("driver phone or license number already exists")

// DriverRepository handles database operations for the drivers table
type DriverRepository struct {
	db DB
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create creates a new driver
func (r *DriverRepository) Create(driver *models.Driver) error {
	query := `
		INSERT INTO drivers (id, first_name, last_name, phone_number, license_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if driver.ID == "" {
		driver.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		driver.ID, driver.FirstName, driver.LastName, driver.PhoneNumber, driver.LicenseNumber,
	).Scan(&driver.CreatedAt, &driver.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateDriverDetails
	}
	return err
}

// GetByID retrieves a driver by ID
func (r *DriverRepository) GetByID(id string) (*models.Driver, error) {
	query := `
		SELECT id, first_name, last_name, phone_number, license_number, created_at, updated_at
		FROM drivers
		WHERE id = $1
	`

	var driver models.Driver
	if err := r.db.Get(&driver, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// List retrieves drivers ordered by last name with limit/offset pagination
func (r *DriverRepository) List(limit, offset int) ([]models.Driver, error) {
	query := `
		SELECT id, first_name, last_name, phone_number, license_number, created_at, updated_at
		FROM drivers
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`

	drivers := []models.Driver{}
	if err := r.db.Select(&drivers, query, limit, offset); err != nil {
		return nil, err
	}
	return drivers, nil
}

// Count returns the total number of drivers
func (r *DriverRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM drivers`)
	return count, err
}

// Update replaces a driver's editable fields
func (r *DriverRepository) Update(driver *models.Driver) error {
	query := `
		UPDATE drivers
		SET first_name = $2, last_name = $3, phone_number = $4,
			license_number = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		driver.ID, driver.FirstName, driver.LastName, driver.PhoneNumber, driver.LicenseNumber,
	).Scan(&driver.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateDriverDetails
	}
	return err
}

// Delete removes a driver
func (r *DriverRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM drivers WHERE id = $1`, id)
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
