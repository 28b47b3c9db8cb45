package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// ErrDuplicatePlateNumber is returned when a vehicle's plate number collides
// with an existing vehicle.
var ErrDuplicatePlateNumber = errors.New("vehicle plate number already exists")

// VehicleRepository handles database operations for the vehicles table
type VehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, plate_number, capacity, car_type, amenities)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		vehicle.ID, vehicle.Name, vehicle.PlateNumber, vehicle.Capacity,
		vehicle.CarType, vehicle.Amenities,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicatePlateNumber
	}
	return err
}

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(id string) (*models.Vehicle, error) {
	query := `
		SELECT id, name, plate_number, capacity, car_type, amenities, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	var vehicle models.Vehicle
	if err := r.db.Get(&vehicle, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// List retrieves vehicles ordered by name with limit/offset pagination
func (r *VehicleRepository) List(limit, offset int) ([]models.Vehicle, error) {
	query := `
		SELECT id, name, plate_number, capacity, car_type, amenities, created_at, updated_at
		FROM vehicles
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	vehicles := []models.Vehicle{}
	if err := r.db.Select(&vehicles, query, limit, offset); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Count returns the total number of vehicles
func (r *VehicleRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM vehicles`)
	return count, err
}

// Update replaces a vehicle's editable fields
func (r *VehicleRepository) Update(vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, plate_number = $3, capacity = $4, car_type = $5,
			amenities = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		vehicle.ID, vehicle.Name, vehicle.PlateNumber, vehicle.Capacity,
		vehicle.CarType, vehicle.Amenities,
	).Scan(&vehicle.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicatePlateNumber
	}
	return err
}

// Delete removes a vehicle
func (r *VehicleRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
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
