package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// AdminUserRepository handles database operations for the admin_users table
type AdminUserRepository struct {
	db DB
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(user *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = "admin"
	}

	return r.db.QueryRow(
		query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// GetByEmail retrieves an admin user by email
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`

	var user models.AdminUser
	if err := r.db.Get(&user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves an admin user by ID
func (r *AdminUserRepository) GetByID(id string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM admin_users
		WHERE id = $1
	`

	var user models.AdminUser
	if err := r.db.Get(&user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
