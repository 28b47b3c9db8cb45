package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

func sampleDriver() *models.Driver {
	return &models.Driver{
		FirstName:     "John",
		LastName:      "Doe",
		PhoneNumber:   "+2348012345678",
		LicenseNumber: "DL-99881",
	}
}

func TestDriverRepositoryCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDriverRepository(db)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO drivers`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		driver := sampleDriver()
		err := repo.Create(driver)
		require.NoError(t, err)
		assert.NotEmpty(t, driver.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Phone Or License", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDriverRepository(db)

		mock.ExpectQuery(`INSERT INTO drivers`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(sampleDriver())
		assert.ErrorIs(t, err, ErrDuplicateDriverDetails)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDriverRepositoryUpdateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDriverRepository(db)

	mock.ExpectQuery(`UPDATE drivers`).
		WillReturnError(&pq.Error{Code: "23505"})

	driver := sampleDriver()
	driver.ID = "driver-1"
	err := repo.Update(driver)
	assert.ErrorIs(t, err, ErrDuplicateDriverDetails)
	assert.NoError(t, mock.ExpectationsWereMet())
}
