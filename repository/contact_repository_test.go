package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedContactRepository(t *testing.T) (ContactRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewContactRepository(gormDB), mock
}

func TestContactRepository_UpdateCapabilityIfNumberMatches_Applies(t *testing.T) {
	repo, mock := newMockedContactRepository(t)

	checkedAt := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contacts" SET .+ WHERE id = \$\d+ AND number = \$\d+`).
		WithArgs(true, checkedAt, false, sqlmock.AnyArg(), 42, "+919876543210").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := repo.UpdateCapabilityIfNumberMatches(context.Background(), 42, "+919876543210", true, checkedAt)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateCapabilityIfNumberMatches_MissesWhenNumberChanged(t *testing.T) {
	repo, mock := newMockedContactRepository(t)

	checkedAt := time.Now().UTC()

	// The verdict was obtained for a number the record no longer holds, so
	// the guarded update matches zero rows and the record keeps the state
	// the edit gave it.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contacts" SET .+ WHERE id = \$\d+ AND number = \$\d+`).
		WithArgs(false, checkedAt, false, sqlmock.AnyArg(), 42, "+919876543210").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	applied, err := repo.UpdateCapabilityIfNumberMatches(context.Background(), 42, "+919876543210", false, checkedAt)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateNumber_ResetsCapabilityState(t *testing.T) {
	repo, mock := newMockedContactRepository(t)

	// Replacing the number wipes the verdict and the in-flight flag in one
	// statement. A missing "checking" column here would strand a record in
	// Checking forever once its guarded verdict apply misses.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contacts" SET "capable"=\$\d+,"checked_at"=\$\d+,"checking"=\$\d+,"number"=\$\d+,"updated_at"=\$\d+ WHERE id = \$\d+`).
		WithArgs(nil, nil, false, "+919876500000", sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateNumber(context.Background(), 7, "+919876500000")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeleteByIDs_ReportsRowsAffected(t *testing.T) {
	repo, mock := newMockedContactRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "contacts" WHERE id IN \(\$\d+,\$\d+,\$\d+\)`).
		WithArgs(3, 5, 9).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	removed, err := repo.DeleteByIDs(context.Background(), []uint{3, 5, 9})
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeleteByIDs_EmptySliceTouchesNothing(t *testing.T) {
	repo, mock := newMockedContactRepository(t)

	removed, err := repo.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
