package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Error mocking DB")

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: NewGormLogger(zap.NewNop())})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "Expectations were not met")
		_ = sqlDB.Close()
	})
	return NewStore(db, time.Second), mock
}

func TestStoreWrapsBackendErrors(t *testing.T) {
	store, mock := newMockStore(t)
	dbErr := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

	mock.ExpectQuery(`SELECT \* FROM "KPI_Users" WHERE upper\(name_code\) = upper\(\$1\) LIMIT \$2`).
		WithArgs("E001", 1).
		WillReturnError(dbErr)

	u, err := store.FindUserByCode(context.Background(), "E001")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrBackend)
	assert.ErrorIs(t, err, dbErr)
}

func TestStoreRoundsQueryShape(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "rounds" WHERE upper\(manv\) = upper\(\$1\) AND ngay_txt = \$2 ORDER BY gio_di ASC NULLS LAST,id ASC`).
		WithArgs("E001", "2024-01-15").
		WillReturnRows(sqlmock.NewRows([]string{"id", "manv", "ma_vong", "bien_so", "gio_di", "gio_ve", "ngay_txt"}).
			AddRow(int64(1), "E001", "V1", "51A-12345", "08:00", nil, "2024-01-15"))

	rounds, err := store.FindRoundsForUserOnDate(context.Background(), "E001", "2024-01-15")
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, "51A-12345", rounds[0].Plate.String())
	assert.Equal(t, "", rounds[0].EndTime.String())
}

func TestStoreActiveUsersError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "KPI_Users" WHERE upper\(coalesce\(active, ''\)\) LIKE \$1 ORDER BY name_code LIMIT`).
		WillReturnError(context.DeadlineExceeded)

	users, err := store.FindUsersActive(context.Background())
	assert.Empty(t, users)
	assert.ErrorIs(t, err, ErrBackend)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
