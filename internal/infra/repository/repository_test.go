package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
	"github.com/BruksfildServices01/barber-club/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestMarkPaidIsOneUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommissionGormRepository(db)

	start := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "commissions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkPaid(context.Background(), 1, []uint{10, 11}, start, end, end)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderClaimOnlyOnce(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReminderGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reminder_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reminder_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	first := &models.ReminderLog{AppointmentID: 5, MinutesBefore: 60, Status: "sent"}
	ok, err := repo.Claim(context.Background(), first)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(7), first.ID)

	again := &models.ReminderLog{AppointmentID: 5, MinutesBefore: 60, Status: "sent"}
	ok, err = repo.Claim(context.Background(), again)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopTimezone(t *testing.T) {
	db, mock := newMockDB(t)
	shops := NewShopGormRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "barbershops"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timezone"}).AddRow(1, "America/Manaus"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "barbershops"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timezone"}))

	tz, err := shops.Timezone(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "America/Manaus", tz)

	_, err = shops.Timezone(context.Background(), 2)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
