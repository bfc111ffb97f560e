package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestBackfillTimezones(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectExec(`UPDATE barbershops\s+SET timezone = \$1`).
		WithArgs("America/Sao_Paulo").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, backfillTimezones(db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBackfillTimezones_ReportsFailure(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectExec(`UPDATE barbershops`).
		WillReturnError(errors.New("relation \"barbershops\" does not exist"))

	err := backfillTimezones(db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backfill barbershop timezone")
}
