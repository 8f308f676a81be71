package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionParamsDSN(t *testing.T) {
	p := ConnectionParams{Host: "db", Port: "5432", User: "bot", Password: "secret", DBName: "signals", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=bot password=secret dbname=signals sslmode=disable", p.DSN())
}

func TestMigrate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS signal_cooldowns").WillReturnResult(sqlmock.NewResult(0, 0))

	db := Wrap(sqlx.NewDb(mockDB, "sqlmock"))
	require.NoError(t, db.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
