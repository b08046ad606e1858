package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestEmailExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ana@studio.io").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.EmailExists(context.Background(), "ana@studio.io")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersByIDsEmptySkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountGormRepository(db)

	users, err := repo.ListUsersByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceNumberExistsIsGlobal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE invoice_number = \$1`).
		WithArgs("INV-01012024123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.NumberExists(context.Background(), "INV-01012024123")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkProjectOnlyWhenUnlinked(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET .*linked_invoice_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	linked, err := repo.LinkProject(context.Background(), 4, 9)
	require.NoError(t, err)
	assert.True(t, linked)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET .*linked_invoice_id IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	linked, err = repo.LinkProject(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.False(t, linked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlugTakenByOther(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPortfolioGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "portfolios" WHERE slug = \$1 AND workspace_id <> \$2`).
		WithArgs("studio", 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.SlugTakenByOther(context.Background(), "studio", 3)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
