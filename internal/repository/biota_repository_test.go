package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/models"
)

func biotaRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"id", "name", "location", "category", "description", "image", "photographer", "user_id", "created_at",
	})
}

func TestBiotaListNoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.
		ExpectQuery(regexp.QuoteMeta("FROM biota WHERE 1=1 ORDER BY created_at DESC")).
		WillReturnRows(biotaRows(t).
			AddRow(2, "Ikan Gabus", "Danau Panggang", "Ikan Air Tawar", "", "/uploads/b.jpg", "ardi", 1, time.Now()).
			AddRow(1, "Ikan Betok", "Sungai Barito", "Ikan Air Tawar", "", "/uploads/a.jpg", "ardi", 1, time.Now()))

	repo := NewBiotaRepository(db)
	entries, err := repo.List(context.Background(), models.BiotaFilters{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBiotaListSearchAndCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Search expands to three positional LIKE params; category follows
	// as an equality predicate ANDed on.
	mock.
		ExpectQuery(regexp.QuoteMeta("AND (name LIKE $1 OR description LIKE $2 OR location LIKE $3) AND category = $4")).
		WithArgs("%barito%", "%barito%", "%barito%", "Ikan Air Tawar").
		WillReturnRows(biotaRows(t).
			AddRow(1, "Ikan Betok", "Sungai Barito", "Ikan Air Tawar", "dari barito", "/uploads/a.jpg", "ardi", 1, time.Now()))

	repo := NewBiotaRepository(db)
	entries, err := repo.List(context.Background(), models.BiotaFilters{
		Search:   "barito",
		Category: "Ikan Air Tawar",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBiotaListLocationFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.
		ExpectQuery(regexp.QuoteMeta("AND location = $1 ORDER BY created_at DESC")).
		WithArgs("Sungai Barito").
		WillReturnRows(biotaRows(t))

	repo := NewBiotaRepository(db)
	entries, err := repo.List(context.Background(), models.BiotaFilters{Location: "Sungai Barito"})
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBiotaFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.
		ExpectQuery(regexp.QuoteMeta("FROM biota")).
		WithArgs(int64(404)).
		WillReturnRows(biotaRows(t))

	repo := NewBiotaRepository(db)
	_, err = repo.FindByID(context.Background(), 404)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestBiotaUpdateBuildsPatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	name := "Renamed"
	description := ""
	mock.
		ExpectExec(regexp.QuoteMeta("UPDATE biota SET name = $1, description = $2 WHERE id = $3")).
		WithArgs("Renamed", "", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBiotaRepository(db)
	err = repo.Update(context.Background(), 1, BiotaPatch{Name: &name, Description: &description})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBiotaUpdateEmptyPatch(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBiotaRepository(db)
	err = repo.Update(context.Background(), 1, BiotaPatch{})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestBiotaDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.
		ExpectExec(regexp.QuoteMeta("DELETE FROM biota WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBiotaRepository(db)
	err = repo.Delete(context.Background(), 7)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
