package category

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "created_at"}).
		AddRow(id, "Woody", "woody", time.Now())

	mock.ExpectQuery("SELECT c.id, c.name, c.slug, c.created_at").
		WithArgs(int32(20), int32(0)).
		WillReturnRows(rows)

	cats, err := repo.List(context.Background(), nil, nil, nil)
	assert.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "woody", cats[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryList_Filter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	filter := "flor"
	limit := int32(5)
	page := int32(2)

	mock.ExpectQuery("SELECT c.id, c.name, c.slug, c.created_at").
		WithArgs("%flor%", limit, int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at"}))

	cats, err := repo.List(context.Background(), &filter, &limit, &page)
	assert.NoError(t, err)
	assert.Empty(t, cats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO categories").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_slug_key"})

	_, err = repo.Create(context.Background(), "Woody", "woody")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
