package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photoRowColumns = []string{"id", "title", "description", "image_url", "user_id", "username", "likes", "views", "tags", "created_at"}

func newPhotoRepoWithMock(t *testing.T) (*PhotoRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPhotoRepository(db), mock
}

func TestPhotoRepositoryGet(t *testing.T) {
	repo, mock := newPhotoRepoWithMock(t)
	createdAt := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM photos WHERE id = \$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(photoRowColumns).
			AddRow("p1", "Sunset", "desc", "https://img", "u1", "admin", 24, 128, []byte(`["sunset","nature"]`), createdAt))

	photo, err := repo.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Sunset", photo.Title)
	assert.Equal(t, []string{"sunset", "nature"}, photo.Tags)
	assert.Equal(t, 24, photo.Likes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepositoryIncrementLikesNotFound(t *testing.T) {
	repo, mock := newPhotoRepoWithMock(t)

	mock.ExpectQuery(`UPDATE photos SET likes = likes \+ 1 WHERE id = \$1 RETURNING`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(photoRowColumns))

	_, err := repo.IncrementLikes(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPhotoRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newPhotoRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM photos WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
