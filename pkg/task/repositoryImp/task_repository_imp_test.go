package repositoryImp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gardenguru/database"
	"gardenguru/entities"
	"gardenguru/pkg/apperr"
)

func openDB(t *testing.T) *taskRepo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return &taskRepo{db}
}

func seed(t *testing.T, r *taskRepo) {
	t.Helper()
	require.NoError(t, r.BulkInsert(context.Background(), []entities.Task{
		{ID: "t1", OwnerID: "u1", PlantID: "p1", TaskType: entities.TaskWatering, DueDate: "2024-06-03"},
		{ID: "t2", OwnerID: "u1", PlantID: "p1", TaskType: entities.TaskWatering, DueDate: "2024-06-01", Tips: []string{"morning"}},
		{ID: "t3", OwnerID: "u1", PlantID: "p2", TaskType: entities.TaskPruning, DueDate: "2024-06-10"},
		{ID: "t4", OwnerID: "u2", PlantID: "p9", TaskType: entities.TaskWatering, DueDate: "2024-06-02"},
	}))
}

func TestBulkInsertEmpty(t *testing.T) {
	r := openDB(t)
	assert.NoError(t, r.BulkInsert(context.Background(), nil))
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	r := openDB(t)
	seed(t, r)

	all, err := r.ListByOwner(ctx, "u1", "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "t2", all[0].ID)
	assert.Equal(t, []string{"morning"}, all[0].Tips)
	assert.Nil(t, all[0].CompletionDate)

	ranged, err := r.ListByOwner(ctx, "u1", "2024-06-02", "2024-06-03")
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "t1", ranged[0].ID)
}

func TestCompleteOnce(t *testing.T) {
	ctx := context.Background()
	r := openDB(t)
	seed(t, r)

	got, err := r.Complete(ctx, "t1", "u1", "2024-06-03")
	require.NoError(t, err)
	require.NotNil(t, got.CompletionDate)
	assert.Equal(t, "2024-06-03", *got.CompletionDate)

	stored, err := r.FindByID(ctx, "t1", "u1")
	require.NoError(t, err)
	require.NotNil(t, stored.CompletionDate)
	assert.Equal(t, "2024-06-03", *stored.CompletionDate)

	_, err = r.Complete(ctx, "t1", "u1", "2024-06-04")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = r.Complete(ctx, "t4", "u1", "2024-06-04")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
