package repository

import (
	"context"

	"gardenguru/entities"
)

type TaskRepository interface {
	BulkInsert(ctx context.Context, ts []entities.Task) error
	ListByOwner(ctx context.Context, ownerID, from, to string) ([]entities.Task, error)
	FindByID(ctx context.Context, id, ownerID string) (*entities.Task, error)
	Complete(ctx context.Context, id, ownerID, date string) (*entities.Task, error)
}
