package service

import (
	"context"
	"io"
	"time"

	"gardenguru/entities"
	"gardenguru/pkg/care"
)

type TaskService interface {
	List(ctx context.Context, ownerID, from, to string) ([]entities.Task, error)
	Create(ctx context.Context, t *entities.Task) error
	// DeriveDue runs the watering rules for the owner's plants and stores
	// the tasks that became due.
	DeriveDue(ctx context.Context, ownerID string, today time.Time) ([]entities.Task, error)
	Daily(ctx context.Context, ownerID string, today time.Time) (care.Daily, error)
	History(ctx context.Context, ownerID string, f care.HistoryFilter) (care.History, error)
	Complete(ctx context.Context, id, ownerID string, on time.Time) (*entities.Task, error)
	ExportHistory(ctx context.Context, ownerID string, f care.HistoryFilter, w io.Writer) error
}
