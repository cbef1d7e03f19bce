package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) BulkInsert(ctx context.Context, ts []entities.Task) error {
	if len(ts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ts).Error
}

// ListByOwner returns the owner's tasks by due date; from and to are
// inclusive YYYY-MM-DD bounds and may be empty.
func (r *taskRepo) ListByOwner(ctx context.Context, ownerID, from, to string) ([]entities.Task, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if from != "" {
		q = q.Where("due_date >= ?", from)
	}
	if to != "" {
		q = q.Where("due_date <= ?", to)
	}
	var out []entities.Task
	if err := q.Order("due_date ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) FindByID(ctx context.Context, id, ownerID string) (*entities.Task, error) {
	var t entities.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}
	return &t, nil
}

// Complete sets the completion date once; completed tasks cannot be reopened
// or completed again.
func (r *taskRepo) Complete(ctx context.Context, id, ownerID, date string) (*entities.Task, error) {
	var out *entities.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t entities.Task
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("task not found")
			}
			return err
		}
		if !t.Pending() {
			return apperr.Validation("task already completed")
		}
		if err := tx.Model(&t).Update("completion_date", date).Error; err != nil {
			return err
		}
		t.CompletionDate = &date
		out = &t
		return nil
	})
	return out, err
}
