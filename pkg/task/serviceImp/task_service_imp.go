package serviceImp

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/care"
	plantrepo "gardenguru/pkg/plant/repository"
	taskrepo "gardenguru/pkg/task/repository"
)

var taskTypes = map[string]bool{
	entities.TaskWatering:    true,
	entities.TaskFertilizing: true,
	entities.TaskPruning:     true,
	entities.TaskRepotting:   true,
	entities.TaskOther:       true,
}

type TaskSvc struct {
	tasks  taskrepo.TaskRepository
	plants plantrepo.PlantRepository
}

func NewTaskService(tr taskrepo.TaskRepository, pr plantrepo.PlantRepository) *TaskSvc {
	return &TaskSvc{tasks: tr, plants: pr}
}

func (s *TaskSvc) List(ctx context.Context, ownerID, from, to string) ([]entities.Task, error) {
	if ownerID == "" {
		return nil, apperr.Validation("owner id is required")
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := care.ParseDate(d); err != nil {
			return nil, apperr.Validation("dates must be YYYY-MM-DD")
		}
	}
	return s.tasks.ListByOwner(ctx, ownerID, from, to)
}

// Create stores a manual task. The title defaults from the task type.
func (s *TaskSvc) Create(ctx context.Context, t *entities.Task) error {
	if t.OwnerID == "" {
		return apperr.Validation("owner id is required")
	}
	if t.PlantID == "" {
		return apperr.Validation("plantId is required")
	}
	t.TaskType = strings.ToLower(strings.TrimSpace(t.TaskType))
	if !taskTypes[t.TaskType] {
		return apperr.Validation("unknown task type: " + t.TaskType)
	}
	if _, err := care.ParseDate(t.DueDate); err != nil {
		return apperr.Validation("dueDate must be YYYY-MM-DD")
	}
	if _, err := s.plants.FindByID(ctx, t.PlantID, t.OwnerID); err != nil {
		return err
	}
	if strings.TrimSpace(t.TaskName) == "" {
		t.TaskName = strings.ToUpper(t.TaskType[:1]) + t.TaskType[1:]
	}
	t.ID = uuid.NewString()
	t.Source = entities.SourceManual
	t.CompletionDate = nil
	return s.tasks.BulkInsert(ctx, []entities.Task{*t})
}

func (s *TaskSvc) DeriveDue(ctx context.Context, ownerID string, today time.Time) ([]entities.Task, error) {
	if ownerID == "" {
		return nil, apperr.Validation("owner id is required")
	}
	plants, err := s.plants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	existing, err := s.tasks.ListByOwner(ctx, ownerID, "", "")
	if err != nil {
		return nil, err
	}
	due := care.DeriveDueWateringTasks(plants, existing, today)
	if err := s.tasks.BulkInsert(ctx, due); err != nil {
		return nil, err
	}
	log.Info().Str("owner", ownerID).Int("plants", len(plants)).Int("new", len(due)).Msg("[task] derived watering tasks")
	if due == nil {
		due = []entities.Task{}
	}
	return due, nil
}

func (s *TaskSvc) Daily(ctx context.Context, ownerID string, today time.Time) (care.Daily, error) {
	if ownerID == "" {
		return care.Daily{}, apperr.Validation("owner id is required")
	}
	all, err := s.tasks.ListByOwner(ctx, ownerID, "", "")
	if err != nil {
		return care.Daily{}, err
	}
	return care.Bucket(all, today), nil
}

func (s *TaskSvc) History(ctx context.Context, ownerID string, f care.HistoryFilter) (care.History, error) {
	if ownerID == "" {
		return care.History{}, apperr.Validation("owner id is required")
	}
	all, err := s.tasks.ListByOwner(ctx, ownerID, "", "")
	if err != nil {
		return care.History{}, err
	}
	return care.BuildHistory(all, f), nil
}

func (s *TaskSvc) Complete(ctx context.Context, id, ownerID string, on time.Time) (*entities.Task, error) {
	if ownerID == "" {
		return nil, apperr.Validation("owner id is required")
	}
	return s.tasks.Complete(ctx, id, ownerID, care.FormatDate(on))
}
