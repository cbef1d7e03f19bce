package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gardenguru/entities"
	"gardenguru/pkg/agent"
	"gardenguru/pkg/agent/types"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/care"
	taskrepo "gardenguru/pkg/task/repository"
)

var now = time.Now

type AgentSvc struct {
	synth *agent.Synthesizer
	tasks taskrepo.TaskRepository
}

// NewAgentService takes an optional task store used for dedup and saving.
func NewAgentService(s *agent.Synthesizer, tr taskrepo.TaskRepository) *AgentSvc {
	return &AgentSvc{synth: s, tasks: tr}
}

func (s *AgentSvc) Generate(ctx context.Context, ownerID string, req types.Request) (*types.Result, error) {
	plants := make([]entities.Plant, len(req.Plants))
	for i, p := range req.Plants {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Type) == "" {
			return nil, apperr.Validation("Each plant must have a name and type")
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("plant_%d", i+1)
		}
		plants[i] = p
	}
	if req.Save && (ownerID == "" || s.tasks == nil) {
		return nil, apperr.Validation("owner id is required to save tasks")
	}

	today := now()
	if req.CurrentDate != "" {
		d, err := care.ParseDate(req.CurrentDate)
		if err != nil {
			return nil, apperr.Validation("currentDate must be YYYY-MM-DD")
		}
		today = d
	}

	existing := append([]entities.Task{}, req.ExistingTasks...)
	if ownerID != "" && s.tasks != nil {
		stored, err := s.tasks.ListByOwner(ctx, ownerID, "", "")
		if err != nil {
			return nil, err
		}
		existing = append(existing, stored...)
	}

	res, err := s.synth.Synthesize(ctx, plants, existing, today, req.GardenLocation, req.Preferences)
	if err != nil {
		return nil, err
	}
	for i := range res.Tasks {
		res.Tasks[i].OwnerID = ownerID
	}
	if req.Save {
		if err := s.tasks.BulkInsert(ctx, res.Tasks); err != nil {
			return nil, err
		}
		log.Info().Str("owner", ownerID).Int("tasks", len(res.Tasks)).Msg("[agent] tasks saved")
	}
	return res, nil
}
