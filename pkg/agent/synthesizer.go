// Package agent turns plant records into model-suggested care tasks.
package agent

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gardenguru/entities"
	"gardenguru/pkg/agent/types"
	"gardenguru/pkg/ai"
	"gardenguru/pkg/apperr"
)

var (
	newID  = uuid.NewString
	jsonRX = regexp.MustCompile(`(?s)\[.*\]`)
)

type Synthesizer struct {
	llm ai.Client
}

// NewSynthesizer accepts a nil client; Synthesize then reports a
// configuration error.
func NewSynthesizer(llm ai.Client) *Synthesizer { return &Synthesizer{llm: llm} }

func (s *Synthesizer) Configured() bool { return s.llm != nil }

// Synthesize asks the model for tasks and drops the ones that repeat an
// existing (plant, type, due date). A failed generation or unparseable
// reply returns no tasks at all; the summary always falls back to a
// template.
func (s *Synthesizer) Synthesize(ctx context.Context, plants []entities.Plant, existing []entities.Task, today time.Time, location string, prefs types.Preferences) (*types.Result, error) {
	if len(plants) == 0 {
		return nil, apperr.Validation("Plants array is required and must not be empty")
	}
	if s.llm == nil {
		return nil, apperr.Configuration("generative model not configured")
	}

	reply, err := s.llm.Generate(ctx, BuildPrompt(plants, today, location, prefs))
	if err != nil {
		return nil, apperr.Upstream("Failed to generate plant care tasks", err)
	}
	suggestions, err := ParseSuggestions(reply)
	if err != nil {
		return nil, err
	}

	tasks := Dedup(Materialize(suggestions, plants), existing)
	log.Info().Int("plants", len(plants)).Int("suggested", len(suggestions)).Int("kept", len(tasks)).Msg("[agent] tasks synthesized")
	return &types.Result{Tasks: tasks, Summary: s.summary(ctx, plants, tasks)}, nil
}

// ParseSuggestions pulls the first "[" to the last "]" out of reply and
// decodes it.
func ParseSuggestions(reply string) ([]types.Suggestion, error) {
	raw := jsonRX.FindString(reply)
	if raw == "" {
		return nil, apperr.Parse("No valid JSON found in response", nil)
	}
	var out []types.Suggestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, apperr.Parse("malformed task list in response", err)
	}
	return out, nil
}

// Materialize turns suggestions into pending AI tasks. Suggestions that
// cannot be tied to one of plants are dropped.
func Materialize(suggestions []types.Suggestion, plants []entities.Plant) []entities.Task {
	known := make(map[string]bool, len(plants))
	for _, p := range plants {
		known[p.ID] = true
	}
	out := make([]entities.Task, 0, len(suggestions))
	for i, sg := range suggestions {
		plantID, ok := resolvePlant(sg, plants, known)
		if !ok {
			ev := log.Warn().Int("suggestion", i).Str("plant_id", sg.PlantID)
			if sg.PlantIndex != nil {
				ev = ev.Int("plant_index", int(*sg.PlantIndex))
			}
			ev.Str("task", sg.TaskName).Msg("[agent] dropping task with unknown plant")
			continue
		}
		out = append(out, entities.Task{
			ID:            newID(),
			PlantID:       plantID,
			TaskType:      sg.TaskType,
			TaskName:      sg.TaskName,
			DueDate:       sg.DueDate,
			Source:        entities.SourceAI,
			Priority:      sg.Priority,
			Description:   sg.Description,
			EstimatedTime: string(sg.EstimatedTime),
			Tools:         sg.Tools,
			Tips:          sg.Tips,
		})
	}
	return out
}

// resolvePlant prefers a known plantId, then an in-range plantIndex. With
// neither given, a single-plant request owns the task.
func resolvePlant(sg types.Suggestion, plants []entities.Plant, known map[string]bool) (string, bool) {
	id := strings.TrimSpace(sg.PlantID)
	if id != "" && known[id] {
		return id, true
	}
	if sg.PlantIndex != nil {
		i := int(*sg.PlantIndex)
		if i >= 0 && i < len(plants) {
			return plants[i].ID, true
		}
		return "", false
	}
	if id == "" && len(plants) == 1 {
		return plants[0].ID, true
	}
	return "", false
}

// Dedup keeps the tasks whose key is not in existing or earlier in tasks.
func Dedup(tasks, existing []entities.Task) []entities.Task {
	seen := make(map[entities.TaskKey]bool, len(existing)+len(tasks))
	for _, t := range existing {
		seen[t.Key()] = true
	}
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.Key()] {
			continue
		}
		seen[t.Key()] = true
		out = append(out, t)
	}
	return out
}

func (s *Synthesizer) summary(ctx context.Context, plants []entities.Plant, tasks []entities.Task) string {
	fallback := FallbackSummary(len(plants), len(tasks))
	if s.llm == nil {
		return fallback
	}
	text, err := s.llm.Generate(ctx, SummaryPrompt(plants, tasks))
	if err != nil {
		log.Warn().Err(err).Msg("[agent] summary failed, using template")
		return fallback
	}
	if text = strings.TrimSpace(text); text == "" {
		return fallback
	}
	return text
}
