// Package care holds the rule-based watering schedule and the task views
// built on top of it.
package care

import (
	"time"

	"github.com/google/uuid"

	"gardenguru/entities"
)

var newID = uuid.NewString

// DeriveDueWateringTasks returns the watering tasks that became due on or
// before today. It only returns new tasks; merging them into storage is up to
// the caller, so calling it twice without merging yields the same tasks again.
func DeriveDueWateringTasks(plants []entities.Plant, existing []entities.Task, today time.Time) []entities.Task {
	todayStr := FormatDate(today)
	var out []entities.Task
	for _, p := range plants {
		if p.WateringDays <= 0 {
			continue
		}
		next := todayStr
		if last, ok := lastWatering(existing, p.ID); ok {
			next = FormatDate(last.AddDate(0, 0, p.WateringDays))
		}
		if next > todayStr || hasPendingWatering(existing, p.ID, next) {
			continue
		}
		out = append(out, entities.Task{
			ID:       newID(),
			OwnerID:  p.OwnerID,
			PlantID:  p.ID,
			TaskType: entities.TaskWatering,
			TaskName: "Water " + p.Name,
			DueDate:  next,
			Source:   entities.SourceRule,
		})
	}
	return out
}

// lastWatering finds the latest due date among the plant's watering tasks,
// completed or not. Unparseable due dates are ignored.
func lastWatering(tasks []entities.Task, plantID string) (time.Time, bool) {
	var last time.Time
	found := false
	for _, t := range tasks {
		if t.PlantID != plantID || t.TaskType != entities.TaskWatering {
			continue
		}
		d, err := ParseDate(t.DueDate)
		if err != nil {
			continue
		}
		if !found || d.After(last) {
			last, found = d, true
		}
	}
	return last, found
}

func hasPendingWatering(tasks []entities.Task, plantID, due string) bool {
	for _, t := range tasks {
		if t.PlantID == plantID && t.TaskType == entities.TaskWatering && t.DueDate == due && t.Pending() {
			return true
		}
	}
	return false
}
