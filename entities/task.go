package entities

import "time"

const (
	TaskWatering    = "watering"
	TaskFertilizing = "fertilizing"
	TaskPruning     = "pruning"
	TaskRepotting   = "repotting"
	TaskOther       = "other"
)

const (
	SourceRule   = "rule"
	SourceAI     = "ai"
	SourceManual = "manual"
)

type Task struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	OwnerID        string  `gorm:"index" json:"ownerId,omitempty"`
	PlantID        string  `gorm:"index" json:"plantId"`
	TaskType       string  `json:"taskType"`
	TaskName       string  `json:"taskName"`
	DueDate        string  `gorm:"index" json:"dueDate"` // YYYY-MM-DD
	CompletionDate *string `json:"completionDate"`       // nil while pending
	Source         string  `json:"source,omitempty"`     // rule|ai|manual

	Priority      string   `json:"priority,omitempty"`
	Description   string   `json:"description,omitempty"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`
	Tools         []string `gorm:"serializer:json" json:"tools,omitempty"`
	Tips          []string `gorm:"serializer:json" json:"tips,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t Task) Pending() bool { return t.CompletionDate == nil }

// TaskKey is the dedup key shared by rule-derived and generated tasks.
type TaskKey struct {
	PlantID  string
	TaskType string
	DueDate  string
}

func (t Task) Key() TaskKey {
	return TaskKey{PlantID: t.PlantID, TaskType: t.TaskType, DueDate: t.DueDate}
}
