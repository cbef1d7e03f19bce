package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gardenguru/entities"
)

type Preferences struct {
	TaskFrequency   string `json:"taskFrequency,omitempty"`   // daily|weekly|monthly
	ExperienceLevel string `json:"experienceLevel,omitempty"` // beginner|intermediate|expert
	AvailableTime   string `json:"availableTime,omitempty"`   // low|medium|high
}

type Request struct {
	Plants         []entities.Plant `json:"plants"`
	CurrentDate    string           `json:"currentDate,omitempty"`
	GardenLocation string           `json:"gardenLocation,omitempty"`
	Preferences    Preferences      `json:"preferences"`
	ExistingTasks  []entities.Task  `json:"existingTasks,omitempty"`
	Save           bool             `json:"save,omitempty"`
}

type Response struct {
	Success bool            `json:"success"`
	Tasks   []entities.Task `json:"tasks"`
	Summary string          `json:"summary"`
	Error   string          `json:"error,omitempty"`
}

type Result struct {
	Tasks   []entities.Task
	Summary string
}

// Suggestion is one task as the model returned it.
type Suggestion struct {
	PlantID       string     `json:"plantId"`
	PlantIndex    *FlexInt   `json:"plantIndex"`
	TaskType      string     `json:"taskType"`
	Priority      string     `json:"priority"`
	TaskName      string     `json:"taskName"`
	Description   string     `json:"description"`
	DueDate       string     `json:"dueDate"`
	EstimatedTime FlexString `json:"estimatedTime"`
	Tools         StringList `json:"tools"`
	Tips          StringList `json:"tips"`
}

// FlexInt accepts 2, 2.0 and "2".
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = FlexInt(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*n = FlexInt(i)
	return nil
}

// FlexString accepts a string or a bare number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return err
	}
	*f = FlexString(num.String())
	return nil
}

// StringList accepts ["a","b"], "a" and null.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = nil
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
	} else {
		*l = []string{one}
	}
	return nil
}
