package care

import (
	"sort"
	"time"

	"gardenguru/entities"
)

type Daily struct {
	Date      string          `json:"date"`
	Overdue   []entities.Task `json:"overdue"`
	Today     []entities.Task `json:"today"`
	Upcoming  []entities.Task `json:"upcoming"`
	Completed []entities.Task `json:"completed"`
}

// Bucket splits tasks by due date relative to today. Pending tasks with an
// unparseable due date compare as strings, same as every other date here.
func Bucket(tasks []entities.Task, today time.Time) Daily {
	d := Daily{
		Date:      FormatDate(today),
		Overdue:   []entities.Task{},
		Today:     []entities.Task{},
		Upcoming:  []entities.Task{},
		Completed: []entities.Task{},
	}
	for _, t := range tasks {
		switch {
		case !t.Pending():
			d.Completed = append(d.Completed, t)
		case t.DueDate < d.Date:
			d.Overdue = append(d.Overdue, t)
		case t.DueDate == d.Date:
			d.Today = append(d.Today, t)
		default:
			d.Upcoming = append(d.Upcoming, t)
		}
	}
	byDue := func(ts []entities.Task) {
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].DueDate < ts[j].DueDate })
	}
	byDue(d.Overdue)
	byDue(d.Upcoming)
	return d
}

type HistoryFilter struct {
	PlantID  string
	TaskType string
}

func (f HistoryFilter) match(t entities.Task) bool {
	plantOK := f.PlantID == "" || f.PlantID == "all" || t.PlantID == f.PlantID
	typeOK := f.TaskType == "" || f.TaskType == "all" || t.TaskType == f.TaskType
	return plantOK && typeOK
}

type History struct {
	Tasks      []entities.Task            `json:"tasks"`
	ByPlant    map[string][]entities.Task `json:"byPlant"`
	TypeCounts map[string]int             `json:"typeCounts"`
	Total      int                        `json:"total"`
}

// BuildHistory lists completed tasks matching f, newest completion first.
// TypeCounts covers every completed task regardless of the filter.
func BuildHistory(tasks []entities.Task, f HistoryFilter) History {
	h := History{
		Tasks:      []entities.Task{},
		ByPlant:    map[string][]entities.Task{},
		TypeCounts: map[string]int{},
	}
	for _, t := range tasks {
		if t.Pending() {
			continue
		}
		h.Total++
		h.TypeCounts[t.TaskType]++
		if f.match(t) {
			h.Tasks = append(h.Tasks, t)
		}
	}
	sort.SliceStable(h.Tasks, func(i, j int) bool { return *h.Tasks[i].CompletionDate > *h.Tasks[j].CompletionDate })
	for _, t := range h.Tasks {
		h.ByPlant[t.PlantID] = append(h.ByPlant[t.PlantID], t)
	}
	return h
}
