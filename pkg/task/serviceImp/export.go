package serviceImp

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"

	"gardenguru/pkg/care"
)

const historySheet = "History"

var historyHeader = []any{"Plant", "Task", "Type", "Due", "Completed", "Source"}

// ExportHistory writes the completed tasks matching f as an XLSX workbook,
// newest completion first.
func (s *TaskSvc) ExportHistory(ctx context.Context, ownerID string, f care.HistoryFilter, w io.Writer) error {
	h, err := s.History(ctx, ownerID, f)
	if err != nil {
		return err
	}
	plants, err := s.plants.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(plants))
	for _, p := range plants {
		names[p.ID] = p.Name
	}

	x := excelize.NewFile()
	defer x.Close()
	if err := x.SetSheetName("Sheet1", historySheet); err != nil {
		return err
	}
	if err := x.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return err
	}
	for i, t := range h.Tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		plant := names[t.PlantID]
		if plant == "" {
			plant = t.PlantID
		}
		row := []any{plant, t.TaskName, t.TaskType, t.DueDate, *t.CompletionDate, t.Source}
		if err := x.SetSheetRow(historySheet, cell, &row); err != nil {
			return err
		}
	}
	return x.Write(w)
}
