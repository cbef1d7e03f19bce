package care

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gardenguru/entities"
)

func TestBucket(t *testing.T) {
	tasks := []entities.Task{
		{ID: "a", DueDate: "2024-06-09"},
		{ID: "b", DueDate: "2024-06-10"},
		{ID: "c", DueDate: "2024-06-12"},
		{ID: "d", DueDate: "2024-06-01"},
		{ID: "e", DueDate: "2024-06-01", CompletionDate: done("2024-06-02")},
	}
	d := Bucket(tasks, day("2024-06-10"))

	assert.Equal(t, "2024-06-10", d.Date)
	require.Len(t, d.Overdue, 2)
	assert.Equal(t, "d", d.Overdue[0].ID)
	assert.Equal(t, "a", d.Overdue[1].ID)
	require.Len(t, d.Today, 1)
	assert.Equal(t, "b", d.Today[0].ID)
	require.Len(t, d.Upcoming, 1)
	assert.Equal(t, "c", d.Upcoming[0].ID)
	require.Len(t, d.Completed, 1)
	assert.Equal(t, "e", d.Completed[0].ID)
}

func TestBuildHistory(t *testing.T) {
	tasks := []entities.Task{
		{ID: "a", PlantID: "p1", TaskType: entities.TaskWatering, CompletionDate: done("2024-06-01")},
		{ID: "b", PlantID: "p1", TaskType: entities.TaskWatering, CompletionDate: done("2024-06-05")},
		{ID: "c", PlantID: "p2", TaskType: entities.TaskPruning, CompletionDate: done("2024-06-03")},
		{ID: "d", PlantID: "p1", TaskType: entities.TaskWatering},
	}

	all := BuildHistory(tasks, HistoryFilter{PlantID: "all", TaskType: "all"})
	assert.Equal(t, 3, all.Total)
	require.Len(t, all.Tasks, 3)
	assert.Equal(t, "b", all.Tasks[0].ID)
	assert.Equal(t, "c", all.Tasks[1].ID)
	assert.Equal(t, "a", all.Tasks[2].ID)
	assert.Len(t, all.ByPlant["p1"], 2)
	assert.Equal(t, map[string]int{entities.TaskWatering: 2, entities.TaskPruning: 1}, all.TypeCounts)

	pruning := BuildHistory(tasks, HistoryFilter{TaskType: entities.TaskPruning})
	require.Len(t, pruning.Tasks, 1)
	assert.Equal(t, "c", pruning.Tasks[0].ID)
	assert.Equal(t, 3, pruning.Total)

	p1 := BuildHistory(tasks, HistoryFilter{PlantID: "p1"})
	assert.Len(t, p1.Tasks, 2)
	assert.NotContains(t, p1.ByPlant, "p2")
}

func TestDefaultsBuiltIn(t *testing.T) {
	d := NewDefaults()

	assert.Equal(t, 2, d.Interval("", "high"))
	assert.Equal(t, 14, d.Interval("Cactus", "LOW"))
	assert.Equal(t, 7, d.Interval("", ""))
}

func TestLoadDefaultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.csv")
	csv := "\uFEFFPlant Type,Watering Needs,Interval Days\nTomato,,2\nSucculent,low,21\nBroken,,zero\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	d, err := LoadDefaults(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Interval("tomato", "moderate"))
	assert.Equal(t, 21, d.Interval("succulent", ""))
	assert.Equal(t, 21, d.Interval("unknown", "low"))
	assert.Equal(t, 7, d.Interval("broken", ""))
}

func TestLoadDefaultsCSVMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,notes\nx,y\n"), 0o644))

	_, err := LoadDefaults(path, "")
	assert.Error(t, err)
}

func TestLoadDefaultsXLSXOverridesCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "defaults.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("type,days\nfern,5\n"), 0o644))

	xlsxPath := filepath.Join(dir, "defaults.xlsx")
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"type", "interval"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"fern", 4}))
	require.NoError(t, x.SetSheetRow(sheet, "A3", &[]any{"orchid", 10}))
	require.NoError(t, x.SaveAs(xlsxPath))
	require.NoError(t, x.Close())

	d, err := LoadDefaults(csvPath, xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Interval("Fern", ""))
	assert.Equal(t, 10, d.Interval("orchid", ""))
}
