package agent

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gardenguru/entities"
	"gardenguru/pkg/agent/types"
	"gardenguru/pkg/care"
)

// BuildPrompt renders the task prompt. Plants are listed by id and 0-based
// index; replies should reference plants by id.
func BuildPrompt(plants []entities.Plant, today time.Time, location string, prefs types.Preferences) string {
	loc := location
	if loc == "" {
		loc = "Not specified"
	}
	var b strings.Builder
	b.WriteString("You are an expert plant care specialist. Based on the following information, generate specific, actionable plant care tasks.\n\n")
	fmt.Fprintf(&b, "CURRENT DATE: %s\n", care.FormatDate(today))
	fmt.Fprintf(&b, "GARDEN LOCATION: %s\n", loc)
	fmt.Fprintf(&b, "NUMBER OF PLANTS: %d\n\n", len(plants))

	b.WriteString("PLANTS INFORMATION:\n")
	for i, p := range plants {
		fmt.Fprintf(&b, "\nPlant %d:\n", i+1)
		fmt.Fprintf(&b, "- ID: %s\n", p.ID)
		fmt.Fprintf(&b, "- Index: %d\n", i)
		fmt.Fprintf(&b, "- Name: %s\n", p.Name)
		fmt.Fprintf(&b, "- Type: %s\n", p.Type)
		fmt.Fprintf(&b, "- Quantity: %d\n", p.Quantity)
		fmt.Fprintf(&b, "- Days since planting: %s\n", daysSince(p.PlantingDate, today))
		fmt.Fprintf(&b, "- Watering frequency: Every %d days\n", p.WateringDays)
		fmt.Fprintf(&b, "- Care tips: %s\n", p.CareTips)
	}

	b.WriteString("\nUSER PREFERENCES:\n")
	fmt.Fprintf(&b, "- Experience Level: %s\n", orDefault(prefs.ExperienceLevel, "intermediate"))
	fmt.Fprintf(&b, "- Available Time: %s\n", orDefault(prefs.AvailableTime, "medium"))
	fmt.Fprintf(&b, "- Task Frequency: %s\n\n", orDefault(prefs.TaskFrequency, "weekly"))

	b.WriteString(`Please generate a JSON response with an array of tasks. Each task should include:
- plantId: the ID of the plant exactly as listed above
- plantIndex: index of the plant (0-based)
- taskType: watering, fertilizing, pruning, repotting, other
- priority: low, medium, high, urgent
- taskName: short descriptive title
- description: detailed instructions
- dueDate: suggested date (YYYY-MM-DD format)
- estimatedTime: how long the task takes
- tools: array of tools needed (optional)
- tips: array of helpful tips (optional)

Consider:
`)
	fmt.Fprintf(&b, "1. Current season and weather patterns for %s\n", orDefault(location, "the location"))
	b.WriteString(`2. Plant-specific care requirements based on type and care tips
3. Watering schedule based on each plant's watering frequency
4. Plant age and development stage
5. Seasonal activities (repotting in spring, dormancy care in winter)
6. User's experience level and available time
7. Plant quantity (some tasks may need to be done multiple times)

Format the response as a valid JSON array of task objects.`)
	return b.String()
}

// SummaryPrompt asks for a short encouragement line about the generated tasks.
func SummaryPrompt(plants []entities.Plant, tasks []entities.Task) string {
	names := make([]string, 0, len(plants))
	for _, p := range plants {
		names = append(names, p.Name)
	}
	var b strings.Builder
	b.WriteString("Create a brief, encouraging summary for a plant parent based on these generated tasks:\n\n")
	fmt.Fprintf(&b, "PLANTS: %d plants (%s)\n", len(plants), strings.Join(names, ", "))
	fmt.Fprintf(&b, "TASKS GENERATED: %d tasks\n\nTASK BREAKDOWN:\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s (%s priority, due %s)\n", t.TaskName, orDefault(t.Priority, "No"), t.DueDate)
	}
	b.WriteString(`
Create a 2-3 sentence summary that:
1. Acknowledges their plant collection
2. Highlights the most important upcoming tasks
3. Provides encouraging words about plant care

Keep it friendly, concise, and motivating.`)
	return b.String()
}

func FallbackSummary(plants, tasks int) string {
	return fmt.Sprintf("You have %d plants that need attention. I've generated %d tasks to help keep them healthy and thriving!", plants, tasks)
}

func daysSince(plantingDate string, today time.Time) string {
	d, err := care.ParseDate(plantingDate)
	if err != nil {
		return "unknown"
	}
	return strconv.Itoa(care.DaysBetween(d, today))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
