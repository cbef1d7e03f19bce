// pkg/ai/mock_client.go

package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

type mockClient struct{}

// NewMock returns a client that answers without any network call: a task
// list for task prompts and a fixed line for everything else.
func NewMock() Client { return &mockClient{} }

var (
	mockDateRX  = regexp.MustCompile(`CURRENT DATE: (\S+)`)
	mockPlantRX = regexp.MustCompile(`- ID: (\S+)`)
)

func (m *mockClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !strings.Contains(prompt, "PLANTS INFORMATION") {
		return "Your garden is in good hands. Keep up the steady watering and check on your plants a few times a week.", nil
	}
	date := "today"
	if mm := mockDateRX.FindStringSubmatch(prompt); mm != nil {
		date = mm[1]
	}
	var items []string
	for _, mm := range mockPlantRX.FindAllStringSubmatch(prompt, -1) {
		items = append(items, fmt.Sprintf(
			`{"plantId":%q,"taskType":"other","priority":"low","taskName":"Check soil moisture","description":"Push a finger into the soil and water if the top inch is dry.","dueDate":%q,"estimatedTime":"5 minutes","tools":[],"tips":["Water in the morning"]}`,
			mm[1], date))
	}
	return "Here are your tasks:\n[" + strings.Join(items, ",") + "]", nil
}
