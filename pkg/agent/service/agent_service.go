package service

import (
	"context"

	"gardenguru/pkg/agent/types"
)

type AgentService interface {
	// Generate synthesizes tasks for the request plants. ownerID may be
	// empty; stored tasks are then neither read nor written.
	Generate(ctx context.Context, ownerID string, req types.Request) (*types.Result, error)
}
