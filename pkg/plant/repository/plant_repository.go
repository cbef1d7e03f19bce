package repository

import (
	"context"

	"gardenguru/entities"
)

type PlantRepository interface {
	Create(ctx context.Context, p *entities.Plant) error
	FindByID(ctx context.Context, id, ownerID string) (*entities.Plant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.Plant, error)
	Search(ctx context.Context, query, ownerID string) ([]entities.Plant, error)
	Update(ctx context.Context, p *entities.Plant) error
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
