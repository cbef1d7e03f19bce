package service

import (
	"context"

	"gardenguru/entities"
	"gardenguru/pkg/careguide"
	"gardenguru/pkg/plantapi"
)

type CreatePlantInput struct {
	OwnerID      string
	Name         string
	Type         string
	PlantingDate string
	WateringDays int // 0 picks the care default
	CareTips     string
	Quantity     int
	Placement    entities.PlacementType
	Container    entities.ContainerDetails
	Photo        *plantapi.Photo
}

type CreateResult struct {
	Plant          *entities.Plant
	Identification []plantapi.Candidate
}

// PlantPatch carries the fields to change; nil means keep.
type PlantPatch struct {
	Name         *string                    `json:"name"`
	Type         *string                    `json:"type"`
	PlantingDate *string                    `json:"plantingDate"`
	WateringDays *int                       `json:"wateringFrequency"`
	CareTips     *string                    `json:"careTips"`
	Quantity     *int                       `json:"quantity"`
	Status       *string                    `json:"status"`
	Placement    *entities.PlacementType    `json:"placementType"`
	Container    *entities.ContainerDetails `json:"containerDetails"`
}

type PlantService interface {
	Create(ctx context.Context, in CreatePlantInput) (*CreateResult, error)
	Get(ctx context.Context, id, ownerID string) (*entities.Plant, error)
	List(ctx context.Context, ownerID string) ([]entities.Plant, error)
	Search(ctx context.Context, query, ownerID string) ([]entities.Plant, error)
	Update(ctx context.Context, id, ownerID string, patch PlantPatch) (*entities.Plant, error)
	Delete(ctx context.Context, id, ownerID string) error
	ImportCareGuide(ctx context.Context, id, ownerID, url string) (*entities.Plant, *careguide.Guide, error)
	SearchSpecies(ctx context.Context, query string, page int) (*plantapi.SpeciesPage, error)
}
