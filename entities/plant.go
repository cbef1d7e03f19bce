package entities

import "time"

type PlacementType string

const (
	PlacementInGround  PlacementType = "In-ground"
	PlacementContainer PlacementType = "Container"
	PlacementRaisedBed PlacementType = "Raised Bed"
)

type Plant struct {
	ID           string `gorm:"primaryKey" json:"id"`
	OwnerID      string `gorm:"index" json:"ownerId"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Picture      string `json:"picture"`
	PlantingDate string `json:"plantingDate"`      // YYYY-MM-DD
	WateringDays int    `json:"wateringFrequency"` // days
	CareTips     string `json:"careTips"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"` // healthy|stressed|diseased|dormant

	Placement PlacementType    `json:"placementType"`
	Container ContainerDetails `gorm:"embedded;embeddedPrefix:container_" json:"containerDetails"`

	CommonName     string   `json:"commonName,omitempty"`
	ScientificName string   `json:"scientificName,omitempty"`
	Aliases        []string `gorm:"serializer:json" json:"aliases,omitempty"`
	PerenualID     int      `json:"perenualId,omitempty"`

	Care CareProfile `gorm:"embedded;embeddedPrefix:care_" json:"careProfile"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContainerDetails struct {
	Material       string  `json:"material"`
	Volume         float64 `json:"volume"`
	Unit           string  `json:"unit"` // liters|gallons|cubic_feet
	IsSelfWatering bool    `json:"isSelfWatering"`
}

type CareProfile struct {
	WateringNeeds string   `json:"wateringNeeds"` // low|moderate|high
	SunNeeds      []string `gorm:"serializer:json" json:"sunNeeds"`
	Drainage      string   `json:"drainage"`
	SoilTexture   []string `gorm:"serializer:json" json:"soilTexture"`
	ToxicHumans   bool     `json:"toxicToHumans"`
	ToxicPets     bool     `json:"toxicToPets"`
	EdibleFruit   bool     `json:"edibleFruit"`
	EdibleLeaf    bool     `json:"edibleLeaf"`
}

// DefaultCareProfile is applied to plants created without identification data.
func DefaultCareProfile() CareProfile {
	return CareProfile{
		WateringNeeds: "moderate",
		SunNeeds:      []string{"partial_sun"},
		Drainage:      "well_draining",
		SoilTexture:   []string{"loam"},
	}
}
