package plantapi

// SpeciesSummary is a row of the Perenual species list.
type SpeciesSummary struct {
	ID             int      `json:"id"`
	CommonName     string   `json:"common_name"`
	ScientificName []string `json:"scientific_name"`
	OtherName      []string `json:"other_name"`
	Cycle          string   `json:"cycle"`
	Watering       string   `json:"watering"`
	Sunlight       []string `json:"sunlight"`
	DefaultImage   *Image   `json:"default_image,omitempty"`
}

type Image struct {
	RegularURL string `json:"regular_url"`
	MediumURL  string `json:"medium_url"`
	SmallURL   string `json:"small_url"`
	Thumbnail  string `json:"thumbnail"`
}

type SpeciesPage struct {
	Data  []SpeciesSummary `json:"data"`
	Total int              `json:"total"`
}

// SpeciesDetails keeps the care-relevant part of a Perenual species record.
type SpeciesDetails struct {
	ID                 int      `json:"id"`
	CommonName         string   `json:"common_name"`
	ScientificName     []string `json:"scientific_name"`
	OtherName          []string `json:"other_name"`
	Family             string   `json:"family"`
	Type               string   `json:"type"`
	Cycle              string   `json:"cycle"`
	Watering           string   `json:"watering"`
	WateringPeriod     string   `json:"watering_period"`
	Sunlight           []string `json:"sunlight"`
	PruningMonth       []string `json:"pruning_month"`
	Soil               []string `json:"soil"`
	PestSusceptibility []string `json:"pest_susceptibility"`
	EdibleFruit        bool     `json:"edible_fruit"`
	EdibleLeaf         bool     `json:"edible_leaf"`
	PoisonousToHumans  int      `json:"poisonous_to_humans"`
	PoisonousToPets    int      `json:"poisonous_to_pets"`
	Hardiness          struct {
		Min string `json:"min"`
		Max string `json:"max"`
	} `json:"hardiness"`
	Description  string `json:"description"`
	DefaultImage *Image `json:"default_image,omitempty"`
}

// Candidate is one ranked identification result. Details is filled for the
// top candidate when the care-data lookup succeeds.
type Candidate struct {
	ScientificName string               `json:"scientificName"`
	CommonNames    []string             `json:"commonNames"`
	Family         string               `json:"family,omitempty"`
	Probability    float64              `json:"probability"`
	Details        *SpeciesDetails      `json:"details,omitempty"`
	Care           *CareRecommendations `json:"care,omitempty"`
}

type CareRecommendations struct {
	Watering       string   `json:"watering"`
	WateringPeriod string   `json:"wateringPeriod,omitempty"`
	Sunlight       []string `json:"sunlight"`
	Soil           []string `json:"soil"`
	PruningMonths  []string `json:"pruningMonths,omitempty"`
	Pests          []string `json:"pests,omitempty"`
	EdibleFruit    bool     `json:"edibleFruit"`
	EdibleLeaf     bool     `json:"edibleLeaf"`
	ToxicHumans    bool     `json:"toxicToHumans"`
	ToxicPets      bool     `json:"toxicToPets"`
}

// Photo is an uploaded image to identify.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}
