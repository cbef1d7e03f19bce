package plantapi

import (
	"strings"

	"gardenguru/entities"
)

func Recommendations(d *SpeciesDetails) CareRecommendations {
	return CareRecommendations{
		Watering:       d.Watering,
		WateringPeriod: d.WateringPeriod,
		Sunlight:       d.Sunlight,
		Soil:           d.Soil,
		PruningMonths:  d.PruningMonth,
		Pests:          d.PestSusceptibility,
		EdibleFruit:    d.EdibleFruit,
		EdibleLeaf:     d.EdibleLeaf,
		ToxicHumans:    d.PoisonousToHumans > 0,
		ToxicPets:      d.PoisonousToPets > 0,
	}
}

// ApplyDetails copies identity and care profile data onto p. The
// user-defined name and any user-entered type are kept.
func ApplyDetails(p *entities.Plant, d *SpeciesDetails) {
	p.CommonName = d.CommonName
	if len(d.ScientificName) > 0 {
		p.ScientificName = d.ScientificName[0]
	}
	p.Aliases = d.OtherName
	p.PerenualID = d.ID
	if p.Type == "" {
		p.Type = d.Type
	}
	if p.Picture == "" && d.DefaultImage != nil {
		p.Picture = d.DefaultImage.RegularURL
	}
	p.Care = entities.CareProfile{
		WateringNeeds: WateringNeeds(d.Watering),
		SunNeeds:      SunNeeds(d.Sunlight),
		Drainage:      "well_draining",
		SoilTexture:   SoilTextures(d.Soil),
		ToxicHumans:   d.PoisonousToHumans > 0,
		ToxicPets:     d.PoisonousToPets > 0,
		EdibleFruit:   d.EdibleFruit,
		EdibleLeaf:    d.EdibleLeaf,
	}
}

// WateringNeeds maps Perenual's watering class (Frequent, Average, Minimum,
// None) onto low|moderate|high.
func WateringNeeds(watering string) string {
	w := strings.ToLower(watering)
	switch {
	case strings.Contains(w, "frequent"), strings.Contains(w, "daily"):
		return "high"
	case strings.Contains(w, "average"), strings.Contains(w, "regular"):
		return "moderate"
	}
	return "low"
}

func SunNeeds(sunlight []string) []string {
	out := make([]string, 0, len(sunlight))
	for _, s := range sunlight {
		s = strings.ToLower(s)
		switch {
		case strings.Contains(s, "full sun"):
			out = append(out, "full_sun")
		case strings.Contains(s, "partial sun"), strings.Contains(s, "part sun"):
			out = append(out, "partial_sun")
		case strings.Contains(s, "partial shade"), strings.Contains(s, "part shade"):
			out = append(out, "partial_shade")
		default:
			out = append(out, "full_shade")
		}
	}
	return out
}

// SoilTextures picks the known textures named in soil, defaulting to loam.
func SoilTextures(soil []string) []string {
	var out []string
	for _, s := range soil {
		s = strings.ToLower(s)
		for _, t := range []string{"clay", "loam", "sand", "silt"} {
			if strings.Contains(s, t) {
				out = append(out, t)
			}
		}
	}
	if len(out) == 0 {
		return []string{"loam"}
	}
	return out
}
