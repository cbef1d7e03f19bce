package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/care"
	"gardenguru/pkg/careguide"
	"gardenguru/pkg/plant/repository"
	"gardenguru/pkg/plant/service"
	"gardenguru/pkg/plantapi"
)

type identifier interface {
	CanIdentify() bool
	Identify(ctx context.Context, photo plantapi.Photo) ([]plantapi.Candidate, error)
	SearchSpecies(ctx context.Context, query string, page int) (*plantapi.SpeciesPage, error)
}

type guideFetcher interface {
	Fetch(ctx context.Context, url string) (*careguide.Guide, error)
}

const (
	maxInterval  = 365
	maxCareTips  = 8000
	defaultUnit  = "liters"
	statusHealth = "healthy"
)

var errOwnerRequired = apperr.Validation("owner id is required")

var (
	now       = time.Now
	units     = map[string]bool{"liters": true, "gallons": true, "cubic_feet": true}
	statuses  = map[string]bool{"healthy": true, "stressed": true, "diseased": true, "dormant": true}
	placement = map[entities.PlacementType]bool{
		entities.PlacementInGround:  true,
		entities.PlacementContainer: true,
		entities.PlacementRaisedBed: true,
	}
)

type PlantSvc struct {
	repo     repository.PlantRepository
	defaults *care.Defaults
	ident    identifier
	guides   guideFetcher
}

// NewPlantService wires the plant store. ident and guides may be nil; the
// matching features are then unavailable.
func NewPlantService(r repository.PlantRepository, d *care.Defaults, ident identifier, guides guideFetcher) *PlantSvc {
	if d == nil {
		d = care.NewDefaults()
	}
	return &PlantSvc{repo: r, defaults: d, ident: ident, guides: guides}
}

func (s *PlantSvc) Create(ctx context.Context, in service.CreatePlantInput) (*service.CreateResult, error) {
	if in.OwnerID == "" {
		return nil, errOwnerRequired
	}
	p := &entities.Plant{
		OwnerID:      in.OwnerID,
		Name:         strings.TrimSpace(in.Name),
		Type:         strings.TrimSpace(in.Type),
		PlantingDate: strings.TrimSpace(in.PlantingDate),
		WateringDays: in.WateringDays,
		CareTips:     strings.TrimSpace(in.CareTips),
		Quantity:     in.Quantity,
		Status:       statusHealth,
		Placement:    in.Placement,
		Container:    in.Container,
		Care:         entities.DefaultCareProfile(),
	}
	if p.Placement == "" {
		p.Placement = entities.PlacementInGround
	}
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	if p.PlantingDate == "" {
		p.PlantingDate = care.FormatDate(now())
	}
	if p.Placement == entities.PlacementContainer && p.Container.Unit == "" {
		p.Container.Unit = defaultUnit
	}

	if err := validateDetails(p); err != nil {
		return nil, err
	}
	if p.WateringDays != 0 {
		if err := validateInterval(p.WateringDays); err != nil {
			return nil, err
		}
	}

	res := &service.CreateResult{Plant: p, Identification: []plantapi.Candidate{}}
	if in.Photo != nil && len(in.Photo.Data) > 0 {
		res.Identification = s.identify(ctx, p, *in.Photo)
	}
	if p.WateringDays == 0 {
		p.WateringDays = s.defaults.Interval(p.Type, p.Care.WateringNeeds)
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	p.ID = uuid.NewString()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Info().Str("plant", p.ID).Str("owner", p.OwnerID).Int("interval", p.WateringDays).Int("candidates", len(res.Identification)).Msg("[plant] created")
	return res, nil
}

// identify pre-fills p from the photo. Any failure only costs the pre-fill.
func (s *PlantSvc) identify(ctx context.Context, p *entities.Plant, photo plantapi.Photo) []plantapi.Candidate {
	if s.ident == nil || !s.ident.CanIdentify() {
		log.Debug().Msg("[plant] identification not configured, skipping")
		return []plantapi.Candidate{}
	}
	cands, err := s.ident.Identify(ctx, photo)
	if err != nil {
		log.Warn().Err(err).Msg("[plant] identification failed")
		return []plantapi.Candidate{}
	}
	if len(cands) == 0 {
		return []plantapi.Candidate{}
	}
	top := cands[0]
	if top.Details != nil {
		plantapi.ApplyDetails(p, top.Details)
	} else if p.ScientificName == "" {
		p.ScientificName = top.ScientificName
		if len(top.CommonNames) > 0 {
			p.CommonName = top.CommonNames[0]
		}
	}
	if p.Name == "" {
		p.Name = firstNonEmpty(p.CommonName, p.ScientificName)
	}
	return cands
}

func (s *PlantSvc) Get(ctx context.Context, id, ownerID string) (*entities.Plant, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

func (s *PlantSvc) List(ctx context.Context, ownerID string) ([]entities.Plant, error) {
	if ownerID == "" {
		return nil, apperr.Validation("userId or search is required")
	}
	ps, err := s.repo.ListByOwner(ctx, ownerID)
	if ps == nil && err == nil {
		ps = []entities.Plant{}
	}
	return ps, err
}

// Search without a query lists the owner's plants; without an owner it
// searches every plant.
func (s *PlantSvc) Search(ctx context.Context, query, ownerID string) ([]entities.Plant, error) {
	if strings.TrimSpace(query) == "" {
		return s.List(ctx, ownerID)
	}
	ps, err := s.repo.Search(ctx, query, ownerID)
	if ps == nil && err == nil {
		ps = []entities.Plant{}
	}
	return ps, err
}

func (s *PlantSvc) Update(ctx context.Context, id, ownerID string, patch service.PlantPatch) (*entities.Plant, error) {
	if ownerID == "" {
		return nil, errOwnerRequired
	}
	p, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		p.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.PlantingDate != nil {
		p.PlantingDate = strings.TrimSpace(*patch.PlantingDate)
	}
	if patch.WateringDays != nil {
		p.WateringDays = *patch.WateringDays
	}
	if patch.CareTips != nil {
		p.CareTips = *patch.CareTips
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Status != nil {
		p.Status = strings.ToLower(strings.TrimSpace(*patch.Status))
	}
	if patch.Placement != nil {
		p.Placement = *patch.Placement
	}
	if patch.Container != nil {
		p.Container = *patch.Container
	}
	if p.Placement == entities.PlacementContainer && p.Container.Unit == "" {
		p.Container.Unit = defaultUnit
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlantSvc) Delete(ctx context.Context, id, ownerID string) error {
	if ownerID == "" {
		return errOwnerRequired
	}
	ok, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("plant not found")
	}
	return nil
}

// ImportCareGuide appends the text of a care-guide page to the plant's notes.
func (s *PlantSvc) ImportCareGuide(ctx context.Context, id, ownerID, url string) (*entities.Plant, *careguide.Guide, error) {
	if s.guides == nil {
		return nil, nil, apperr.Configuration("care guide import not configured")
	}
	if ownerID == "" {
		return nil, nil, errOwnerRequired
	}
	p, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.guides.Fetch(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if g.Text == "" {
		return nil, nil, apperr.Validation("no readable text on page")
	}

	section := g.Text
	if g.Title != "" {
		section = g.Title + ":\n" + section
	}
	if p.CareTips != "" {
		section = p.CareTips + "\n\n" + section
	}
	if r := []rune(section); len(r) > maxCareTips {
		section = string(r[:maxCareTips])
	}
	p.CareTips = section
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, nil, err
	}
	log.Info().Str("plant", p.ID).Str("url", g.URL).Int("chars", len(g.Text)).Msg("[plant] care guide imported")
	return p, g, nil
}

func (s *PlantSvc) SearchSpecies(ctx context.Context, query string, page int) (*plantapi.SpeciesPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("q is required")
	}
	if s.ident == nil {
		return nil, apperr.Configuration("plant data api not configured")
	}
	return s.ident.SearchSpecies(ctx, query, page)
}

// validate checks the whole record. Identification can fill in the name and
// the interval, so Create runs validateDetails on the request first.
func validate(p *entities.Plant) error {
	if p.Name == "" {
		return apperr.Validation("plant name is required")
	}
	if err := validateInterval(p.WateringDays); err != nil {
		return err
	}
	return validateDetails(p)
}

func validateInterval(days int) error {
	if days < 1 || days > maxInterval {
		return apperr.Validation(fmt.Sprintf("watering frequency must be between 1 and %d days", maxInterval))
	}
	return nil
}

func validateDetails(p *entities.Plant) error {
	switch {
	case !placement[p.Placement]:
		return apperr.Validation(fmt.Sprintf("invalid placement type %q", p.Placement))
	case p.Quantity < 1:
		return apperr.Validation("quantity must be positive")
	case !statuses[p.Status]:
		return apperr.Validation(fmt.Sprintf("invalid status %q", p.Status))
	}
	if _, err := care.ParseDate(p.PlantingDate); err != nil {
		return apperr.Validation("planting date must be YYYY-MM-DD")
	}
	if p.Placement == entities.PlacementContainer {
		c := p.Container
		if strings.TrimSpace(c.Material) == "" || c.Volume <= 0 {
			return apperr.Validation("container plants need a material and a positive volume")
		}
		if !units[c.Unit] {
			return apperr.Validation(fmt.Sprintf("invalid container unit %q", c.Unit))
		}
	}
	return nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
