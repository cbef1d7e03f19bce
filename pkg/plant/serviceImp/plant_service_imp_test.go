package serviceImp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gardenguru/database"
	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/care"
	"gardenguru/pkg/careguide"
	"gardenguru/pkg/plant/repositoryImp"
	"gardenguru/pkg/plant/service"
	"gardenguru/pkg/plantapi"
)

type stubIdent struct {
	enabled    bool
	identifyFn func(ctx context.Context, photo plantapi.Photo) ([]plantapi.Candidate, error)
	searchFn   func(ctx context.Context, query string, page int) (*plantapi.SpeciesPage, error)
}

func (s *stubIdent) CanIdentify() bool { return s.enabled }

func (s *stubIdent) Identify(ctx context.Context, photo plantapi.Photo) ([]plantapi.Candidate, error) {
	return s.identifyFn(ctx, photo)
}

func (s *stubIdent) SearchSpecies(ctx context.Context, query string, page int) (*plantapi.SpeciesPage, error) {
	return s.searchFn(ctx, query, page)
}

type stubGuides func(ctx context.Context, url string) (*careguide.Guide, error)

func (f stubGuides) Fetch(ctx context.Context, url string) (*careguide.Guide, error) {
	return f(ctx, url)
}

func newSvc(t *testing.T, ident identifier, guides guideFetcher) *PlantSvc {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "plants.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return NewPlantService(repositoryImp.New(db), care.NewDefaults(), ident, guides)
}

func fixNow(t *testing.T, s string) {
	t.Helper()
	d, err := care.ParseDate(s)
	require.NoError(t, err)
	now = func() time.Time { return d }
	t.Cleanup(func() { now = time.Now })
}

func TestCreateAppliesDefaults(t *testing.T) {
	fixNow(t, "2024-06-01")
	s := newSvc(t, nil, nil)

	res, err := s.Create(context.Background(), service.CreatePlantInput{OwnerID: "u1", Name: " Basil "})
	require.NoError(t, err)

	p := res.Plant
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Basil", p.Name)
	assert.Equal(t, entities.PlacementInGround, p.Placement)
	assert.Equal(t, 1, p.Quantity)
	assert.Equal(t, "2024-06-01", p.PlantingDate)
	assert.Equal(t, 7, p.WateringDays)
	assert.Equal(t, "healthy", p.Status)
	assert.Empty(t, res.Identification)

	got, err := s.Get(context.Background(), p.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "moderate", got.Care.WateringNeeds)
}

func TestCreateValidation(t *testing.T) {
	s := newSvc(t, nil, nil)
	ctx := context.Background()

	cases := map[string]service.CreatePlantInput{
		"no owner":        {Name: "Basil"},
		"no name":         {OwnerID: "u1"},
		"bad interval":    {OwnerID: "u1", Name: "Basil", WateringDays: 400},
		"negative qty":    {OwnerID: "u1", Name: "Basil", Quantity: -1},
		"bad date":        {OwnerID: "u1", Name: "Basil", PlantingDate: "01/06/2024"},
		"bad placement":   {OwnerID: "u1", Name: "Basil", Placement: "Window"},
		"empty container": {OwnerID: "u1", Name: "Basil", Placement: entities.PlacementContainer},
		"bad unit": {OwnerID: "u1", Name: "Basil", Placement: entities.PlacementContainer,
			Container: entities.ContainerDetails{Material: "clay", Volume: 2, Unit: "cups"}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(ctx, in)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}

	res, err := s.Create(ctx, service.CreatePlantInput{OwnerID: "u1", Name: "Fern", Placement: entities.PlacementContainer,
		Container: entities.ContainerDetails{Material: "plastic", Volume: 3}})
	require.NoError(t, err)
	assert.Equal(t, "liters", res.Plant.Container.Unit)
}

func TestCreateWithIdentification(t *testing.T) {
	ident := &stubIdent{enabled: true, identifyFn: func(_ context.Context, photo plantapi.Photo) ([]plantapi.Candidate, error) {
		assert.Equal(t, []byte("img"), photo.Data)
		return []plantapi.Candidate{{
			ScientificName: "Ocimum basilicum",
			Probability:    0.9,
			Details: &plantapi.SpeciesDetails{
				ID: 42, CommonName: "sweet basil", ScientificName: []string{"Ocimum basilicum"},
				Type: "herb", Watering: "Frequent", Sunlight: []string{"full sun"},
			},
		}}, nil
	}}
	s := newSvc(t, ident, nil)

	res, err := s.Create(context.Background(), service.CreatePlantInput{
		OwnerID: "u1", Photo: &plantapi.Photo{Filename: "a.jpg", Data: []byte("img")},
	})
	require.NoError(t, err)
	require.Len(t, res.Identification, 1)

	p := res.Plant
	assert.Equal(t, "sweet basil", p.Name)
	assert.Equal(t, "herb", p.Type)
	assert.Equal(t, 42, p.PerenualID)
	assert.Equal(t, "high", p.Care.WateringNeeds)
	assert.Equal(t, 2, p.WateringDays)
}

func TestCreateIdentificationFailureIsNotFatal(t *testing.T) {
	ident := &stubIdent{enabled: true, identifyFn: func(context.Context, plantapi.Photo) ([]plantapi.Candidate, error) {
		return nil, apperr.Upstream("plantnet down", nil)
	}}
	s := newSvc(t, ident, nil)

	res, err := s.Create(context.Background(), service.CreatePlantInput{
		OwnerID: "u1", Name: "Basil", WateringDays: 3, Photo: &plantapi.Photo{Data: []byte("img")},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Identification)
	assert.Equal(t, 3, res.Plant.WateringDays)
}

func TestCreateValidatesBeforeIdentify(t *testing.T) {
	calls := 0
	ident := &stubIdent{enabled: true, identifyFn: func(context.Context, plantapi.Photo) ([]plantapi.Candidate, error) {
		calls++
		return []plantapi.Candidate{{ScientificName: "Ocimum basilicum"}}, nil
	}}
	s := newSvc(t, ident, nil)
	photo := &plantapi.Photo{Filename: "a.jpg", Data: []byte("img")}

	cases := map[string]service.CreatePlantInput{
		"empty container": {OwnerID: "u1", Placement: entities.PlacementContainer, Photo: photo},
		"bad interval":    {OwnerID: "u1", WateringDays: 400, Photo: photo},
		"bad date":        {OwnerID: "u1", PlantingDate: "June", Photo: photo},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(context.Background(), in)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
	assert.Equal(t, 0, calls)

	res, err := s.Create(context.Background(), service.CreatePlantInput{OwnerID: "u1", Photo: photo})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Ocimum basilicum", res.Plant.Name)
}

func TestMutationsRequireOwner(t *testing.T) {
	ctx := context.Background()
	guides := stubGuides(func(context.Context, string) (*careguide.Guide, error) {
		t.Fatal("fetch must not run without an owner")
		return nil, nil
	})
	s := newSvc(t, nil, guides)
	res, err := s.Create(ctx, service.CreatePlantInput{OwnerID: "u1", Name: "Basil", WateringDays: 3})
	require.NoError(t, err)
	id := res.Plant.ID

	days := 9
	_, err = s.Update(ctx, id, "", service.PlantPatch{WateringDays: &days})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.True(t, errors.Is(s.Delete(ctx, id, ""), apperr.ErrValidation))
	_, _, err = s.ImportCareGuide(ctx, id, "", "https://example.org/basil")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	got, err := s.Get(ctx, id, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.WateringDays)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newSvc(t, nil, nil)
	res, err := s.Create(ctx, service.CreatePlantInput{OwnerID: "u1", Name: "Basil", WateringDays: 3})
	require.NoError(t, err)
	id := res.Plant.ID

	days, status := 5, "Stressed"
	p, err := s.Update(ctx, id, "u1", service.PlantPatch{WateringDays: &days, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 5, p.WateringDays)
	assert.Equal(t, "stressed", p.Status)
	assert.Equal(t, "Basil", p.Name)

	zero := 0
	_, err = s.Update(ctx, id, "u1", service.PlantPatch{WateringDays: &zero})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = s.Update(ctx, id, "u2", service.PlantPatch{WateringDays: &days})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, s.Delete(ctx, id, "u1"))
	assert.True(t, errors.Is(s.Delete(ctx, id, "u1"), apperr.ErrNotFound))
}

func TestListAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newSvc(t, nil, nil)
	for _, n := range []string{"Basil", "Mint"} {
		_, err := s.Create(ctx, service.CreatePlantInput{OwnerID: "u1", Name: n, WateringDays: 3})
		require.NoError(t, err)
	}

	_, err := s.Search(ctx, "", "")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	all, err := s.Search(ctx, "", "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := s.Search(ctx, "min", "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Mint", hits[0].Name)

	none, err := s.List(ctx, "u9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestImportCareGuide(t *testing.T) {
	ctx := context.Background()
	guides := stubGuides(func(_ context.Context, url string) (*careguide.Guide, error) {
		return &careguide.Guide{Title: "Basil care", URL: url, Text: "Pinch flowers."}, nil
	})
	s := newSvc(t, nil, guides)
	res, err := s.Create(ctx, service.CreatePlantInput{OwnerID: "u1", Name: "Basil", WateringDays: 3, CareTips: "Sunny sill."})
	require.NoError(t, err)

	p, g, err := s.ImportCareGuide(ctx, res.Plant.ID, "u1", "https://example.org/basil")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/basil", g.URL)
	assert.Equal(t, "Sunny sill.\n\nBasil care:\nPinch flowers.", p.CareTips)

	_, _, err = newSvc(t, nil, nil).ImportCareGuide(ctx, res.Plant.ID, "u1", "https://example.org/basil")
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))
}

func TestSearchSpecies(t *testing.T) {
	ident := &stubIdent{searchFn: func(_ context.Context, q string, page int) (*plantapi.SpeciesPage, error) {
		return &plantapi.SpeciesPage{Data: []plantapi.SpeciesSummary{{ID: 1, CommonName: q}}, Total: 1}, nil
	}}
	s := newSvc(t, ident, nil)

	page, err := s.SearchSpecies(context.Background(), "fern", 1)
	require.NoError(t, err)
	assert.Equal(t, "fern", page.Data[0].CommonName)

	_, err = s.SearchSpecies(context.Background(), " ", 1)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = newSvc(t, nil, nil).SearchSpecies(context.Background(), "fern", 1)
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))
}
