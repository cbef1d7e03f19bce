package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/middleware"
	"gardenguru/pkg/plant/service"
	"gardenguru/pkg/plantapi"
)

const maxPhotoBytes = 10 << 20

type PlantCtrl struct{ s service.PlantService }

func New(s service.PlantService) *PlantCtrl { return &PlantCtrl{s: s} }

func (h *PlantCtrl) Create(c echo.Context) error {
	in := service.CreatePlantInput{
		OwnerID:      middleware.OwnerID(c),
		Name:         c.FormValue("user_defined_name"),
		Type:         c.FormValue("type"),
		PlantingDate: c.FormValue("planting_date"),
		CareTips:     c.FormValue("care_tips"),
		Placement:    entities.PlacementType(strings.TrimSpace(c.FormValue("placement_type"))),
	}
	if in.Name == "" {
		in.Name = c.FormValue("name")
	}
	var err error
	if in.WateringDays, err = formInt(c, "watering_frequency"); err != nil {
		return middleware.Fail(c, err)
	}
	if in.Quantity, err = formInt(c, "quantity"); err != nil {
		return middleware.Fail(c, err)
	}
	if in.Placement == entities.PlacementContainer {
		vol, err := formFloat(c, "container_volume")
		if err != nil {
			return middleware.Fail(c, err)
		}
		in.Container = entities.ContainerDetails{
			Material:       strings.TrimSpace(c.FormValue("container_material")),
			Volume:         vol,
			Unit:           strings.TrimSpace(c.FormValue("container_unit")),
			IsSelfWatering: c.FormValue("is_self_watering") == "true",
		}
	}
	if in.Photo, err = formPhoto(c); err != nil {
		return middleware.Fail(c, err)
	}

	res, err := h.s.Create(c.Request().Context(), in)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":               true,
		"plantId":               res.Plant.ID,
		"plant":                 res.Plant,
		"identificationResults": res.Identification,
		"message":               "Plant created successfully!",
	})
}

// List serves ?search= across plants (scoped to the owner when known) or
// the owner's plants.
func (h *PlantCtrl) List(c echo.Context) error {
	plants, err := h.s.Search(c.Request().Context(), c.QueryParam("search"), middleware.OwnerID(c))
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"plants": plants})
}

func (h *PlantCtrl) Get(c echo.Context) error {
	p, err := h.s.Get(c.Request().Context(), c.Param("id"), middleware.OwnerID(c))
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlantCtrl) Update(c echo.Context) error {
	var in service.PlantPatch
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p, err := h.s.Update(c.Request().Context(), c.Param("id"), middleware.OwnerID(c), in)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlantCtrl) Delete(c echo.Context) error {
	if err := h.s.Delete(c.Request().Context(), c.Param("id"), middleware.OwnerID(c)); err != nil {
		return middleware.Fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlantCtrl) ImportCareGuide(c echo.Context) error {
	var in struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&in); err != nil || strings.TrimSpace(in.URL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url required"})
	}
	p, g, err := h.s.ImportCareGuide(c.Request().Context(), c.Param("id"), middleware.OwnerID(c), strings.TrimSpace(in.URL))
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"plant": p, "guide": echo.Map{"title": g.Title, "url": g.URL, "chars": len(g.Text)}})
}

func (h *PlantCtrl) SearchSpecies(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	res, err := h.s.SearchSpecies(c.Request().Context(), c.QueryParam("q"), page)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func formInt(c echo.Context, name string) (int, error) {
	v := strings.TrimSpace(c.FormValue(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.Validation(name + " must be a whole number")
	}
	return n, nil
}

func formFloat(c echo.Context, name string) (float64, error) {
	v := strings.TrimSpace(c.FormValue(name))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, apperr.Validation(name + " must be a number")
	}
	return f, nil
}

// formPhoto reads the optional photo part; a missing part is not an error.
func formPhoto(c echo.Context) (*plantapi.Photo, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperr.Validation("invalid photo upload")
	}
	if fh.Size > maxPhotoBytes {
		return nil, apperr.Validation("photo too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Validation("invalid photo upload")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
	if err != nil {
		return nil, apperr.Validation("invalid photo upload")
	}
	return &plantapi.Photo{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}
