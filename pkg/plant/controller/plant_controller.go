package controller

import "github.com/labstack/echo/v4"

type PlantController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	ImportCareGuide(c echo.Context) error
	SearchSpecies(c echo.Context) error
}
