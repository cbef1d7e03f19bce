package controller

import "github.com/labstack/echo/v4"

type TaskController interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Derive(c echo.Context) error
	Daily(c echo.Context) error
	History(c echo.Context) error
	ExportHistory(c echo.Context) error
	Complete(c echo.Context) error
}
