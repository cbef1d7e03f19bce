package controller

import "github.com/labstack/echo/v4"

type AgentController interface {
	Generate(c echo.Context) error
}
