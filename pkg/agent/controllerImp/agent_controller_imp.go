package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"gardenguru/entities"
	"gardenguru/pkg/agent/service"
	"gardenguru/pkg/agent/types"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/middleware"
)

type AgentCtrl struct{ s service.AgentService }

func New(s service.AgentService) *AgentCtrl { return &AgentCtrl{s: s} }

// Generate always answers with the {success, tasks, summary, error} shape.
func (h *AgentCtrl) Generate(c echo.Context) error {
	var req types.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("invalid json"))
	}
	owner := middleware.OwnerID(c)
	log.Info().Int("plants", len(req.Plants)).Str("date", req.CurrentDate).Str("owner", owner).Bool("save", req.Save).Msg("[agent] request")

	res, err := h.s.Generate(c.Request().Context(), owner, req)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("[agent] generation failed")
		}
		return c.JSON(status, failure(err.Error()))
	}
	return c.JSON(http.StatusOK, types.Response{Success: true, Tasks: res.Tasks, Summary: res.Summary})
}

func failure(msg string) types.Response {
	return types.Response{Success: false, Tasks: []entities.Task{}, Summary: "", Error: msg}
}
