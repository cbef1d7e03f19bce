package controllerImp

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/care"
	"gardenguru/pkg/middleware"
	"gardenguru/pkg/task/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var now = time.Now

type TaskCtrl struct{ s service.TaskService }

func New(s service.TaskService) *TaskCtrl { return &TaskCtrl{s: s} }

func (h *TaskCtrl) List(c echo.Context) error {
	ts, err := h.s.List(c.Request().Context(), middleware.OwnerID(c), c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return middleware.Fail(c, err)
	}
	if ts == nil {
		ts = []entities.Task{}
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": ts})
}

func (h *TaskCtrl) Create(c echo.Context) error {
	var in entities.Task
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	in.OwnerID = middleware.OwnerID(c)
	if err := h.s.Create(c.Request().Context(), &in); err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *TaskCtrl) Derive(c echo.Context) error {
	day, err := dateParam(c.QueryParam("date"))
	if err != nil {
		return middleware.Fail(c, err)
	}
	ts, err := h.s.DeriveDue(c.Request().Context(), middleware.OwnerID(c), day)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"date": care.FormatDate(day), "tasks": ts})
}

func (h *TaskCtrl) Daily(c echo.Context) error {
	day, err := dateParam(c.QueryParam("date"))
	if err != nil {
		return middleware.Fail(c, err)
	}
	d, err := h.s.Daily(c.Request().Context(), middleware.OwnerID(c), day)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *TaskCtrl) History(c echo.Context) error {
	hist, err := h.s.History(c.Request().Context(), middleware.OwnerID(c), historyFilter(c))
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *TaskCtrl) ExportHistory(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.s.ExportHistory(c.Request().Context(), middleware.OwnerID(c), historyFilter(c), &buf); err != nil {
		return middleware.Fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="task-history.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// Complete marks a task done on the optional body date, else today.
func (h *TaskCtrl) Complete(c echo.Context) error {
	var in struct {
		Date string `json:"date"`
	}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
		}
	}
	day, err := dateParam(in.Date)
	if err != nil {
		return middleware.Fail(c, err)
	}
	t, err := h.s.Complete(c.Request().Context(), c.Param("id"), middleware.OwnerID(c), day)
	if err != nil {
		return middleware.Fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func dateParam(v string) (time.Time, error) {
	if v == "" {
		return now(), nil
	}
	d, err := care.ParseDate(v)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be YYYY-MM-DD")
	}
	return d, nil
}

func historyFilter(c echo.Context) care.HistoryFilter {
	return care.HistoryFilter{PlantID: c.QueryParam("plantId"), TaskType: c.QueryParam("taskType")}
}
