package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gardenguru/database"
	"gardenguru/entities"
	"gardenguru/pkg/care"
	"gardenguru/pkg/middleware"
	plantRepoImp "gardenguru/pkg/plant/repositoryImp"
	taskRepoImp "gardenguru/pkg/task/repositoryImp"
	"gardenguru/pkg/task/serviceImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	plants := plantRepoImp.New(db)
	for _, p := range []entities.Plant{
		{ID: "p1", OwnerID: "u1", Name: "Basil", WateringDays: 3},
		{ID: "p2", OwnerID: "u1", Name: "Fern", WateringDays: 7},
	} {
		p := p
		require.NoError(t, plants.Create(context.Background(), &p))
	}

	today, _ := care.ParseDate("2024-06-01")
	now = func() time.Time { return today }
	t.Cleanup(func() { now = time.Now })

	h := New(serviceImp.NewTaskService(taskRepoImp.New(db), plants))
	e := echo.New()
	g := e.Group("/api/tasks", middleware.Owner(), middleware.RequireOwner())
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/derive", h.Derive)
	g.GET("/daily", h.Daily)
	g.GET("/history", h.History)
	g.GET("/history.xlsx", h.ExportHistory)
	g.PATCH("/:id/complete", h.Complete)
	return e
}

func call(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(middleware.OwnerHeader, "u1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDeriveDailyCompleteHistory(t *testing.T) {
	e := newServer(t)

	rec := call(e, http.MethodPost, "/api/tasks/derive", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var derived struct {
		Date  string          `json:"date"`
		Tasks []entities.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &derived))
	assert.Equal(t, "2024-06-01", derived.Date)
	require.Len(t, derived.Tasks, 2)

	rec = call(e, http.MethodPost, "/api/tasks/derive?date=2024-06-01", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &derived))
	assert.Empty(t, derived.Tasks)

	rec = call(e, http.MethodGet, "/api/tasks/daily?date=2024-06-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var daily care.Daily
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &daily))
	require.Len(t, daily.Today, 2)

	id := daily.Today[0].ID
	rec = call(e, http.MethodPatch, "/api/tasks/"+id+"/complete", `{"date":"2024-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPatch, "/api/tasks/"+id+"/complete", "").Code)
	assert.Equal(t, http.StatusNotFound, call(e, http.MethodPatch, "/api/tasks/nope/complete", "").Code)

	rec = call(e, http.MethodGet, "/api/tasks/history?taskType=watering", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hist care.History
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Equal(t, 1, hist.Total)
	require.Len(t, hist.Tasks, 1)
	assert.Equal(t, id, hist.Tasks[0].ID)

	rec = call(e, http.MethodGet, "/api/tasks/history.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestCreateAndList(t *testing.T) {
	e := newServer(t)

	rec := call(e, http.MethodPost, "/api/tasks", `{"plantId":"p2","taskType":"repotting","dueDate":"2024-06-09","taskName":"Bigger pot"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPost, "/api/tasks", `{"plantId":"p2","taskType":"repotting"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodGet, "/api/tasks/daily?date=June", "").Code)

	rec = call(e, http.MethodGet, "/api/tasks?from=2024-06-01&to=2024-06-30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Tasks []entities.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "Bigger pot", out.Tasks[0].TaskName)
	assert.Equal(t, entities.SourceManual, out.Tasks[0].Source)
}

func TestOwnerRequired(t *testing.T) {
	e := newServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
