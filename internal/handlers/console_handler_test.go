package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plmc/internal/models"
	"plmc/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPropertyDirectory struct {
	properties []models.Property
}

func (s *stubPropertyDirectory) FetchAll(ctx context.Context) ([]models.Property, error) {
	return s.properties, nil
}

type stubRequestDirectory struct {
	requests []models.Request
}

func (s *stubRequestDirectory) ByTenant(ctx context.Context, tenantID int64) ([]models.Request, error) {
	return s.requests, nil
}

type stubTenantResolver struct {
	id int64
}

func (s *stubTenantResolver) IDByName(ctx context.Context, username string) (int64, error) {
	return s.id, nil
}

type envelope struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Data    services.ConsoleView `json:"data"`
}

func setupConsoleRouter(t *testing.T, handler *ConsoleHandler, auth *models.AuthContext) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if auth != nil {
			c.Set("auth", *auth)
		}
		c.Next()
	})
	router.GET("/console/properties", handler.GetProperties)
	router.POST("/console/refresh", handler.Refresh)
	return router
}

func newConsoleHandler(properties []models.Property, requests []models.Request, tenantID int64) *ConsoleHandler {
	views := services.NewViewService(
		&stubPropertyDirectory{properties: properties},
		&stubRequestDirectory{requests: requests},
		&stubTenantResolver{id: tenantID},
		5*time.Second,
	)
	sessions := services.NewSessionService(time.Hour)
	return NewConsoleHandler(views, sessions, time.Minute)
}

func TestGetPropertiesAnonymous(t *testing.T) {
	handler := newConsoleHandler([]models.Property{
		{PropertyID: 1, PropertyName: "Lakeside Villa", RentAmount: 15000},
	}, nil, 0)
	router := setupConsoleRouter(t, handler, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console/properties", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 200, body.Code)
	require.Len(t, body.Data.Rows, 1)
	assert.False(t, body.Data.Rows[0].HasRequested, "匿名浏览没有申请状态")
	assert.Zero(t, body.Data.TenantID)
}

func TestGetPropertiesTenantSeesRequestState(t *testing.T) {
	handler := newConsoleHandler(
		[]models.Property{{PropertyID: 1, PropertyName: "Lakeside Villa"}},
		[]models.Request{{RequestID: 10, TenantID: 7, PropertyID: 1, RequestStatus: models.RequestPending}},
		7,
	)
	auth := &models.AuthContext{Role: "tenant", Username: "alice"}
	router := setupConsoleRouter(t, handler, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console/properties", nil)
	router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Rows, 1)
	assert.True(t, body.Data.Rows[0].HasRequested)
	require.NotNil(t, body.Data.Rows[0].RequestStatus)
	assert.Equal(t, models.RequestPending, *body.Data.Rows[0].RequestStatus)
	assert.Equal(t, int64(7), body.Data.TenantID)
}

func TestGetPropertiesAppliesQueryFilter(t *testing.T) {
	handler := newConsoleHandler([]models.Property{
		{PropertyID: 1, PropertyName: "Lakeside Villa", RentAmount: 15000},
		{PropertyID: 2, PropertyName: "Garden Flat", RentAmount: 8000},
	}, nil, 0)
	router := setupConsoleRouter(t, handler, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console/properties?propertyName=garden", nil)
	router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Rows, 1)
	assert.Equal(t, "Garden Flat", body.Data.Rows[0].PropertyName)
}

func TestGetPropertiesRequestedOnlyWithoutLogin(t *testing.T) {
	handler := newConsoleHandler([]models.Property{
		{PropertyID: 1, PropertyName: "Lakeside Villa"},
	}, nil, 0)
	router := setupConsoleRouter(t, handler, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/console/properties?requestedOnly=true", nil)
	router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data.Rows)
	assert.Equal(t, "Please log in as a tenant to view your requested properties.", body.Data.Error)
}

func TestRefreshReturnsFreshView(t *testing.T) {
	handler := newConsoleHandler([]models.Property{
		{PropertyID: 1, PropertyName: "Lakeside Villa"},
	}, nil, 0)
	auth := &models.AuthContext{Role: "tenant", Username: "alice"}
	router := setupConsoleRouter(t, handler, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/console/refresh", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.Loading)
	assert.False(t, body.Data.RefreshedAt.IsZero())
	require.Len(t, body.Data.Rows, 1)
}
