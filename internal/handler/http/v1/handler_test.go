package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/shenikar/coastal_hazard_system/internal/hotspot"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/shenikar/coastal_hazard_system/internal/refresh"
	refresh_mocks "github.com/shenikar/coastal_hazard_system/internal/refresh/mocks"
	"github.com/shenikar/coastal_hazard_system/internal/service"
	"github.com/shenikar/coastal_hazard_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	citizenKey  = map[string]string{"X-API-Key": "citizen-key"}
	officialKey = map[string]string{"Authorization": "Bearer official-key"}
	analystKey  = map[string]string{"X-API-Key": "analyst-key"}
	adminKey    = map[string]string{"X-API-Key": "admin-key"}
)

func newTestConfig() *config.Config {
	return &config.Config{
		APIKeys: []config.APIKey{
			{Key: "citizen-key", Role: config.RoleCitizen, Subject: "citizen-1"},
			{Key: "official-key", Role: config.RoleOfficial, Subject: "official-1"},
			{Key: "analyst-key", Role: config.RoleAnalyst, Subject: "analyst-1"},
			{Key: "admin-key", Role: config.RoleAdmin, Subject: "admin-1"},
		},
		HotspotCellSize:     0.02,
		HotspotMinWeight:    1,
		HotspotGridMode:     "floor",
		RefreshDefaultQuery: "flood,tsunami,cyclone",
		RefreshDefaultLimit: 20,
	}
}

// newTestHandler создает новый экземпляр Handler с мокированными зависимостями
func newTestHandler(t *testing.T) (*mocks.MockPostService, *refresh_mocks.MockScheduler, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockPostService(ctrl)
	mockScheduler := refresh_mocks.NewMockScheduler(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	handler := NewHandler(mockService, mockScheduler, logger, newTestConfig())

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return mockService, mockScheduler, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateReport_Success(t *testing.T) {
	mockService, _, router := newTestHandler(t)
	postID := uuid.New()
	reqBody := CreateReportRequest{
		Description: "Flood water entering houses, danger",
		Latitude:    floatPtr(13.08),
		Longitude:   floatPtr(80.27),
	}

	mockService.EXPECT().
		SubmitReport(gomock.Any(), "citizen-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p *models.Post) (models.IngestResult, error) {
			assert.Equal(t, reqBody.Description, p.Text)
			assert.Equal(t, 13.08, *p.Latitude)
			p.ID = postID
			p.Source = models.SourceCitizen
			p.Hazard = models.HazardFlood
			p.Urgency = models.UrgencyHigh
			return models.IngestResult{Post: p, Inserted: true}, nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody), citizenKey)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IngestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Inserted)
	require.NotNil(t, resp.Post)
	assert.Equal(t, postID, resp.Post.ID)
	assert.Equal(t, "Flood", resp.Post.Hazard)
	assert.Equal(t, "High", resp.Post.Urgency)
}

func TestCreateReport_Duplicate(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), "official-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, p *models.Post) (models.IngestResult, error) {
			return models.IngestResult{Post: p, Inserted: false}, nil
		})

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, CreateReportRequest{Description: "high tide"}), officialKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"inserted":false`)
}

func TestCreateReport_ValidationError(t *testing.T) {
	mockService, _, router := newTestHandler(t)
	reqBody := CreateReportRequest{ // Отсутствует Description
		Latitude:  floatPtr(10.0),
		Longitude: floatPtr(20.0),
	}

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody), citizenKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Description' failed on the 'required' tag")
}

func TestCreateReport_InvalidLatitude(t *testing.T) {
	_, _, router := newTestHandler(t)
	reqBody := CreateReportRequest{Description: "storm", Latitude: floatPtr(123.0), Longitude: floatPtr(20.0)}

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, reqBody), citizenKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'latitude' tag")
}

func TestCreateReport_InvalidJSON(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/reports", bytes.NewBufferString(`{"description": "x"`), citizenKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateReport_BlankText(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.IngestResult{}, service.ErrEmptyText)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, CreateReportRequest{Description: "   "}), citizenKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text is required")
}

func TestCreateReport_ForbiddenForAnalyst(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/reports", jsonBody(t, CreateReportRequest{Description: "flood"}), analystKey)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient role")
}

func TestListMyReports_UsesPrincipalSubject(t *testing.T) {
	mockService, _, router := newTestHandler(t)
	submitter := "citizen-1"
	expected := []*models.Post{{ID: uuid.New(), Source: models.SourceCitizen, Text: "flood", Submitter: &submitter}}

	mockService.EXPECT().
		ListPosts(gomock.Any(), models.PostFilter{Submitter: "citizen-1", Limit: 5}).
		Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports/my?limit=5&source=Twitter", nil, citizenKey)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "citizen-1", *resp[0].Submitter)
}

func TestListReports_CitizenSourceOnly(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		ListPosts(gomock.Any(), models.PostFilter{Source: models.SourceCitizen, Urgency: models.UrgencyHigh, Offset: 10}).
		Return([]*models.Post{}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports?urgency=High&offset=10", nil, officialKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListReports_ForbiddenForCitizen(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/reports", nil, citizenKey)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListSocial_InvalidQuery(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().ListPosts(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/social/list?urgency=Extreme", nil, analystKey)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(router, "GET", "/api/v1/social/list?limit=abc", nil, analystKey)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid query parameters")
}

func TestListSocial_ServiceError(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		ListPosts(gomock.Any(), models.PostFilter{Source: "Reddit"}).
		Return(nil, errors.New("database error")).Times(1)

	w := makeRequest(router, "GET", "/api/v1/social/list?source=Reddit", nil, analystKey)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestIngestPost_Success(t *testing.T) {
	mockService, _, router := newTestHandler(t)
	url := "https://www.reddit.com/r/india/comments/abc/"
	reqBody := IngestPostRequest{
		Source:    "Reddit",
		Text:      "Cyclone warning for Odisha",
		Timestamp: "2026-03-01T10:00:00Z",
		URL:       &url,
	}

	mockService.EXPECT().
		IngestPost(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Post) (models.IngestResult, error) {
			assert.Equal(t, "Reddit", p.Source)
			assert.Equal(t, url, *p.URL)
			assert.Empty(t, p.Hazard)
			p.ID = uuid.New()
			p.Hazard = models.HazardCyclone
			p.Urgency = models.UrgencyMedium
			return models.IngestResult{Post: p, Inserted: true}, nil
		})

	w := makeRequest(router, "POST", "/api/v1/social/ingest", jsonBody(t, reqBody), adminKey)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"hazard":"Cyclone"`)
}

func TestIngestPost_ServiceError(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		IngestPost(gomock.Any(), gomock.Any()).
		Return(models.IngestResult{}, errors.New("service: could not insert post: connection refused"))

	w := makeRequest(router, "POST", "/api/v1/social/ingest", jsonBody(t, IngestPostRequest{Source: "Twitter", Text: "flood"}), officialKey)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestIngestBatch_Success(t *testing.T) {
	mockService, _, router := newTestHandler(t)
	reqBody := IngestBatchRequest{Posts: []IngestPostRequest{
		{Source: "Twitter", Text: "flood"},
		{Source: "Twitter", Text: "flood"},
		{Source: "YouTube", Text: "tsunami drill"},
	}}

	mockService.EXPECT().
		IngestPosts(gomock.Any(), gomock.Len(3)).
		Return(2, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/social/ingest/batch", jsonBody(t, reqBody), analystKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": 3, "inserted": 2}`, w.Body.String())
}

func TestIngestBatch_ValidatesEachPost(t *testing.T) {
	mockService, _, router := newTestHandler(t)
	reqBody := IngestBatchRequest{Posts: []IngestPostRequest{
		{Source: "Twitter", Text: "flood"},
		{Source: "Twitter"},
	}}

	mockService.EXPECT().IngestPosts(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/social/ingest/batch", jsonBody(t, reqBody), analystKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Posts[1].Text")
}

func TestIngestBatch_PartialFailure(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		IngestPosts(gomock.Any(), gomock.Any()).
		Return(1, errors.New("disk full"))

	w := makeRequest(router, "POST", "/api/v1/social/ingest/batch",
		jsonBody(t, IngestBatchRequest{Posts: []IngestPostRequest{{Source: "Twitter", Text: "a"}, {Source: "Twitter", Text: "b"}}}), adminKey)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"inserted":1`)
}

func TestSubmitRefresh_DefaultsOnEmptyBody(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)
	job := refresh.Job{
		ID:        uuid.New(),
		Query:     "flood,tsunami,cyclone",
		Limit:     20,
		Status:    refresh.StatusQueued,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	mockScheduler.EXPECT().Submit("flood,tsunami,cyclone", 20).Return(job, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/social/refresh", nil, citizenKey)

	assert.Equal(t, http.StatusAccepted, w.Code)
	var resp RefreshJobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, job.ID, resp.ID)
	assert.Equal(t, "queued", resp.Status)
}

func TestSubmitRefresh_CustomQuery(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)

	mockScheduler.EXPECT().
		Submit("storm surge", 5).
		Return(refresh.Job{ID: uuid.New(), Status: refresh.StatusQueued}, nil)

	w := makeRequest(router, "POST", "/api/v1/social/refresh", jsonBody(t, RefreshRequest{Query: "storm surge", Limit: 5}), officialKey)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSubmitRefresh_QueueFull(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)

	mockScheduler.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(refresh.Job{}, refresh.ErrQueueFull)

	w := makeRequest(router, "POST", "/api/v1/social/refresh", jsonBody(t, RefreshRequest{Limit: 10}), analystKey)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "refresh queue is full")
}

func TestSubmitRefresh_InvalidLimit(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)

	mockScheduler.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/social/refresh", jsonBody(t, RefreshRequest{Limit: 1000}), analystKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRefresh_Success(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)
	jobID := uuid.New()
	finished := time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC)

	mockScheduler.EXPECT().Get(jobID).Return(refresh.Job{
		ID:             jobID,
		Status:         refresh.StatusCompleted,
		Fetched:        12,
		Inserted:       9,
		PlatformErrors: []string{`Twitter "flood": status 429`},
		FinishedAt:     &finished,
	}, nil)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/social/refresh/%s", jobID), nil, citizenKey)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RefreshJobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 9, resp.Inserted)
	assert.Len(t, resp.PlatformErrors, 1)
}

func TestGetRefresh_NotFound(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)
	jobID := uuid.New()

	mockScheduler.EXPECT().Get(jobID).Return(refresh.Job{}, refresh.ErrJobNotFound)

	w := makeRequest(router, "GET", fmt.Sprintf("/api/v1/social/refresh/%s", jobID), nil, citizenKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "job not found")
}

func TestGetRefresh_InvalidID(t *testing.T) {
	_, mockScheduler, router := newTestHandler(t)

	mockScheduler.EXPECT().Get(gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/social/refresh/invalid-uuid", nil, citizenKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid job ID")
}

func TestGetHotspots_DefaultOptions(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		ComputeHotspots(gomock.Any(), hotspot.Options{CellSize: 0.02, MinWeight: 1, Mode: hotspot.GridFloor}).
		Return([]models.Hotspot{{Latitude: 25.1, Longitude: 78.06, Weight: 5, Count: 2}}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/hotspots", nil, analystKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"cell_latitude": 25.1, "cell_longitude": 78.06, "weight": 5, "count": 2}]`, w.Body.String())
}

func TestGetHotspots_QueryOverrides(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().
		ComputeHotspots(gomock.Any(), hotspot.Options{CellSize: 0.5, MinWeight: 4, Mode: hotspot.GridNearest}).
		Return(nil, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/hotspots?cell_size=0.5&min_weight=4&mode=nearest", nil, officialKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetHotspots_InvalidOptions(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().ComputeHotspots(gomock.Any(), gomock.Any()).Times(0)

	for _, query := range []string{"cell_size=abc", "cell_size=0", "cell_size=1e-300", "cell_size=500", "min_weight=x", "mode=hex"} {
		w := makeRequest(router, "GET", "/api/v1/hotspots?"+query, nil, analystKey)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestGetHotspots_ServiceError(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().ComputeHotspots(gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

	w := makeRequest(router, "GET", "/api/v1/hotspots", nil, analystKey)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecomputeUrgency_Success(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().RecomputeUrgency(gomock.Any()).Return(7, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/admin/urgency/recompute", nil, adminKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated": 7}`, w.Body.String())
}

func TestRecomputeUrgency_AdminOnly(t *testing.T) {
	mockService, _, router := newTestHandler(t)

	mockService.EXPECT().RecomputeUrgency(gomock.Any()).Times(0)

	for _, key := range []map[string]string{citizenKey, officialKey, analystKey} {
		w := makeRequest(router, "POST", "/api/v1/admin/urgency/recompute", nil, key)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_SetsPrincipal(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	router.Use(APIKeyAuthMiddleware(newTestConfig(), logger))
	router.GET("/test", func(c *gin.Context) {
		p, ok := principalFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"subject": p.Subject, "role": p.Role})
	})

	w := makeRequest(router, "GET", "/test", nil, officialKey)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject": "official-1", "role": "OFFICIAL"}`, w.Body.String())
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/hotspots", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/hotspots", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestRequireRoles_WithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	router.GET("/test", RequireRoles(logger, config.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
