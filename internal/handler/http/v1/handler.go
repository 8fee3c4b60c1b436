package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/shenikar/coastal_hazard_system/internal/hotspot"
	"github.com/shenikar/coastal_hazard_system/internal/models"
	"github.com/shenikar/coastal_hazard_system/internal/refresh"
	"github.com/shenikar/coastal_hazard_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	postService service.PostService
	scheduler   refresh.Scheduler
	logger      *logrus.Logger
	validate    *validator.Validate
	cfg         *config.Config
}

func NewHandler(postService service.PostService, scheduler refresh.Scheduler, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		postService: postService,
		scheduler:   scheduler,
		logger:      logger,
		validate:    validator.New(),
		cfg:         cfg,
	}
}

// @Summary Submit a citizen report
// @Description Submit a hazard report. Hazard and urgency are assigned by the classifier. Requires CITIZEN or OFFICIAL role.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body CreateReportRequest true "Citizen report"
// @Success 201 {object} IngestResponse "Report stored"
// @Success 200 {object} IngestResponse "Duplicate report, nothing stored"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, _ := principalFrom(c)
	result, err := h.postService.SubmitReport(c.Request.Context(), principal.Subject, ReportDTOToPostModel(input))
	if err != nil {
		h.writeIngestError(c, log, err)
		return
	}
	c.JSON(ingestStatus(result.Inserted), IngestResultToResponse(result))
}

// @Summary List own reports
// @Description List reports submitted by the calling principal.
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} PostResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/my [get]
func (h *Handler) listMyReports(c *gin.Context) {
	log := h.logger.WithField("method", "listMyReports")
	query, ok := h.bindListQuery(c, log)
	if !ok {
		return
	}

	principal, _ := principalFrom(c)
	filter := query.toFilter()
	filter.Source = ""
	filter.Submitter = principal.Subject
	h.respondList(c, log, filter)
}

// @Summary List citizen reports
// @Description List all citizen reports. Requires OFFICIAL or ANALYST role.
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Param hazard query string false "Hazard category"
// @Param urgency query string false "Urgency level" Enums(Low, Medium, High)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} PostResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	query, ok := h.bindListQuery(c, log)
	if !ok {
		return
	}

	filter := query.toFilter()
	filter.Source = models.SourceCitizen
	h.respondList(c, log, filter)
}

// @Summary List stored posts
// @Description List stored posts from every source, newest first. Requires OFFICIAL or ANALYST role.
// @Tags Social
// @Produce json
// @Security ApiKeyAuth
// @Param source query string false "Source platform"
// @Param hazard query string false "Hazard category"
// @Param urgency query string false "Urgency level" Enums(Low, Medium, High)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} PostResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /social/list [get]
func (h *Handler) listSocial(c *gin.Context) {
	log := h.logger.WithField("method", "listSocial")
	query, ok := h.bindListQuery(c, log)
	if !ok {
		return
	}
	h.respondList(c, log, query.toFilter())
}

// @Summary Ingest a post
// @Description Normalize, classify and store one post. Duplicates return inserted=false.
// @Tags Social
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param post body IngestPostRequest true "Post"
// @Success 201 {object} IngestResponse "Post stored"
// @Success 200 {object} IngestResponse "Duplicate post, nothing stored"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /social/ingest [post]
func (h *Handler) ingestPost(c *gin.Context) {
	var input IngestPostRequest
	log := h.logger.WithField("method", "ingestPost")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.postService.IngestPost(c.Request.Context(), DTOToPostModel(input))
	if err != nil {
		h.writeIngestError(c, log, err)
		return
	}
	c.JSON(ingestStatus(result.Inserted), IngestResultToResponse(result))
}

// @Summary Ingest a batch of posts
// @Description Ingest posts one by one and return how many were stored.
// @Tags Social
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch body IngestBatchRequest true "Posts"
// @Success 200 {object} IngestBatchResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /social/ingest/batch [post]
func (h *Handler) ingestBatch(c *gin.Context) {
	var input IngestBatchRequest
	log := h.logger.WithField("method", "ingestBatch")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inserted, err := h.postService.IngestPosts(c.Request.Context(), DTOsToPostModels(input.Posts))
	if err != nil {
		log.WithError(err).WithField("inserted", inserted).Error("Failed to ingest batch in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "inserted": inserted})
		return
	}
	c.JSON(http.StatusOK, IngestBatchResponse{Received: len(input.Posts), Inserted: inserted})
}

// @Summary Start a social refresh
// @Description Queue a fetch from all platforms. Empty body uses the default query.
// @Tags Social
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param refresh body RefreshRequest false "Refresh request"
// @Success 202 {object} RefreshJobResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 503 {object} map[string]string "Refresh queue is full"
// @Router /social/refresh [post]
func (h *Handler) submitRefresh(c *gin.Context) {
	var input RefreshRequest
	log := h.logger.WithField("method", "submitRefresh")

	// Тело необязательное
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Query == "" {
		input.Query = h.cfg.RefreshDefaultQuery
	}
	if input.Limit == 0 {
		input.Limit = h.cfg.RefreshDefaultLimit
	}

	job, err := h.scheduler.Submit(input.Query, input.Limit)
	if err != nil {
		if errors.Is(err, refresh.ErrQueueFull) {
			log.WithError(err).Warn("Refresh rejected")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh queue is full, retry later"})
			return
		}
		log.WithError(err).Error("Failed to submit refresh job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusAccepted, JobToResponse(job))
}

// @Summary Get refresh job status
// @Tags Social
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Job ID"
// @Success 200 {object} RefreshJobResponse
// @Failure 400 {object} map[string]string "Invalid job ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Job not found"
// @Router /social/refresh/{id} [get]
func (h *Handler) getRefresh(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}
	log := h.logger.WithField("method", "getRefresh").WithField("id", id)

	job, err := h.scheduler.Get(id)
	if err != nil {
		log.WithError(err).Warn("Failed to get refresh job")
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, JobToResponse(job))
}

// @Summary Get hazard hotspots
// @Description Aggregate geotagged posts into grid cells weighted by urgency. Requires OFFICIAL or ANALYST role.
// @Tags Hotspots
// @Produce json
// @Security ApiKeyAuth
// @Param cell_size query number false "Cell size in degrees, between 1e-6 and 180" default(0.02)
// @Param min_weight query int false "Cells with weight <= min_weight are dropped" default(1)
// @Param mode query string false "Grid mode" Enums(floor, nearest)
// @Success 200 {array} HotspotResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hotspots [get]
func (h *Handler) getHotspots(c *gin.Context) {
	log := h.logger.WithField("method", "getHotspots")

	opts := hotspot.Options{
		CellSize:  h.cfg.HotspotCellSize,
		MinWeight: h.cfg.HotspotMinWeight,
		Mode:      hotspot.GridMode(h.cfg.HotspotGridMode),
	}
	if raw := c.Query("cell_size"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cell_size"})
			return
		}
		opts.CellSize = v
	}
	if raw := c.Query("min_weight"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_weight"})
			return
		}
		opts.MinWeight = v
	}
	if raw := c.Query("mode"); raw != "" {
		opts.Mode = hotspot.GridMode(raw)
	}
	if err := opts.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hotspots, err := h.postService.ComputeHotspots(c.Request.Context(), opts)
	if err != nil {
		log.WithError(err).Error("Failed to compute hotspots in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, HotspotsToResponses(hotspots))
}

// @Summary Recompute urgency
// @Description Reclassify urgency for every stored post. Requires ADMIN role.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RecomputeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/urgency/recompute [post]
func (h *Handler) recomputeUrgency(c *gin.Context) {
	log := h.logger.WithField("method", "recomputeUrgency")

	updated, err := h.postService.RecomputeUrgency(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to recompute urgency in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, RecomputeResponse{Updated: updated})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bindListQuery(c *gin.Context, log *logrus.Entry) (ListPostsQuery, bool) {
	var query ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return query, false
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return query, false
	}
	return query, true
}

func (h *Handler) respondList(c *gin.Context, log *logrus.Entry, filter models.PostFilter) {
	posts, err := h.postService.ListPosts(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list posts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToPostResponses(posts))
}

func (h *Handler) writeIngestError(c *gin.Context, log *logrus.Entry, err error) {
	if errors.Is(err, service.ErrEmptyText) {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.WithError(err).Error("Failed to ingest post in service")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func ingestStatus(inserted bool) int {
	if inserted {
		return http.StatusCreated
	}
	return http.StatusOK
}
