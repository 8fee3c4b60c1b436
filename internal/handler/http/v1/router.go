package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/coastal_hazard_system/internal/config"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("")
	secured.Use(APIKeyAuthMiddleware(h.cfg, h.logger))

	// Обращения граждан
	reports := secured.Group("/reports")
	{
		reports.POST("", h.roles(config.RoleCitizen, config.RoleOfficial), h.createReport)
		reports.GET("/my", h.roles(config.RoleCitizen, config.RoleOfficial, config.RoleAnalyst), h.listMyReports)
		reports.GET("", h.roles(config.RoleOfficial, config.RoleAnalyst), h.listReports)
	}

	// Записи из соцсетей
	social := secured.Group("/social")
	{
		social.POST("/ingest", h.roles(config.RoleOfficial, config.RoleAnalyst, config.RoleAdmin), h.ingestPost)
		social.POST("/ingest/batch", h.roles(config.RoleOfficial, config.RoleAnalyst, config.RoleAdmin), h.ingestBatch)
		social.POST("/refresh", h.roles(config.RoleCitizen, config.RoleOfficial, config.RoleAnalyst), h.submitRefresh)
		social.GET("/refresh/:id", h.roles(config.RoleCitizen, config.RoleOfficial, config.RoleAnalyst), h.getRefresh)
		social.GET("/list", h.roles(config.RoleOfficial, config.RoleAnalyst), h.listSocial)
	}

	secured.GET("/hotspots", h.roles(config.RoleOfficial, config.RoleAnalyst), h.getHotspots)

	secured.POST("/admin/urgency/recompute", h.roles(config.RoleAdmin), h.recomputeUrgency)
}

func (h *Handler) roles(roles ...string) gin.HandlerFunc {
	return RequireRoles(h.logger, roles...)
}
