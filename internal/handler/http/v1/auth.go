package v1

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/coastal_hazard_system/internal/config"
	"github.com/sirupsen/logrus"
)

const principalKey = "principal"

// Principal - аутентифицированный вызывающий: субъект и его роль
type Principal struct {
	Subject string
	Role    string
}

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу.
// Найденный ключ превращается в Principal и кладется в контекст gin.
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		idx := slices.IndexFunc(cfg.APIKeys, func(k config.APIKey) bool {
			return k.Key == apiKey
		})
		if idx < 0 {
			log.WithField("path", c.FullPath()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		key := cfg.APIKeys[idx]
		c.Set(principalKey, Principal{Subject: key.Subject, Role: key.Role})
		c.Next()
	}
}

// RequireRoles пропускает запрос только для перечисленных ролей
func RequireRoles(log *logrus.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}
		if !slices.Contains(roles, p.Role) {
			log.WithFields(logrus.Fields{
				"subject": p.Subject,
				"role":    p.Role,
				"path":    c.FullPath(),
			}).Warn("Access denied for role")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
