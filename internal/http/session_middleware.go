package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/domain"
)

const ownerIDKey = "owner_id"

// SessionResolver lo cumple *service.SessionDirectory.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// RequireSession resuelve la cookie de sesion y guarda el dueño en el contexto.
// Sin cookie o con un token desconocido responde 401.
func RequireSession(sessions SessionResolver, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			respondError(c, logger, domain.ErrUnauthorized)
			return
		}
		ownerID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.Set(ownerIDKey, ownerID)
		c.Next()
	}
}

// OwnerID devuelve el usuario resuelto por RequireSession.
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}
