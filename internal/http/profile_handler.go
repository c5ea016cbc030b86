package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/repository"
)

// ProfileHandler sirve /profile con los datos de la preferencia incluidos.
type ProfileHandler struct {
	logger  *zap.Logger
	details repository.ProfileDetailsStore
}

func NewProfileHandler(logger *zap.Logger, details repository.ProfileDetailsStore) *ProfileHandler {
	return &ProfileHandler{logger: logger, details: details}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	out, err := h.details.GetDetails(c.Request.Context(), OwnerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Put crea o reemplaza el perfil y, si viene dietary_preference, la preferencia.
func (h *ProfileHandler) Put(c *gin.Context) {
	var fields domain.ProfileDetailsFields
	if !bindJSON(c, h.logger, &fields) {
		return
	}
	out, err := h.details.SaveDetails(c.Request.Context(), OwnerID(c), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
