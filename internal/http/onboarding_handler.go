package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/service"
)

// OnboardingHandler cubre el formulario inicial y el dashboard.
type OnboardingHandler struct {
	logger     *zap.Logger
	onboarding *service.OnboardingService
	dashboard  *service.DashboardService
}

func NewOnboardingHandler(logger *zap.Logger, onboarding *service.OnboardingService, dashboard *service.DashboardService) *OnboardingHandler {
	return &OnboardingHandler{logger: logger, onboarding: onboarding, dashboard: dashboard}
}

// Onboard maneja POST /onboarding.
func (h *OnboardingHandler) Onboard(c *gin.Context) {
	var req domain.OnboardingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	out, err := h.onboarding.Complete(c.Request.Context(), OwnerID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Dashboard maneja GET /dashboard.
func (h *OnboardingHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Build(c.Request.Context(), OwnerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
