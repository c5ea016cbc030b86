package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/service"
)

// ChatHandler reenvia pedidos al servicio de chat.
type ChatHandler struct {
	logger *zap.Logger
	chat   *service.ChatService
}

func NewChatHandler(logger *zap.Logger, chat *service.ChatService) *ChatHandler {
	return &ChatHandler{logger: logger, chat: chat}
}

// PostMessage maneja POST /chat.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if !bindJSON(c, h.logger, &req) {
		return
	}
	reply, err := h.chat.Send(c.Request.Context(), OwnerID(c), req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// CalculateCalories maneja POST /calculate-calories.
func (h *ChatHandler) CalculateCalories(c *gin.Context) {
	var req domain.UserRecipeFields
	if !bindJSON(c, h.logger, &req) {
		return
	}
	calories, err := h.chat.CalculateCalories(c.Request.Context(), OwnerID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calories": calories})
}
