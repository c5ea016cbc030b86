package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/repository"
)

// ResourceHandler expone CRUD para cualquier OwnedStore. El dueño siempre sale de la sesion.
type ResourceHandler[T any, F any] struct {
	logger *zap.Logger
	store  repository.OwnedStore[T, F]
}

func NewResourceHandler[T any, F any](logger *zap.Logger, store repository.OwnedStore[T, F]) *ResourceHandler[T, F] {
	return &ResourceHandler[T, F]{logger: logger, store: store}
}

// Mount registra GET/POST en path y GET/PUT/DELETE en path/:id.
func (h *ResourceHandler[T, F]) Mount(g gin.IRoutes, path string) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

func (h *ResourceHandler[T, F]) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context(), OwnerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T, F]) Create(c *gin.Context) {
	var fields F
	if !bindJSON(c, h.logger, &fields) {
		return
	}
	item, err := h.store.Create(c.Request.Context(), OwnerID(c), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ResourceHandler[T, F]) Get(c *gin.Context) {
	item, err := h.store.Get(c.Request.Context(), OwnerID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T, F]) Update(c *gin.Context) {
	var fields F
	if !bindJSON(c, h.logger, &fields) {
		return
	}
	item, err := h.store.Update(c.Request.Context(), OwnerID(c), c.Param("id"), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T, F]) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), OwnerID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
