package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/repository"
)

// SingletonHandler sirve recursos que existen una vez por usuario (perfil, preferencia).
type SingletonHandler[T any, F any] struct {
	logger *zap.Logger
	store  repository.SingletonStore[T, F]
}

func NewSingletonHandler[T any, F any](logger *zap.Logger, store repository.SingletonStore[T, F]) *SingletonHandler[T, F] {
	return &SingletonHandler[T, F]{logger: logger, store: store}
}

// Mount registra GET/PUT/DELETE en path; withCreate agrega POST.
func (h *SingletonHandler[T, F]) Mount(g gin.IRoutes, path string, withCreate bool) {
	g.GET(path, h.Get)
	if withCreate {
		g.POST(path, h.Create)
	}
	g.PUT(path, h.Put)
	g.DELETE(path, h.Delete)
}

func (h *SingletonHandler[T, F]) Get(c *gin.Context) {
	item, err := h.store.GetByOwner(c.Request.Context(), OwnerID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create falla con 409 si el usuario ya tiene uno.
func (h *SingletonHandler[T, F]) Create(c *gin.Context) {
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

// Put crea o reemplaza.
func (h *SingletonHandler[T, F]) Put(c *gin.Context) {
	var fields F
	if !bindJSON(c, h.logger, &fields) {
		return
	}
	item, err := h.store.UpsertByOwner(c.Request.Context(), OwnerID(c), fields)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *SingletonHandler[T, F]) Delete(c *gin.Context) {
	if err := h.store.DeleteByOwner(c.Request.Context(), OwnerID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
