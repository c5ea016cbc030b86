package repository

import "context"

// OwnedStore define el contrato CRUD de un recurso con dueño.
// Toda operacion filtra por ownerID; un id de otro dueño se trata como inexistente.
type OwnedStore[T any, F any] interface {
	Create(ctx context.Context, ownerID string, fields F) (T, error)
	List(ctx context.Context, ownerID string) ([]T, error)
	Get(ctx context.Context, ownerID, id string) (T, error)
	Update(ctx context.Context, ownerID, id string, fields F) (T, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// SingletonStore agrega acceso por dueño para recursos que existen una sola vez por usuario.
type SingletonStore[T any, F any] interface {
	OwnedStore[T, F]
	GetByOwner(ctx context.Context, ownerID string) (T, error)
	UpsertByOwner(ctx context.Context, ownerID string, fields F) (T, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
