package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"meal-tracker/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgForeignKeyViolation = "23503"
)

// mapError traduce errores de pgx a los errores de dominio.
// Un id mal formado se reporta como inexistente, igual que un id ajeno.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", what, domain.ErrConflict)
		case pgInvalidTextRepr:
			return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: owner %w", what, domain.ErrNotFound)
		}
	}
	return err
}

func notFoundUnlessAffected(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}

// checkID rechaza ids que no son uuid antes de llegar a la base.
func checkID(id, what string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
