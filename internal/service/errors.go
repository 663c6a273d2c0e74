package service

import (
	"errors"

	"computer-store-ws/internal/repository"
	"computer-store-ws/pkg/apperror"

	"github.com/google/uuid"
)

// notFound turns a repository miss into the typed NotFound of the entity
func notFound(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFound(entity, id)
	}
	return err
}
