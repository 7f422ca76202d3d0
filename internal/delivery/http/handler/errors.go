package handler

import (
	"errors"

	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError translates the usecase error taxonomy onto HTTP statuses.
// Validation and conflict errors keep their specific message; anything
// internal collapses to the generic 500 body.
func mapUsecaseError(err error, conflictMsg string) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrAlreadyExists):
		if conflictMsg == "" {
			conflictMsg = response.MessageConflict
		}
		return middleware.NewAppError(fiber.StatusConflict, conflictMsg, nil, err)
	case errors.Is(err, usecase.ErrInUse):
		if conflictMsg == "" {
			conflictMsg = response.MessageConflict
		}
		return middleware.NewAppError(fiber.StatusConflict, conflictMsg, nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func requestUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return id, nil
}
