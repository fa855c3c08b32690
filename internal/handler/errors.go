package handler

import (
	"errors"
	"net/http"

	"github.com/TopJodel/topjodel-backend/internal/repository/mongodb"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/internal/service"
	"github.com/TopJodel/topjodel-backend/pkg/utils"
)

var (
	errNotAuthorized    = errors.New("user is not authorized")
	errInvalidUserID    = errors.New("user ID must be int")
	errInvalidProfileID = errors.New("profile ID must be int")
	errInvalidLimit     = errors.New("limit and skip must be int")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, mongodb.ErrPostNotFound),
		errors.Is(err, postgres.ErrUserNotFound),
		errors.Is(err, postgres.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, mongodb.ErrNotOwner),
		errors.Is(err, service.ErrWrongCredentials):
		return http.StatusForbidden
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, postgres.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, utils.ErrInvalidEmail),
		errors.Is(err, utils.ErrInvalidPassword),
		errors.Is(err, utils.ErrInvalidUsername),
		errors.Is(err, utils.ErrInvalidFirstName),
		errors.Is(err, utils.ErrInvalidLastName),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, postgres.ErrNothingToUpdate),
		errors.Is(err, postgres.ErrFieldsNotAllowedToUpdate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
