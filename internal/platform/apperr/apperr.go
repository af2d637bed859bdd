// Package apperr defines the error taxonomy shared by every domain package.
// Services and repositories wrap these sentinels with fmt.Errorf("%w") so
// handlers can translate failures into HTTP status codes with errors.Is,
// without inspecting driver-level error types themselves.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// ErrInvalid is returned for malformed or missing request fields.
// Handlers translate it into HTTP 400.
var ErrInvalid = errors.New("invalid input")

// ErrAuth is returned for bad credentials or missing/expired tokens.
// Handlers translate it into HTTP 401.
var ErrAuth = errors.New("authentication failed")

// ErrForbidden is returned when the resource exists but the caller does not
// own it. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a referenced id does not exist.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a uniqueness constraint is violated, such as a
// duplicate username or a duplicate patient-doctor pair. Handlers translate
// it into HTTP 409.
var ErrConflict = errors.New("conflict")

// Postgres error codes that repositories map onto the taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromPG maps storage-level errors onto the taxonomy: no rows -> ErrNotFound,
// unique violations -> ErrConflict, foreign-key violations -> ErrNotFound
// (the referenced row does not exist). Other errors pass through unchanged.
func FromPG(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

// HTTP converts an error into an *echo.HTTPError with the status matching its
// kind. msg is used as the response message; unclassified errors become 500s
// with a generic message so internals never leak to clients.
func HTTP(err error, msg string) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, ErrAuth):
		return echo.NewHTTPError(http.StatusUnauthorized, msg)
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, msg)
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msg)
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, msg)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
