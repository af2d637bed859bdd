package patient

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medrec/medrec/internal/platform/apperr"
	"github.com/medrec/medrec/internal/platform/auth"
	"github.com/medrec/medrec/internal/platform/validate"
	"github.com/medrec/medrec/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.List)
	api.POST("/patients", h.Create)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)
	api.PATCH("/patients/:id", h.Patch)
	api.DELETE("/patients/:id", h.Delete)
}

// CreateRequest accepts created_by for wire compatibility but the value is
// always discarded in favor of the authenticated caller.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Address     string `json:"address" validate:"required"`
	CreatedBy   string `json:"created_by"`
}

type PatchRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Address     *string `json:"address"`
}

func (h *Handler) Create(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	if callerID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dob, err := ParseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := &Patient{Name: req.Name, DateOfBirth: dob, Address: req.Address}
	if err := h.svc.Create(c.Request().Context(), callerID, p); err != nil {
		return apperr.HTTP(err, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := h.svc.Get(c.Request().Context(), callerID, id)
	if err != nil {
		return apperr.HTTP(err, errMessage(err))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	if callerID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	pg := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), callerID, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	dob, err := ParseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.Update(c.Request().Context(), callerID, id, req.Name, dob, req.Address)
	if err != nil {
		return apperr.HTTP(err, errMessage(err))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Patch(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req PatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var dob *Date
	if req.DateOfBirth != nil {
		parsed, err := ParseDate(*req.DateOfBirth)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		dob = &parsed
	}

	p, err := h.svc.Patch(c.Request().Context(), callerID, id, req.Name, dob, req.Address)
	if err != nil {
		return apperr.HTTP(err, errMessage(err))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	callerID := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), callerID, id); err != nil {
		return apperr.HTTP(err, errMessage(err))
	}
	return c.NoContent(http.StatusNoContent)
}

// errMessage keeps the two failure modes distinct in responses: a missing id
// reads "patient not found", an ownership failure reads as forbidden.
func errMessage(err error) string {
	switch apperr.HTTP(err, "").Code {
	case http.StatusForbidden:
		return "you do not have permission to access this patient"
	case http.StatusNotFound:
		return "patient not found"
	default:
		return err.Error()
	}
}
