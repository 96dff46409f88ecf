package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/ports"
)

type ApplicationHandler struct {
	applications ports.ApplicationService
}

func NewApplicationHandler(applications ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Apply handles POST /student/apply. The applicant is always the caller.
//
// @Summary      Apply to an opportunity
// @Tags         student
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Application details"
// @Success      201   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /student/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	app, err := h.applications.Apply(c.Request().Context(), ports.ApplyInput{
		StudentID:      id.SubjectID,
		OpportunityID:  req.OpportunityID,
		CompanyID:      req.CompanyID,
		Position:       req.Position,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, applicationResponse{Message: "Application submitted", Application: app})
}

// ListForStudent handles GET /student/applications.
//
// @Summary      List own applications
// @Tags         student
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  studentApplicationsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /student/applications [get]
func (h *ApplicationHandler) ListForStudent(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	apps, err := h.applications.ListForStudent(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentApplicationsResponse{Applications: nonNil(apps)})
}

// ListForCompany handles GET /company/applications.
//
// @Summary      List applications received
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  companyApplicationsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /company/applications [get]
func (h *ApplicationHandler) ListForCompany(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	apps, err := h.applications.ListForCompany(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyApplicationsResponse{Applications: nonNil(apps)})
}
