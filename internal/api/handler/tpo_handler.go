package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/ports"
)

// TPOHandler serves the placement office's cross-account views. Every route
// is mounted behind RBAC(tpo).
type TPOHandler struct {
	tpo ports.TPOService
}

func NewTPOHandler(tpo ports.TPOService) *TPOHandler {
	return &TPOHandler{tpo: tpo}
}

// Students handles GET /tpo/students.
//
// @Summary      List all students
// @Tags         tpo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  studentsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /tpo/students [get]
func (h *TPOHandler) Students(c echo.Context) error {
	students, err := h.tpo.ListStudents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentsResponse{Students: nonNil(students)})
}

// Student handles GET /tpo/students/:id.
//
// @Summary      Get a student
// @Tags         tpo
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  studentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tpo/students/{id} [get]
func (h *TPOHandler) Student(c echo.Context) error {
	student, err := h.tpo.GetStudent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentResponse{Student: student})
}

// Companies handles GET /tpo/companies.
//
// @Summary      List all companies
// @Tags         tpo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  companiesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /tpo/companies [get]
func (h *TPOHandler) Companies(c echo.Context) error {
	companies, err := h.tpo.ListCompanies(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companiesResponse{Companies: nonNil(companies)})
}

// Opportunities handles GET /tpo/opportunities.
//
// @Summary      List all opportunities
// @Tags         tpo
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  opportunitiesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /tpo/opportunities [get]
func (h *TPOHandler) Opportunities(c echo.Context) error {
	opps, err := h.tpo.ListOpportunities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunitiesResponse{Opportunities: nonNil(opps)})
}

// VerifyStudent handles POST /tpo/verify-student/:id and queues a
// notification to the student.
//
// @Summary      Verify a student
// @Tags         tpo
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  studentMessageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tpo/verify-student/{id} [post]
func (h *TPOHandler) VerifyStudent(c echo.Context) error {
	student, err := h.tpo.VerifyStudent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, studentMessageResponse{Message: "Student verified", Student: student})
}
