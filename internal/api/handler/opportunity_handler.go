package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/ports"
)

// OpportunityHandler serves the company's own postings, the public catalogue
// and the student's eligibility-filtered view of it.
type OpportunityHandler struct {
	opportunities ports.OpportunityService
}

func NewOpportunityHandler(opportunities ports.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

// Create handles POST /company/opportunities.
//
// @Summary      Post an opportunity
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      opportunityRequest  true  "Opportunity details"
// @Success      201   {object}  opportunityMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /company/opportunities [post]
func (h *OpportunityHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req opportunityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	opp, err := req.toOpportunity()
	if err != nil {
		return err
	}

	created, err := h.opportunities.Create(c.Request().Context(), id.SubjectID, opp)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, opportunityMessageResponse{Message: "Opportunity created", Opportunity: created})
}

// ListOwn handles GET /company/opportunities.
//
// @Summary      List own opportunities
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  opportunitiesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /company/opportunities [get]
func (h *OpportunityHandler) ListOwn(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	opps, err := h.opportunities.ListForCompany(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunitiesResponse{Opportunities: nonNil(opps)})
}

// GetOwn handles GET /company/opportunities/:id.
//
// @Summary      Get an own opportunity
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Opportunity id"
// @Success      200  {object}  opportunityResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /company/opportunities/{id} [get]
func (h *OpportunityHandler) GetOwn(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	opp, err := h.opportunities.GetOwned(c.Request().Context(), id.SubjectID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunityResponse{Opportunity: opp})
}

// Update handles PUT /company/opportunities/:id. A posting of another company
// is reported as not found.
//
// @Summary      Update an own opportunity
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Opportunity id"
// @Param        body  body      opportunityRequest  true  "Fields to change"
// @Success      200   {object}  opportunityMessageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /company/opportunities/{id} [put]
func (h *OpportunityHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req opportunityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	update, err := req.toUpdate()
	if err != nil {
		return err
	}

	opp, err := h.opportunities.Update(c.Request().Context(), id.SubjectID, c.Param("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunityMessageResponse{Message: "Opportunity updated", Opportunity: opp})
}

// Delete handles DELETE /company/opportunities/:id.
//
// @Summary      Delete an own opportunity
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Opportunity id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /company/opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.opportunities.Delete(c.Request().Context(), id.SubjectID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Opportunity deleted"})
}

// ListPublic handles GET /opportunities.
//
// @Summary      List all opportunities
// @Tags         opportunities
// @Produce      json
// @Success      200  {object}  opportunitiesResponse
// @Failure      500  {object}  errorResponse
// @Router       /opportunities [get]
func (h *OpportunityHandler) ListPublic(c echo.Context) error {
	opps, err := h.opportunities.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunitiesResponse{Opportunities: nonNil(opps)})
}

// ListEligible handles GET /student/opportunities.
//
// @Summary      List opportunities the caller is eligible for
// @Tags         student
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  opportunitiesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /student/opportunities [get]
func (h *OpportunityHandler) ListEligible(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	opps, err := h.opportunities.ListEligible(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opportunitiesResponse{Opportunities: nonNil(opps)})
}
