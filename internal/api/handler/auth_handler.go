package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a student or company account.
//
// @Summary      Register a student or company
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details; type is student, recruiter or company"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role, err := domain.ParseRole(req.Type)
	if err != nil || role == domain.RoleTPO {
		return domain.NewValidationError("Invalid type. Must be 'student' or 'company'")
	}

	created, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	switch account := created.(type) {
	case *domain.Student:
		return c.JSON(http.StatusCreated, registerResponse{Message: "Student registered successfully", Student: account})
	case *domain.Company:
		return c.JSON(http.StatusCreated, registerResponse{Message: "Company registered successfully", Company: account})
	default:
		return fmt.Errorf("register: unexpected account type %T", created)
	}
}

// Login authenticates a student or company and returns a bearer token.
//
// @Summary      Login as student or company
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role, err := domain.ParseRole(req.Type)
	if err != nil || role == domain.RoleTPO {
		return domain.NewValidationError("Invalid type. Must be 'student' or 'recruiter'.")
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, User: res.User})
}

// TPORegister creates a placement office account.
//
// @Summary      Register a TPO
// @Tags         tpo
// @Accept       json
// @Produce      json
// @Param        body  body      tpoRegisterRequest  true  "TPO details"
// @Success      201   {object}  tpoRegisterResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /tpo/register [post]
func (h *AuthHandler) TPORegister(c echo.Context) error {
	var req tpoRegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	created, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.RoleTPO,
	})
	if err != nil {
		return err
	}

	tpo, ok := created.(*domain.TPO)
	if !ok {
		return fmt.Errorf("tpo register: unexpected account type %T", created)
	}
	return c.JSON(http.StatusCreated, tpoRegisterResponse{Message: "TPO registered", TPO: tpo})
}

// TPOLogin authenticates a placement office account.
//
// @Summary      Login as TPO
// @Tags         tpo
// @Accept       json
// @Produce      json
// @Param        body  body      tpoLoginRequest  true  "Login credentials"
// @Success      200   {object}  tpoLoginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /tpo/login [post]
func (h *AuthHandler) TPOLogin(c echo.Context) error {
	var req tpoLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.RoleTPO,
	})
	if err != nil {
		return err
	}

	tpo, ok := res.User.(*domain.TPO)
	if !ok {
		return fmt.Errorf("tpo login: unexpected account type %T", res.User)
	}
	return c.JSON(http.StatusOK, tpoLoginResponse{Token: res.Token, User: tpo, TPO: tpo})
}
