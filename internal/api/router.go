package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/api/handler"
	"github.com/placementpathway/portal-api/internal/api/middleware"
	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// Deps carries everything the business routes are served from.
type Deps struct {
	Auth          ports.AuthService
	Students      ports.StudentService
	Opportunities ports.OpportunityService
	Applications  ports.ApplicationService
	TPO           ports.TPOService

	Tokens  ports.TokenVerifier
	Limiter ports.RateLimiter

	// AuthRateLimit requests per AuthRateWindow are allowed per client IP on
	// each register and login route.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	MaxUploadBytes int64

	Log zerolog.Logger
}

// RegisterRoutes installs the error handler, the validator and every business
// route on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	authHandler := handler.NewAuthHandler(d.Auth)
	studentHandler := handler.NewStudentHandler(d.Students, d.MaxUploadBytes)
	applicationHandler := handler.NewApplicationHandler(d.Applications)
	opportunityHandler := handler.NewOpportunityHandler(d.Opportunities)
	tpoHandler := handler.NewTPOHandler(d.TPO)

	authenticate := middleware.Auth(d.Tokens, d.Log)
	limited := middleware.RateLimit(d.Limiter, d.AuthRateLimit, d.AuthRateWindow, d.Log)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register, limited)
	e.POST("/login", authHandler.Login, limited)
	e.POST("/tpo/register", authHandler.TPORegister, limited)
	e.POST("/tpo/login", authHandler.TPOLogin, limited)

	// --- Open catalogue ---
	e.GET("/opportunities", opportunityHandler.ListPublic)
	e.GET("/students/verified", studentHandler.ListVerified)

	// --- Student ---
	student := e.Group("/student", authenticate, middleware.RBAC(domain.RoleStudent))
	student.GET("/profile", studentHandler.Profile)
	student.POST("/profile", studentHandler.SaveProfile)
	student.POST("/profile/upload", studentHandler.UploadResume)
	student.GET("/applications", applicationHandler.ListForStudent)
	student.POST("/apply", applicationHandler.Apply)
	student.GET("/opportunities", opportunityHandler.ListEligible)

	e.GET("/students/:id", studentHandler.Get,
		authenticate, middleware.OwnerOrRole("id", domain.RoleTPO, domain.RoleRecruiter))

	// --- Company ---
	company := e.Group("/company", authenticate, middleware.RBAC(domain.RoleRecruiter))
	company.GET("/applications", applicationHandler.ListForCompany)
	company.POST("/opportunities", opportunityHandler.Create)
	company.GET("/opportunities", opportunityHandler.ListOwn)
	company.GET("/opportunities/:id", opportunityHandler.GetOwn)
	company.PUT("/opportunities/:id", opportunityHandler.Update)
	company.DELETE("/opportunities/:id", opportunityHandler.Delete)

	// --- TPO ---
	tpo := e.Group("/tpo", authenticate, middleware.RBAC(domain.RoleTPO))
	tpo.GET("/students", tpoHandler.Students)
	tpo.GET("/students/:id", tpoHandler.Student)
	tpo.GET("/companies", tpoHandler.Companies)
	tpo.GET("/opportunities", tpoHandler.Opportunities)
	tpo.POST("/verify-student/:id", tpoHandler.VerifyStudent)
}
