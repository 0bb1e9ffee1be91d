package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC     domain.AuthUsecase
	UserUC     domain.UserUsecase
	JobUC      domain.JobUsecase
	ResponseUC domain.ResponseUsecase
	Tokens     *auth.TokenManager
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(
		middleware.DefaultRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	public := r.Group("")

	// Login gets a stricter rate limit window
	loginGroup := r.Group("")
	loginGroup.Use(middleware.RateLimitMiddleware(
		middleware.AuthRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))
	NewAuthHandler(loginGroup, deps.AuthUC)

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewUserHandler(public, protected, deps.UserUC, deps.AuthUC)
		NewJobHandler(public, protected, deps.JobUC)
		NewResponseHandler(protected, deps.ResponseUC)
	}

	return r
}
