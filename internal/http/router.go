package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/auth"
	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Everything except /, /health and /ping sits behind the api-key gate.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(logging.RequestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.FromGin(c).WithField("panic", recovered).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, MessageResponse{Message: "Internal server error"})
	}))
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.HSTS {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	router.NoRoute(func(c *gin.Context) {
		respondMessage(c, http.StatusNotFound, "Not found")
	})

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/", health.Index)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	gate := cfg.APIKey
	if gate == nil {
		// No key configured means nothing gets through.
		gate = auth.NewAPIKeyMiddleware(config.Auth{})
	}
	api := router.Group("/", gate.Handler())

	users := NewUsersController(cfg.Users)
	api.GET("/users", users.GetAllUsers)
	api.GET("/users/:id", users.GetUser)
	api.POST("/users", users.CreateUser)
	api.PUT("/users/:id", users.UpdateUser)
	api.DELETE("/users/:id", users.DeleteUser)

	authorship := NewAuthorshipController(cfg.Authorship)
	api.POST("/api/authorship", authorship.CreateAuthorship)
	api.GET("/api/books/:bookId/authors", authorship.GetAuthorsOfBook)
	api.GET("/api/users/:userId/books", authorship.GetBooksOfUser)

	return router
}
