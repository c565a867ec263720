package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/reelhouse/movie-catalog/internal/config"
	"github.com/reelhouse/movie-catalog/internal/handler"
	"github.com/reelhouse/movie-catalog/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: health probes for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Healthz)
	e.GET("/v1/health", handler.Health)
}

// RegisterAuth registers the authentication endpoints and the protected
// /v1/me route. Register and login are open; me requires a valid bearer.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterCatalog registers the movie catalog surface. Reads are public;
// the full list sits behind the Redis response cache (rdb may be nil, in
// which case the middleware is a pass-through). Mutations require a valid
// bearer token carrying the admin claim: a missing or invalid token yields
// 401 from JWTAuth, a valid non-admin token yields 403 from RequireAdmin.
func RegisterCatalog(e *echo.Echo, m *handler.MovieHandler, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig) {
	e.GET("/v1/movies", m.List, middleware.ResponseCache(rdb, cacheCfg))
	e.GET("/v1/movies/featured", m.Featured)
	e.GET("/v1/movies/:id", m.Get)
	e.GET("/v1/search/movies", m.Search)

	admin := e.Group("/v1/movies")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireAdmin())
	admin.POST("", m.Create)
	admin.PUT("/:id", m.Update)
	admin.DELETE("/:id", m.Delete)
}
