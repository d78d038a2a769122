package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/auth"
	"github.com/iliyamo/house-price-api/internal/handler"
	"github.com/iliyamo/house-price-api/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	AdminAuth *handler.AdminAuthHandler
	Predict   *handler.PredictHandler
	History   *handler.HistoryHandler
	Admin     *handler.AdminHandler
	ModelInfo *handler.ModelInfoHandler
}

// Register attaches all routes to the Echo instance.  Unauthenticated
// endpoints are registered directly; everything else sits behind one of
// the two bearer guards.  The guards resolve against disjoint registries,
// so a user token never opens an /admin route and vice versa.
func Register(e *echo.Echo, h Handlers, userTokens, adminTokens *auth.Registry) {
	// Public surface.
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)
	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.POST("/admin/login", h.AdminAuth.Login)

	// User-token surface.
	u := e.Group("")
	u.Use(middleware.RequireUser(userTokens))
	u.GET("/me", h.Auth.Me)
	u.POST("/logout", h.Auth.Logout)
	u.POST("/predict", h.Predict.Predict)
	u.GET("/history", h.History.List)
	u.DELETE("/history/:id", h.History.Delete)
	u.PUT("/history/:id/favorite", h.History.ToggleFavorite)

	// Admin-token surface.
	a := e.Group("/admin")
	a.Use(middleware.RequireAdmin(adminTokens))
	a.GET("/me", h.AdminAuth.Me)
	a.POST("/logout", h.AdminAuth.Logout)
	a.GET("/users", h.Admin.ListUsers)
	a.DELETE("/users/:id", h.Admin.DeleteUser)
	a.PUT("/users/:id/block", h.Admin.ToggleBlockUser)
	a.GET("/predictions", h.Admin.ListPredictions)
	a.DELETE("/predictions/:id", h.Admin.DeletePrediction)
	a.GET("/stats", h.Admin.Stats)
	a.GET("/model-info", h.ModelInfo.ModelInfo)
}
