// Package api assembles the HTTP surface: middleware, health and
// metrics endpoints, the browse API, and the account and listing
// form routes.
package api

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/milestonemotors/motors/internal/api/handlers"
	"github.com/milestonemotors/motors/internal/api/middleware"
	"github.com/milestonemotors/motors/internal/catalog"
	"github.com/milestonemotors/motors/internal/identity"
	"github.com/milestonemotors/motors/internal/session"
	"github.com/milestonemotors/motors/internal/store"
)

const (
	apiTitle   = "Milestone Motors API"
	apiVersion = "1.0.0"
)

// Deps carries everything the server needs wired in.
type Deps struct {
	Store        store.Store
	Catalog      *catalog.Service
	Identity     *identity.Service
	Sessions     *session.Manager
	LoginLimiter *middleware.LoginLimiter
	Logger       *slog.Logger
}

// Server is the assembled Echo application.
type Server struct {
	echo *echo.Echo
}

// NewServer builds the Echo instance with the full route table. The
// mutating routes sit behind the session check; everything a visitor
// can browse stays public.
func NewServer(d Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(d.Logger))
	e.Use(middleware.RequestLog(d.Logger))
	e.Use(middleware.Metrics())

	healthH := handlers.NewHealthHandler(d.Store)
	e.GET("/healthz", healthH.Healthz)
	e.GET("/readyz", healthH.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Read-only browse API.
	humaAPI := humaecho.New(e, huma.DefaultConfig(apiTitle, apiVersion))
	handlers.RegisterCatalogRoutes(humaAPI, handlers.NewCatalogHandler(d.Catalog))

	accountH := handlers.NewAccountHandler(d.Identity, d.Sessions)
	e.POST("/register", accountH.Register)
	e.POST("/login", accountH.Login, d.LoginLimiter.Limit())
	e.POST("/logout", accountH.Logout)

	usersH := handlers.NewUsersHandler(d.Identity, d.Catalog, d.Sessions, d.Logger)
	e.GET("/users/:id", usersH.Detail)

	// Everything below requires a signed-in account. The session
	// middleware is the only source of the acting user id; handlers
	// never take it from the request body.
	listingsH := handlers.NewListingsHandler(d.Catalog)
	auth := e.Group("", d.Sessions.RequireUser())
	auth.POST("/listings", listingsH.Create)
	auth.POST("/listings/:id/edit", listingsH.Edit)
	auth.POST("/listings/:id/delete", listingsH.Delete)
	auth.GET("/my/listings", usersH.MyListings)
	auth.GET("/profile", usersH.Me)
	auth.POST("/profile", usersH.EditProfile)
	auth.POST("/account/delete", usersH.DeleteAccount)

	return &Server{echo: e}
}

// Echo exposes the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start begins serving on addr and blocks until the listener stops.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
