package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/netfibra/backoffice/internal/auth"
	"github.com/netfibra/backoffice/internal/catalog"
	"github.com/netfibra/backoffice/internal/material"
	"github.com/netfibra/backoffice/internal/partner"
	"github.com/netfibra/backoffice/internal/pricelist"
	"github.com/netfibra/backoffice/internal/rbac"
	"github.com/netfibra/backoffice/internal/tenant"
	"github.com/netfibra/backoffice/internal/transport/middleware"
	"github.com/netfibra/backoffice/internal/transport/swagger"
	"github.com/netfibra/backoffice/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Catalog   *catalog.Handler
	Material  *material.Handler
	Pricelist *pricelist.Handler
	RBAC      *rbac.Handler
	Partner   *partner.Handler
	Tenant    *tenant.Handler
	User      *user.Handler
}

// RegisterAllRoutes mounts the API under /api/v1. Everything except auth and
// health sits behind the token middleware; write access to domain resources
// is additionally gated per screen by the permission matrix.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbacService *rbac.Service, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// screen shorthands the route groups below gate on
	screen := func(key string, action rbac.ScreenAction) func(http.Handler) http.Handler {
		return middleware.RequireScreen(rbacService, logger, key, action)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)
			pr.Get("/my-permissions", h.RBAC.MyPermissions)

			// catalog: classes, unidades, servicos share one screen
			pr.Route("/classes", func(cr chi.Router) {
				cr.With(screen("catalogo", rbac.ActionView)).Get("/", h.Catalog.ListClasses)
				cr.With(screen("catalogo", rbac.ActionView)).Get("/{id}", h.Catalog.GetClasse)
				cr.With(screen("catalogo", rbac.ActionCreate)).Post("/", h.Catalog.CreateClasse)
				cr.With(screen("catalogo", rbac.ActionEdit)).Put("/{id}", h.Catalog.UpdateClasse)
				cr.With(screen("catalogo", rbac.ActionDelete)).Delete("/{id}", h.Catalog.DeleteClasse)
			})

			pr.Route("/unidades", func(ur chi.Router) {
				ur.With(screen("catalogo", rbac.ActionView)).Get("/", h.Catalog.ListUnidades)
				ur.With(screen("catalogo", rbac.ActionView)).Get("/{id}", h.Catalog.GetUnidade)
				ur.With(screen("catalogo", rbac.ActionCreate)).Post("/", h.Catalog.CreateUnidade)
				ur.With(screen("catalogo", rbac.ActionEdit)).Put("/{id}", h.Catalog.UpdateUnidade)
				ur.With(screen("catalogo", rbac.ActionDelete)).Delete("/{id}", h.Catalog.DeleteUnidade)
			})

			pr.Route("/servicos", func(sr chi.Router) {
				sr.With(screen("catalogo", rbac.ActionView)).Get("/", h.Catalog.ListServicos)
				sr.With(screen("catalogo", rbac.ActionView)).Get("/{id}", h.Catalog.GetServico)
				sr.With(screen("catalogo", rbac.ActionCreate)).Post("/", h.Catalog.CreateServico)
				sr.With(screen("catalogo", rbac.ActionEdit)).Put("/{id}", h.Catalog.UpdateServico)
				sr.With(screen("catalogo", rbac.ActionDelete)).Delete("/{id}", h.Catalog.DeleteServico)
			})

			pr.Route("/materiais", func(mr chi.Router) {
				mr.With(screen("materiais", rbac.ActionView)).Get("/", h.Material.List)
				mr.With(screen("materiais", rbac.ActionView)).Get("/{id}", h.Material.Get)
				mr.With(screen("materiais", rbac.ActionCreate)).Post("/", h.Material.Create)
				mr.With(screen("materiais", rbac.ActionEdit)).Put("/{id}", h.Material.Update)
				mr.With(screen("materiais", rbac.ActionDelete)).Delete("/{id}", h.Material.Delete)
			})

			pr.Route("/lpus", func(lr chi.Router) {
				lr.With(screen("lpus", rbac.ActionView)).Get("/", h.Pricelist.ListLPUs)
				lr.With(screen("lpus", rbac.ActionView)).Get("/{id}", h.Pricelist.GetLPU)
				lr.With(screen("lpus", rbac.ActionCreate)).Post("/", h.Pricelist.CreateLPU)
				lr.With(screen("lpus", rbac.ActionEdit)).Put("/{id}", h.Pricelist.UpdateLPU)
				lr.With(screen("lpus", rbac.ActionDelete)).Delete("/{id}", h.Pricelist.DeleteLPU)

				lr.With(screen("lpus", rbac.ActionView)).Get("/{id}/itens", h.Pricelist.ListItems)
				lr.With(screen("lpus", rbac.ActionEdit)).Post("/{id}/itens", h.Pricelist.AddItem)
				lr.With(screen("lpus", rbac.ActionEdit)).Put("/{id}/itens/{itemID}", h.Pricelist.UpdateItem)
				lr.With(screen("lpus", rbac.ActionEdit)).Delete("/{id}/itens/{itemID}", h.Pricelist.RemoveItem)
			})

			pr.Route("/partners", func(pnr chi.Router) {
				pnr.With(screen("partners", rbac.ActionView)).Get("/", h.Partner.List)
				pnr.With(screen("partners", rbac.ActionView)).Get("/{id}", h.Partner.Get)
				pnr.With(screen("partners", rbac.ActionCreate)).Post("/", h.Partner.Create)
				pnr.With(screen("partners", rbac.ActionEdit)).Put("/{id}", h.Partner.Update)
				pnr.With(screen("partners", rbac.ActionDelete)).Delete("/{id}", h.Partner.Delete)
			})

			// tenants: MASTER-only, enforced inside the handler
			pr.Route("/companies", func(tr chi.Router) {
				tr.Get("/", h.Tenant.List)
				tr.Get("/{id}", h.Tenant.Get)
				tr.Post("/", h.Tenant.Create)
				tr.Put("/{id}", h.Tenant.Update)
				tr.Delete("/{id}", h.Tenant.Delete)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.With(screen("admin.users", rbac.ActionView)).Get("/", h.User.List)
				ur.With(screen("admin.users", rbac.ActionView)).Get("/{id}", h.User.Get)
				ur.With(screen("admin.users", rbac.ActionCreate)).Post("/", h.User.Create)
				ur.With(screen("admin.users", rbac.ActionEdit)).Put("/{id}", h.User.Update)
				ur.With(screen("admin.users", rbac.ActionEdit)).Patch("/{id}/approve", h.User.Approve)
				ur.With(screen("admin.users", rbac.ActionEdit)).Patch("/{id}/block", h.User.Block)
				ur.With(screen("admin.users", rbac.ActionDelete)).Delete("/{id}", h.User.Delete)
			})

			// permission matrix administration: MASTER-only inside the handler
			pr.Route("/rbac", func(rr chi.Router) {
				rr.Get("/screens", h.RBAC.Screens)
				rr.Get("/permissions", h.RBAC.ListAll)
				rr.Put("/permissions/{role}", h.RBAC.ReplaceForRole)
				rr.Get("/permissions/flat", h.RBAC.ListPermissions)
			})
		})
	})
}
