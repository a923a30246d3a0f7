// Package server assembles the HTTP surface: routing, middleware and the
// service graph behind the handlers.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/ai"
	"github.com/seovista/crm-backend/internal/auth"
	"github.com/seovista/crm-backend/internal/handlers"
	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/services"
	"github.com/seovista/crm-backend/internal/sharecache"
	"github.com/seovista/crm-backend/internal/storage"
)

// Deps carries everything the router needs beyond the database.
type Deps struct {
	DB      *gorm.DB
	Cache   *sharecache.Cache
	Store   storage.Uploader
	AI      ai.Generator
	BaseURL string
}

// New constructs the root handler with all routes and middleware applied.
func New(deps Deps) http.Handler {
	db := deps.DB

	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	numbering := services.NewNumberingService(db)
	invoiceSvc := services.NewInvoiceService(db, numbering)
	shareSvc := services.NewShareService(db, deps.Cache, deps.BaseURL)
	proposalSvc := services.NewProposalService(db, deps.AI)
	contractSvc := services.NewContractService(db)
	clientSvc := services.NewClientService(db)
	packSvc := services.NewPackService(db)
	documentSvc := services.NewDocumentService(db, deps.Store)
	keywordSvc := services.NewKeywordService(db)
	localSeoSvc := services.NewLocalSeoService(db)
	dashboardSvc := services.NewDashboardService(db, keywordSvc)

	authH := handlers.NewAuthHandler(db)
	clientH := handlers.NewClientHandler(db, clientSvc)
	companyH := handlers.NewCompanyHandler(db)
	packH := handlers.NewPackHandler(db, packSvc)
	invoiceH := handlers.NewInvoiceHandler(db, invoiceSvc, shareSvc)
	proposalH := handlers.NewProposalHandler(db, proposalSvc, shareSvc)
	contractH := handlers.NewContractHandler(db, contractSvc, shareSvc)
	documentH := handlers.NewDocumentHandler(db, documentSvc)
	keywordH := handlers.NewKeywordHandler(db, keywordSvc)
	localSeoH := handlers.NewLocalSeoHandler(db, localSeoSvc)
	dashboardH := handlers.NewDashboardHandler(db, dashboardSvc, keywordSvc)
	shareH := handlers.NewShareHandler(shareSvc)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/login", authH.Login)
	r.Post("/auth/logout", authH.Logout)

	// public token views, no session required
	r.Get("/invoices/share/{token}", shareH.Invoice)
	r.Get("/proposals/share/{token}", shareH.Proposal)
	r.Get("/contracts/share/{token}", shareH.Contract)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware, auth.RequireAuth)

		r.Get("/auth/me", authH.Me)

		r.Get("/company", companyH.Get)
		r.Put("/company", companyH.Save)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientH.List)
			r.Post("/", clientH.Create)
			r.Get("/{id}", clientH.Get)
			r.Put("/{id}", clientH.Update)
			r.Delete("/{id}", clientH.Delete)
			r.Get("/{id}/dashboard", dashboardH.Get)
			r.Get("/{id}/report", dashboardH.Report)
			r.Get("/{id}/localseo", localSeoH.Get)
			r.Put("/{id}/localseo", localSeoH.Save)
			r.Post("/{id}/documents", documentH.Upload)
			r.Post("/{id}/keywords/import", keywordH.Import)
			r.Get("/{id}/keywords/stats", keywordH.Stats)
		})

		r.Route("/packs", func(r chi.Router) {
			r.Get("/", packH.List)
			r.Post("/", packH.Create)
			r.Get("/{id}", packH.Get)
			r.Put("/{id}", packH.Update)
			r.Delete("/{id}", packH.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", invoiceH.List)
			r.Post("/", invoiceH.Create)
			r.Get("/{id}", invoiceH.Get)
			r.Put("/{id}", invoiceH.Update)
			r.Delete("/{id}", invoiceH.Delete)
			r.Post("/{id}/status", invoiceH.ChangeStatus)
			r.Get("/{id}/pdf", invoiceH.PDF)
			r.Post("/{id}/share", invoiceH.ShareLink)
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", proposalH.List)
			r.Post("/", proposalH.Create)
			r.Get("/{id}", proposalH.Get)
			r.Put("/{id}", proposalH.Update)
			r.Delete("/{id}", proposalH.Delete)
			r.Post("/{id}/send", proposalH.Send)
			r.Post("/{id}/content", proposalH.GenerateContent)
			r.Post("/{id}/convert", invoiceH.FromProposal)
			r.Get("/{id}/pdf", proposalH.PDF)
			r.Post("/{id}/share", proposalH.ShareLink)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", contractH.List)
			r.Post("/", contractH.Create)
			r.Get("/{id}", contractH.Get)
			r.Put("/{id}", contractH.Update)
			r.Delete("/{id}", contractH.Delete)
			r.Post("/{id}/sign", contractH.Sign)
			r.Get("/{id}/pdf", contractH.PDF)
			r.Post("/{id}/share", contractH.ShareLink)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentH.List)
			r.Get("/{id}", documentH.Get)
			r.Put("/{id}/analysis", documentH.SetAnalysis)
			r.Delete("/{id}", documentH.Delete)
		})

		r.Route("/keywords", func(r chi.Router) {
			r.Get("/", keywordH.List)
			r.Post("/", keywordH.Create)
			r.Put("/{id}", keywordH.Update)
			r.Delete("/{id}", keywordH.Delete)
		})
	})

	return r
}
