package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/sourcexpress/sourcexpress-backend/internal/http/handlers"
	httpMW "github.com/sourcexpress/sourcexpress-backend/internal/http/middleware"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	SupplierHandler      *httpH.SupplierHandler
	QualificationHandler *httpH.QualificationHandler
	LookupHandler        *httpH.LookupHandler
	RequisitionHandler   *httpH.RequisitionHandler
	QuotationHandler     *httpH.QuotationHandler
	RealtimeHandler      *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler

	// TracingEnabled adds the otelgin middleware; off unless the exporter
	// is configured.
	TracingEnabled bool
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/ready", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Lookups (public: the registration form runs before login)
		if cfg.LookupHandler != nil {
			api.GET("/lookup/cep/:cep", cfg.LookupHandler.CEP)
			api.GET("/lookup/cnpj/:cnpj", cfg.LookupHandler.CNPJ)
			api.GET("/lookup/prefill/:cnpj", cfg.LookupHandler.Prefill)
		}

		// Supplier self-registration (public)
		if cfg.SupplierHandler != nil {
			api.POST("/suppliers", cfg.SupplierHandler.Register)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/realtime/stream", cfg.RealtimeHandler.Stream)
		}

		// Suppliers
		if cfg.SupplierHandler != nil {
			protected.GET("/suppliers", cfg.SupplierHandler.List)
			protected.GET("/suppliers/:id", cfg.SupplierHandler.Get)
			protected.PATCH("/suppliers/:id/status", cfg.SupplierHandler.UpdateStatus)
			protected.POST("/suppliers/:id/contacts", cfg.SupplierHandler.AddContact)
			protected.POST("/suppliers/:id/documents", cfg.SupplierHandler.AddDocument)
			protected.GET("/suppliers/:id/compliance", cfg.SupplierHandler.Compliance)
		}

		// Qualification wizard
		if cfg.QualificationHandler != nil {
			protected.POST("/qualification/sessions", cfg.QualificationHandler.StartSession)
			protected.GET("/qualification/sessions/:id", cfg.QualificationHandler.GetSession)
			protected.POST("/qualification/sessions/:id/scope", cfg.QualificationHandler.SelectScope)
			protected.POST("/qualification/sessions/:id/answers", cfg.QualificationHandler.SetAnswer)
			protected.POST("/qualification/sessions/:id/advance", cfg.QualificationHandler.Advance)
			protected.POST("/qualification/sessions/:id/back", cfg.QualificationHandler.Back)
			protected.POST("/qualification/sessions/:id/submit", cfg.QualificationHandler.Submit)

			protected.POST("/qualification/preview", cfg.QualificationHandler.Preview)
			protected.GET("/qualification/models", cfg.QualificationHandler.Models)
			protected.GET("/qualification/models/:id", cfg.QualificationHandler.GetModel)
			protected.GET("/suppliers/:id/qualification-records", cfg.QualificationHandler.Records)
			protected.GET("/qualification/statuses", cfg.QualificationHandler.StatusPresentations)
		}

		// Requisitions
		if cfg.RequisitionHandler != nil {
			protected.POST("/requisitions", cfg.RequisitionHandler.Create)
			protected.GET("/requisitions", cfg.RequisitionHandler.ListMine)
			protected.GET("/requisitions/:id", cfg.RequisitionHandler.Get)
			protected.PATCH("/requisitions/:id/status", cfg.RequisitionHandler.Transition)
		}

		// Quotations
		if cfg.QuotationHandler != nil {
			protected.POST("/quotations", cfg.QuotationHandler.Submit)
			protected.GET("/quotations/:id", cfg.QuotationHandler.Get)
			protected.GET("/requisitions/:id/quotations", cfg.QuotationHandler.ListByRequisition)
			protected.PATCH("/quotations/:id/status", cfg.QuotationHandler.Transition)
		}
	}

	return r
}
