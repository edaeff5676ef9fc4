package app

import (
	"github.com/gin-gonic/gin"

	httpX "github.com/sourcexpress/sourcexpress-backend/internal/http"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware, tracing bool) *gin.Engine {
	return httpX.NewRouter(httpX.RouterConfig{
		Log: log,

		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,

		SupplierHandler:      handlers.Supplier,
		QualificationHandler: handlers.Qualification,
		LookupHandler:        handlers.Lookup,
		RequisitionHandler:   handlers.Requisition,
		QuotationHandler:     handlers.Quotation,
		RealtimeHandler:      handlers.Realtime,

		HealthHandler: handlers.Health,

		TracingEnabled: tracing,
		ServiceName:    "sourcexpress",
	})
}
