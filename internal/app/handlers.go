package app

import (
	"gorm.io/gorm"

	httpH "github.com/sourcexpress/sourcexpress-backend/internal/http/handlers"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/realtime"
)

type Handlers struct {
	Auth          *httpH.AuthHandler
	Supplier      *httpH.SupplierHandler
	Qualification *httpH.QualificationHandler
	Lookup        *httpH.LookupHandler
	Requisition   *httpH.RequisitionHandler
	Quotation     *httpH.QuotationHandler
	Realtime      *httpH.RealtimeHandler
	Health        *httpH.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:          httpH.NewAuthHandler(services.Auth),
		Supplier:      httpH.NewSupplierHandler(services.Supplier),
		Qualification: httpH.NewQualificationHandler(services.Qualification),
		Lookup:        httpH.NewLookupHandler(services.Lookup),
		Requisition:   httpH.NewRequisitionHandler(services.Requisition),
		Quotation:     httpH.NewQuotationHandler(services.Quotation),
		Realtime:      httpH.NewRealtimeHandler(log, hub),
		Health:        httpH.NewHealthHandler(db),
	}
}
