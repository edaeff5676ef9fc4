package app

import (
	"os"

	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
	"github.com/sourcexpress/sourcexpress-backend/internal/realtime"
	"github.com/sourcexpress/sourcexpress-backend/internal/services"
)

type Services struct {
	Notifier services.Notifier
	Auth     services.AuthService
	Lookup   services.LookupService

	Supplier      services.SupplierService
	Qualification services.QualificationService
	Requisition   services.RequisitionService
	Quotation     services.QuotationService
	Compliance    services.ComplianceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, hub *realtime.Hub) Services {
	log.Info("Wiring services...")

	notifier := services.NewNotifier(log, hub, clients.EventBus)

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	lookupService := services.NewLookupService(log, clients.CEP, clients.CNPJ, clients.LookupCache, repos.Supplier)

	supplierService := services.NewSupplierService(
		db, log,
		repos.Supplier,
		repos.SupplierContact,
		repos.SupplierDocument,
		notifier,
	)

	// QUESTIONNAIRE_CATALOG points at a yaml file overriding the built-in
	// section templates; the default catalog is used otherwise.
	var builder *qualification.Builder
	if path := os.Getenv("QUESTIONNAIRE_CATALOG"); path != "" {
		catalog, err := qualification.LoadCatalog(path)
		if err != nil {
			log.Warn("questionnaire catalog override rejected, using default", "path", path, "error", err)
		} else {
			builder = qualification.NewBuilder(catalog)
		}
	}

	qualificationService := services.NewQualificationService(
		db, log,
		builder,
		repos.Supplier,
		repos.QuestionnaireModel,
		repos.QualificationRecord,
		notifier,
	)

	requisitionService := services.NewRequisitionService(db, log, repos.Requisition)
	quotationService := services.NewQuotationService(
		db, log,
		repos.Quotation,
		repos.Requisition,
		repos.Supplier,
		notifier,
	)

	complianceService := services.NewComplianceService(log, repos.SupplierDocument, notifier)

	return Services{
		Notifier:      notifier,
		Auth:          authService,
		Lookup:        lookupService,
		Supplier:      supplierService,
		Qualification: qualificationService,
		Requisition:   requisitionService,
		Quotation:     quotationService,
		Compliance:    complianceService,
	}
}
