package app

import (
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo

	Supplier         repos.SupplierRepo
	SupplierContact  repos.ContactRepo
	SupplierDocument repos.DocumentRepo

	QuestionnaireModel  repos.QuestionnaireModelRepo
	QualificationRecord repos.QualificationRecordRepo

	Requisition repos.RequisitionRepo
	Quotation   repos.QuotationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),

		Supplier:         repos.NewSupplierRepo(db, log),
		SupplierContact:  repos.NewContactRepo(db, log),
		SupplierDocument: repos.NewDocumentRepo(db, log),

		QuestionnaireModel:  repos.NewQuestionnaireModelRepo(db, log),
		QualificationRecord: repos.NewQualificationRecordRepo(db, log),

		Requisition: repos.NewRequisitionRepo(db, log),
		Quotation:   repos.NewQuotationRepo(db, log),
	}
}
