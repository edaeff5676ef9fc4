package repos

import (
	"gorm.io/gorm"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos/auth"
	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos/procurement"
	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos/qualification"
	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos/supplier"
	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos/user"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type SupplierRepo = supplier.SupplierRepo
type SupplierListFilter = supplier.ListFilter
type ContactRepo = supplier.ContactRepo
type DocumentRepo = supplier.DocumentRepo

type QuestionnaireModelRepo = qualification.QuestionnaireModelRepo
type QualificationRecordRepo = qualification.QualificationRecordRepo

type RequisitionRepo = procurement.RequisitionRepo
type QuotationRepo = procurement.QuotationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewSupplierRepo(db *gorm.DB, baseLog *logger.Logger) SupplierRepo {
	return supplier.NewSupplierRepo(db, baseLog)
}
func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return supplier.NewContactRepo(db, baseLog)
}
func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return supplier.NewDocumentRepo(db, baseLog)
}

func NewQuestionnaireModelRepo(db *gorm.DB, baseLog *logger.Logger) QuestionnaireModelRepo {
	return qualification.NewQuestionnaireModelRepo(db, baseLog)
}
func NewQualificationRecordRepo(db *gorm.DB, baseLog *logger.Logger) QualificationRecordRepo {
	return qualification.NewQualificationRecordRepo(db, baseLog)
}

func NewRequisitionRepo(db *gorm.DB, baseLog *logger.Logger) RequisitionRepo {
	return procurement.NewRequisitionRepo(db, baseLog)
}
func NewQuotationRepo(db *gorm.DB, baseLog *logger.Logger) QuotationRepo {
	return procurement.NewQuotationRepo(db, baseLog)
}
