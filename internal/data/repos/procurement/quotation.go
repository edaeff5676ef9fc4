package procurement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type QuotationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quotations []*types.Quotation) ([]*types.Quotation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, quotationIDs []uuid.UUID) ([]*types.Quotation, error)
	GetByRequisitionIDs(ctx context.Context, tx *gorm.DB, requisitionIDs []uuid.UUID) ([]*types.Quotation, error)
	GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.Quotation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, quotationID uuid.UUID, status types.QuotationStatus) error
}

type quotationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuotationRepo(db *gorm.DB, baseLog *logger.Logger) QuotationRepo {
	repoLog := baseLog.With("repo", "QuotationRepo")
	return &quotationRepo{db: db, log: repoLog}
}

func (qr *quotationRepo) Create(ctx context.Context, tx *gorm.DB, quotations []*types.Quotation) ([]*types.Quotation, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(quotations) == 0 {
		return []*types.Quotation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&quotations).Error; err != nil {
		return nil, err
	}
	return quotations, nil
}

func (qr *quotationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, quotationIDs []uuid.UUID) ([]*types.Quotation, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Quotation
	if len(quotationIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", quotationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quotationRepo) GetByRequisitionIDs(ctx context.Context, tx *gorm.DB, requisitionIDs []uuid.UUID) ([]*types.Quotation, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Quotation
	if len(requisitionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("requisition_id IN ?", requisitionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quotationRepo) GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.Quotation, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Quotation
	if len(supplierIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("supplier_id IN ?", supplierIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quotationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, quotationID uuid.UUID, status types.QuotationStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Quotation{}).
		Where("id = ?", quotationID).
		Update("status", status).Error
}
