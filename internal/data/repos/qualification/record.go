package qualification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type QualificationRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.QualificationRecord) ([]*types.QualificationRecord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) ([]*types.QualificationRecord, error)
	GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.QualificationRecord, error)
	GetLatestBySupplier(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID) (*types.QualificationRecord, error)
}

type qualificationRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQualificationRecordRepo(db *gorm.DB, baseLog *logger.Logger) QualificationRecordRepo {
	repoLog := baseLog.With("repo", "QualificationRecordRepo")
	return &qualificationRecordRepo{db: db, log: repoLog}
}

func (rr *qualificationRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.QualificationRecord) ([]*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(records) == 0 {
		return []*types.QualificationRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (rr *qualificationRecordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, recordIDs []uuid.UUID) ([]*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.QualificationRecord
	if len(recordIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", recordIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *qualificationRecordRepo) GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.QualificationRecord
	if len(supplierIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("supplier_id IN ?", supplierIDs).
		Order("submitted_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *qualificationRecordRepo) GetLatestBySupplier(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID) (*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.QualificationRecord
	if err := transaction.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("submitted_at DESC").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
