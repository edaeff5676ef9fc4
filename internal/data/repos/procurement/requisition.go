package procurement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type RequisitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requisitions []*types.Requisition) ([]*types.Requisition, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, requisitionIDs []uuid.UUID) ([]*types.Requisition, error)
	ListByRequester(ctx context.Context, tx *gorm.DB, requesterID uuid.UUID) ([]*types.Requisition, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, requisitionID uuid.UUID, status types.RequisitionStatus) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, requisitionIDs []uuid.UUID) error
}

type requisitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRequisitionRepo(db *gorm.DB, baseLog *logger.Logger) RequisitionRepo {
	repoLog := baseLog.With("repo", "RequisitionRepo")
	return &requisitionRepo{db: db, log: repoLog}
}

func (rr *requisitionRepo) Create(ctx context.Context, tx *gorm.DB, requisitions []*types.Requisition) ([]*types.Requisition, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(requisitions) == 0 {
		return []*types.Requisition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&requisitions).Error; err != nil {
		return nil, err
	}
	return requisitions, nil
}

func (rr *requisitionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, requisitionIDs []uuid.UUID) ([]*types.Requisition, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Requisition
	if len(requisitionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", requisitionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *requisitionRepo) ListByRequester(ctx context.Context, tx *gorm.DB, requesterID uuid.UUID) ([]*types.Requisition, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Requisition
	if err := transaction.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *requisitionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, requisitionID uuid.UUID, status types.RequisitionStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Requisition{}).
		Where("id = ?", requisitionID).
		Update("status", status).Error
}

func (rr *requisitionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, requisitionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(requisitionIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", requisitionIDs).
		Delete(&types.Requisition{}).Error
}
