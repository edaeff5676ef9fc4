package supplier

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

type ListFilter struct {
	Status     qualification.Status
	PersonType types.SupplierPersonType
	Limit      int
	Offset     int
}

type SupplierRepo interface {
	Create(ctx context.Context, tx *gorm.DB, suppliers []*types.Supplier) ([]*types.Supplier, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.Supplier, error)
	GetByDocumentNumbers(ctx context.Context, tx *gorm.DB, documents []string) ([]*types.Supplier, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Supplier, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, status qualification.Status) error
	UpdateProfile(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, fields map[string]any) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) error
}

type supplierRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSupplierRepo(db *gorm.DB, baseLog *logger.Logger) SupplierRepo {
	repoLog := baseLog.With("repo", "SupplierRepo")
	return &supplierRepo{db: db, log: repoLog}
}

func (sr *supplierRepo) Create(ctx context.Context, tx *gorm.DB, suppliers []*types.Supplier) ([]*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(suppliers) == 0 {
		return []*types.Supplier{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (sr *supplierRepo) GetByIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Supplier
	if len(supplierIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", supplierIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *supplierRepo) GetByDocumentNumbers(ctx context.Context, tx *gorm.DB, documents []string) ([]*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Supplier
	if len(documents) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("document_number IN ?", documents).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *supplierRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Supplier, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Supplier{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PersonType != "" {
		q = q.Where("person_type = ?", filter.PersonType)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*types.Supplier
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *supplierRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, status qualification.Status) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Supplier{}).
		Where("id = ?", supplierID).
		Update("status", status).Error
}

func (sr *supplierRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, supplierID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Supplier{}).
		Where("id = ?", supplierID).
		Updates(fields).Error
}

func (sr *supplierRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(supplierIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", supplierIDs).
		Delete(&types.Supplier{}).Error
}
