package supplier

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contacts []*types.SupplierContact) ([]*types.SupplierContact, error)
	GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.SupplierContact, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) error
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contacts []*types.SupplierContact) ([]*types.SupplierContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contacts) == 0 {
		return []*types.SupplierContact{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (cr *contactRepo) GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.SupplierContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.SupplierContact
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

func (cr *contactRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, contactIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(contactIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", contactIDs).
		Delete(&types.SupplierContact{}).Error
}
