package supplier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, documents []*types.SupplierDocument) ([]*types.SupplierDocument, error)
	GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.SupplierDocument, error)
	ListExpiringBefore(ctx context.Context, tx *gorm.DB, deadline time.Time) ([]*types.SupplierDocument, error)
	UpdateExpiry(ctx context.Context, tx *gorm.DB, documentID uuid.UUID, issuedAt, expiresAt *time.Time) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	repoLog := baseLog.With("repo", "DocumentRepo")
	return &documentRepo{db: db, log: repoLog}
}

func (dr *documentRepo) Create(ctx context.Context, tx *gorm.DB, documents []*types.SupplierDocument) ([]*types.SupplierDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(documents) == 0 {
		return []*types.SupplierDocument{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (dr *documentRepo) GetBySupplierIDs(ctx context.Context, tx *gorm.DB, supplierIDs []uuid.UUID) ([]*types.SupplierDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.SupplierDocument
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

// ListExpiringBefore returns documents whose expiry falls before the
// deadline, already-expired ones included. Documents without an expiry are
// never returned.
func (dr *documentRepo) ListExpiringBefore(ctx context.Context, tx *gorm.DB, deadline time.Time) ([]*types.SupplierDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.SupplierDocument
	if err := transaction.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", deadline).
		Order("expires_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentRepo) UpdateExpiry(ctx context.Context, tx *gorm.DB, documentID uuid.UUID, issuedAt, expiresAt *time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.SupplierDocument{}).
		Where("id = ?", documentID).
		Updates(map[string]any{
			"issued_at":  issuedAt,
			"expires_at": expiresAt,
		}).Error
}

func (dr *documentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, documentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(documentIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", documentIDs).
		Delete(&types.SupplierDocument{}).Error
}
