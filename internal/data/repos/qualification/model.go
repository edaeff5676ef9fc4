package qualification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	core "github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

type QuestionnaireModelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, models []*types.QuestionnaireModel) ([]*types.QuestionnaireModel, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, modelIDs []uuid.UUID) ([]*types.QuestionnaireModel, error)
	ListBySupplyType(ctx context.Context, tx *gorm.DB, supplyType core.SupplyType) ([]*types.QuestionnaireModel, error)
}

type questionnaireModelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionnaireModelRepo(db *gorm.DB, baseLog *logger.Logger) QuestionnaireModelRepo {
	repoLog := baseLog.With("repo", "QuestionnaireModelRepo")
	return &questionnaireModelRepo{db: db, log: repoLog}
}

func (qr *questionnaireModelRepo) Create(ctx context.Context, tx *gorm.DB, models []*types.QuestionnaireModel) ([]*types.QuestionnaireModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(models) == 0 {
		return []*types.QuestionnaireModel{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (qr *questionnaireModelRepo) GetByIDs(ctx context.Context, tx *gorm.DB, modelIDs []uuid.UUID) ([]*types.QuestionnaireModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.QuestionnaireModel
	if len(modelIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", modelIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionnaireModelRepo) ListBySupplyType(ctx context.Context, tx *gorm.DB, supplyType core.SupplyType) ([]*types.QuestionnaireModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.QuestionnaireModel
	if err := transaction.WithContext(ctx).
		Where("supply_type = ?", supplyType).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
