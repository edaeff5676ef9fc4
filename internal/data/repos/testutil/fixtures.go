package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	core "github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleBuyer,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSupplier(tb testing.TB, ctx context.Context, tx *gorm.DB, document string) *types.Supplier {
	tb.Helper()
	s := &types.Supplier{
		ID:               uuid.New(),
		PersonType:       types.PersonCNPJ,
		DocumentNumber:   document,
		RazaoSocial:      "Fornecedora Exemplo Ltda",
		NomeFantasia:     "Exemplo",
		Email:            "contato@exemplo.com.br",
		SupplyCategories: datatypes.JSON([]byte(`[]`)),
		Status:           core.StatusAwaitingCompletion,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed supplier: %v", err)
	}
	return s
}

func SeedQuestionnaireModel(tb testing.TB, ctx context.Context, tx *gorm.DB, supplyType core.SupplyType) *types.QuestionnaireModel {
	tb.Helper()
	m := &types.QuestionnaireModel{
		ID:         uuid.New(),
		Name:       "Qualificação " + supplyType.Label(),
		SupplyType: supplyType,
		Areas:      datatypes.JSON([]byte(`[]`)),
		Sections:   datatypes.JSON([]byte(`[]`)),
		Version:    1,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed questionnaire model: %v", err)
	}
	return m
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
