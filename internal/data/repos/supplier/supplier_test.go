package supplier

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos/testutil"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	core "github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

func TestSupplierRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSupplierRepo(db, testutil.Logger(t))

	s := testutil.SeedSupplier(t, ctx, tx, "12345678000190")

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{s.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByDocumentNumbers(ctx, tx, []string{"12345678000190"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByDocumentNumbers: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByDocumentNumbers(ctx, tx, nil); err != nil || len(rows) != 0 {
		t.Fatalf("GetByDocumentNumbers empty input: err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateStatus(ctx, tx, s.ID, core.StatusQualified); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	rows, err := repo.List(ctx, tx, ListFilter{Status: core.StatusQualified})
	if err != nil || len(rows) != 1 {
		t.Fatalf("List by status: err=%v len=%d", err, len(rows))
	}
	if rows[0].Status != core.StatusQualified {
		t.Fatalf("expected qualified status, got %q", rows[0].Status)
	}

	if err := repo.UpdateProfile(ctx, tx, s.ID, map[string]any{
		"nome_fantasia": "Exemplo Atualizada",
		"city":          "Campinas",
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	rows, err = repo.GetByIDs(ctx, tx, []uuid.UUID{s.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs after update: err=%v len=%d", err, len(rows))
	}
	if rows[0].NomeFantasia != "Exemplo Atualizada" || rows[0].City != "Campinas" {
		t.Fatalf("profile not updated: %+v", rows[0])
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{s.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{s.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs after soft delete: err=%v len=%d", err, len(rows))
	}
}

func TestDocumentRepoExpiry(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewDocumentRepo(db, testutil.Logger(t))

	s := testutil.SeedSupplier(t, ctx, tx, "98765432000109")
	now := time.Now().UTC()

	expiring := &types.SupplierDocument{
		ID:         uuid.New(),
		SupplierID: s.ID,
		Type:       "certidao_negativa",
		ExpiresAt:  testutil.PtrTime(now.Add(7 * 24 * time.Hour)),
	}
	valid := &types.SupplierDocument{
		ID:         uuid.New(),
		SupplierID: s.ID,
		Type:       "alvara",
		ExpiresAt:  testutil.PtrTime(now.Add(365 * 24 * time.Hour)),
	}
	perpetual := &types.SupplierDocument{
		ID:         uuid.New(),
		SupplierID: s.ID,
		Type:       "contrato_social",
	}
	if _, err := repo.Create(ctx, tx, []*types.SupplierDocument{expiring, valid, perpetual}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListExpiringBefore(ctx, tx, now.Add(30*24*time.Hour))
	if err != nil {
		t.Fatalf("ListExpiringBefore: %v", err)
	}
	found := false
	for _, d := range rows {
		if d.ID == valid.ID || d.ID == perpetual.ID {
			t.Fatalf("unexpected document %q in expiring list", d.Type)
		}
		if d.ID == expiring.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q in expiring list, got %d rows", expiring.Type, len(rows))
	}

	if got := expiring.Compliance(now); got != types.ComplianceExpiring {
		t.Fatalf("Compliance: got %q, want expiring", got)
	}
	if got := perpetual.Compliance(now); got != types.ComplianceValid {
		t.Fatalf("Compliance without expiry: got %q, want valid", got)
	}
}
