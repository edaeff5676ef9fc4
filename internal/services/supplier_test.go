package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
)

func newSupplierService(t *testing.T) SupplierService {
	t.Helper()
	gdb := testDB(t)
	log := testLogger(t)
	return NewSupplierService(
		gdb,
		log,
		repos.NewSupplierRepo(gdb, log),
		repos.NewContactRepo(gdb, log),
		repos.NewDocumentRepo(gdb, log),
		testNotifier(t),
	)
}

func cnpjInput() RegisterSupplierInput {
	return RegisterSupplierInput{
		PersonType:     types.PersonCNPJ,
		DocumentNumber: "11.222.333/0001-81",
		RazaoSocial:    "Fornecedora Exemplo Ltda",
		NomeFantasia:   "Exemplo",
		Email:          "contato@exemplo.com.br",
		PostalCode:     "01310-100",
		City:           "São Paulo",
		State:          "sp",
	}
}

func TestRegisterCNPJ(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, cnpjInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.Duplicate || result.Supplier == nil {
		t.Fatalf("unexpected result: %+v", result)
	}

	s := result.Supplier
	if s.DocumentNumber != "11222333000181" {
		t.Fatalf("document not normalized: %q", s.DocumentNumber)
	}
	if s.State != "SP" || s.PostalCode != "01310100" {
		t.Fatalf("fields not normalized: state=%q cep=%q", s.State, s.PostalCode)
	}
	if s.Status != qualification.StatusAwaitingCompletion {
		t.Fatalf("expected awaiting_completion, got %q", s.Status)
	}
	if s.DisplayName() != "Exemplo" {
		t.Fatalf("DisplayName: got %q", s.DisplayName())
	}
}

func TestRegisterRejectsInvalidDocuments(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	bad := cnpjInput()
	bad.DocumentNumber = "11.222.333/0001-82"
	if _, err := svc.Register(ctx, bad); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid cnpj, got %v", err)
	}

	badCPF := RegisterSupplierInput{
		PersonType:     types.PersonCPF,
		DocumentNumber: "111.111.111-11",
		FullName:       "Maria Silva",
		Email:          "maria@example.com",
	}
	if _, err := svc.Register(ctx, badCPF); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid cpf, got %v", err)
	}

	noName := cnpjInput()
	noName.RazaoSocial = ""
	if _, err := svc.Register(ctx, noName); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected missing razao social, got %v", err)
	}
}

func TestRegisterCPFBranch(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterSupplierInput{
		PersonType:     types.PersonCPF,
		DocumentNumber: "529.982.247-25",
		FullName:       "Maria Silva",
		Profession:     "Consultora",
		MEI:            true,
		Email:          "maria@example.com",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	s := result.Supplier
	if s.PersonType != types.PersonCPF || !s.MEI {
		t.Fatalf("cpf branch not stored: %+v", s)
	}
	if s.DisplayName() != "Maria Silva" {
		t.Fatalf("DisplayName: got %q", s.DisplayName())
	}
}

func TestRegisterDuplicateFlow(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, cnpjInput()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Second attempt with the same document warns instead of creating.
	second, err := svc.Register(ctx, cnpjInput())
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if !second.Duplicate || second.Supplier != nil {
		t.Fatalf("expected duplicate warning, got %+v", second)
	}
	if len(second.Existing) != 1 {
		t.Fatalf("expected 1 existing supplier, got %d", len(second.Existing))
	}

	// Explicit opt-in proceeds and marks the row.
	allowed := cnpjInput()
	allowed.AllowDuplicate = true
	third, err := svc.Register(ctx, allowed)
	if err != nil {
		t.Fatalf("third Register: %v", err)
	}
	if third.Duplicate || third.Supplier == nil {
		t.Fatalf("expected creation after opt-in, got %+v", third)
	}
	if !third.Supplier.DuplicateAllowed {
		t.Fatalf("expected DuplicateAllowed on opted-in row")
	}
}

func TestComplianceDerivation(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, cnpjInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	supplierID := result.Supplier.ID

	now := time.Now().UTC()
	soon := now.Add(7 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	if _, err := svc.AddDocument(ctx, &types.SupplierDocument{SupplierID: supplierID, Type: "certidao_negativa", ExpiresAt: &soon}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if _, err := svc.AddDocument(ctx, &types.SupplierDocument{SupplierID: supplierID, Type: "alvara", ExpiresAt: &past}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if _, err := svc.AddDocument(ctx, &types.SupplierDocument{SupplierID: supplierID, Type: "contrato_social"}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	compliance, err := svc.Compliance(ctx, supplierID)
	if err != nil {
		t.Fatalf("Compliance: %v", err)
	}
	byType := map[string]types.ComplianceStatus{}
	for _, c := range compliance {
		byType[c.Document.Type] = c.Status
	}
	if byType["certidao_negativa"] != types.ComplianceExpiring {
		t.Fatalf("certidao_negativa: got %q", byType["certidao_negativa"])
	}
	if byType["alvara"] != types.ComplianceExpired {
		t.Fatalf("alvara: got %q", byType["alvara"])
	}
	if byType["contrato_social"] != types.ComplianceValid {
		t.Fatalf("contrato_social: got %q", byType["contrato_social"])
	}
}
