package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sourcexpress/sourcexpress-backend/internal/clients/registry"
	"github.com/sourcexpress/sourcexpress-backend/internal/clients/viacep"
	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
)

func newLookupFixture(t *testing.T, cepHandler, cnpjHandler http.HandlerFunc) (LookupService, SupplierService) {
	t.Helper()
	gdb := testDB(t)
	log := testLogger(t)

	cepServer := httptest.NewServer(cepHandler)
	t.Cleanup(cepServer.Close)
	cnpjServer := httptest.NewServer(cnpjHandler)
	t.Cleanup(cnpjServer.Close)

	cepClient, err := viacep.New(log, viacep.Config{BaseURL: cepServer.URL})
	if err != nil {
		t.Fatalf("viacep client: %v", err)
	}
	cnpjClient, err := registry.New(log, registry.Config{BaseURL: cnpjServer.URL})
	if err != nil {
		t.Fatalf("registry client: %v", err)
	}

	supplierRepo := repos.NewSupplierRepo(gdb, log)
	notifier := testNotifier(t)
	lookup := NewLookupService(log, cepClient, cnpjClient, nil, supplierRepo)
	suppliers := NewSupplierService(
		gdb,
		log,
		supplierRepo,
		repos.NewContactRepo(gdb, log),
		repos.NewDocumentRepo(gdb, log),
		notifier,
	)
	return lookup, suppliers
}

func TestLookupCEP(t *testing.T) {
	lookup, _ := newLookupFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`)
		},
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
	)
	ctx := context.Background()

	addr, err := lookup.CEP(ctx, "01310-100")
	if err != nil {
		t.Fatalf("CEP: %v", err)
	}
	if addr.Street != "Avenida Paulista" || addr.State != "SP" {
		t.Fatalf("unexpected address: %+v", addr)
	}

	if _, err := lookup.CEP(ctx, "123"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid cep, got %v", err)
	}
}

func TestPrefillRegistration(t *testing.T) {
	var registryCalls int32
	lookup, suppliers := newLookupFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&registryCalls, 1)
			fmt.Fprint(w, `{"cnpj":"11222333000181","razao_social":"Fornecedora Exemplo Ltda","nome_fantasia":"Exemplo","descricao_situacao_cadastral":"ATIVA","municipio":"São Paulo","uf":"SP","cep":"01310100"}`)
		},
	)
	ctx := context.Background()

	// An already-registered supplier with the same document surfaces as a
	// duplicate.
	if _, err := suppliers.Register(ctx, cnpjInput()); err != nil {
		t.Fatalf("seed supplier: %v", err)
	}

	prefill, err := lookup.PrefillRegistration(ctx, "11.222.333/0001-81")
	if err != nil {
		t.Fatalf("PrefillRegistration: %v", err)
	}
	if prefill.Company == nil || prefill.Company.RazaoSocial != "Fornecedora Exemplo Ltda" {
		t.Fatalf("company not prefilled: %+v", prefill.Company)
	}
	if !prefill.Company.Active() {
		t.Fatalf("expected active company")
	}
	if len(prefill.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(prefill.Duplicates))
	}
	if atomic.LoadInt32(&registryCalls) == 0 {
		t.Fatalf("registry never called")
	}

	// Bad check digits never reach the upstream registry.
	if _, err := lookup.PrefillRegistration(ctx, "11.222.333/0001-82"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected check digit rejection, got %v", err)
	}
}

func TestPrefillRegistrationRegistryMissIsNotFatal(t *testing.T) {
	lookup, _ := newLookupFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
	)

	prefill, err := lookup.PrefillRegistration(context.Background(), "11.222.333/0001-81")
	if err != nil {
		t.Fatalf("PrefillRegistration: %v", err)
	}
	if prefill.Company != nil {
		t.Fatalf("expected no company on registry miss")
	}
	if len(prefill.Duplicates) != 0 {
		t.Fatalf("expected no duplicates, got %d", len(prefill.Duplicates))
	}
}
