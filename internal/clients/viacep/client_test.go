package viacep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestNormalizeCEP(t *testing.T) {
	if got, err := NormalizeCEP("01310-100"); err != nil || got != "01310100" {
		t.Fatalf("NormalizeCEP: got %q err=%v", got, err)
	}
	if _, err := NormalizeCEP("1234"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/01310100/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	}))
	defer srv.Close()

	c, err := New(testLogger(t), Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	addr, err := c.Lookup(context.Background(), "01310-100")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if addr.Street != "Avenida Paulista" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Fatalf("unexpected address: %+v", addr)
	}
}

func TestLookupUnknownCEP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	c, err := New(testLogger(t), Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Lookup(context.Background(), "99999-999"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
