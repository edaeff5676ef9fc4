package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sourcexpress/sourcexpress-backend/internal/clients/redis"
	"github.com/sourcexpress/sourcexpress-backend/internal/clients/registry"
	"github.com/sourcexpress/sourcexpress-backend/internal/clients/viacep"
	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/brdoc"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

const lookupCacheTTL = 24 * time.Hour

// RegistrationPrefill is what the registration form can pre-populate from a
// CNPJ: the registry company data plus any already-registered suppliers with
// the same document.
type RegistrationPrefill struct {
	Company    *registry.Company `json:"company,omitempty"`
	Duplicates []*types.Supplier `json:"duplicates,omitempty"`
}

type LookupService interface {
	CEP(ctx context.Context, cep string) (*viacep.Address, error)
	CNPJ(ctx context.Context, cnpj string) (*registry.Company, error)
	PrefillRegistration(ctx context.Context, cnpj string) (*RegistrationPrefill, error)
}

type lookupService struct {
	log          *logger.Logger
	cepClient    viacep.Client
	cnpjClient   registry.Client
	cache        redis.LookupCache
	supplierRepo repos.SupplierRepo
}

// NewLookupService accepts a nil cache; lookups then always hit upstream.
func NewLookupService(
	log *logger.Logger,
	cepClient viacep.Client,
	cnpjClient registry.Client,
	cache redis.LookupCache,
	supplierRepo repos.SupplierRepo,
) LookupService {
	return &lookupService{
		log:          log.With("service", "LookupService"),
		cepClient:    cepClient,
		cnpjClient:   cnpjClient,
		cache:        cache,
		supplierRepo: supplierRepo,
	}
}

func (ls *lookupService) CEP(ctx context.Context, cep string) (*viacep.Address, error) {
	normalized, err := viacep.NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}

	var addr viacep.Address
	key := "lookup:cep:" + normalized
	if ls.cached(ctx, key, &addr) {
		return &addr, nil
	}

	result, err := ls.cepClient.Lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}
	ls.store(ctx, key, result)
	return result, nil
}

func (ls *lookupService) CNPJ(ctx context.Context, cnpj string) (*registry.Company, error) {
	normalized, err := registry.NormalizeCNPJ(cnpj)
	if err != nil {
		return nil, err
	}

	var company registry.Company
	key := "lookup:cnpj:" + normalized
	if ls.cached(ctx, key, &company) {
		return &company, nil
	}

	result, err := ls.cnpjClient.Lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}
	ls.store(ctx, key, result)
	return result, nil
}

// PrefillRegistration runs the registry lookup and the duplicate check in
// parallel. A registry miss is not fatal: the form falls back to manual
// entry, but duplicates must still be surfaced.
func (ls *lookupService) PrefillRegistration(ctx context.Context, cnpj string) (*RegistrationPrefill, error) {
	normalized, err := registry.NormalizeCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	if !brdoc.ValidCNPJ(normalized) {
		return nil, apperrors.Invalid(fmt.Sprintf("invalid cnpj check digits: %s", normalized))
	}

	prefill := &RegistrationPrefill{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		company, err := ls.CNPJ(gctx, normalized)
		if err != nil {
			ls.log.Warn("registry lookup failed, form falls back to manual entry", "cnpj", normalized, "error", err)
			return nil
		}
		prefill.Company = company
		return nil
	})
	g.Go(func() error {
		existing, err := ls.supplierRepo.GetByDocumentNumbers(gctx, nil, []string{normalized})
		if err != nil {
			return fmt.Errorf("duplicate check: %w", err)
		}
		prefill.Duplicates = existing
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prefill, nil
}

func (ls *lookupService) cached(ctx context.Context, key string, out any) bool {
	if ls.cache == nil {
		return false
	}
	raw, ok, err := ls.cache.Get(ctx, key)
	if err != nil {
		ls.log.Warn("lookup cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		ls.log.Warn("bad lookup cache payload", "key", key, "error", err)
		return false
	}
	return true
}

func (ls *lookupService) store(ctx context.Context, key string, v any) {
	if ls.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := ls.cache.Set(ctx, key, raw, lookupCacheTTL); err != nil {
		ls.log.Warn("lookup cache write failed", "key", key, "error", err)
	}
}
