package services

import (
	"context"
	"time"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/envutil"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

// ComplianceService sweeps supplier documents and raises expiry events so
// buyers can chase renewals before a document lapses.
type ComplianceService interface {
	Sweep(ctx context.Context) (int, error)
	Run(ctx context.Context)
}

type complianceService struct {
	log          *logger.Logger
	documentRepo repos.DocumentRepo
	notifier     Notifier
	interval     time.Duration
}

func NewComplianceService(log *logger.Logger, documentRepo repos.DocumentRepo, notifier Notifier) ComplianceService {
	return &complianceService{
		log:          log.With("service", "ComplianceService"),
		documentRepo: documentRepo,
		notifier:     notifier,
		interval:     envutil.Duration("COMPLIANCE_SWEEP_INTERVAL", 6*time.Hour),
	}
}

// Sweep notifies for every document inside the expiring window and returns
// how many were flagged.
func (cs *complianceService) Sweep(ctx context.Context) (int, error) {
	deadline := time.Now().UTC().Add(types.ExpiringWindow)
	docs, err := cs.documentRepo.ListExpiringBefore(ctx, nil, deadline)
	if err != nil {
		return 0, err
	}
	for _, d := range docs {
		cs.notifier.DocumentExpiring(ctx, d.SupplierID, d.ID, d.Type)
	}
	if len(docs) > 0 {
		cs.log.Info("compliance sweep flagged documents", "count", len(docs))
	}
	return len(docs), nil
}

// Run sweeps on a fixed interval until the context is canceled.
func (cs *complianceService) Run(ctx context.Context) {
	ticker := time.NewTicker(cs.interval)
	defer ticker.Stop()

	if _, err := cs.Sweep(ctx); err != nil {
		cs.log.Warn("initial compliance sweep failed", "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := cs.Sweep(ctx); err != nil {
				cs.log.Warn("compliance sweep failed", "error", err)
			}
		}
	}
}
