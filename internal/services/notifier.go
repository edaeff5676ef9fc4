package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sourcexpress/sourcexpress-backend/internal/clients/redis"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
	"github.com/sourcexpress/sourcexpress-backend/internal/qualification"
	"github.com/sourcexpress/sourcexpress-backend/internal/realtime"
)

const (
	ChannelSuppliers  = "suppliers"
	ChannelQuotations = "quotations"
	ChannelCompliance = "compliance"
)

// Notifier pushes portal events to the local hub and, when a redis bus is
// configured, to the other instances.
type Notifier interface {
	SupplierRegistered(ctx context.Context, supplierID uuid.UUID, displayName string)
	SupplierStatusChanged(ctx context.Context, supplierID uuid.UUID, status qualification.Status)
	QualificationSubmitted(ctx context.Context, supplierID, recordID uuid.UUID, score int)
	DocumentExpiring(ctx context.Context, supplierID, documentID uuid.UUID, docType string)
	QuotationReceived(ctx context.Context, requisitionID, quotationID uuid.UUID)
}

type notifier struct {
	log *logger.Logger
	hub *realtime.Hub
	bus redis.EventBus
}

// NewNotifier accepts a nil bus; events then stay on this instance.
func NewNotifier(log *logger.Logger, hub *realtime.Hub, bus redis.EventBus) Notifier {
	return &notifier{
		log: log.With("service", "Notifier"),
		hub: hub,
		bus: bus,
	}
}

func (n *notifier) publish(ctx context.Context, msg realtime.Message) {
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("failed to publish realtime event", "event", msg.Event, "error", err)
		}
	}
}

func (n *notifier) SupplierRegistered(ctx context.Context, supplierID uuid.UUID, displayName string) {
	n.publish(ctx, realtime.Message{
		Channel: ChannelSuppliers,
		Event:   realtime.EventSupplierRegistered,
		Data: map[string]any{
			"supplier_id":  supplierID,
			"display_name": displayName,
		},
	})
}

func (n *notifier) SupplierStatusChanged(ctx context.Context, supplierID uuid.UUID, status qualification.Status) {
	n.publish(ctx, realtime.Message{
		Channel: ChannelSuppliers,
		Event:   realtime.EventSupplierStatusChanged,
		Data: map[string]any{
			"supplier_id": supplierID,
			"status":      status,
			"label":       qualification.PresentationFor(status).Label,
		},
	})
}

func (n *notifier) QualificationSubmitted(ctx context.Context, supplierID, recordID uuid.UUID, score int) {
	n.publish(ctx, realtime.Message{
		Channel: ChannelSuppliers,
		Event:   realtime.EventQualificationSubmitted,
		Data: map[string]any{
			"supplier_id": supplierID,
			"record_id":   recordID,
			"score":       score,
		},
	})
}

func (n *notifier) DocumentExpiring(ctx context.Context, supplierID, documentID uuid.UUID, docType string) {
	n.publish(ctx, realtime.Message{
		Channel: ChannelCompliance,
		Event:   realtime.EventDocumentExpiring,
		Data: map[string]any{
			"supplier_id": supplierID,
			"document_id": documentID,
			"type":        docType,
		},
	})
}

func (n *notifier) QuotationReceived(ctx context.Context, requisitionID, quotationID uuid.UUID) {
	n.publish(ctx, realtime.Message{
		Channel: ChannelQuotations,
		Event:   realtime.EventQuotationReceived,
		Data: map[string]any{
			"requisition_id": requisitionID,
			"quotation_id":   quotationID,
		},
	})
}
