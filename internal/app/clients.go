package app

import (
	"fmt"

	"github.com/sourcexpress/sourcexpress-backend/internal/clients/redis"
	"github.com/sourcexpress/sourcexpress-backend/internal/clients/registry"
	"github.com/sourcexpress/sourcexpress-backend/internal/clients/viacep"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/logger"
)

type Clients struct {
	CEP  viacep.Client
	CNPJ registry.Client

	// Nil unless REDIS_ADDR is set; consumers tolerate their absence.
	LookupCache redis.LookupCache
	EventBus    redis.EventBus
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	cepClient, err := viacep.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init viacep client: %w", err)
	}
	cnpjClient, err := registry.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init cnpj registry client: %w", err)
	}

	var cache redis.LookupCache
	if c, err := redis.NewLookupCache(log); err != nil {
		log.Warn("lookup cache disabled", "error", err)
	} else {
		cache = c
	}

	var bus redis.EventBus
	if b, err := redis.NewEventBus(log); err != nil {
		log.Warn("realtime event bus disabled", "error", err)
	} else {
		bus = b
	}

	return Clients{
		CEP:         cepClient,
		CNPJ:        cnpjClient,
		LookupCache: cache,
		EventBus:    bus,
	}, nil
}

func (c Clients) Close() {
	if c.LookupCache != nil {
		_ = c.LookupCache.Close()
	}
	if c.EventBus != nil {
		_ = c.EventBus.Close()
	}
}
