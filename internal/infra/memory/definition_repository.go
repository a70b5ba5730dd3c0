package memory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"rag-assessment/internal/domain"
)

// DefinitionLoader fetches a definition from its backing source (files, Postgres).
type DefinitionLoader interface {
	LoadDefinition(ctx context.Context, definitionID string) (domain.Definition, error)
}

// DefinitionRepository caches definitions with TTL to avoid repeated loads.
type DefinitionRepository struct {
	loader DefinitionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedDefinition
}

type cachedDefinition struct {
	def       domain.Definition
	expiresAt time.Time
}

func NewDefinitionRepository(loader DefinitionLoader, ttl time.Duration) *DefinitionRepository {
	return &DefinitionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedDefinition),
	}
}

func (r *DefinitionRepository) GetDefinition(ctx context.Context, definitionID string) (domain.Definition, error) {
	if def, ok := r.cached(definitionID); ok {
		return def, nil
	}

	result, err, _ := r.sf.Do(definitionID, func() (interface{}, error) {
		if def, ok := r.cached(definitionID); ok {
			return def, nil
		}

		def, err := r.loader.LoadDefinition(ctx, definitionID)
		if err != nil {
			return domain.Definition{}, err
		}

		r.mu.Lock()
		r.cache[definitionID] = cachedDefinition{
			def:       def,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return def, nil
	})
	if err != nil {
		return domain.Definition{}, err
	}
	return result.(domain.Definition), nil
}

func (r *DefinitionRepository) cached(definitionID string) (domain.Definition, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[definitionID]; ok && entry.expiresAt.After(now) {
		return entry.def, true
	}
	return domain.Definition{}, false
}

func (r *DefinitionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticDefinitionLoader is a loader backed by an in-memory map (built-in
// definitions, tests).
type StaticDefinitionLoader struct {
	defs map[string]domain.Definition
}

func NewStaticDefinitionLoader(defs map[string]domain.Definition) *StaticDefinitionLoader {
	return &StaticDefinitionLoader{defs: defs}
}

func (l *StaticDefinitionLoader) LoadDefinition(_ context.Context, definitionID string) (domain.Definition, error) {
	if def, ok := l.defs[definitionID]; ok {
		return def, nil
	}
	return domain.Definition{}, domain.ErrDefinitionNotFound
}

// ChainLoader asks each loader in turn, moving on only when a loader reports
// domain.ErrDefinitionNotFound.
type ChainLoader []DefinitionLoader

func (c ChainLoader) LoadDefinition(ctx context.Context, definitionID string) (domain.Definition, error) {
	for _, l := range c {
		def, err := l.LoadDefinition(ctx, definitionID)
		if errors.Is(err, domain.ErrDefinitionNotFound) {
			continue
		}
		return def, err
	}
	return domain.Definition{}, domain.ErrDefinitionNotFound
}
