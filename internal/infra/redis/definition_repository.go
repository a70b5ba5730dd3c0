package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"rag-assessment/internal/domain"
)

// DefinitionLoader fetches a definition from its backing source (files, Postgres).
type DefinitionLoader interface {
	LoadDefinition(ctx context.Context, definitionID string) (domain.Definition, error)
}

// DefinitionRepository caches parsed definitions in Redis and falls back to a
// loader on cache miss. Entries are stored as:
// SET assessment:definition:{id} <definition JSON> EX ttl
type DefinitionRepository struct {
	client *redis.Client
	loader DefinitionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

func NewDefinitionRepository(client *redis.Client, loader DefinitionLoader, ttl time.Duration) *DefinitionRepository {
	return &DefinitionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *DefinitionRepository) GetDefinition(ctx context.Context, definitionID string) (domain.Definition, error) {
	if def, ok := r.cached(ctx, definitionID); ok {
		return def, nil
	}

	result, err, _ := r.sf.Do(definitionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if def, ok := r.cached(ctx, definitionID); ok {
			return def, nil
		}

		def, err := r.loader.LoadDefinition(ctx, definitionID)
		if err != nil {
			return domain.Definition{}, err
		}

		if raw, err := json.Marshal(def); err == nil {
			_ = r.client.Set(ctx, r.key(definitionID), raw, r.ttlWithJitter()).Err()
		}
		return def, nil
	})
	if err != nil {
		return domain.Definition{}, err
	}
	return result.(domain.Definition), nil
}

func (r *DefinitionRepository) cached(ctx context.Context, definitionID string) (domain.Definition, bool) {
	raw, err := r.client.Get(ctx, r.key(definitionID)).Bytes()
	if err != nil {
		return domain.Definition{}, false
	}
	var def domain.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return domain.Definition{}, false
	}
	return def, true
}

func (r *DefinitionRepository) key(definitionID string) string {
	return "assessment:definition:" + definitionID
}

func (r *DefinitionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
