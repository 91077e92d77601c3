package embedding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"pathmatch/internal/domain/scoring"
)

// StoredVector is a persisted embedding row with its source fingerprint.
type StoredVector struct {
	Hash   string
	Values []float32
}

// Store is the optional persistent tier behind the in-memory cache.
// Load returns nil when no row exists.
type Store interface {
	Load(ctx context.Context, entityID uuid.UUID, kind scoring.VectorKind) (*StoredVector, error)
	Save(ctx context.Context, entityID uuid.UUID, kind scoring.VectorKind, hash string, values []float32) error
	DeleteByEntity(ctx context.Context, entityID uuid.UUID) error
}

// Key identifies one cached vector.
type Key struct {
	EntityID uuid.UUID
	Kind     scoring.VectorKind
}

type entry struct {
	hash   string
	values []float32
}

// Request asks for the vector of one entity/kind pair built from the
// given source text. The text is hashed here; a cached vector is reused
// only when its stored hash matches.
type Request struct {
	EntityID   uuid.UUID
	Kind       scoring.VectorKind
	SourceText string
}

// Cache is a bounded LRU over embedding vectors with get-or-compute
// semantics and an optional persistent tier. Concurrent computes for
// the same key resolve last-write-wins; recomputation is idempotent for
// identical source text.
type Cache struct {
	lru      *lru.Cache[Key, entry]
	provider Provider
	store    Store
	log      *zap.Logger
}

// NewCache builds a cache bounded to maxEntries. store may be nil for a
// purely in-memory deployment.
func NewCache(provider Provider, store Store, maxEntries int, log *zap.Logger) (*Cache, error) {
	if provider == nil {
		return nil, fmt.Errorf("embedding provider is required")
	}
	l, err := lru.New[Key, entry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("build lru: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{lru: l, provider: provider, store: store, log: log}, nil
}

// GetOrCompute resolves every request, reusing cached vectors whose
// source hash still matches and embedding all misses in a single
// provider call. Results are returned in request order. A provider
// failure fails the whole call; cached entries are left intact.
func (c *Cache) GetOrCompute(ctx context.Context, reqs []Request) ([]scoring.Vector, error) {
	out := make([]scoring.Vector, len(reqs))
	missIdx := make([]int, 0, len(reqs))
	missTexts := make([]string, 0, len(reqs))
	hashes := make([]string, len(reqs))

	for i, r := range reqs {
		hashes[i] = SourceHash(r.SourceText)
		key := Key{EntityID: r.EntityID, Kind: r.Kind}

		if e, ok := c.lru.Get(key); ok && e.hash == hashes[i] {
			out[i] = scoring.Vector{Kind: r.Kind, Values: e.values}
			continue
		}

		if c.store != nil {
			stored, err := c.store.Load(ctx, r.EntityID, r.Kind)
			if err != nil {
				c.log.Warn("embedding store load failed",
					zap.String("entity_id", r.EntityID.String()),
					zap.String("kind", string(r.Kind)),
					zap.Error(err))
			} else if stored != nil && stored.Hash == hashes[i] {
				c.lru.Add(key, entry{hash: stored.Hash, values: stored.Values})
				out[i] = scoring.Vector{Kind: r.Kind, Values: stored.Values}
				continue
			}
		}

		missIdx = append(missIdx, i)
		missTexts = append(missTexts, reqs[i].SourceText)
	}

	if len(missIdx) == 0 {
		return out, nil
	}

	vectors, err := c.provider.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missIdx) {
		return nil, &ProviderError{
			Kind: FailureTransient,
			Err:  fmt.Errorf("provider returned %d vectors for %d texts", len(vectors), len(missIdx)),
		}
	}

	for n, i := range missIdx {
		r := reqs[i]
		key := Key{EntityID: r.EntityID, Kind: r.Kind}
		c.lru.Add(key, entry{hash: hashes[i], values: vectors[n]})
		out[i] = scoring.Vector{Kind: r.Kind, Values: vectors[n]}

		if c.store != nil {
			if err := c.store.Save(ctx, r.EntityID, r.Kind, hashes[i], vectors[n]); err != nil {
				c.log.Warn("embedding store save failed",
					zap.String("entity_id", r.EntityID.String()),
					zap.String("kind", string(r.Kind)),
					zap.Error(err))
			}
		}
	}
	return out, nil
}

// Invalidate drops every cached vector for an entity, in memory and in
// the persistent tier. Used when a profile or posting is edited.
func (c *Cache) Invalidate(ctx context.Context, entityID uuid.UUID) error {
	for _, key := range c.lru.Keys() {
		if key.EntityID == entityID {
			c.lru.Remove(key)
		}
	}
	if c.store != nil {
		if err := c.store.DeleteByEntity(ctx, entityID); err != nil {
			return fmt.Errorf("delete stored embeddings: %w", err)
		}
	}
	return nil
}

// Clear purges the in-memory tier. Administrative use only; the
// persistent tier is untouched.
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Len reports the number of resident in-memory entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
