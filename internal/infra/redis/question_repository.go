package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/cjbarker/trivia-app/internal/domain"
)

// SetLoader fetches question-set content from a backing store.
type SetLoader interface {
	LoadSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// QuestionRepository caches parsed question sets in Redis as JSON under
// trivia:set:{id} and falls back to a loader on cache miss. Several
// hosts running the same event can then share one parse.
type QuestionRepository struct {
	client *redis.Client
	loader SetLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader SetLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	key := r.key(setID)

	if cached, err := r.client.Get(ctx, key).Result(); err == nil && cached != "" {
		var set domain.QuestionSet
		if err := json.Unmarshal([]byte(cached), &set); err == nil {
			return set, nil
		}
		// Corrupt cache entry: fall through and rebuild it.
	}

	result, err, _ := r.sf.Do(setID, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if cached, err := r.client.Get(ctx, key).Result(); err == nil && cached != "" {
			var set domain.QuestionSet
			if err := json.Unmarshal([]byte(cached), &set); err == nil {
				return set, nil
			}
		}

		set, err := r.loader.LoadSet(ctx, setID)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		data, err := json.Marshal(set)
		if err != nil {
			return domain.QuestionSet{}, fmt.Errorf("marshal question set: %w", err)
		}
		// Best-effort cache write; the loaded set is still usable if
		// Redis is down.
		_ = r.client.Set(ctx, key, string(data), r.ttlWithJitter()).Err()
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

func (r *QuestionRepository) key(setID string) string {
	return "trivia:set:" + setID
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
