package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chess_trainer/internal/domain/decision"
	"chess_trainer/internal/errors"
)

// AnalysisCache keeps decoded candidate sets in Redis so repeated positions
// (takebacks, review of a finished game) skip the oracle.
type AnalysisCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.SugaredLogger
}

func NewAnalysisCache(redis *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *AnalysisCache {
	return &AnalysisCache{
		redis: redis,
		ttl:   ttl,
		log:   log,
	}
}

func AnalysisKey(fen string, depth int) string {
	return fmt.Sprintf("analysis:%d:%s", depth, fen)
}

func (c *AnalysisCache) Get(ctx context.Context, fen string, depth int) (decision.CandidateSet, error) {
	key := AnalysisKey(fen, depth)
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return decision.CandidateSet{}, errors.ErrAnalysisNotCached
		}
		return decision.CandidateSet{}, err
	}

	var set decision.CandidateSet
	if err := json.Unmarshal(val, &set); err != nil {
		c.log.Warnw("dropping corrupt cache entry", "key", key, "error", err)
		c.redis.Del(ctx, key)
		return decision.CandidateSet{}, errors.ErrAnalysisNotCached
	}
	return set, nil
}

func (c *AnalysisCache) Put(ctx context.Context, fen string, depth int, set decision.CandidateSet) error {
	bytes, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, AnalysisKey(fen, depth), bytes, c.ttl).Err()
}
