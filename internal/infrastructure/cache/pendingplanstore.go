package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/shared/biztime"
)

// RedisPendingPlanStore keeps plans awaiting review as JSON under prefix+id
// with a fixed TTL.
type RedisPendingPlanStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisPendingPlanStore(client *redis.Client, prefix string, ttl time.Duration) *RedisPendingPlanStore {
	return &RedisPendingPlanStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		now:    biztime.NowUTC,
	}
}

func (s *RedisPendingPlanStore) key(id string) string {
	return s.prefix + id
}

// Save stamps CreatedAt/ExpiresAt and writes the plan.
func (s *RedisPendingPlanStore) Save(ctx context.Context, plan *distribution.PendingPlan) error {
	if plan == nil || plan.ID == "" {
		return errors.New("plan id cannot be empty")
	}
	plan.CreatedAt = s.now()
	plan.ExpiresAt = plan.CreatedAt.Add(s.ttl)
	return s.write(ctx, plan, s.ttl)
}

// Restore writes a taken plan back for whatever is left of its original
// lifetime. A plan already past ExpiresAt is dropped.
func (s *RedisPendingPlanStore) Restore(ctx context.Context, plan *distribution.PendingPlan) error {
	if plan == nil || plan.ID == "" {
		return errors.New("plan id cannot be empty")
	}
	left := plan.ExpiresAt.Sub(s.now())
	if left <= 0 {
		return nil
	}
	return s.write(ctx, plan, left)
}

func (s *RedisPendingPlanStore) write(ctx context.Context, plan *distribution.PendingPlan, ttl time.Duration) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := s.client.Set(ctx, s.key(plan.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store plan in redis: %w", err)
	}
	return nil
}

func (s *RedisPendingPlanStore) Get(ctx context.Context, id string) (*distribution.PendingPlan, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	return decodePlan(data, err)
}

// Take uses GETDEL so that two concurrent executions cannot both obtain the plan.
func (s *RedisPendingPlanStore) Take(ctx context.Context, id string) (*distribution.PendingPlan, error) {
	data, err := s.client.GetDel(ctx, s.key(id)).Bytes()
	return decodePlan(data, err)
}

func decodePlan(data []byte, err error) (*distribution.PendingPlan, error) {
	if errors.Is(err, redis.Nil) {
		return nil, distribution.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plan from redis: %w", err)
	}
	var plan distribution.PendingPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}
