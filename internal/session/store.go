package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nicklvs1307/gestao-sub001/internal/usecase/checkout"
)

// Store keeps in-progress checkout sessions in redis under a TTL.
// The TTL is the ephemerality guarantee: an abandoned checkout simply
// expires, and nothing about what was actually paid lives here.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(orderID, staffID string) string {
	return fmt.Sprintf("checkout:%s:%s", orderID, staffID)
}

func (s *Store) Load(ctx context.Context, orderID, staffID string) (*checkout.Session, error) {
	val, err := s.rdb.Get(ctx, key(orderID, staffID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, checkout.ErrSessionMissing
		}
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}

	var sess checkout.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, sess *checkout.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	return s.rdb.Set(ctx, key(sess.OrderID, sess.StaffID), data, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, orderID, staffID string) error {
	return s.rdb.Del(ctx, key(orderID, staffID)).Err()
}

var _ checkout.Sessions = (*Store)(nil)
