// Package redisstore implements the challenge store on Redis so multiple
// instances can share outstanding OTP challenges.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

// keyGrace keeps the redis key alive past the challenge's ExpiresAt so an
// expired challenge is reported as expired rather than missing.
const keyGrace = time.Hour

// deleteIfMatchScript deletes the stored challenge only when its ID still
// matches, atomically on the redis side.
var deleteIfMatchScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
	return -1
end
if cjson.decode(v)['id'] == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

// updateIfMatchScript bumps the attempt counter only when the stored
// challenge still carries the given ID. KEEPTTL preserves the remaining
// lifetime; attempt bumps must not extend the challenge.
var updateIfMatchScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
	return -1
end
local ch = cjson.decode(v)
if ch['id'] ~= ARGV[1] then
	return 0
end
ch['attempts'] = tonumber(ARGV[2])
redis.call('SET', KEYS[1], cjson.encode(ch), 'KEEPTTL')
return 1
`)

type ChallengeStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewChallengeStore(client *redis.Client, logger *logrus.Logger) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		logger: logger,
	}
}

func challengeKey(phone string) string {
	return fmt.Sprintf("challenge:%s", phone)
}

func (s *ChallengeStore) Put(ctx context.Context, ch models.Challenge) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	ttl := time.Until(ch.ExpiresAt) + keyGrace
	if err := s.client.Set(ctx, challengeKey(ch.Phone), data, ttl).Err(); err != nil {
		s.logger.WithError(err).Error("Failed to store challenge in Redis")
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, phone string) (*models.Challenge, error) {
	data, err := s.client.Get(ctx, challengeKey(phone)).Result()
	if err == redis.Nil {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	var ch models.Challenge
	if err := json.Unmarshal([]byte(data), &ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}
	return &ch, nil
}

func (s *ChallengeStore) UpdateIfMatch(ctx context.Context, phone, challengeID string, attempts int) error {
	res, err := updateIfMatchScript.Run(ctx, s.client, []string{challengeKey(phone)}, challengeID, attempts).Int()
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}

	switch res {
	case -1:
		return store.ErrNotFound
	case 0:
		return store.ErrConflict
	default:
		return nil
	}
}

func (s *ChallengeStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, challengeKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

func (s *ChallengeStore) DeleteIfMatch(ctx context.Context, phone, challengeID string) error {
	res, err := deleteIfMatchScript.Run(ctx, s.client, []string{challengeKey(phone)}, challengeID).Int()
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}

	switch res {
	case -1:
		return store.ErrNotFound
	case 0:
		return store.ErrConflict
	default:
		return nil
	}
}
