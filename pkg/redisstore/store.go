package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

const (
	defaultKeyPrefix = "subscription:"
	docField         = "doc"
)

// Lua keeps create-if-absent and the floored counter adjustment atomic on the
// server. Scripts return false for a missing key, which go-redis surfaces as
// redis.Nil.
var (
	createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return false
end
redis.call("HSET", KEYS[1], "doc", ARGV[1], "boardsUsed", ARGV[2], "membersUsed", ARGV[3], "storageUsedMB", ARGV[4])
return 1
`)

	incrementScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
local v = redis.call("HINCRBY", KEYS[1], ARGV[1], ARGV[2])
if v < 0 then
	redis.call("HSET", KEYS[1], ARGV[1], 0)
end
return redis.call("HGETALL", KEYS[1])
`)
)

// Store implements subscription.Store on a Redis hash per user. Usage
// counters live in dedicated hash fields so they can be adjusted atomically;
// the rest of the subscription is a JSON blob in the doc field. Writes are
// published to a per-user channel to drive Watch.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides the key prefix for subscription hashes.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewStore creates a subscription store backed by the given Redis client.
// It panics if client is nil.
func NewStore(client redis.UniversalClient, opts ...StoreOption) *Store {
	if client == nil {
		panic("redisstore: redis client is required")
	}

	s := &Store{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(userID string) string     { return s.prefix + userID }
func (s *Store) channel(userID string) string { return s.prefix + "events:" + userID }

// Get loads the subscription hash for userID.
func (s *Store) Get(ctx context.Context, userID string) (*subscription.Subscription, error) {
	fields, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, subscription.ErrNotFound
	}
	return fromHash(fields)
}

// Create stores a new subscription hash unless one already exists.
func (s *Store) Create(ctx context.Context, sub *subscription.Subscription) error {
	doc, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	err = createScript.Run(ctx, s.client, []string{s.key(sub.UserID)},
		doc, sub.Usage.BoardsUsed, sub.Usage.MembersUsed, sub.Usage.StorageUsedMB).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return subscription.ErrAlreadyExists
		}
		return errors.Join(subscription.ErrStoreUnavailable, err)
	}

	s.publish(ctx, sub)
	return nil
}

// Save overwrites the subscription hash, creating it if absent.
func (s *Store) Save(ctx context.Context, sub *subscription.Subscription) error {
	doc, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	err = s.client.HSet(ctx, s.key(sub.UserID),
		docField, doc,
		string(subscription.CounterBoards), sub.Usage.BoardsUsed,
		string(subscription.CounterMembers), sub.Usage.MembersUsed,
		string(subscription.CounterStorage), sub.Usage.StorageUsedMB,
	).Err()
	if err != nil {
		return errors.Join(subscription.ErrStoreUnavailable, err)
	}

	s.publish(ctx, sub)
	return nil
}

// IncrementUsage adjusts a counter field atomically, clamping at zero, and
// returns the updated subscription.
func (s *Store) IncrementUsage(ctx context.Context, userID string, counter subscription.Counter, delta int64) (*subscription.Subscription, error) {
	if !counter.Valid() {
		return nil, subscription.ErrInvalidCounter
	}

	res, err := incrementScript.Run(ctx, s.client, []string{s.key(userID)}, string(counter), delta).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, subscription.ErrNotFound
		}
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}

	fields, err := hashFromReply(res)
	if err != nil {
		return nil, err
	}
	sub, err := fromHash(fields)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, sub)
	return sub, nil
}

// Watch subscribes to the per-user event channel and forwards published
// subscription snapshots. The returned channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context, userID string) (<-chan subscription.Subscription, error) {
	pubsub := s.client.Subscribe(ctx, s.channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}

	updates := make(chan subscription.Subscription, 8)
	go func() {
		defer close(updates)
		defer pubsub.Close()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var sub subscription.Subscription
				if err := json.Unmarshal([]byte(msg.Payload), &sub); err != nil {
					continue
				}
				select {
				case updates <- sub:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, nil
}

// publish is best-effort; a failed notification never fails the write.
func (s *Store) publish(ctx context.Context, sub *subscription.Subscription) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return
	}
	_ = s.client.Publish(ctx, s.channel(sub.UserID), payload).Err()
}

// fromHash rebuilds a subscription from hash fields. Counter fields are
// authoritative over the usage snapshot embedded in the doc blob.
func fromHash(fields map[string]string) (*subscription.Subscription, error) {
	doc, ok := fields[docField]
	if !ok {
		return nil, subscription.ErrNotFound
	}

	var sub subscription.Subscription
	if err := json.Unmarshal([]byte(doc), &sub); err != nil {
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}

	sub.Usage.BoardsUsed = counterValue(fields, subscription.CounterBoards, sub.Usage.BoardsUsed)
	sub.Usage.MembersUsed = counterValue(fields, subscription.CounterMembers, sub.Usage.MembersUsed)
	sub.Usage.StorageUsedMB = counterValue(fields, subscription.CounterStorage, sub.Usage.StorageUsedMB)
	return &sub, nil
}

func counterValue(fields map[string]string, counter subscription.Counter, fallback int64) int64 {
	raw, ok := fields[string(counter)]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return max(0, v)
}

// hashFromReply converts an EVAL HGETALL reply into a field map.
func hashFromReply(res any) (map[string]string, error) {
	pairs, ok := res.([]any)
	if !ok || len(pairs)%2 != 0 {
		return nil, errors.Join(subscription.ErrStoreUnavailable, errors.New("unexpected script reply"))
	}

	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, kok := pairs[i].(string)
		v, vok := pairs[i+1].(string)
		if !kok || !vok {
			return nil, errors.Join(subscription.ErrStoreUnavailable, errors.New("unexpected script reply"))
		}
		fields[k] = v
	}
	return fields, nil
}
