package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

const defaultCollection = "subscriptions"

// Store implements subscription.Store on top of a MongoDB collection.
// Each subscription is a single document keyed by the user ID, which keeps
// every write a single-document operation and therefore atomic.
type Store struct {
	col *mongo.Collection
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	collection string
}

// WithCollection overrides the collection name used for subscription documents.
func WithCollection(name string) StoreOption {
	return func(cfg *storeConfig) {
		if name != "" {
			cfg.collection = name
		}
	}
}

// NewStore creates a subscription store backed by the given database.
// It panics if db is nil.
func NewStore(db *mongo.Database, opts ...StoreOption) *Store {
	if db == nil {
		panic("mongostore: database is required")
	}

	cfg := storeConfig{collection: defaultCollection}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Store{col: db.Collection(cfg.collection)}
}

// Get loads the subscription document for userID.
func (s *Store) Get(ctx context.Context, userID string) (*subscription.Subscription, error) {
	var r record
	err := s.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, subscription.ErrNotFound
		}
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}
	return r.toSubscription(), nil
}

// Create inserts a new subscription document. The unique _id index makes the
// insert a create-if-absent operation even under concurrent callers.
func (s *Store) Create(ctx context.Context, sub *subscription.Subscription) error {
	if _, err := s.col.InsertOne(ctx, toRecord(sub)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return subscription.ErrAlreadyExists
		}
		return errors.Join(subscription.ErrStoreUnavailable, err)
	}
	return nil
}

// Save replaces the subscription document, creating it if it does not exist.
func (s *Store) Save(ctx context.Context, sub *subscription.Subscription) error {
	_, err := s.col.ReplaceOne(
		ctx,
		bson.M{"_id": sub.UserID},
		toRecord(sub),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(subscription.ErrStoreUnavailable, err)
	}
	return nil
}

// IncrementUsage adjusts a usage counter server-side and returns the updated
// subscription. The aggregation pipeline clamps the counter at zero in the
// same update, so concurrent writers can never drive it negative.
func (s *Store) IncrementUsage(ctx context.Context, userID string, counter subscription.Counter, delta int64) (*subscription.Subscription, error) {
	if !counter.Valid() {
		return nil, subscription.ErrInvalidCounter
	}

	field := "usage." + string(counter)
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{{Key: "$max", Value: bson.A{
				int64(0),
				bson.D{{Key: "$add", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, int64(0)}}},
					delta,
				}}},
			}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}

	var r record
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, subscription.ErrNotFound
		}
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}
	return r.toSubscription(), nil
}

// Watch streams subscription changes for userID using a change stream.
// The returned channel is closed when ctx is done or the stream ends.
// Change streams require a replica set; standalone servers return an error.
func (s *Store) Watch(ctx context.Context, userID string) (<-chan subscription.Subscription, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "fullDocument._id", Value: userID},
		}}},
	}

	stream, err := s.col.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, errors.Join(subscription.ErrStoreUnavailable, err)
	}

	updates := make(chan subscription.Subscription, 8)
	go func() {
		defer close(updates)
		defer stream.Close(context.WithoutCancel(ctx))

		for stream.Next(ctx) {
			var ev struct {
				FullDocument *record `bson:"fullDocument"`
			}
			if err := stream.Decode(&ev); err != nil || ev.FullDocument == nil {
				continue
			}
			select {
			case updates <- *ev.FullDocument.toSubscription():
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}
