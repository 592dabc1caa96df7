package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flalji123/commodify-backend/apperrors"
)

// MongoStore keeps every entity in one MongoDB database, one collection
// per entity plus a counters collection for id sequences.
type MongoStore struct {
	client     *mongo.Client
	users      *mongo.Collection
	companies  *mongo.Collection
	projects   *mongo.Collection
	tasks      *mongo.Collection
	comments   *mongo.Collection
	members    *mongo.Collection
	files      *mongo.Collection
	activities *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:     client,
		users:      db.Collection("users"),
		companies:  db.Collection("companies"),
		projects:   db.Collection("projects"),
		tasks:      db.Collection("tasks"),
		comments:   db.Collection("comments"),
		members:    db.Collection("members"),
		files:      db.Collection("files"),
		activities: db.Collection("activities"),
		counters:   db.Collection("counters"),
	}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %v", err)
	}
	return nil
}

// nextID increments and returns the named sequence. Sequences start at 1
// and never reuse a value, so ids stay monotonic across deletes.
func (s *MongoStore) nextID(ctx context.Context, sequence string) (int64, error) {
	res := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %v", sequence, err)
	}
	return doc.Seq, nil
}

// RunInTransaction executes fn inside a mongo session transaction. The
// session context is passed to fn, so any store call made through it joins
// the same transaction. Requires a replica-set deployment.
func (s *MongoStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// translate maps driver errors into the shared taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return apperrors.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrConflict
	}
	return err
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
var oldestFirst = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
