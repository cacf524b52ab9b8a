package kvstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type preferenceDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoStore keeps one document per key. When client is non-nil Close
// disconnects it.
type MongoStore struct {
	coll   *mongo.Collection
	client *mongo.Client
}

func NewMongoStore(coll *mongo.Collection, client *mongo.Client) *MongoStore {
	return &MongoStore{coll: coll, client: client}
}

func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc preferenceDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (s *MongoStore) Put(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
