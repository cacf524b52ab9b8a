package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PreferencesCollection holds one document per persisted key.
const PreferencesCollection = "preferences"

func EnsurePreferenceIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(PreferencesCollection).Indexes()

	updatedAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("updatedAt_index"),
	}

	log.Println("EnsurePreferenceIndexes: creating updatedAt_index index")
	_, err := indexes.CreateOne(ctx, updatedAtIndex)
	if err != nil {
		log.Println("EnsurePreferenceIndexes: updatedAt index error:", err)
		return err
	}
	log.Println("EnsurePreferenceIndexes: updatedAt_index index created")
	return nil
}
