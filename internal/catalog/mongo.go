package catalog

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codecup/internal/models"
)

// productDocument stores a product with its menu position so reads keep the
// catalog order.
type productDocument struct {
	models.Product `bson:",inline"`
	Position       int `bson:"position"`
}

// LoadMongo reads the menu from coll ordered by position. Rewards always come
// from the built-in list.
func LoadMongo(ctx context.Context, coll *mongo.Collection) (*Provider, error) {
	source := "mongo:" + coll.Name()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.Product)
	}
	return build(source, products, nil)
}

// SeedCollection inserts products into coll when it holds no documents. It
// reports whether anything was written.
func SeedCollection(ctx context.Context, coll *mongo.Collection, products []models.Product) (bool, error) {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	docs := make([]interface{}, 0, len(products))
	for i, p := range products {
		docs = append(docs, productDocument{Product: p, Position: i})
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return false, err
	}
	log.Printf("[CATALOG] [INFO] seeded %d products into %s", len(products), coll.Name())
	return true, nil
}

// DefaultProducts returns a copy of the built-in menu.
func DefaultProducts() []models.Product {
	return append([]models.Product(nil), defaultProducts...)
}
