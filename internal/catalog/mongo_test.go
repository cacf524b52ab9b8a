package catalog

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"codecup/internal/database"
	"codecup/internal/models"
)

func TestMongoCatalog(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	client, err := database.Connect(uri)
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	ctx := context.Background()
	coll := client.Database("codecup_test").Collection(fmt.Sprintf("products_%d", time.Now().UnixNano()))
	defer coll.Drop(ctx)

	seeded, err := SeedCollection(ctx, coll, DefaultProducts())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = SeedCollection(ctx, coll, DefaultProducts())
	require.NoError(t, err)
	assert.False(t, seeded)

	p, err := LoadMongo(ctx, coll)
	require.NoError(t, err)
	assert.Equal(t, names(Default().All()), names(p.All()))

	mocha, err := p.ByID("mocha")
	require.NoError(t, err)
	want, _ := Default().ByID("mocha")
	assert.Equal(t, want.Ingredients, mocha.Ingredients)

	// Hand-edited documents may store a single ingredient as a string.
	_, err = coll.InsertOne(ctx, bson.M{"_id": "cortado", "name": "Cortado", "unitPrice": 3.25, "ingredients": "espresso", "position": 10})
	require.NoError(t, err)
	p, err = LoadMongo(ctx, coll)
	require.NoError(t, err)
	cortado, err := p.ByID("cortado")
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"espresso"}, cortado.Ingredients)
	assert.Equal(t, CategoryHotCoffee, cortado.Category)
	assert.Equal(t, "Cortado", p.All()[len(p.All())-1].Name)
}
