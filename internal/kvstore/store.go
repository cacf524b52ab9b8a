// Package kvstore persists the storefront state as string blobs under named
// keys. Backends are interchangeable; ledgers only ever see Store and Writer.
package kvstore

import (
	"context"
	"fmt"
	"log"
	"strings"

	"codecup/internal/config"
	"codecup/internal/database"
)

// Keys used by the ledgers.
const (
	KeyCartItems      = "cart_items"
	KeyOrders         = "orders_list"
	KeyLoyaltyStamps  = "loyalty_stamps"
	KeyTotalPoints    = "total_points"
	KeyPointsHistory  = "points_history"
	KeyRecentSearches = "recent_searches"
	KeyProfilePrefix  = "user_profile."
)

// Store is a string key/value store. Get reports ok=false for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

// Open builds the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch strings.ToLower(cfg.StoreDriver) {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return OpenSQLite(cfg.SQLitePath)
	case "mongo":
		client, err := database.Connect(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.DBName)
		log.Println("MongoDB connected to:", db.Name())
		if err := database.EnsurePreferenceIndexes(db); err != nil {
			log.Printf("preference index warning: %v", err)
		}
		return NewMongoStore(db.Collection(database.PreferencesCollection), client), nil
	case "redis":
		store := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
