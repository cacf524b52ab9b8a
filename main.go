package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"codecup/internal/catalog"
	"codecup/internal/config"
	"codecup/internal/database"
	"codecup/internal/handlers"
	"codecup/internal/kvstore"
	"codecup/internal/metrics"
	"codecup/internal/shop"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("store driver:", cfg.StoreDriver)

	writer := kvstore.NewWriter(store, 256)

	provider := catalog.Default()
	if cfg.CatalogFile != "" {
		provider, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("catalog loaded from:", cfg.CatalogFile)
	}
	if cfg.CatalogCollection != "" {
		provider, err = loadMongoCatalog(ctx, cfg.MongoURI, cfg.DBName, cfg.CatalogCollection)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("catalog loaded from collection:", cfg.CatalogCollection)
	}

	s := shop.Open(ctx, writer, provider, metrics.New(), cfg.PointsRate)
	if cfg.SeedDemo {
		s.SeedDemo(time.Now())
	}

	r := gin.Default()
	handlers.RegisterRoutes(r, s, handlers.RouteOptions{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
	})
	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set, session auth disabled")
	}

	// Request contexts derive from ctx so event streams end on shutdown.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	log.Println("listening on:", srv.Addr)

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("http shutdown:", err)
	}
	if err := writer.Close(shutdownCtx); err != nil {
		log.Println("store close:", err)
	}
}

// loadMongoCatalog seeds an empty collection with the built-in menu and reads
// the menu back. The catalog is immutable, so the client is released after.
func loadMongoCatalog(ctx context.Context, uri, dbName, collection string) (*catalog.Provider, error) {
	client, err := database.Connect(uri)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.Background())

	coll := client.Database(dbName).Collection(collection)
	if _, err := catalog.SeedCollection(ctx, coll, catalog.DefaultProducts()); err != nil {
		return nil, err
	}
	return catalog.LoadMongo(ctx, coll)
}
