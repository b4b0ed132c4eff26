package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/catalog"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/config"
	"github.com/kundan-thakur61/mobilecoverdesign/internal/sitemap"
)

// Renders sitemap.xml from the live catalog. Run it from the deploy
// pipeline before publishing the static assets.
func main() {
	output := flag.String("o", "sitemap.xml", "output file path")
	flag.Parse()

	log.Println("Generating sitemap...")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var source sitemap.Catalog
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err == nil && client.Ping(ctx, nil) == nil {
		defer client.Disconnect(context.Background())
		source = catalog.NewCatalogService(catalog.NewCatalogRepository(client.Database(cfg.MongoDBName)))
	} else {
		log.Printf("MongoDB unavailable, static routes only: %v", err)
	}

	gen := sitemap.NewGenerator(cfg.SiteURL, source)

	routes := gen.Routes(ctx)
	body, err := gen.Render(routes)
	if err != nil {
		log.Fatalf("Sitemap generation error: %v", err)
	}

	if err := os.WriteFile(*output, body, 0o644); err != nil {
		log.Fatalf("Sitemap write error: %v", err)
	}

	log.Printf("✅ Sitemap generated: %s (%d URLs)", *output, len(routes))
}
