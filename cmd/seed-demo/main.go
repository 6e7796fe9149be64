package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/storage"
	"github.com/schemacraft/schemacraft/internal/storage/documents"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
	"github.com/schemacraft/schemacraft/schema"
)

// Seeds a demo account with a schema and a few documents so the API has
// something to serve on a fresh data directory.
func main() {
	// Use default data directory (same as running server)
	dataDir := "./data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	ctx := context.Background()

	paths, err := storage.InitDirectories(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init data directory: %v\n", err)
		os.Exit(1)
	}

	users, err := auth.NewStore(paths.MetadataDir, 10000)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open user store: %v\n", err)
		os.Exit(1)
	}

	reg, err := registry.NewStore(paths.MetadataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open schema registry: %v\n", err)
		os.Exit(1)
	}

	docs := documents.NewStore(paths.DocumentsDir)
	if err := docs.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start document store: %v\n", err)
		os.Exit(1)
	}
	defer docs.Stop(ctx)

	user, err := users.Create("Demo User", "demo@example.com", "demo-password")
	if err != nil {
		// Existing data directory: reuse the account
		user, err = users.Authenticate("demo@example.com", "demo-password")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create demo user: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Demo user already exists")
	} else {
		fmt.Printf("Created demo user: %s\n", user.Email)
	}

	created, err := reg.Create(ctx, user.ID, schema.CreateRequest{
		CollectionName: "products",
		Fields: []schema.Field{
			{Name: "name", Type: schema.TypeString, Required: true},
			{Name: "price", Type: schema.TypeNumber, Required: true},
			{Name: "in_stock", Type: schema.TypeBoolean, Default: true},
			{Name: "supplier_email", Type: schema.TypeString, Visibility: schema.VisibilityPrivate},
		},
	})
	if err != nil {
		fmt.Printf("Schema already exists or invalid: %v\n", err)
	} else {
		fmt.Printf("Created schema: %s\n", created.CollectionName)
		for _, ep := range schema.DeriveEndpoints(created.CollectionName) {
			fmt.Printf("  %s %s\n", ep.Method, ep.Path)
		}
	}

	samples := []map[string]interface{}{
		{"name": "Widget", "price": 9.99, "supplier_email": "acme@example.com"},
		{"name": "Gadget", "price": 24.50, "in_stock": false},
		{"name": "Gizmo", "price": 3.25},
	}
	for _, data := range samples {
		doc, err := docs.Insert(ctx, user.ID, "products", data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to insert document: %v\n", err)
			continue
		}
		fmt.Printf("  Inserted document %s\n", doc.ID)
	}

	fmt.Printf("\nDone! API key for generated endpoints: %s\n", user.APIKey)
}
