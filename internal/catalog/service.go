package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// Repository is the storage surface of the catalog store.
type Repository interface {
	ListProducts(ctx context.Context, limit, offset int) ([]types.Product, error)
	GetProduct(ctx context.Context, id string) (*types.Product, error)
	ListCollections(ctx context.Context) ([]types.Collection, error)
	GetCollectionByHandle(ctx context.Context, handle string) (*types.Collection, error)
	SaveCollection(ctx context.Context, collection *types.Collection) error
	DeleteCollection(ctx context.Context, handle string) error
	ListCompanies(ctx context.Context) ([]types.MobileCompany, error)
}

type CatalogService struct {
	repo Repository
}

func NewCatalogService(repo Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int) ([]types.Product, error) {
	return s.repo.ListProducts(ctx, limit, offset)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// ListCollections serves the stored collections, falling back to the
// built-in theme set when the store is empty or erroring.
func (s *CatalogService) ListCollections(ctx context.Context) []types.Collection {
	collections, err := s.repo.ListCollections(ctx)
	if err != nil {
		log.Printf("Collections query error, serving fallback: %v", err)
		return FallbackCollections
	}
	if len(collections) == 0 {
		return FallbackCollections
	}
	return collections
}

// GetCollection resolves a handle against the store first, then the
// fallback set (matching on slugified handles either way).
func (s *CatalogService) GetCollection(ctx context.Context, handle string) (*types.Collection, error) {
	slug := Slugify(handle)

	collection, err := s.repo.GetCollectionByHandle(ctx, slug)
	if err == nil {
		return collection, nil
	}

	for i := range FallbackCollections {
		if FallbackCollections[i].Handle == slug {
			return &FallbackCollections[i], nil
		}
	}
	return nil, err
}

// SaveCollection upserts a collection. The handle is slugified, falling
// back to a slug of the title when absent.
func (s *CatalogService) SaveCollection(ctx context.Context, collection *types.Collection) (*types.Collection, error) {
	if collection.Title == "" {
		return nil, fmt.Errorf("collection title is required")
	}
	if collection.Handle == "" {
		collection.Handle = collection.Title
	}
	collection.Handle = Slugify(collection.Handle)
	collection.UpdatedAt = time.Now()

	if err := s.repo.SaveCollection(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *CatalogService) DeleteCollection(ctx context.Context, handle string) error {
	return s.repo.DeleteCollection(ctx, Slugify(handle))
}

func (s *CatalogService) ListCompanies(ctx context.Context) ([]types.MobileCompany, error) {
	return s.repo.ListCompanies(ctx)
}
