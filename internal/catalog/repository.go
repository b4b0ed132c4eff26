package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

// CatalogRepository stores the product catalog in MongoDB. Products and
// companies are maintained by a separate pipeline and only read here;
// collections are also writable through the admin routes.
type CatalogRepository struct {
	products    *mongo.Collection
	collections *mongo.Collection
	companies   *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		products:    db.Collection("products"),
		collections: db.Collection("collections"),
		companies:   db.Collection("mobile_companies"),
	}
}

// ListProducts returns a catalog page, newest updates first. Limit is
// capped at 2000, the page size the sitemap generator requests.
func (r *CatalogRepository) ListProducts(ctx context.Context, limit, offset int) ([]types.Product, error) {
	if limit <= 0 || limit > 2000 {
		limit = 2000
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("products query error: %v", err)
	}
	defer cursor.Close(ctx)

	var products []types.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products decode error: %v", err)
	}
	return products, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	var product types.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("product not found: %s", id)
		}
		return nil, fmt.Errorf("product query error: %v", err)
	}
	return &product, nil
}

func (r *CatalogRepository) ListCollections(ctx context.Context) ([]types.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.collections.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("collections query error: %v", err)
	}
	defer cursor.Close(ctx)

	var collections []types.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, fmt.Errorf("collections decode error: %v", err)
	}
	return collections, nil
}

func (r *CatalogRepository) GetCollectionByHandle(ctx context.Context, handle string) (*types.Collection, error) {
	var collection types.Collection
	err := r.collections.FindOne(ctx, bson.M{"handle": handle}).Decode(&collection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("collection not found: %s", handle)
		}
		return nil, fmt.Errorf("collection query error: %v", err)
	}
	return &collection, nil
}

// SaveCollection upserts a collection by handle.
func (r *CatalogRepository) SaveCollection(ctx context.Context, collection *types.Collection) error {
	filter := bson.M{"handle": collection.Handle}
	update := bson.M{"$set": bson.M{
		"handle":      collection.Handle,
		"title":       collection.Title,
		"description": collection.Description,
		"image":       collection.Image,
		"updated_at":  collection.UpdatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collections.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("collection save error: %v", err)
	}
	return nil
}

// DeleteCollection removes a collection by handle.
func (r *CatalogRepository) DeleteCollection(ctx context.Context, handle string) error {
	result, err := r.collections.DeleteOne(ctx, bson.M{"handle": handle})
	if err != nil {
		return fmt.Errorf("collection delete error: %v", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("collection not found: %s", handle)
	}
	return nil
}

// ListCompanies returns the phone company/model catalog the customizer
// uses to pick a cover size.
func (r *CatalogRepository) ListCompanies(ctx context.Context) ([]types.MobileCompany, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.companies.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("companies query error: %v", err)
	}
	defer cursor.Close(ctx)

	var companies []types.MobileCompany
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("companies decode error: %v", err)
	}
	return companies, nil
}
