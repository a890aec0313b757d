package docstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductsRepository implements products.Repository on a MongoDB collection.
// Single-document writes are atomic in MongoDB; nothing else is assumed.
type ProductsRepository struct {
	coll *mongo.Collection
}

// productPipeline optionally filters, sorts newest first and joins the
// seller document.
func productPipeline(match bson.D) mongo.Pipeline {
	var p mongo.Pipeline
	if match != nil {
		p = append(p, bson.D{{Key: "$match", Value: match}})
	}
	return append(p,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "seller"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "sellerDocs"},
		}}},
	)
}

func (r *ProductsRepository) aggregate(ctx context.Context, match bson.D) ([]*models.Product, error) {
	cur, err := r.coll.Aggregate(ctx, productPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := make([]*models.Product, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.model())
	}
	return result, nil
}

func (r *ProductsRepository) List(ctx context.Context) ([]*models.Product, error) {
	return r.aggregate(ctx, nil)
}

func (r *ProductsRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	found, err := r.aggregate(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *ProductsRepository) Create(ctx context.Context, p *models.Product) error {
	if _, err := r.coll.InsertOne(ctx, newProductDoc(p)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ProductsRepository) UpdateStatus(ctx context.Context, id string, status models.ProductStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(status)}}}},
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
