package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

type ReviewRepo struct {
	collection *mongo.Collection
}

func NewReviewRepo(collection *mongo.Collection) *ReviewRepo {
	return &ReviewRepo{collection: collection}
}

func (r *ReviewRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert writes the user's review for a product, replacing an earlier
// one. One review per user per product.
func (r *ReviewRepo) Upsert(ctx context.Context, review *models.Review) error {
	review.CreatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"productId": review.ProductId, "userId": review.UserId},
		bson.M{"$set": bson.M{
			"userName":  review.UserName,
			"rating":    review.Rating,
			"comment":   review.Comment,
			"createdAt": review.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productId primitive.ObjectID) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"productId": productId},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingSummary recomputes the product's average rating and review
// count with an aggregation.
func (r *ReviewRepo) RatingSummary(ctx context.Context, productId primitive.ObjectID) (float64, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "productId", Value: productId}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var row struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return 0, 0, err
		}
	} else if err := cursor.Err(); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
