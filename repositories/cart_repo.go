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

type CartRepo struct {
	collection *mongo.Collection
}

func NewCartRepo(collection *mongo.Collection) *CartRepo {
	return &CartRepo{collection: collection}
}

// EnsureIndexes creates the unique owner index; one cart per user.
func (r *CartRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CartRepo) FindByUser(ctx context.Context, userId primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userId}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save upserts the user's cart document.
func (r *CartRepo) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": cart.UserId},
		bson.M{"$set": bson.M{
			"items":     cart.Items,
			"coupon":    cart.Coupon,
			"subtotal":  cart.Subtotal,
			"discount":  cart.Discount,
			"total":     cart.Total,
			"updatedAt": cart.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *CartRepo) DeleteByUser(ctx context.Context, userId primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userId})
	return err
}
