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

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(collection *mongo.Collection) *UserRepo {
	return &UserRepo{collection: collection}
}

func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepo) FindById(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now()}},
	)
	return err
}

// ToggleWishlist adds the product to the user's wishlist, or removes
// it when already present. Returns true when the product ended up in
// the wishlist.
func (r *UserRepo) ToggleWishlist(ctx context.Context, userId, productId primitive.ObjectID) (bool, error) {
	user, err := r.FindById(ctx, userId)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, mongo.ErrNoDocuments
	}

	for _, id := range user.Wishlist {
		if id == productId {
			_, err := r.collection.UpdateOne(ctx,
				bson.M{"_id": userId},
				bson.M{"$pull": bson.M{"wishlist": productId}},
			)
			return false, err
		}
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": userId},
		bson.M{"$addToSet": bson.M{"wishlist": productId}},
	)
	return true, err
}
