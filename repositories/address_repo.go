package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

type AddressRepo struct {
	collection *mongo.Collection
}

func NewAddressRepo(collection *mongo.Collection) *AddressRepo {
	return &AddressRepo{collection: collection}
}

func (r *AddressRepo) FindByIdForUser(ctx context.Context, id, userId primitive.ObjectID) (*models.Address, error) {
	var address models.Address
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userId}).Decode(&address)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepo) ListByUser(ctx context.Context, userId primitive.ObjectID) ([]models.Address, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userId})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressRepo) Insert(ctx context.Context, address *models.Address) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, address)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *AddressRepo) Update(ctx context.Context, address *models.Address) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": address.Id, "userId": address.UserId},
		bson.M{"$set": bson.M{
			"fullName":      address.FullName,
			"phone":         address.Phone,
			"streetAddress": address.StreetAddress,
			"city":          address.City,
			"state":         address.State,
			"zipCode":       address.ZipCode,
			"isDefault":     address.IsDefault,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ClearDefault unsets the default flag on all of the user's addresses,
// called before marking a new one default.
func (r *AddressRepo) ClearDefault(ctx context.Context, userId primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userId},
		bson.M{"$set": bson.M{"isDefault": false}},
	)
	return err
}

func (r *AddressRepo) Delete(ctx context.Context, id, userId primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userId})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
