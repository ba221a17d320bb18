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

type CouponRepo struct {
	coupons *mongo.Collection
	usages  *mongo.Collection
}

func NewCouponRepo(coupons, usages *mongo.Collection) *CouponRepo {
	return &CouponRepo{coupons: coupons, usages: usages}
}

func (r *CouponRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coupons.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = r.usages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "couponId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CouponRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepo) FindById(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.coupons.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// List returns coupons, restricted to active unexpired ones when
// activeOnly is set (the storefront view).
func (r *CouponRepo) List(ctx context.Context, activeOnly bool) ([]models.Coupon, error) {
	filter := bson.M{}
	if activeOnly {
		filter = bson.M{"active": true, "expiresAt": bson.M{"$gt": time.Now()}}
	}

	cursor, err := r.coupons.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepo) Insert(ctx context.Context, coupon *models.Coupon) (primitive.ObjectID, error) {
	res, err := r.coupons.InsertOne(ctx, coupon)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *CouponRepo) Update(ctx context.Context, coupon *models.Coupon) (bool, error) {
	res, err := r.coupons.UpdateOne(ctx,
		bson.M{"_id": coupon.Id},
		bson.M{"$set": bson.M{
			"code":          coupon.Code,
			"discountType":  coupon.DiscountType,
			"discountValue": coupon.DiscountValue,
			"maxDiscount":   coupon.MaxDiscount,
			"minCartValue":  coupon.MinCartValue,
			"usageLimit":    coupon.UsageLimit,
			"perUserLimit":  coupon.PerUserLimit,
			"active":        coupon.Active,
			"expiresAt":     coupon.ExpiresAt,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *CouponRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coupons.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// UserUsageCount reports how many times the user has redeemed the
// coupon.
func (r *CouponRepo) UserUsageCount(ctx context.Context, couponId, userId primitive.ObjectID) (int, error) {
	var usage models.CouponUsage
	err := r.usages.FindOne(ctx, bson.M{"couponId": couponId, "userId": userId}).Decode(&usage)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return usage.Count, nil
}

// ConsumeUsage bumps both the coupon's global counter and the per-user
// counter. Called once per placed order carrying the coupon.
func (r *CouponRepo) ConsumeUsage(ctx context.Context, couponId, userId primitive.ObjectID) error {
	_, err := r.usages.UpdateOne(ctx,
		bson.M{"couponId": couponId, "userId": userId},
		bson.M{"$inc": bson.M{"count": 1}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	_, err = r.coupons.UpdateOne(ctx,
		bson.M{"_id": couponId},
		bson.M{"$inc": bson.M{"usedCount": 1}},
	)
	return err
}
