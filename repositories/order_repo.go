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

type OrderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepo(collection *mongo.Collection) *OrderRepo {
	return &OrderRepo{collection: collection}
}

func (r *OrderRepo) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *OrderRepo) FindById(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) FindByIdForUser(ctx context.Context, id, userId primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userId}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) SetInvoiceUrl(ctx context.Context, id primitive.ObjectID, url string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"invoiceUrl": url, "updatedAt": time.Now()}},
	)
	return err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userId primitive.ObjectID, page, limit int64) ([]models.Order, int64, error) {
	filter := bson.M{"userId": userId}
	return r.list(ctx, filter, page, limit)
}

// List returns orders across all users, optionally filtered by status.
// Admin read path.
func (r *OrderRepo) List(ctx context.Context, status string, page, limit int64) ([]models.Order, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, page, limit)
}

func (r *OrderRepo) list(ctx context.Context, filter bson.M, page, limit int64) ([]models.Order, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * limit
	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// SalesSummary aggregates order count and revenue per status for the
// admin report.
type SalesSummary struct {
	TotalOrders  int64            `json:"totalOrders"`
	TotalRevenue float64          `json:"totalRevenue"`
	ByStatus     map[string]int64 `json:"byStatus"`
}

func (r *OrderRepo) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summary := &SalesSummary{ByStatus: map[string]int64{}}
	for cursor.Next(ctx) {
		var row struct {
			Status  string  `bson:"_id"`
			Count   int64   `bson:"count"`
			Revenue float64 `bson:"revenue"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		summary.ByStatus[row.Status] = row.Count
		summary.TotalOrders += row.Count
		if row.Status != models.OrderStatusCancelled {
			summary.TotalRevenue += row.Revenue
		}
	}
	return summary, cursor.Err()
}
