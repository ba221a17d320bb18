package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceRepo backs order numbering with one counter document per
// 2-digit year. FindOneAndUpdate with $inc + upsert makes the
// read-then-increment atomic, so concurrent checkouts never share a
// sequence value.
type SequenceRepo struct {
	collection *mongo.Collection
}

func NewSequenceRepo(collection *mongo.Collection) *SequenceRepo {
	return &SequenceRepo{collection: collection}
}

func (r *SequenceRepo) NextOrderSequence(ctx context.Context, year string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": "orders-" + year},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
