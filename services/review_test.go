package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

type reviewKey struct {
	product primitive.ObjectID
	user    primitive.ObjectID
}

type fakeReviews struct {
	m          map[reviewKey]models.Review
	upsertErr  error
	summaryErr error
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{m: map[reviewKey]models.Review{}}
}

func (f *fakeReviews) Upsert(ctx context.Context, review *models.Review) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.m[reviewKey{review.ProductId, review.UserId}] = *review
	return nil
}

func (f *fakeReviews) RatingSummary(ctx context.Context, productId primitive.ObjectID) (float64, int, error) {
	if f.summaryErr != nil {
		return 0, 0, f.summaryErr
	}
	var sum, count int
	for key, review := range f.m {
		if key.product == productId {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeProductRatings struct {
	rating float64
	count  int
	sets   int
	err    error
}

func (f *fakeProductRatings) SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error {
	if f.err != nil {
		return f.err
	}
	f.rating = rating
	f.count = reviewCount
	f.sets++
	return nil
}

func TestSubmitReviewRecomputesRating(t *testing.T) {
	reviews := newFakeReviews()
	products := &fakeProductRatings{}
	svc := &ReviewService{Reviews: reviews, Products: products}

	productId := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	rating, count, err := svc.SubmitReview(context.Background(), &models.Review{
		ProductId: productId, UserId: alice, Rating: 5,
	})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if rating != 5 || count != 1 {
		t.Fatalf("aggregate = %v/%d, want 5/1", rating, count)
	}

	rating, count, err = svc.SubmitReview(context.Background(), &models.Review{
		ProductId: productId, UserId: bob, Rating: 2,
	})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if rating != 3.5 || count != 2 {
		t.Fatalf("aggregate = %v/%d, want 3.5/2", rating, count)
	}
	if products.rating != 3.5 || products.count != 2 {
		t.Fatalf("product carries %v/%d, want 3.5/2", products.rating, products.count)
	}

	// Re-reviewing replaces, never duplicates.
	rating, count, err = svc.SubmitReview(context.Background(), &models.Review{
		ProductId: productId, UserId: alice, Rating: 1,
	})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if rating != 1.5 || count != 2 {
		t.Fatalf("aggregate after re-review = %v/%d, want 1.5/2", rating, count)
	}

	other := primitive.NewObjectID()
	if err := reviews.Upsert(context.Background(), &models.Review{ProductId: other, UserId: alice, Rating: 4}); err != nil {
		t.Fatalf("seed other product: %v", err)
	}
	rating, count, _ = reviews.RatingSummary(context.Background(), productId)
	if rating != 1.5 || count != 2 {
		t.Fatalf("aggregate leaked across products: %v/%d", rating, count)
	}
}

func TestSubmitReviewSaveFailure(t *testing.T) {
	reviews := newFakeReviews()
	reviews.upsertErr = errors.New("write refused")
	products := &fakeProductRatings{}
	svc := &ReviewService{Reviews: reviews, Products: products}

	_, _, err := svc.SubmitReview(context.Background(), &models.Review{
		ProductId: primitive.NewObjectID(), UserId: primitive.NewObjectID(), Rating: 4,
	})
	if err == nil {
		t.Fatal("save failure must surface")
	}
	if products.sets != 0 {
		t.Fatal("rating must not be touched when the save fails")
	}
}

func TestSubmitReviewAggregateFailuresAreIsolated(t *testing.T) {
	reviews := newFakeReviews()
	reviews.summaryErr = errors.New("aggregation broke")
	products := &fakeProductRatings{}
	svc := &ReviewService{Reviews: reviews, Products: products}

	review := &models.Review{ProductId: primitive.NewObjectID(), UserId: primitive.NewObjectID(), Rating: 4}
	if _, _, err := svc.SubmitReview(context.Background(), review); err != nil {
		t.Fatalf("summary failure must not fail the review: %v", err)
	}
	if len(reviews.m) != 1 {
		t.Fatal("review must still be saved")
	}

	reviews.summaryErr = nil
	products.err = errors.New("update refused")
	if _, _, err := svc.SubmitReview(context.Background(), review); err != nil {
		t.Fatalf("rating update failure must not fail the review: %v", err)
	}
}
