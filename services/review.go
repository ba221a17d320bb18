package services

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

type ReviewStore interface {
	Upsert(ctx context.Context, review *models.Review) error
	RatingSummary(ctx context.Context, productId primitive.ObjectID) (float64, int, error)
}

type ProductRatingStore interface {
	SetRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int) error
}

// ReviewService stores reviews and keeps the product's rating aggregate
// in step with them.
type ReviewService struct {
	Reviews  ReviewStore
	Products ProductRatingStore
}

// SubmitReview upserts the review (one per user per product) and
// recomputes the product's average rating and review count. The review
// save is the hard part; the aggregate refresh is best-effort and only
// logged on failure.
func (s *ReviewService) SubmitReview(ctx context.Context, review *models.Review) (float64, int, error) {
	if err := s.Reviews.Upsert(ctx, review); err != nil {
		return 0, 0, fmt.Errorf("save review: %w", err)
	}

	rating, count, err := s.Reviews.RatingSummary(ctx, review.ProductId)
	if err != nil {
		log.Printf("product %s: rating summary failed: %v", review.ProductId.Hex(), err)
		return 0, 0, nil
	}
	if err := s.Products.SetRating(ctx, review.ProductId, rating, count); err != nil {
		log.Printf("product %s: rating update failed: %v", review.ProductId.Hex(), err)
	}
	return rating, count, nil
}
