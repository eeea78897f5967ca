package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
)

type UpsertReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewService struct {
	reviewRepo  repository.ReviewRepo
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
}

func NewReviewService(rr repository.ReviewRepo, pr repository.ProductRepo, ur repository.UserRepo) *ReviewService {
	return &ReviewService{
		reviewRepo:  rr,
		productRepo: pr,
		userRepo:    ur,
	}
}

// Upsert creates a review or overwrites the caller's existing one for the
// same product, then recomputes the product's aggregate rating.
func (s *ReviewService) Upsert(ctx context.Context, userID primitive.ObjectID, req *UpsertReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validation("Rating must be between 1 and 5")
	}
	if len(req.Comment) > models.MaxCommentLength {
		return nil, apperrors.Validation(fmt.Sprintf("Comment must be less than %d characters", models.MaxCommentLength))
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("Invalid product ID: %s", req.ProductID))
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	review, err := s.reviewRepo.FindByProductAndUser(ctx, productID, userID)
	switch err {
	case nil:
		if err := s.reviewRepo.Update(ctx, review.ID, req.Rating, req.Comment); err != nil {
			return nil, apperrors.Internal(err)
		}
		review.Rating = req.Rating
		review.Comment = req.Comment
		review.UpdatedAt = now
	case repository.ErrNotFound:
		review = &models.Review{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			if err == repository.ErrDuplicate {
				return nil, apperrors.Conflict("Review already exists for this product")
			}
			return nil, apperrors.Internal(err)
		}
	default:
		return nil, apperrors.Internal(err)
	}

	if err := s.RecomputeRating(ctx, productID); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		review.UserName = user.Name
	}
	return review, nil
}

// ListByProduct returns a product's reviews, newest first, with reviewer
// names resolved.
func (s *ReviewService) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	for i := range reviews {
		if user, err := s.userRepo.FindByID(ctx, reviews[i].UserID); err == nil {
			reviews[i].UserName = user.Name
		}
	}
	return reviews, nil
}

// Delete removes a review owned by the caller (or any review, for admins)
// and recomputes the product's aggregate rating. It returns the id of the
// affected product.
func (s *ReviewService) Delete(ctx context.Context, callerID primitive.ObjectID, callerRole string, reviewID primitive.ObjectID) (primitive.ObjectID, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err == repository.ErrNotFound {
		return primitive.NilObjectID, apperrors.NotFound("Review not found")
	}
	if err != nil {
		return primitive.NilObjectID, apperrors.Internal(err)
	}

	if review.UserID != callerID && callerRole != models.RoleAdmin {
		return primitive.NilObjectID, apperrors.Forbidden("Not authorized")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return primitive.NilObjectID, apperrors.Internal(err)
	}

	if err := s.RecomputeRating(ctx, review.ProductID); err != nil {
		return primitive.NilObjectID, err
	}
	return review.ProductID, nil
}

// RecomputeRating re-reads the complete review set for the product and
// writes back the count and the mean rating rounded to one decimal place.
func (s *ReviewService) RecomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return apperrors.Internal(err)
	}

	if len(reviews) == 0 {
		if err := s.productRepo.SetRating(ctx, productID, 0, 0); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	}

	var sum int
	for _, review := range reviews {
		sum += review.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	rounded := math.Round(mean*10) / 10

	if err := s.productRepo.SetRating(ctx, productID, rounded, len(reviews)); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
