package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/middleware"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/services"
)

// ReviewServiceAPI is the surface of the review service the controller
// depends on.
type ReviewServiceAPI interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, req *services.UpsertReviewRequest) (*models.Review, error)
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, callerID primitive.ObjectID, callerRole string, reviewID primitive.ObjectID) (primitive.ObjectID, error)
}

type ReviewController struct {
	service ReviewServiceAPI
	cache   *CacheManager
}

func NewReviewController(service ReviewServiceAPI, cache *CacheManager) *ReviewController {
	return &ReviewController{service: service, cache: cache}
}

// CreateReview creates or overwrites the caller's review for a product.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.UpsertReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	review, svcErr := rc.service.Upsert(c.Request.Context(), userID, &req)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	// The product's aggregate rating changed.
	rc.cache.InvalidateProduct(c.Request.Context(), review.ProductID.Hex())
	c.JSON(http.StatusCreated, review)
}

// GetProductReviews lists a product's reviews. Public.
func (rc *ReviewController) GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
		return
	}

	reviews, svcErr := rc.service.ListByProduct(c.Request.Context(), productID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// DeleteReview removes a review owned by the caller, or any review for
// admins.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid review ID"))
		return
	}

	productID, svcErr := rc.service.Delete(c.Request.Context(), callerID, middleware.GetUserRole(c), reviewID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	rc.cache.InvalidateProduct(c.Request.Context(), productID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
