package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/models"
)

// Sentinel errors returned by the adapters. Services match on these instead
// of driver-specific error values, which keeps the adapters swappable.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// ProductQuery describes a catalog listing request.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Sort     string // "price-asc", "price-desc", "newest"
}

// ProductRepo defines the product store operations used by the services.
type ProductRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Find(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	// DecrementStock atomically decrements stock by qty only where
	// stock >= qty. When the guard fails it reports ok=false along with the
	// quantity currently available.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (ok bool, available int, err error)
	// SetRating writes the recomputed aggregate rating and review count.
	SetRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error
}

// OrderRepo defines the order store operations used by the services.
type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.Order, error)
	// All returns every order; the dashboard revenue sum is a full scan.
	All(ctx context.Context) ([]models.Order, error)
	// UpdateStatus sets the order status and, when forcePaymentCompleted is
	// set, the payment status as well.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, forcePaymentCompleted bool) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// ReviewRepo defines the review store operations used by the services.
type ReviewRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	FindByProductAndUser(ctx context.Context, productID, userID primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id primitive.ObjectID, rating int, comment string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepo defines the user store operations used by the services.
type UserRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}
