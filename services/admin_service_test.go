package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/models"
)

func newAdminFixture() (*AdminService, *MockOrderRepo, *MockProductRepo, *MockUserRepo) {
	orderRepo := new(MockOrderRepo)
	productRepo := new(MockProductRepo)
	userRepo := new(MockUserRepo)
	svc := NewAdminService(orderRepo, productRepo, userRepo)
	return svc, orderRepo, productRepo, userRepo
}

func TestDashboard_RevenueCountsOnlyCompletedPayments(t *testing.T) {
	svc, orderRepo, productRepo, userRepo := newAdminFixture()

	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	recent := []models.Order{
		{ID: primitive.NewObjectID(), UserID: userID, Products: []models.OrderItem{
			{ProductID: productID, Quantity: 2, Price: 25},
		}},
	}

	productRepo.On("Count", mock.Anything).Return(int64(7), nil)
	orderRepo.On("Count", mock.Anything).Return(int64(3), nil)
	orderRepo.On("All", mock.Anything).Return([]models.Order{
		{TotalAmount: 50, PaymentStatus: models.PaymentStatusCompleted},
		{TotalAmount: 99, PaymentStatus: models.PaymentStatusPending},
		{TotalAmount: 25.5, PaymentStatus: models.PaymentStatusCompleted},
	}, nil)
	orderRepo.On("CountByStatus", mock.Anything, models.OrderStatusPending).Return(int64(2), nil)
	orderRepo.On("FindRecent", mock.Anything, recentOrderCount).Return(recent, nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(
		&models.User{ID: userID, Name: "Alex", Email: "alex@example.com"}, nil)
	productRepo.On("FindByID", mock.Anything, productID).Return(
		&models.Product{ID: productID, Name: "Teapot"}, nil)

	response, err := svc.Dashboard(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), response.Stats.TotalProducts)
	assert.Equal(t, int64(3), response.Stats.TotalOrders)
	assert.InDelta(t, 75.5, response.Stats.TotalRevenue, 1e-9)
	assert.Equal(t, int64(2), response.Stats.PendingOrders)

	assert.Len(t, response.RecentOrders, 1)
	assert.Equal(t, "Alex", response.RecentOrders[0].User.Name)
	assert.Equal(t, "Teapot", response.RecentOrders[0].Products[0].Product.Name)
}

func TestDashboard_EmptyStores(t *testing.T) {
	svc, orderRepo, productRepo, _ := newAdminFixture()

	productRepo.On("Count", mock.Anything).Return(int64(0), nil)
	orderRepo.On("Count", mock.Anything).Return(int64(0), nil)
	orderRepo.On("All", mock.Anything).Return([]models.Order{}, nil)
	orderRepo.On("CountByStatus", mock.Anything, models.OrderStatusPending).Return(int64(0), nil)
	orderRepo.On("FindRecent", mock.Anything, recentOrderCount).Return([]models.Order{}, nil)

	response, err := svc.Dashboard(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, response.Stats.TotalRevenue)
	assert.Empty(t, response.RecentOrders)
}
