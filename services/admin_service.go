package services

import (
	"context"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
)

// recentOrderCount is how many orders the dashboard shows.
const recentOrderCount = 5

type DashboardStats struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PendingOrders int64   `json:"pendingOrders"`
}

type DashboardResponse struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []models.Order `json:"recentOrders"`
}

type AdminService struct {
	orderRepo   repository.OrderRepo
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
}

func NewAdminService(or repository.OrderRepo, pr repository.ProductRepo, ur repository.UserRepo) *AdminService {
	return &AdminService{
		orderRepo:   or,
		productRepo: pr,
		userRepo:    ur,
	}
}

// Dashboard computes the back-office stats at call time. Revenue is a full
// scan-and-sum over all orders with a Completed payment; there is no
// incremental cache.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	orders, err := s.orderRepo.All(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	var totalRevenue float64
	for _, order := range orders {
		if order.PaymentStatus == models.PaymentStatusCompleted {
			totalRevenue += order.TotalAmount
		}
	}

	pendingOrders, err := s.orderRepo.CountByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	recent, err := s.orderRepo.FindRecent(ctx, recentOrderCount)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for i := range recent {
		s.resolveRecent(ctx, &recent[i])
	}

	return &DashboardResponse{
		Stats: DashboardStats{
			TotalProducts: totalProducts,
			TotalOrders:   totalOrders,
			TotalRevenue:  totalRevenue,
			PendingOrders: pendingOrders,
		},
		RecentOrders: recent,
	}, nil
}

func (s *AdminService) resolveRecent(ctx context.Context, order *models.Order) {
	if user, err := s.userRepo.FindByID(ctx, order.UserID); err == nil {
		order.User = &models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	for i := range order.Products {
		product, err := s.productRepo.FindByID(ctx, order.Products[i].ProductID)
		if err != nil {
			continue
		}
		order.Products[i].Product = &models.ProductSummary{ID: product.ID, Name: product.Name}
	}
}
