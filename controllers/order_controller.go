package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/middleware"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/services"
)

// OrderServiceAPI is the surface of the order service the controller depends
// on.
type OrderServiceAPI interface {
	PlaceOrder(ctx context.Context, userID primitive.ObjectID, req *services.PlaceOrderRequest) (*models.Order, error)
	GetUserOrders(ctx context.Context, callerID primitive.ObjectID, callerRole string, userID primitive.ObjectID) ([]models.Order, error)
	GetAllOrders(ctx context.Context, page, limit int) (*services.OrderListResponse, error)
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error)
}

type updateStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

type OrderController struct {
	service OrderServiceAPI
	cache   *CacheManager
}

func NewOrderController(service OrderServiceAPI, cache *CacheManager) *OrderController {
	return &OrderController{service: service, cache: cache}
}

// CreateOrder places an order for the authenticated user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	order, svcErr := oc.service.PlaceOrder(c.Request.Context(), userID, &req)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	// Stock changed; cached catalog entries for these products are stale.
	for _, item := range order.Products {
		oc.cache.InvalidateProduct(c.Request.Context(), item.ProductID.Hex())
	}

	zap.L().Info("Order placed",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", userID.Hex()),
		zap.Float64("total", order.TotalAmount),
	)
	c.JSON(http.StatusCreated, order)
}

// GetUserOrders returns the orders of the user in the path. Callers may only
// read their own orders unless they are admins.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid user ID"))
		return
	}

	orders, svcErr := oc.service.GetUserOrders(c.Request.Context(), callerID, middleware.GetUserRole(c), userID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetAllOrders returns paginated orders for all users. Admin only; enforced
// at the route.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	response, svcErr := oc.service.GetAllOrders(c.Request.Context(), page, limit)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// UpdateOrderStatus sets an order's status. Admin only; enforced at the
// route.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid order ID"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	order, svcErr := oc.service.UpdateStatus(c.Request.Context(), orderID, req.OrderStatus)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}
