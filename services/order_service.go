package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
	"github.com/shopswift/storefront/sender"
)

// orderCodeAttempts bounds regeneration when a generated order code collides
// with an existing one.
const orderCodeAttempts = 5

type PlaceOrderItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Products        []PlaceOrderItem       `json:"products" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type OrderService struct {
	orderRepo   repository.OrderRepo
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
	email       sender.EmailSender
}

func NewOrderService(or repository.OrderRepo, pr repository.ProductRepo, ur repository.UserRepo, email sender.EmailSender) *OrderService {
	return &OrderService{
		orderRepo:   or,
		productRepo: pr,
		userRepo:    ur,
		email:       email,
	}
}

// PlaceOrder validates each requested line against current stock, captures
// unit prices, decrements stock per line, persists the order and sends a
// best-effort confirmation email.
//
// Stock taken for earlier lines is not restored when a later line fails; the
// order itself is never partially created.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, req *PlaceOrderRequest) (*models.Order, error) {
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, apperrors.Validation(fmt.Sprintf("Invalid payment method: %s", paymentMethod))
	}

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Products))

	for _, line := range req.Products {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("Invalid product ID: %s", line.ProductID))
		}

		product, err := s.productRepo.FindByID(ctx, productID)
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound(fmt.Sprintf("Product %s not found", line.ProductID))
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}

		ok, available, err := s.productRepo.DecrementStock(ctx, productID, line.Quantity)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if !ok {
			return nil, apperrors.InsufficientStock(product.Name, available)
		}

		totalAmount += product.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID: productID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Product: &models.ProductSummary{
				ID:     product.ID,
				Name:   product.Name,
				Images: product.Images,
			},
		})
	}

	paymentStatus := models.PaymentStatusPending
	if paymentMethod == models.PaymentMethodOnline {
		paymentStatus = models.PaymentStatusCompleted
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Products:        items,
		TotalAmount:     totalAmount,
		ShippingAddress: req.ShippingAddress,
		OrderStatus:     models.OrderStatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   paymentStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var created bool
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		order.OrderID = generateOrderCode()
		err := s.orderRepo.Create(ctx, order)
		if err == repository.ErrDuplicate {
			continue
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		created = true
		break
	}
	if !created {
		return nil, apperrors.Conflict("Could not allocate a unique order code")
	}

	s.sendConfirmation(ctx, order)

	return order, nil
}

// sendConfirmation is best-effort: the order is already committed, so
// failures are logged and swallowed.
func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		zap.L().Warn("Order confirmation skipped: user lookup failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
		return
	}

	subject := fmt.Sprintf("Order Confirmation - %s", order.OrderID)
	if _, err := s.email.SendEmail(ctx, user.Email, subject, confirmationBody(order, user)); err != nil {
		zap.L().Warn("Order confirmation email failed",
			zap.String("order_id", order.OrderID),
			zap.String("to", user.Email),
			zap.Error(err),
		)
	}
}

func confirmationBody(order *models.Order, user *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", user.Name)
	fmt.Fprintf(&b, "Thank you for your order! Order ID: %s\n\n", order.OrderID)
	fmt.Fprintf(&b, "Order Date: %s\n", order.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Total Amount: $%.2f\n\nProducts:\n", order.TotalAmount)
	for i, item := range order.Products {
		name := "Product"
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "%d. %s - Qty: %d x $%.2f = $%.2f\n",
			i+1, name, item.Quantity, item.Price, float64(item.Quantity)*item.Price)
	}
	fmt.Fprintf(&b, "\nShipping Address:\n%s\n%s\n%s, %s\n",
		order.ShippingAddress.Name, order.ShippingAddress.Address,
		order.ShippingAddress.City, order.ShippingAddress.Pincode)
	b.WriteString("\nWe'll notify you once your order ships!\n")
	return b.String()
}

// generateOrderCode builds the human-facing order code. Uniqueness is
// enforced by the store's index; callers regenerate on collision.
func generateOrderCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:9]
	return fmt.Sprintf("ORD%d%s", time.Now().UnixMilli(), suffix)
}

// GetUserOrders returns a user's orders, newest first. Callers may only read
// their own orders unless they are admins.
func (s *OrderService) GetUserOrders(ctx context.Context, callerID primitive.ObjectID, callerRole string, userID primitive.ObjectID) ([]models.Order, error) {
	if callerID != userID && callerRole != models.RoleAdmin {
		return nil, apperrors.Forbidden("Access denied")
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	for i := range orders {
		s.resolveOrder(ctx, &orders[i], false)
	}
	return orders, nil
}

// GetAllOrders returns paginated orders for all users (admin only; enforced
// at the route).
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	for i := range orders {
		s.resolveOrder(ctx, &orders[i], true)
	}

	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages(total, limit),
		},
	}, nil
}

// UpdateStatus sets the order status unconditionally within the enum; no
// transition graph is enforced. Reaching Delivered forces the payment status
// to Completed, which is how cash-on-delivery collection is recorded.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation(fmt.Sprintf("Invalid order status: %s", status))
	}

	err := s.orderRepo.UpdateStatus(ctx, orderID, status, status == models.OrderStatusDelivered)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.resolveOrder(ctx, order, false)
	return order, nil
}

// resolveOrder fills in display data for line items and, when withUser is
// set, the owning user. Missing references are left unresolved rather than
// failing the read.
func (s *OrderService) resolveOrder(ctx context.Context, order *models.Order, withUser bool) {
	for i := range order.Products {
		product, err := s.productRepo.FindByID(ctx, order.Products[i].ProductID)
		if err != nil {
			continue
		}
		order.Products[i].Product = &models.ProductSummary{
			ID:     product.ID,
			Name:   product.Name,
			Images: product.Images,
		}
	}

	if withUser {
		if user, err := s.userRepo.FindByID(ctx, order.UserID); err == nil {
			order.User = &models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		}
	}
}

func totalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
