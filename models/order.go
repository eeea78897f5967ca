package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Status only moves forward by admin action; there is no
// enforced transition graph beyond enum membership.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

const (
	PaymentMethodCOD    = "Cash on Delivery"
	PaymentMethodOnline = "Online Pay"
)

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
)

// ValidOrderStatus reports whether s is a member of the order status enum.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a member of the payment method enum.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// OrderItem is one line of an order. Price is the unit price captured at
// order time; it is never re-read from the product.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`

	// Product carries display data resolved at read time. Not persisted.
	Product *ProductSummary `json:"product,omitempty" bson:"-"`
}

type ShippingAddress struct {
	Name    string `json:"name" bson:"name" binding:"required"`
	Phone   string `json:"phone" bson:"phone" binding:"required"`
	Address string `json:"address" bson:"address" binding:"required"`
	City    string `json:"city" bson:"city" binding:"required"`
	Pincode string `json:"pincode" bson:"pincode" binding:"required"`
}

type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID         string             `json:"orderId" bson:"order_id"`
	UserID          primitive.ObjectID `json:"userId" bson:"user_id"`
	Products        []OrderItem        `json:"products" bson:"products"`
	TotalAmount     float64            `json:"totalAmount" bson:"total_amount"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shipping_address"`
	OrderStatus     string             `json:"orderStatus" bson:"order_status"`
	PaymentMethod   string             `json:"paymentMethod" bson:"payment_method"`
	PaymentStatus   string             `json:"paymentStatus" bson:"payment_status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`

	// User carries display data for admin views. Not persisted.
	User *UserSummary `json:"user,omitempty" bson:"-"`
}
