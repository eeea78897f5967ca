package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/shopswift/storefront/controllers"
	"github.com/shopswift/storefront/middleware"
)

// RegisterRoutes wires every endpoint, with auth and admin gates applied per
// group.
func RegisterRoutes(
	r *gin.Engine,
	jwtSecret string,
	auth *controllers.AuthController,
	products *controllers.ProductController,
	orders *controllers.OrderController,
	reviews *controllers.ReviewController,
	admin *controllers.AdminController,
) {
	authed := middleware.Auth(jwtSecret)
	adminOnly := middleware.RequireAdmin()

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", auth.Register)
		authRoutes.POST("/login", auth.Login)
		authRoutes.GET("/me", authed, auth.Me)
	}

	productRoutes := r.Group("/products")
	{
		productRoutes.GET("", products.GetProducts)
		productRoutes.GET("/:id", products.GetProductByID)
		productRoutes.POST("", authed, adminOnly, products.CreateProduct)
		productRoutes.PUT("/:id", authed, adminOnly, products.UpdateProduct)
		productRoutes.DELETE("/:id", authed, adminOnly, products.DeleteProduct)
	}

	orderRoutes := r.Group("/orders", authed)
	{
		orderRoutes.POST("", orders.CreateOrder)
		orderRoutes.GET("", adminOnly, orders.GetAllOrders)
		orderRoutes.GET("/user/:userId", orders.GetUserOrders)
		orderRoutes.PUT("/:id/status", adminOnly, orders.UpdateOrderStatus)
	}

	reviewRoutes := r.Group("/reviews")
	{
		reviewRoutes.POST("", authed, reviews.CreateReview)
		reviewRoutes.GET("/product/:productId", reviews.GetProductReviews)
		reviewRoutes.DELETE("/:id", authed, reviews.DeleteReview)
	}

	adminRoutes := r.Group("/admin", authed, adminOnly)
	{
		adminRoutes.GET("/dashboard", admin.GetDashboard)
	}
}
