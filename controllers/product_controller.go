package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
	"github.com/shopswift/storefront/services"
)

// maxProductImages bounds how many images one request may attach.
const maxProductImages = 5

// ProductServiceAPI is the surface of the product service the controller
// depends on.
type ProductServiceAPI interface {
	List(ctx context.Context, q repository.ProductQuery) (*services.ProductListResponse, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, req services.CreateProductRequest, files []*multipart.FileHeader) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, req services.UpdateProductRequest, files []*multipart.FileHeader) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductController struct {
	service ProductServiceAPI
	cache   *CacheManager
}

func NewProductController(service ProductServiceAPI, cache *CacheManager) *ProductController {
	return &ProductController{service: service, cache: cache}
}

// GetProducts lists the catalog with pagination, filtering and sorting,
// served from the versioned cache when possible.
func (pc *ProductController) GetProducts(c *gin.Context) {
	q, err := parseProductQuery(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if cached, ok := pc.cache.GetProductList(c.Request.Context(), q); ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	response, svcErr := pc.service.List(c.Request.Context(), q)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	pc.cache.SetProductListAsync(q, response)
	c.JSON(http.StatusOK, response)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
		return
	}

	if cached, ok := pc.cache.GetProduct(c.Request.Context(), id); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, svcErr := pc.service.Get(c.Request.Context(), productID)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	pc.cache.SetProductAsync(id, product)
	c.JSON(http.StatusOK, product)
}

// CreateProduct stores a new product with optional multipart images.
// Admin only; enforced at the route.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	files, err := formImages(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	product, svcErr := pc.service.Create(c.Request.Context(), req, files)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), product.ID.Hex())
	zap.L().Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("name", product.Name),
	)
	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	files, imgErr := formImages(c)
	if imgErr != nil {
		apperrors.Respond(c, imgErr)
		return
	}

	product, svcErr := pc.service.Update(c.Request.Context(), productID, req, files)
	if svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), productID.Hex())
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
		return
	}

	if svcErr := pc.service.Delete(c.Request.Context(), productID); svcErr != nil {
		apperrors.Respond(c, svcErr)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), productID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func parseProductQuery(c *gin.Context) (repository.ProductQuery, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil || limit < 1 {
		limit = 12
	}
	if limit > 100 {
		return repository.ProductQuery{}, apperrors.Validation("Limit must be between 1 and 100")
	}

	sort := c.Query("sort")
	switch sort {
	case "", "price-asc", "price-desc", "newest":
	default:
		return repository.ProductQuery{}, apperrors.Validation("Invalid sort option")
	}

	return repository.ProductQuery{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     sort,
	}, nil
}

func formImages(c *gin.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request; no images attached.
		return nil, nil
	}
	files := form.File["images"]
	if len(files) > maxProductImages {
		return nil, apperrors.Validation("Too many images")
	}
	return files, nil
}
