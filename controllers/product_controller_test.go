package controllers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
	"github.com/shopswift/storefront/services"
)

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, q repository.ProductQuery) (*services.ProductListResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProductListResponse), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req services.CreateProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	args := m.Called(ctx, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id primitive.ObjectID, req services.UpdateProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	args := m.Called(ctx, id, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestGetProducts_CacheMissFallsThroughToService(t *testing.T) {
	svc := new(MockProductService)
	controller := NewProductController(svc, unreachableCache())

	expectedQuery := repository.ProductQuery{Page: 2, Limit: 24, Category: "kitchen", Sort: "price-asc"}
	svc.On("List", mock.Anything, expectedQuery).Return(&services.ProductListResponse{
		Products: []models.Product{{ID: primitive.NewObjectID(), Name: "Teapot"}},
		Meta:     services.MetaData{Page: 2, Limit: 24, Total: 25, TotalPages: 2},
	}, nil)

	router := gin.New()
	router.GET("/products", controller.GetProducts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?page=2&limit=24&category=kitchen&sort=price-asc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got services.ProductListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Products, 1)
	assert.Equal(t, int64(2), got.Meta.TotalPages)
}

func TestGetProducts_LimitOver100Is400(t *testing.T) {
	svc := new(MockProductService)
	controller := NewProductController(svc, unreachableCache())

	router := gin.New()
	router.GET("/products", controller.GetProducts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?limit=101", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List")
}

func TestGetProducts_UnknownSortIs400(t *testing.T) {
	svc := new(MockProductService)
	controller := NewProductController(svc, unreachableCache())

	router := gin.New()
	router.GET("/products", controller.GetProducts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?sort=alphabetical", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List")
}

func TestGetProductByID_NotFound(t *testing.T) {
	svc := new(MockProductService)
	controller := NewProductController(svc, unreachableCache())
	productID := primitive.NewObjectID()

	svc.On("Get", mock.Anything, productID).Return(nil, apperrors.NotFound("Product not found"))

	router := gin.New()
	router.GET("/products/:id", controller.GetProductByID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/"+productID.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductByID_BadHexIs400(t *testing.T) {
	svc := new(MockProductService)
	controller := NewProductController(svc, unreachableCache())

	router := gin.New()
	router.GET("/products/:id", controller.GetProductByID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/not-hex", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Get")
}

func TestDeleteProduct_OK(t *testing.T) {
	svc := new(MockProductService)
	controller := NewProductController(svc, unreachableCache())
	productID := primitive.NewObjectID()

	svc.On("Delete", mock.Anything, productID).Return(nil)

	router := gin.New()
	router.DELETE("/products/:id", controller.DeleteProduct)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/products/"+productID.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product deleted successfully")
}
