package services

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/apperrors"
	"github.com/shopswift/storefront/models"
	"github.com/shopswift/storefront/repository"
)

type CreateProductRequest struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"min=0"`
	Category    string  `form:"category" binding:"required"`
	Stock       int     `form:"stock" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string  `form:"name"`
	Description *string  `form:"description"`
	Price       *float64 `form:"price" binding:"omitempty,min=0"`
	Category    *string  `form:"category"`
	Stock       *int     `form:"stock" binding:"omitempty,min=0"`
}

type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Meta     MetaData         `json:"meta"`
}

type ProductService struct {
	productRepo repository.ProductRepo
	images      *ImageService
}

func NewProductService(pr repository.ProductRepo, images *ImageService) *ProductService {
	return &ProductService{productRepo: pr, images: images}
}

func (s *ProductService) List(ctx context.Context, q repository.ProductQuery) (*ProductListResponse, error) {
	products, total, err := s.productRepo.Find(ctx, q)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return &ProductListResponse{
		Products: products,
		Meta: MetaData{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages(total, q.Limit),
		},
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// Create stores a new product, uploading any supplied images first. When the
// image service is disabled the product is created without images.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	imageURLs, err := s.images.Upload(ctx, files)
	if err != nil {
		return nil, apperrors.New(500, "Failed to upload images", err)
	}
	if imageURLs == nil {
		imageURLs = []string{}
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      imageURLs,
		Rating:      0,
		NumReviews:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// Update applies the supplied fields; new images are appended to the
// existing set.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req UpdateProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}

	if len(files) > 0 {
		newURLs, err := s.images.Upload(ctx, files)
		if err != nil {
			return nil, apperrors.New(500, "Failed to upload images", err)
		}
		if len(newURLs) > 0 {
			updates["images"] = append(product.Images, newURLs...)
		}
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.productRepo.Update(ctx, id, updates); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.productRepo.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("Product not found")
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
