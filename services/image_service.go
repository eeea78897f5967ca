package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageService uploads product images to Cloudinary. Whether uploads are
// available is an explicit capability decided at construction, not sniffed
// from runtime errors.
type ImageService struct {
	cld     *cloudinary.Cloudinary
	folder  string
	enabled bool
}

// NewImageService builds the service from a Cloudinary URL. An empty URL
// yields a disabled service: products are then created without images.
func NewImageService(cloudinaryURL, folder string) (*ImageService, error) {
	if cloudinaryURL == "" {
		return &ImageService{enabled: false}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	return &ImageService{cld: cld, folder: folder, enabled: true}, nil
}

// Enabled reports whether image uploads are configured.
func (s *ImageService) Enabled() bool { return s.enabled }

// Upload pushes the given files to Cloudinary and returns their URLs in
// input order. When uploads are disabled it returns no URLs and no error.
func (s *ImageService) Upload(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if !s.enabled || len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(files))
	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fileHeader.Filename, err)
		}

		resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder:   s.folder,
			PublicID: fmt.Sprintf("product_img_%s_%d", uuid.New().String(), i),
		})
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("cloudinary upload %s: %w", fileHeader.Filename, err)
		}

		zap.L().Debug("Image uploaded", zap.String("url", resp.SecureURL))
		urls = append(urls, resp.SecureURL)
	}
	return urls, nil
}
