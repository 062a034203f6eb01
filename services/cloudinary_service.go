package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ErrMediaDisabled is returned when no media host is configured.
var ErrMediaDisabled = errors.New("media uploads are not configured")

type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaStore stores product and review images.
type MediaStore interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// Media is the configured store; nil until InitMedia succeeds.
var Media MediaStore

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld}, nil
}

// InitMedia configures Cloudinary when credentials are present.
func InitMedia(cloudName, apiKey, apiSecret string) error {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		zap.L().Warn("⚠️ Cloudinary credentials not set, image uploads disabled")
		return nil
	}
	svc, err := NewCloudinaryService(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("init cloudinary: %w", err)
	}
	Media = svc
	zap.L().Info("✅ Cloudinary initialized")
	return nil
}

// UploadImage uploads a single image and returns its secure URL and public id
func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, folder string) (UploadedImage, error) {
	unique := true
	overwrite := false
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	})
	if err != nil {
		return UploadedImage{}, fmt.Errorf("failed to upload image: %w", err)
	}

	if result.SecureURL == "" {
		return UploadedImage{}, fmt.Errorf("upload successful but no URL returned")
	}

	return UploadedImage{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteImage deletes an image using its public ID
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	return err
}

// DeleteImages removes images best-effort, logging failures.
func DeleteImages(ctx context.Context, publicIDs []string) {
	if Media == nil {
		return
	}
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := Media.DeleteImage(ctx, id); err != nil {
			zap.L().Warn("[media] failed to delete image", zap.String("public_id", id), zap.Error(err))
		}
	}
}
