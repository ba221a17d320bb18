package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// BlobStorage uploads a local document and returns its public URL.
type BlobStorage interface {
	UploadDocument(ctx context.Context, localPath, publicId string) (string, error)
}

// CloudinaryStorage uploads invoices as raw assets under the invoices
// folder.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudinaryURL string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) UploadDocument(ctx context.Context, localPath, publicId string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID:     publicId,
		Folder:       "invoices",
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
