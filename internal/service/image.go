package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrilens/backend/config"
)

// ImageService stores captured meal photos in S3 so analysis rows carry a
// stable URL instead of a multi-megabyte data URL.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// extensions maps accepted image MIME types to object-key extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Upload decodes a data URL and writes the image to the bucket under a
// fresh UUID key, returning the object URL.
func (s *ImageService) Upload(ctx context.Context, dataURL string) (string, error) {
	mimeType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext, ok := extensions[mimeType]
	if !ok {
		ext = "jpg"
	}
	key := fmt.Sprintf("meals/%s.%s", uuid.New().String(), ext)

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.s3Config.BucketName, s.s3Config.Region, key), nil
}

// decodeDataURL splits a "data:<mime>;base64,<payload>" string into its
// MIME type and decoded bytes.
func decodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}

	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == meta {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	return mimeType, data, nil
}
