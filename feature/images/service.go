package images

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"time"

	"parts-finder/core/storage"
	catalogmodels "parts-finder/feature/catalog/models"
	"parts-finder/feature/images/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service errors the handler translates to HTTP statuses.
var (
	ErrPartNotFound        = errors.New("part not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrEmptyUpload         = errors.New("empty upload")
	errObjectCleanupFailed = errors.New("object cleanup failed")
)

// allowedContentTypes whitelists what an upload may declare.
var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// Service handles part image upload and retrieval.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new images service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, bucket: bucket, logger: logger}
}

// ImageURL builds the private fetch URL recorded on the part.
func ImageURL(partNumber string, imageID uint) string {
	return fmt.Sprintf("/api/parts/%s/image?v=%d", url.PathEscape(partNumber), imageID)
}

func objectKey(partNumber string) string {
	safe := unsafeKeyChars.ReplaceAllString(partNumber, "_")
	return fmt.Sprintf("parts/%s/%s/original", safe, uuid.NewString())
}

// Upload stores a new primary image for the part. The previous primary is
// soft deleted and its object removed best effort; a failed object
// cleanup never fails the upload.
func (s *Service) Upload(ctx context.Context, partNumber, contentType string, data []byte, uploadedBy *uint) (*models.PartImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, ErrUnsupportedImage
	}

	var part catalogmodels.Part
	err := s.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartNotFound
	}
	if err != nil {
		return nil, err
	}

	checksum := sha256.Sum256(data)
	key := objectKey(part.PartNumber)

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "private, max-age=31536000, immutable",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store image object: %w", err)
	}

	var previous models.PartImage
	hasPrevious := s.db.WithContext(ctx).
		Where("part_id = ? AND is_primary = ? AND deleted_at IS NULL", part.ID, true).
		Order("created_at DESC").
		First(&previous).Error == nil

	image := models.PartImage{
		PartID:         part.ID,
		Bucket:         s.bucket,
		ObjectKey:      key,
		ContentType:    contentType,
		SizeBytes:      int64(len(data)),
		ChecksumSHA256: hex.EncodeToString(checksum[:]),
		IsPrimary:      true,
		CreatedBy:      uploadedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := tx.Model(&models.PartImage{}).
			Where("part_id = ? AND is_primary = ? AND deleted_at IS NULL", part.ID, true).
			Updates(map[string]any{"is_primary": false, "deleted_at": now}).Error; err != nil {
			return err
		}

		if err := tx.Create(&image).Error; err != nil {
			return err
		}

		return tx.Model(&catalogmodels.Part{}).
			Where("id = ?", part.ID).
			Update("image_url", ImageURL(part.PartNumber, image.ID)).Error
	})
	if err != nil {
		// The metadata write failed, drop the freshly uploaded object.
		if cleanupErr := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); cleanupErr != nil {
			s.logger.Warn("Failed to clean up orphaned image object",
				zap.String("key", key), zap.Error(cleanupErr))
		}
		return nil, err
	}

	if hasPrevious {
		if cleanupErr := storage.RemoveObjectKeys(ctx, s.client, s.bucket, []string{previous.ObjectKey}); cleanupErr != nil {
			s.logger.Warn("Failed to remove replaced image object",
				zap.String("key", previous.ObjectKey),
				zap.Error(fmt.Errorf("%w: %w", errObjectCleanupFailed, cleanupErr)))
		}
	}

	return &image, nil
}

// Fetch streams the primary image for the part.
func (s *Service) Fetch(ctx context.Context, partNumber string) (io.ReadCloser, *models.PartImage, error) {
	var part catalogmodels.Part
	err := s.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrPartNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var image models.PartImage
	err = s.db.WithContext(ctx).
		Where("part_id = ? AND is_primary = ? AND deleted_at IS NULL", part.ID, true).
		Order("created_at DESC").
		First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrImageNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	object, err := s.client.GetObject(ctx, s.bucket, image.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch image object: %w", err)
	}

	return object, &image, nil
}
