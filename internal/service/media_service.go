package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/maheshrc27/postcal/internal/apperror"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/repository"
)

var allowedMediaTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "gif": {}, "webp": {}, "mp4": {}, "mov": {},
}

type MediaService interface {
	Upload(ctx context.Context, userID int64, file []byte) (*models.MediaAsset, error)
	Delete(ctx context.Context, userID int64, url string) error
}

type mediaService struct {
	storage ObjectStorage
	ma      repository.MediaAssetRepository
}

func NewMediaService(storage ObjectStorage, ma repository.MediaAssetRepository) MediaService {
	return &mediaService{storage: storage, ma: ma}
}

// Upload detects the file type from its content, stores it under
// users/<uid>/media/<id>.<ext> and records the asset.
func (s *mediaService) Upload(ctx context.Context, userID int64, file []byte) (*models.MediaAsset, error) {
	if userID == 0 {
		return nil, errUnauthenticated
	}
	if len(file) == 0 {
		return nil, apperror.New(apperror.InvalidArgument, "no file provided")
	}

	kind, err := filetype.Match(file)
	if err != nil || kind == types.Unknown {
		return nil, apperror.New(apperror.InvalidArgument, "unsupported file type")
	}
	if _, ok := allowedMediaTypes[kind.Extension]; !ok {
		return nil, apperror.New(apperror.InvalidArgument, fmt.Sprintf("file type %s is not allowed", kind.Extension))
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, internalError("Error uploading file", err)
	}
	key := fmt.Sprintf("users/%d/media/%s.%s", userID, id, kind.Extension)

	url, err := s.storage.Upload(ctx, key, file, kind.MIME.Value)
	if err != nil {
		return nil, internalError("Error uploading file", err)
	}

	asset := &models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: kind.MIME.Value,
		FileSize: int64(len(file)),
		FileURL:  url,
	}
	if _, err := s.ma.Create(ctx, asset); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.Info(delErr.Error())
		}
		return nil, internalError("Error saving media file", err)
	}

	return asset, nil
}

func (s *mediaService) Delete(ctx context.Context, userID int64, url string) error {
	if userID == 0 {
		return errUnauthenticated
	}
	if url == "" {
		return apperror.New(apperror.InvalidArgument, "url is required")
	}

	asset, err := s.ma.GetByURL(ctx, url)
	if err != nil {
		return internalError("Error getting media file", err)
	}
	if asset == nil {
		return apperror.New(apperror.NotFound, "Media not found")
	}
	if asset.UserID != userID {
		return apperror.New(apperror.PermissionDenied, "You don't have permission to delete this file")
	}

	if err := s.storage.Delete(ctx, asset.FileName); err != nil {
		return internalError("Error deleting file", err)
	}
	if err := s.ma.Remove(ctx, asset.ID); err != nil {
		return internalError("Error deleting media record", err)
	}
	return nil
}
