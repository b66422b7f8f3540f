package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type MediaService interface {
	// Upload stores an image for a draft and points the draft's imageUrl at it.
	Upload(ctx context.Context, contentID, fileName string, file []byte) (*models.MediaAsset, error)
	List(ctx context.Context, contentID string) ([]*models.MediaAsset, error)
}

// DraftUpdater is the part of the content store media uploads write through.
type DraftUpdater interface {
	GetContent(id string) (*models.Content, error)
	UpdateContent(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error)
}

var allowedImageTypes = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {},
}

type mediaService struct {
	storage ObjectStorage
	ma      repository.MediaAssetRepository
	drafts  DraftUpdater
}

func NewMediaService(storage ObjectStorage, ma repository.MediaAssetRepository, drafts DraftUpdater) MediaService {
	return &mediaService{
		storage: storage,
		ma:      ma,
		drafts:  drafts,
	}
}

func (s *mediaService) Upload(ctx context.Context, contentID, fileName string, file []byte) (*models.MediaAsset, error) {
	if _, err := s.drafts.GetContent(contentID); err != nil {
		return nil, err
	}

	kind, err := filetype.Match(file)
	if err != nil || kind == types.Unknown {
		return nil, models.ErrUnsupportedFile
	}
	if _, ok := allowedImageTypes[kind.Extension]; !ok {
		return nil, fmt.Errorf("%s: %w", kind.Extension, models.ErrUnsupportedFile)
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	key := fmt.Sprintf("%s.%s", id, kind.Extension)
	if err := s.storage.Upload(ctx, key, file, kind.MIME.Value); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	asset := &models.MediaAsset{
		ContentID: contentID,
		FileName:  fileName,
		FileType:  kind.MIME.Value,
		FileSize:  int64(len(file)),
		FileURL:   s.storage.PublicURL(key),
	}
	if asset.FileName == "" {
		asset.FileName = key
	}

	// a local-only draft has no row to reference yet
	if assetID, err := s.ma.Create(ctx, asset); err != nil {
		slog.Warn("save media asset", "content_id", contentID, "error", err)
	} else {
		asset.ID = assetID
	}

	if _, err := s.drafts.UpdateContent(ctx, contentID, models.ContentPatch{ImageURL: models.Some(asset.FileURL)}); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *mediaService) List(ctx context.Context, contentID string) ([]*models.MediaAsset, error) {
	assets, err := s.ma.ListByContentID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return assets, nil
}
