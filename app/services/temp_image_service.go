package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
)

type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type TempImageService struct {
	tempImageRepo repositories.TempImageRepositoryImpl
	images        *ImageService
}

func NewTempImageService(tempImageRepo repositories.TempImageRepositoryImpl, images *ImageService) *TempImageService {
	return &TempImageService{
		tempImageRepo: tempImageRepo,
		images:        images,
	}
}

// Upload stages a file under temp/ and records it. The returned row id is what forms post
// back in image_array / image_id.
func (s *TempImageService) Upload(ctx context.Context, upload ImageUpload) (*models.TempImage, error) {
	name, err := s.images.SaveTemp(upload.Reader, upload.Filename)
	if err != nil {
		return nil, err
	}

	temp := &models.TempImage{Name: name}
	if err := s.tempImageRepo.Create(ctx, temp); err != nil {
		_ = s.images.DeleteTemp(name)
		return nil, fmt.Errorf("failed to record temp image: %w", err)
	}
	return temp, nil
}

// Purge deletes temp rows and files created before now minus olderThan.
func (s *TempImageService) Purge(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.tempImageRepo.GetOlderThan(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to list stale temp images: %w", err)
	}

	purged := 0
	for _, temp := range stale {
		if err := s.images.DeleteTemp(temp.Name); err != nil {
			log.Printf("Purge: failed to delete temp file %s: %v", temp.Name, err)
			continue
		}
		if err := s.tempImageRepo.Delete(ctx, temp.ID); err != nil {
			return purged, fmt.Errorf("failed to delete temp image %d: %w", temp.ID, err)
		}
		purged++
	}
	return purged, nil
}
