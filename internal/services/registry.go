package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"upi-qr-pay/internal/config"
	apperrors "upi-qr-pay/internal/errors"
	"upi-qr-pay/internal/models"
)

// ImageRegistry keeps generated images in memory under random IDs until they expire
type ImageRegistry struct {
	cache     *cache.Cache
	maxImages int
	mu        sync.Mutex
	logger    *logrus.Logger
}

// NewImageRegistry creates a new image registry
func NewImageRegistry(cfg config.RegistryConfig, logger *logrus.Logger) *ImageRegistry {
	return &ImageRegistry{
		cache:     cache.New(cfg.TTL, cfg.CleanupInterval),
		maxImages: cfg.MaxImages,
		logger:    logger,
	}
}

// Put stores png under a fresh ID
func (r *ImageRegistry) Put(png []byte, filename string) (models.GeneratedImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache.ItemCount() >= r.maxImages {
		r.cache.DeleteExpired()
		if r.cache.ItemCount() >= r.maxImages {
			r.logger.Warnf("Image registry is full (%d images)", r.maxImages)
			return models.GeneratedImage{}, apperrors.ErrRegistryFull
		}
	}

	img := models.GeneratedImage{
		ID:        newImageID(),
		PNG:       png,
		Filename:  filename,
		CreatedAt: time.Now(),
	}
	r.cache.Set(img.ID, &img, cache.DefaultExpiration)
	r.logger.Debugf("Stored image %s (%d bytes)", img.ID, len(png))

	return img, nil
}

// Get returns the image stored under id. Unknown and expired IDs are not distinguished.
func (r *ImageRegistry) Get(id string) (models.GeneratedImage, error) {
	if data, found := r.cache.Get(id); found {
		if img, ok := data.(*models.GeneratedImage); ok {
			return *img, nil
		}
	}
	return models.GeneratedImage{}, &apperrors.NotFoundError{ID: id}
}

// Count returns the number of stored images, including expired ones not yet purged
func (r *ImageRegistry) Count() int {
	return r.cache.ItemCount()
}

func newImageID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
