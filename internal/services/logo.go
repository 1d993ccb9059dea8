package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/constants"
)

// LogoFetcher downloads remote logo bytes
type LogoFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// LogoService loads the payee logo from disk or a URL and keeps the decoded image
type LogoService struct {
	path       string
	url        string
	fetcher    LogoFetcher
	retryAfter time.Duration
	logo       image.Image
	err        error
	loaded     bool
	loading    bool
	checkedAt  time.Time
	mu         sync.Mutex
	logger     *logrus.Logger
}

// NewLogoService creates a new logo service. A configured URL takes precedence over the path.
func NewLogoService(cfg config.PayeeConfig, fetcher LogoFetcher, logger *logrus.Logger) *LogoService {
	return &LogoService{
		path:       cfg.LogoPath,
		url:        cfg.LogoURL,
		fetcher:    fetcher,
		retryAfter: constants.LogoRetryInterval * time.Second,
		logger:     logger,
	}
}

// Refresh reloads the logo, replacing any cached image or error
func (s *LogoService) Refresh(ctx context.Context) error {
	logo, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store(logo, err)
	return err
}

// Logo returns the decoded logo, or nil when none is configured or the file is absent.
// A failed load is retried at most once per retry interval, outside the lock;
// callers arriving during a reload get the last result.
func (s *LogoService) Logo() (image.Image, error) {
	s.mu.Lock()
	if !s.needsReload() {
		logo, err := s.logo, s.err
		s.mu.Unlock()
		return logo, err
	}
	s.loading = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout*time.Second)
	defer cancel()
	logo, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.store(logo, err)
	return logo, err
}

// needsReload assumes the mutex is already locked
func (s *LogoService) needsReload() bool {
	if s.loading {
		return false
	}
	if !s.loaded {
		return true
	}
	return s.err != nil && time.Since(s.checkedAt) >= s.retryAfter
}

// store is an internal method that assumes the mutex is already locked
func (s *LogoService) store(logo image.Image, err error) {
	s.logo, s.err = logo, err
	s.loaded = true
	s.checkedAt = time.Now()

	switch {
	case err != nil:
		s.logger.Warnf("Failed to load logo: %v", err)
	case logo != nil:
		b := logo.Bounds()
		s.logger.Infof("Loaded logo %dx%d", b.Dx(), b.Dy())
	default:
		s.logger.Debug("No logo configured")
	}
}

func (s *LogoService) read(ctx context.Context) (image.Image, error) {
	if s.url != "" {
		if s.fetcher == nil {
			return nil, errors.New("no fetcher configured for logo URL")
		}
		data, err := s.fetcher.Fetch(ctx, s.url)
		if err != nil {
			return nil, err
		}
		return decodeLogo(data)
	}

	if s.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return decodeLogo(data)
}

func decodeLogo(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot identify image file: %w", err)
	}
	return img, nil
}
