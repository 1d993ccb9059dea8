package logoclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"upi-qr-pay/internal/constants"
)

// MaxLogoBytes caps the size of a downloaded logo
const MaxLogoBytes = 5 << 20

// Client downloads logo images over HTTP
type Client struct {
	httpClient *resty.Client
	logger     *logrus.Logger
}

// NewClient creates a new logo download client
func NewClient(logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(constants.DefaultTimeout * time.Second).
		SetRetryCount(constants.DefaultRetryCount).
		SetRetryWaitTime(constants.DefaultRetryWaitTime * time.Second).
		SetRetryMaxWaitTime(constants.DefaultRetryMaxWaitTime * time.Second).
		SetHeader("Accept", "image/*")

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Fetch downloads the image at url and returns its raw bytes
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.logger.Infof("Downloading logo from %s", url)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("logo request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Logo download failed - URL: %s, Status: %d", url, resp.StatusCode())
		return nil, fmt.Errorf("logo download failed with status code: %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unexpected logo content type: %s", contentType)
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, errors.New("logo response body is empty")
	}
	if len(body) > MaxLogoBytes {
		return nil, fmt.Errorf("logo is too large: %d bytes", len(body))
	}

	c.logger.Debugf("Downloaded logo: %d bytes", len(body))
	return body, nil
}
