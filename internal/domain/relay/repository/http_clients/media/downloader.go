// Package media streams assets from media hosts into memory
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/config"
	"github.com/mexanickx/mexanicke/internal/domain/relay/deps"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
)

const (
	chunkSize = 1024 * 1024
	referer   = "https://www.tiktok.com/"
)

// Downloader implements deps.Downloader over plain HTTP GET
type Downloader struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewDownloader creates a downloader; the per-download deadline comes from cfg
func NewDownloader(media *config.MediaConfig, extractor *config.ExtractorConfig, logger zerolog.Logger) deps.Downloader {
	return &Downloader{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: 30 * time.Second,
				MaxIdleConnsPerHost:   8,
			},
		},
		userAgent: extractor.UserAgent,
		timeout:   media.DownloadTimeout,
		logger:    logger,
	}
}

// Download reads url fully. A body longer than limit fails with ErrTooLarge
// without reading further; limit <= 0 disables the check.
func (d *Downloader) Download(ctx context.Context, url string, limit int64) ([]byte, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", relayerrors.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Referer", referer)
	req.Header.Set("Accept", "*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", relayerrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Debug().Int("status_code", resp.StatusCode).Str("url", url).Msg("Unexpected media status")
		return nil, fmt.Errorf("%w: status %d", relayerrors.ErrNetwork, resp.StatusCode)
	}

	if limit > 0 && resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: content length %d over %d", relayerrors.ErrTooLarge, resp.ContentLength, limit)
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}

	body := io.Reader(resp.Body)
	if limit > 0 {
		// one extra byte tells an exact fit from an overflow
		body = io.LimitReader(resp.Body, limit+1)
	}

	chunk := make([]byte, chunkSize)
	for {
		n, rerr := body.Read(chunk)
		buf.Write(chunk[:n])

		if limit > 0 && int64(buf.Len()) > limit {
			return nil, fmt.Errorf("%w: body over %d bytes", relayerrors.ErrTooLarge, limit)
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("%w: read body: %v", relayerrors.ErrNetwork, rerr)
		}
	}

	return buf.Bytes(), nil
}
