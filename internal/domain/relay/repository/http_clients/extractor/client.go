// Package extractor is the HTTP client of the media extraction API
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/config"
	"github.com/mexanickx/mexanicke/internal/domain/relay/deps"
	"github.com/mexanickx/mexanicke/internal/domain/relay/dto"
	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
)

// maxResponseSize bounds the JSON answer we are willing to parse
const maxResponseSize = 4 * 1024 * 1024

type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg *config.ExtractorConfig, logger zerolog.Logger) deps.Extractor {
	client := &Client{
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}

	logger.Info().
		Str("url", cfg.URL).
		Dur("timeout", cfg.Timeout).
		Msg("Extractor client initialized")

	return client
}

func (c *Client) Extract(ctx context.Context, link string) (*entities.MediaDescriptor, error) {
	body, err := json.Marshal(dto.ExtractRequest{URL: link, HD: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("link", link).Msg("Extraction request failed")
		return nil, fmt.Errorf("%w: %v", relayerrors.ErrAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status_code", resp.StatusCode).
			Str("link", link).
			Msg("Unexpected status code from extraction API")
		return nil, fmt.Errorf("%w: status %d", relayerrors.ErrAPIFailure, resp.StatusCode)
	}

	var result dto.ExtractResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", relayerrors.ErrAPIFailure, err)
	}

	if result.Code != 0 {
		c.logger.Warn().
			Int("code", result.Code).
			Str("msg", result.Msg).
			Str("link", link).
			Msg("Extraction API reported failure")
		return nil, fmt.Errorf("%w: code %d: %s", relayerrors.ErrAPIFailure, result.Code, result.Msg)
	}

	if result.Data == nil {
		return nil, relayerrors.ErrNoMedia
	}

	return toDescriptor(result.Data)
}

// toDescriptor decides by presence: an images list, even an empty one, makes
// the link an album and play is ignored.
func toDescriptor(data *dto.ExtractData) (*entities.MediaDescriptor, error) {
	desc := &entities.MediaDescriptor{AudioURL: data.MusicURL()}

	if data.Images != nil {
		var photos []string
		for _, u := range data.Images {
			if u = strings.TrimSpace(u); u != "" {
				photos = append(photos, u)
			}
		}
		if len(photos) == 0 {
			return nil, relayerrors.ErrEmptyAlbum
		}

		desc.Kind = entities.MediaKindPhotoAlbum
		desc.PhotoURLs = photos
		return desc, nil
	}

	if play := strings.TrimSpace(data.Play); play != "" {
		desc.Kind = entities.MediaKindVideo
		desc.VideoURL = play
		return desc, nil
	}

	return nil, relayerrors.ErrNoMedia
}
