package buissines

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/internal/domain/relay/consts"
	"github.com/mexanickx/mexanicke/internal/domain/relay/deps"
	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
	"github.com/mexanickx/mexanicke/internal/domain/relay/imaging"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
	pkgerrors "github.com/mexanickx/mexanicke/pkg/errors"
)

// Fetcher turns a share link into in-memory media
type Fetcher struct {
	extractor  deps.Extractor
	downloader deps.Downloader
	normalizer *imaging.Normalizer
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewFetcher creates a new Fetcher
func NewFetcher(extractor deps.Extractor, downloader deps.Downloader, normalizer *imaging.Normalizer, m *metrics.Metrics, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		extractor:  extractor,
		downloader: downloader,
		normalizer: normalizer,
		metrics:    m,
		logger:     logger,
	}
}

// Fetch resolves url through the extraction API and downloads its assets.
// Audio comes first and is best effort. Album images are fetched one by one
// and skipped on failure, so an album may come back with no items. A video
// failure fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*entities.FetchedMedia, error) {
	start := time.Now()
	defer func() {
		f.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	desc, err := f.extractor.Extract(ctx, url)
	if err != nil {
		return nil, f.fail(err)
	}

	log := f.logger.With().Str("kind", desc.Kind.String()).Logger()
	media := &entities.FetchedMedia{IsAlbum: desc.Kind == entities.MediaKindPhotoAlbum}
	budget := int64(consts.MaxRequestSize)

	if desc.AudioURL != "" {
		audio, err := f.downloader.Download(ctx, desc.AudioURL, consts.MaxAssetSize)
		if err != nil {
			log.Warn().Err(err).Msg("Audio download failed, skipping")
			f.metrics.AssetsSkipped.WithLabelValues("audio").Inc()
		} else {
			media.Audio = audio
			budget -= int64(len(audio))
			f.metrics.DownloadedBytes.WithLabelValues("audio").Add(float64(len(audio)))
		}
	}

	switch desc.Kind {
	case entities.MediaKindPhotoAlbum:
		for i, photoURL := range desc.PhotoURLs {
			if err := ctx.Err(); err != nil {
				return nil, f.fail(fmt.Errorf("%w: %v", relayerrors.ErrNetwork, err))
			}

			limit := min(int64(consts.MaxAssetSize), budget)
			if limit <= 0 {
				log.Warn().Int("index", i).Msg("Request size budget exhausted, skipping image")
				f.metrics.AssetsSkipped.WithLabelValues("image").Inc()
				continue
			}

			data, err := f.downloader.Download(ctx, photoURL, limit)
			if err != nil {
				log.Warn().Err(err).Int("index", i).Msg("Image download failed, skipping")
				f.metrics.AssetsSkipped.WithLabelValues("image").Inc()
				continue
			}
			budget -= int64(len(data))
			f.metrics.DownloadedBytes.WithLabelValues("image").Add(float64(len(data)))

			if len(data) > f.normalizer.Ceiling() {
				data, err = f.shrink(data)
				if err != nil {
					log.Warn().Err(err).Int("index", i).Msg("Oversized image cannot be normalized, skipping")
					f.metrics.AssetsSkipped.WithLabelValues("image").Inc()
					continue
				}
			}

			media.Items = append(media.Items, data)
		}

		log.Info().
			Int("requested", len(desc.PhotoURLs)).
			Int("fetched", len(media.Items)).
			Msg("Album fetched")

	default:
		video, err := f.downloader.Download(ctx, desc.VideoURL, consts.MaxVideoSize)
		if err != nil {
			return nil, f.fail(err)
		}
		f.metrics.DownloadedBytes.WithLabelValues("video").Add(float64(len(video)))
		media.Items = [][]byte{video}

		log.Info().Int("size", len(video)).Msg("Video fetched")
	}

	return media, nil
}

func (f *Fetcher) shrink(data []byte) ([]byte, error) {
	res, err := f.normalizer.Normalize(data)
	if err != nil {
		return nil, err
	}

	f.metrics.NormalizeSteps.Observe(float64(len(res.Steps)))
	f.logger.Debug().
		Int("from", len(data)).
		Int("to", len(res.Data)).
		Int("quality", res.Quality).
		Msg("Image normalized")

	return res.Data, nil
}

func (f *Fetcher) fail(err error) error {
	f.metrics.FetchErrors.WithLabelValues(pkgerrors.TypeOf(err).String()).Inc()
	return err
}
