package buissines

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mexanickx/mexanicke/internal/domain/relay/consts"
	"github.com/mexanickx/mexanicke/internal/domain/relay/deps"
	"github.com/mexanickx/mexanicke/internal/domain/relay/entities"
	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
	"github.com/mexanickx/mexanicke/internal/domain/relay/imaging"
	"github.com/mexanickx/mexanicke/internal/domain/relay/tempfile"
	"github.com/mexanickx/mexanicke/internal/infrastructure/metrics"
)

// Packager writes fetched media to temp files and uploads them.
// Every Deliver call removes the files it created before returning.
type Packager struct {
	sender     deps.Sender
	normalizer *imaging.Normalizer
	store      *tempfile.Store
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewPackager creates a new Packager
func NewPackager(sender deps.Sender, normalizer *imaging.Normalizer, store *tempfile.Store, m *metrics.Metrics, logger zerolog.Logger) *Packager {
	return &Packager{
		sender:     sender,
		normalizer: normalizer,
		store:      store,
		metrics:    m,
		logger:     logger,
	}
}

// DeliverVideo uploads one video as a reply to the request
func (p *Packager) DeliverVideo(ctx context.Context, target entities.Target, data []byte, caption string) error {
	if len(data) > consts.MaxVideoSize {
		return fmt.Errorf("%w: video is %d bytes", relayerrors.ErrTooLarge, len(data))
	}

	scope := p.store.NewScope()
	defer scope.Release()

	asset, err := scope.Write(data, ".mp4")
	if err != nil {
		return err
	}

	err = p.sender.SendVideo(ctx, target, asset.Upload(), caption, entities.VideoHints{
		Width:             consts.VideoWidth,
		Height:            consts.VideoHeight,
		SupportsStreaming: true,
	})
	p.countUpload("video", err)

	return err
}

// DeliverAudio uploads the soundtrack
func (p *Packager) DeliverAudio(ctx context.Context, chatID int64, data []byte, caption string) error {
	scope := p.store.NewScope()
	defer scope.Release()

	asset, err := scope.Write(data, ".mp3")
	if err != nil {
		return err
	}

	err = p.sender.SendAudio(ctx, chatID, asset.Upload(), caption)
	p.countUpload("audio", err)

	return err
}

// DeliverAlbum uploads photos in groups of consts.MaxPhotosPerGroup, in input
// order, with the caption on the first photo of every group. A rejected group
// is retried photo by photo. Per-photo failures are logged, not returned.
func (p *Packager) DeliverAlbum(ctx context.Context, chatID int64, photos [][]byte, caption string) error {
	scope := p.store.NewScope()
	defer scope.Release()

	log := p.logger.With().Int64("chat_id", chatID).Logger()

	files := make([]entities.UploadFile, 0, len(photos))
	for i, photo := range photos {
		enc, err := p.normalizer.Lossless(photo)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping undecodable photo")
			p.metrics.AssetsSkipped.WithLabelValues("image").Inc()
			continue
		}
		if enc.Lossy {
			p.metrics.NormalizeSteps.Observe(float64(len(enc.Steps)))
		}

		asset, err := scope.Write(enc.Data, enc.Ext)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping photo, temp file write failed")
			continue
		}
		files = append(files, asset.Upload())
	}

	if len(files) == 0 {
		return relayerrors.ErrEmptyAlbum
	}

	failed := 0
	for start := 0; start < len(files); start += consts.MaxPhotosPerGroup {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+consts.MaxPhotosPerGroup, len(files))
		group := files[start:end]

		err := p.sender.SendPhotoGroup(ctx, chatID, group, caption)
		p.countUpload("photo_group", err)
		if err == nil {
			continue
		}

		log.Warn().Err(err).
			Int("group_start", start).
			Int("group_size", len(group)).
			Msg("Media group rejected, sending photos one by one")
		p.metrics.GroupFallbacks.Inc()

		for j, file := range group {
			photoCaption := ""
			if j == 0 {
				photoCaption = caption
			}

			err := p.sender.SendPhoto(ctx, chatID, file, photoCaption)
			p.countUpload("photo", err)
			if err != nil {
				failed++
				log.Warn().Err(err).Int("index", start+j).Msg("Photo upload failed")
			}
		}
	}

	if failed > 0 {
		log.Warn().
			Int("failed", failed).
			Int("total", len(files)).
			Msg("Album partially delivered")
	}

	return nil
}

func (p *Packager) countUpload(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.metrics.UploadsTotal.WithLabelValues(kind, result).Inc()
}
